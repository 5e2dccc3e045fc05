/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	"sigs.k8s.io/kueue-workload-status/pkg/config"
)

// cleanOrigin reduces an origin URL to its scheme and host. "*" is only
// valid outside of release mode.
func cleanOrigin(origin string, releaseMode bool) (string, bool) {
	if origin == "*" {
		return origin, !releaseMode
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Hostname() == "" {
		return "", false
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), true
}

// ConfigureCORS builds the CORS configuration. Without configured origins
// every origin is allowed outside of release mode.
func ConfigureCORS(log logr.Logger, cfg config.ServerConfiguration) (cors.Config, error) {
	corsConfig := cors.DefaultConfig()

	var allowedOrigins []string
	for _, origin := range cfg.AllowedOrigins {
		if clean, valid := cleanOrigin(strings.TrimSpace(origin), cfg.ReleaseMode); valid {
			allowedOrigins = append(allowedOrigins, clean)
		} else {
			log.Info("Invalid origin rejected", "origin", origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 && !cfg.ReleaseMode {
		allowedOrigins = []string{"*"}
	}

	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	if cfg.ReleaseMode {
		corsConfig.AllowCredentials = false
		corsConfig.MaxAge = 12 * time.Hour
		if len(allowedOrigins) == 0 {
			return corsConfig, errors.New("release mode requires valid CORS origins to be configured")
		}
	} else {
		corsConfig.AllowCredentials = !slices.Contains(allowedOrigins, "*")
		corsConfig.MaxAge = 5 * time.Minute
	}
	log.V(2).Info("Configured CORS", "origins", corsConfig.AllowOrigins, "releaseMode", cfg.ReleaseMode)
	return corsConfig, nil
}

// SetupCORS returns the CORS middleware for cfg.
func SetupCORS(log logr.Logger, cfg config.ServerConfiguration) (gin.HandlerFunc, error) {
	corsConfig, err := ConfigureCORS(log, cfg)
	if err != nil {
		return nil, err
	}
	return cors.New(corsConfig), nil
}
