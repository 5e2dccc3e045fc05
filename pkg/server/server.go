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

// Package server exposes the classified workload statuses over HTTP and
// WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ctrlmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"sigs.k8s.io/kueue-workload-status/pkg/config"
	"sigs.k8s.io/kueue-workload-status/pkg/store"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
)

const shutdownTimeout = 10 * time.Second

//go:generate go tool mockgen -destination=../../internal/mocks/server/mock_source.go -package=mocks sigs.k8s.io/kueue-workload-status/pkg/server WorkloadSource

// WorkloadSource provides the workloads served by the API.
type WorkloadSource interface {
	List(opts store.ListOptions) []workload.Summary
	Get(namespace, name string) (workload.Summary, bool)
	Notifications() []store.Notification
	// Subscribe returns a channel signaled after changes and a func
	// releasing the subscription.
	Subscribe() (<-chan struct{}, func())
}

type Server struct {
	log     logr.Logger
	source  WorkloadSource
	engine  *gin.Engine
	address string
	origins *originChecker
}

// New builds the gin engine serving source with the given configuration.
func New(log logr.Logger, source WorkloadSource, cfg *config.Configuration) (*Server, error) {
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))

	corsMiddleware, err := SetupCORS(log, cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("setting up CORS: %w", err)
	}
	engine.Use(corsMiddleware)
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	s := &Server{
		log:     log,
		source:  source,
		engine:  engine,
		address: cfg.Server.BindAddress,
		origins: newOriginChecker(cfg.Server.AllowedOrigins),
	}

	engine.GET("/healthz", s.healthz)
	if cfg.Metrics.Enabled {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(ctrlmetrics.Registry, promhttp.HandlerOpts{})))
	}
	api := engine.Group("/api/v1")
	api.GET("/statuses", s.listStatuses)
	api.GET("/workloads", s.listWorkloads)
	api.GET("/workloads/:namespace/:name", s.getWorkload)
	api.GET("/notifications", s.listNotifications)
	api.POST("/resolve", s.resolve)
	api.POST("/humanize", s.humanize)
	engine.GET("/ws/workloads", s.watchWorkloads)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting API server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving API: %w", err)
	case <-ctx.Done():
	}
	s.log.Info("Stopping API server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log logr.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.V(3).Info("Handled request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
