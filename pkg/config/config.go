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

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	ctrlcache "sigs.k8s.io/controller-runtime/pkg/cache"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	"sigs.k8s.io/yaml"
)

// EnvPrefix is the prefix of the environment variables overriding the
// configuration file, for example WORKLOAD_STATUS_SERVER_BINDADDRESS.
const EnvPrefix = "WORKLOAD_STATUS"

// Configuration is the configuration of the workload-status server.
type Configuration struct {
	// Namespace restricts the observed workloads to one namespace.
	// Empty means all namespaces.
	Namespace string `json:"namespace,omitempty"`

	Server           ServerConfiguration        `json:"server"`
	Metrics          MetricsConfiguration       `json:"metrics"`
	Health           HealthConfiguration        `json:"health"`
	Notifications    NotificationsConfiguration `json:"notifications"`
	ClientConnection ClientConnection           `json:"clientConnection"`

	// FeatureGates is a map of feature names to bools that allows to override the
	// default enablement status of a feature.
	FeatureGates map[string]bool `json:"featureGates,omitempty"`
}

type ServerConfiguration struct {
	// BindAddress is the host:port the HTTP API listens on.
	BindAddress string `json:"bindAddress,omitempty"`
	// AllowedOrigins are the CORS origins allowed to call the API, "*" allows
	// every origin outside of release mode.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
	// ReleaseMode runs gin in release mode and tightens CORS.
	ReleaseMode bool `json:"releaseMode,omitempty"`
}

type MetricsConfiguration struct {
	// Enabled serves /metrics on the API server.
	Enabled bool `json:"enabled"`
}

type HealthConfiguration struct {
	// HealthProbeBindAddress is the address the manager serves health
	// probes on. "0" disables them.
	HealthProbeBindAddress string `json:"healthProbeBindAddress,omitempty"`
}

type NotificationsConfiguration struct {
	// Capacity is the number of preemption notifications kept.
	Capacity int `json:"capacity,omitempty"`
}

type ClientConnection struct {
	QPS   float32 `json:"qps,omitempty"`
	Burst int32   `json:"burst,omitempty"`
}

const (
	DefaultBindAddress            = ":8080"
	DefaultHealthProbeBindAddress = ":8081"
	DefaultNotificationCapacity   = 100
	DefaultClientConnectionQPS    = 20
	DefaultClientConnectionBurst  = 30
)

func Default() Configuration {
	return Configuration{
		Server: ServerConfiguration{
			BindAddress: DefaultBindAddress,
		},
		Metrics: MetricsConfiguration{Enabled: true},
		Health: HealthConfiguration{
			HealthProbeBindAddress: DefaultHealthProbeBindAddress,
		},
		Notifications: NotificationsConfiguration{Capacity: DefaultNotificationCapacity},
		ClientConnection: ClientConnection{
			QPS:   DefaultClientConnectionQPS,
			Burst: DefaultClientConnectionBurst,
		},
	}
}

// Load reads the configuration: defaults, then configFile when given, then
// the environment. The result is validated.
func Load(configFile string) (Configuration, error) {
	cfg := Default()
	if configFile != "" {
		if err := fromFile(configFile, &cfg); err != nil {
			return cfg, err
		}
	}
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	fromEnv(v, &cfg)
	if err := Validate(&cfg).ToAggregate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fromFile(path string, cfg *Configuration) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(content, cfg); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

var envOverrides = []struct {
	key   string
	apply func(v *viper.Viper, key string, cfg *Configuration)
}{
	{"namespace", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Namespace = v.GetString(key)
	}},
	{"server.bindAddress", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Server.BindAddress = v.GetString(key)
	}},
	{"server.allowedOrigins", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Server.AllowedOrigins = nil
		for origin := range strings.SplitSeq(v.GetString(key), ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, origin)
			}
		}
	}},
	{"server.releaseMode", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Server.ReleaseMode = v.GetBool(key)
	}},
	{"metrics.enabled", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Metrics.Enabled = v.GetBool(key)
	}},
	{"health.healthProbeBindAddress", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Health.HealthProbeBindAddress = v.GetString(key)
	}},
	{"notifications.capacity", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.Notifications.Capacity = v.GetInt(key)
	}},
	{"clientConnection.qps", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.ClientConnection.QPS = float32(v.GetFloat64(key))
	}},
	{"clientConnection.burst", func(v *viper.Viper, key string, cfg *Configuration) {
		cfg.ClientConnection.Burst = v.GetInt32(key)
	}},
}

func fromEnv(v *viper.Viper, cfg *Configuration) {
	for _, o := range envOverrides {
		if v.IsSet(o.key) {
			o.apply(v, o.key, cfg)
		}
	}
}

// ToManagerOptions returns the controller manager options for cfg. The
// manager metrics server is disabled, /metrics is served by the API server.
func ToManagerOptions(scheme *runtime.Scheme, cfg *Configuration) ctrl.Options {
	options := ctrl.Options{
		Scheme:                 scheme,
		HealthProbeBindAddress: cfg.Health.HealthProbeBindAddress,
		Metrics:                metricsserver.Options{BindAddress: "0"},
	}
	if cfg.Namespace != "" {
		options.Cache.DefaultNamespaces = map[string]ctrlcache.Config{
			cfg.Namespace: {},
		}
	}
	return options
}

// ApplyClientConnection sets the client rate limits on kubeConfig.
func ApplyClientConnection(kubeConfig *rest.Config, cfg *Configuration) {
	kubeConfig.QPS = cfg.ClientConnection.QPS
	kubeConfig.Burst = int(cfg.ClientConnection.Burst)
}
