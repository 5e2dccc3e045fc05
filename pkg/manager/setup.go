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

package manager

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/rest"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"

	"sigs.k8s.io/kueue-workload-status/pkg/config"
	"sigs.k8s.io/kueue-workload-status/pkg/controller/workloadstatus"
	"sigs.k8s.io/kueue-workload-status/pkg/features"
	"sigs.k8s.io/kueue-workload-status/pkg/metrics"
	"sigs.k8s.io/kueue-workload-status/pkg/server"
	"sigs.k8s.io/kueue-workload-status/pkg/store"
)

// Setup is a manager wired with the workload status controller and the API
// server.
type Setup struct {
	Config *Config
	Mgr    ctrl.Manager
	Store  *store.Store
	Server *server.Server

	cacheSynced chan struct{}
}

// SetupManager loads the configuration and builds the manager. A nil
// kubeConfig is resolved from the environment.
func SetupManager(kubeConfig *rest.Config, configFile, featureGates string) (*Setup, error) {
	cfg := NewConfig()
	if err := cfg.Apply(configFile); err != nil {
		return nil, err
	}
	if err := features.Set(featureGates); err != nil {
		return nil, err
	}
	features.LogFeatureGates(cfg.SetupLog)

	if kubeConfig == nil {
		var err error
		if kubeConfig, err = getConfig(); err != nil {
			return nil, fmt.Errorf("unable to get the kubeconfig: %w", err)
		}
	}
	config.ApplyClientConnection(kubeConfig, &cfg.Apiconf)

	mgr, err := ctrl.NewManager(kubeConfig, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("unable to create the manager: %w", err)
	}

	s := &Setup{
		Config:      cfg,
		Mgr:         mgr,
		Store:       store.New(cfg.Apiconf.Notifications.Capacity),
		cacheSynced: make(chan struct{}),
	}
	if err := cfg.SetupProbeEndpoints(mgr, s.cacheSynced); err != nil {
		return nil, err
	}
	if err := cfg.SetupControllers(mgr, s.Store); err != nil {
		return nil, err
	}
	if s.Server, err = cfg.SetupServer(mgr, s.Store); err != nil {
		return nil, err
	}
	return s, nil
}

// Start runs the manager until ctx is done.
func (s *Setup) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Config.SetupLog.Info("Starting manager")
		return s.Mgr.Start(ctx)
	})
	g.Go(func() error {
		if s.Mgr.GetCache().WaitForCacheSync(ctx) {
			s.Config.SetupLog.Info("Informer caches are synced")
			close(s.cacheSynced)
		}
		return nil
	})
	return g.Wait()
}

// SetupControllers sets up the workload status controller.
func (c *Config) SetupControllers(mgr ctrl.Manager, s *store.Store) error {
	r := workloadstatus.NewWorkloadStatusReconciler(mgr.GetClient(), s, mgr.GetEventRecorderFor(workloadstatus.ControllerName))
	if err := r.SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to create controller %s: %w", workloadstatus.ControllerName, err)
	}
	return nil
}

// SetupServer registers the metrics and adds the API server to the manager.
func (c *Config) SetupServer(mgr ctrl.Manager, s *store.Store) (*server.Server, error) {
	if c.Apiconf.Metrics.Enabled {
		metrics.Register()
	}
	srv, err := server.New(mgr.GetLogger().WithName("server"), s, &c.Apiconf)
	if err != nil {
		return nil, fmt.Errorf("unable to create the API server: %w", err)
	}
	if err := mgr.Add(srv); err != nil {
		return nil, fmt.Errorf("unable to add the API server to the manager: %w", err)
	}
	return srv, nil
}

// SetupProbeEndpoints registers the health endpoints
func (c *Config) SetupProbeEndpoints(mgr ctrl.Manager, cacheSynced <-chan struct{}) error {
	defer c.SetupLog.Info("Probe endpoints are configured on healthz and readyz")

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}

	// The store is filled by the controller, the API serves partial data
	// until the informer caches are synced.
	if err := mgr.AddReadyzCheck("readyz", func(*http.Request) error {
		select {
		case <-cacheSynced:
			return nil
		default:
			return errors.New("informer caches are not synced")
		}
	}); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	return nil
}
