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
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/config"
	"sigs.k8s.io/kueue-workload-status/pkg/features"
)

var (
	scheme    = runtime.NewScheme()
	getConfig = ctrl.GetConfig
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(kueue.AddToScheme(scheme))
}

// Config holds the loaded configuration and the derived manager options.
type Config struct {
	SetupLog logr.Logger
	Apiconf  config.Configuration
	Options  ctrl.Options
}

func NewConfig() *Config {
	return &Config{
		SetupLog: ctrl.Log.WithName("setup"),
	}
}

// Apply loads configFile, falling back to defaults when it is empty, and
// applies the feature gates it declares.
func (c *Config) Apply(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("unable to load the configuration: %w", err)
	}
	if err := features.SetFromMap(cfg.FeatureGates); err != nil {
		return fmt.Errorf("unable to set feature gates from the configuration: %w", err)
	}
	c.Apiconf = cfg
	c.Options = config.ToManagerOptions(scheme, &c.Apiconf)
	c.SetupLog.V(2).Info("Successfully loaded configuration", "config", c.Apiconf)
	return nil
}
