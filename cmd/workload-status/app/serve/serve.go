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

package serve

import (
	"context"
	"flag"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	zaplog "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/kubectl/pkg/util/templates"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/util"
	"sigs.k8s.io/kueue-workload-status/pkg/manager"
	"sigs.k8s.io/kueue-workload-status/pkg/util/logging"
	"sigs.k8s.io/kueue-workload-status/pkg/version"
)

var (
	serveLong = templates.LongDesc(`
		Watches Workloads, keeps their resolved status in memory and serves
		it over HTTP and WebSocket.`)
	serveExample = templates.Examples(`
		# Serve with the default configuration
		workload-status serve

		# Serve with a configuration file and a feature gate override
		workload-status serve --config config.yaml --feature-gates PreemptionNotifications=false`)
)

type ServeOptions struct {
	ConfigFile   string
	FeatureGates string
	ZapOptions   zap.Options
}

func NewServeOptions() *ServeOptions {
	return &ServeOptions{
		ZapOptions: zap.Options{
			TimeEncoder: zapcore.RFC3339NanoTimeEncoder,
			ZapOpts: []zaplog.Option{
				zaplog.AddCaller(),
				zaplog.WrapCore(logging.NewExpectedErrorsCore),
			},
		},
	}
}

func NewServeCmd(clientGetter util.ClientGetter) *cobra.Command {
	o := NewServeOptions()

	cmd := &cobra.Command{
		Use:                   "serve [--config FILE] [--feature-gates GATES]",
		DisableFlagsInUseLine: true,
		Short:                 "Serve the status of Workloads",
		Long:                  serveLong,
		Example:               serveExample,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return o.Run(cmd.Context(), clientGetter)
		},
	}

	cmd.Flags().StringVar(&o.ConfigFile, "config", "",
		"The server will load its initial configuration from this file. "+
			"Omit this flag to use the default configuration values.")
	cmd.Flags().StringVar(&o.FeatureGates, "feature-gates", "", "A set of key=value pairs that describe feature gates for alpha/experimental features.")

	addZapFlags(cmd.Flags(), &o.ZapOptions)

	return cmd
}

// addZapFlags exposes the zap logger flags, registered on a Go flag set by
// controller-runtime, on fs.
func addZapFlags(fs *pflag.FlagSet, opts *zap.Options) {
	zapFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	opts.BindFlags(zapFlags)
	fs.AddGoFlagSet(zapFlags)
}

func (o *ServeOptions) Run(ctx context.Context, clientGetter util.ClientGetter) error {
	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&o.ZapOptions)))

	setupLog := ctrl.Log.WithName("setup")
	setupLog.Info("Initializing", "gitVersion", version.GitVersion, "gitCommit", version.GitCommit, "buildDate", version.BuildDate)

	kubeConfig, err := clientGetter.ToRESTConfig()
	if err != nil {
		setupLog.Error(err, "Unable to get the kubeconfig")
		return err
	}

	mgrSetup, err := manager.SetupManager(kubeConfig, o.ConfigFile, o.FeatureGates)
	if err != nil {
		setupLog.Error(err, "Unable to setup manager")
		return err
	}

	if err := mgrSetup.Start(ctx); err != nil {
		setupLog.Error(err, "Could not run manager")
		return err
	}
	return nil
}
