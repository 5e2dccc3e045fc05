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

package app

import (
	"os"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/templates"
	"k8s.io/utils/clock"

	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/humanize"
	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/list"
	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/serve"
	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/util"
	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/version"
	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/wait"
)

type Options struct {
	ConfigFlags *genericclioptions.ConfigFlags
	Clock       clock.Clock

	genericiooptions.IOStreams
}

var (
	rootLong = templates.LongDesc(`
		Resolves the status of Kueue Workloads from their conditions and
		explains it in words users can act on.`)
)

func NewDefaultWorkloadStatusCmd() *cobra.Command {
	return NewWorkloadStatusCmd(Options{
		ConfigFlags: genericclioptions.NewConfigFlags(true).
			WithDiscoveryBurst(300).
			WithDiscoveryQPS(50.0),
		IOStreams: genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr},
		Clock:     clock.RealClock{},
	})
}

func NewWorkloadStatusCmd(o Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workload-status",
		Short: "Resolve and explain the status of Kueue Workloads",
		Long:  rootLong,
	}

	flags := cmd.PersistentFlags()
	configFlags := o.ConfigFlags
	if configFlags == nil {
		configFlags = genericclioptions.NewConfigFlags(true)
	}
	configFlags.AddFlags(flags)

	clientGetter := util.NewClientGetter(configFlags)

	cmd.AddCommand(list.NewListCmd(clientGetter, o.IOStreams, o.Clock))
	cmd.AddCommand(wait.NewWaitCmd(clientGetter, o.IOStreams))
	cmd.AddCommand(humanize.NewHumanizeCmd(o.IOStreams))
	cmd.AddCommand(serve.NewServeCmd(clientGetter))
	cmd.AddCommand(version.NewVersionCmd(o.IOStreams))

	return cmd
}
