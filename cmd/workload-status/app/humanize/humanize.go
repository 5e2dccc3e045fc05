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

package humanize

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/templates"

	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

var (
	humanizeExample = templates.Examples(`
		# Turn a Kueue condition message into a sentence
		workload-status humanize --status queued --queue team-a \
			--message "couldn't assign flavors to pod set main: insufficient unused quota"`)
)

type HumanizeOptions struct {
	Status  string
	Message string
	Queue   string

	genericiooptions.IOStreams
}

func NewHumanizeCmd(streams genericiooptions.IOStreams) *cobra.Command {
	o := &HumanizeOptions{IOStreams: streams}

	cmd := &cobra.Command{
		Use:                   "humanize --status STATUS [--message MESSAGE] [--queue QUEUE]",
		DisableFlagsInUseLine: true,
		Short:                 "Print the message shown to users for a status",
		Example:               humanizeExample,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return o.Run()
		},
	}

	cmd.Flags().StringVar(&o.Status, "status", "", "The workload status.")
	cmd.Flags().StringVar(&o.Message, "message", "", "The raw message of the condition.")
	cmd.Flags().StringVar(&o.Queue, "queue", "", "The name of the queue the workload was submitted to.")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func (o *HumanizeOptions) Run() error {
	st, ok := workloadstatus.ParseStatus(o.Status)
	if !ok {
		return fmt.Errorf("invalid status value (%v)", o.Status)
	}
	fmt.Fprintln(o.Out, workloadstatus.Humanize(st, o.Message, o.Queue))
	return nil
}
