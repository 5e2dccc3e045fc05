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

package wait

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/kubectl/pkg/util/templates"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/util"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

var (
	waitExample = templates.Examples(`
		# Wait for a Workload to run
		workload-status wait my-workload --for running

		# Wait up to ten minutes for a Workload to be admitted or to run
		workload-status wait my-workload --for admitted --for running --timeout 10m`)
)

type WaitOptions struct {
	Name      string
	Namespace string
	For       []string
	Timeout   time.Duration
	Interval  time.Duration

	Statuses []workloadstatus.Status
	Client   client.Client

	genericiooptions.IOStreams
}

func NewWaitOptions(streams genericiooptions.IOStreams) *WaitOptions {
	return &WaitOptions{
		Timeout:   workload.DefaultWaitTimeout,
		Interval:  workload.DefaultWaitInterval,
		IOStreams: streams,
	}
}

func NewWaitCmd(clientGetter util.ClientGetter, streams genericiooptions.IOStreams) *cobra.Command {
	o := NewWaitOptions(streams)

	cmd := &cobra.Command{
		Use:                   "wait NAME --for STATUS [--timeout DURATION]",
		DisableFlagsInUseLine: true,
		Short:                 "Wait for a Workload to reach a status",
		Long:                  "Waits until the Workload reaches one of the given statuses. A terminal status that was not waited for ends the wait with an error.",
		Example:               waitExample,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := o.Complete(clientGetter, args); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVar(&o.For, "for", nil, "The status to wait for. May be repeated.")
	cmd.Flags().DurationVar(&o.Timeout, "timeout", o.Timeout, "The length of time to wait before giving up.")
	cmd.Flags().DurationVar(&o.Interval, "interval", o.Interval, "The time between two reads of the Workload.")
	_ = cmd.MarkFlagRequired("for")

	return cmd
}

// Complete completes all the required options
func (o *WaitOptions) Complete(clientGetter util.ClientGetter, args []string) error {
	o.Name = args[0]

	var err error
	o.Namespace, _, err = clientGetter.ToRawKubeConfigLoader().Namespace()
	if err != nil {
		return err
	}

	o.Statuses = nil
	for _, name := range o.For {
		st, ok := workloadstatus.ParseStatus(name)
		if !ok {
			return fmt.Errorf("invalid status value (%v)", name)
		}
		o.Statuses = append(o.Statuses, st)
	}

	o.Client, err = clientGetter.CtrlClient()
	return err
}

func (o *WaitOptions) Run(ctx context.Context) error {
	key := types.NamespacedName{Namespace: o.Namespace, Name: o.Name}
	sum, err := workload.WaitForStatus(ctx, o.Client, key, workload.WaitOptions{
		Statuses: o.Statuses,
		Interval: o.Interval,
		Timeout:  o.Timeout,
	})
	if err != nil && !errors.Is(err, workload.ErrTerminalStatus) {
		return err
	}

	verb := "reached"
	if err != nil {
		verb = "ended with"
	}
	fmt.Fprintf(o.Out, "workload.kueue.x-k8s.io/%s %s status %s", o.Name, verb, sum.Status)
	if msg := displayMessage(sum); msg != "" {
		fmt.Fprintf(o.Out, ": %s", msg)
	}
	fmt.Fprintln(o.Out)
	return err
}

func displayMessage(sum workload.Summary) string {
	if sum.HumanizedMessage != "" {
		return sum.HumanizedMessage
	}
	return strings.TrimSpace(sum.Message)
}
