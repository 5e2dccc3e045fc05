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

package list

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/kubectl/pkg/util/templates"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/util"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

var (
	listLong = templates.LongDesc(`
		Lists Workloads with the status resolved from their conditions
		and a message users can act on.`)
	listExample = templates.Examples(`
		# List Workloads in the current namespace
		workload-status list

		# List preempted and inadmissible Workloads in all namespaces
		workload-status list -A --status preempted --status inadmissible`)
)

type ListOptions struct {
	Clock      clock.Clock
	PrintFlags *genericclioptions.PrintFlags

	AllNamespaces    bool
	Namespace        string
	LocalQueueFilter string
	StatusesFilter   sets.Set[workloadstatus.Status]
	UserStatuses     []string

	Client client.Client

	genericiooptions.IOStreams
}

func NewListOptions(streams genericiooptions.IOStreams, clock clock.Clock) *ListOptions {
	return &ListOptions{
		PrintFlags: genericclioptions.NewPrintFlags("").WithTypeSetter(util.Scheme),
		IOStreams:  streams,
		Clock:      clock,
	}
}

func NewListCmd(clientGetter util.ClientGetter, streams genericiooptions.IOStreams, clock clock.Clock) *cobra.Command {
	o := NewListOptions(streams, clock)

	cmd := &cobra.Command{
		Use:                   "list [--localqueue LOCAL_QUEUE_NAME] [--status STATUS] [--all-namespaces]",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ls"},
		Short:                 "List Workloads and their status",
		Long:                  listLong,
		Example:               listExample,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := o.Complete(clientGetter); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}

	o.PrintFlags.AddFlags(cmd)
	util.AddAllNamespacesFlagVar(cmd, &o.AllNamespaces)
	cmd.Flags().StringVarP(&o.LocalQueueFilter, "localqueue", "q", "", "Filter by localqueue name which is associated with the resource.")
	cmd.Flags().StringArrayVar(&o.UserStatuses, "status", nil,
		fmt.Sprintf("Filter workloads by status. Must be one of %s.", strings.Join(statusNames(), ", ")))

	return cmd
}

func statusNames() []string {
	names := make([]string, 0, len(workloadstatus.AllStatuses))
	for _, st := range workloadstatus.AllStatuses {
		names = append(names, strings.ToLower(string(st)))
	}
	return names
}

// Complete completes all the required options
func (o *ListOptions) Complete(clientGetter util.ClientGetter) error {
	var err error

	o.Namespace, _, err = clientGetter.ToRawKubeConfigLoader().Namespace()
	if err != nil {
		return err
	}

	o.StatusesFilter = sets.New[workloadstatus.Status]()
	for _, name := range o.UserStatuses {
		st, ok := workloadstatus.ParseStatus(name)
		if !ok {
			return fmt.Errorf("invalid status value (%v). Must be one of %s", name, strings.Join(statusNames(), ", "))
		}
		o.StatusesFilter.Insert(st)
	}

	o.Client, err = clientGetter.CtrlClient()
	return err
}

func (o *ListOptions) ToPrinter(summaries map[string]workload.Summary) (printers.ResourcePrinterFunc, error) {
	if !o.PrintFlags.OutputFlagSpecified() {
		printer := newWorkloadTablePrinter().
			WithSummaries(summaries).
			WithNamespace(o.AllNamespaces).
			WithClock(o.Clock)
		return printer.PrintObj, nil
	}
	printer, err := o.PrintFlags.ToPrinter()
	if err != nil {
		return nil, err
	}
	return printer.PrintObj, nil
}

// Run performs the list operation.
func (o *ListOptions) Run(ctx context.Context) error {
	var opts []client.ListOption
	if !o.AllNamespaces {
		opts = append(opts, client.InNamespace(o.Namespace))
	}

	list := &kueue.WorkloadList{}
	if err := o.Client.List(ctx, list, opts...); err != nil {
		return err
	}

	summaries := make(map[string]workload.Summary, len(list.Items))
	filtered := make([]kueue.Workload, 0, len(list.Items))
	for i := range list.Items {
		wl := &list.Items[i]
		if o.LocalQueueFilter != "" && string(wl.Spec.QueueName) != o.LocalQueueFilter {
			continue
		}
		sum := workload.Summarize(wl)
		if o.StatusesFilter.Len() > 0 && !o.StatusesFilter.Has(sum.Status) {
			continue
		}
		summaries[sum.Key()] = sum
		wl.SetGroupVersionKind(kueue.GroupVersion.WithKind("Workload"))
		filtered = append(filtered, *wl)
	}
	slices.SortFunc(filtered, func(a, b kueue.Workload) int {
		return strings.Compare(workload.Key(&a), workload.Key(&b))
	})
	list.Items = filtered

	if len(list.Items) == 0 {
		if !o.AllNamespaces {
			fmt.Fprintf(o.ErrOut, "No resources found in %s namespace.\n", o.Namespace)
		} else {
			fmt.Fprintln(o.ErrOut, "No resources found")
		}
		return nil
	}

	printer, err := o.ToPrinter(summaries)
	if err != nil {
		return err
	}
	tabWriter := printers.GetNewTabWriter(o.Out)
	if err := printer.PrintObj(list, tabWriter); err != nil {
		return err
	}
	return tabWriter.Flush()
}
