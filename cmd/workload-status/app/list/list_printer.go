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
	"errors"
	"io"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/duration"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/utils/clock"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/workload"
)

type listWorkloadPrinter struct {
	clock        clock.Clock
	printOptions printers.PrintOptions
	summaries    map[string]workload.Summary
}

var _ printers.ResourcePrinter = (*listWorkloadPrinter)(nil)

func (p *listWorkloadPrinter) PrintObj(obj runtime.Object, out io.Writer) error {
	printer := printers.NewTablePrinter(p.printOptions)

	list, ok := obj.(*kueue.WorkloadList)
	if !ok {
		return errors.New("invalid object type")
	}

	table := &metav1.Table{
		ColumnDefinitions: []metav1.TableColumnDefinition{
			{Name: "Name", Type: "string", Format: "name"},
			{Name: "LocalQueue", Type: "string"},
			{Name: "ClusterQueue", Type: "string"},
			{Name: "Status", Type: "string"},
			{Name: "Message", Type: "string"},
			{Name: "Age", Type: "string"},
		},
		Rows: p.printWorkloadList(list),
	}

	return printer.PrintObj(table, out)
}

func (p *listWorkloadPrinter) WithNamespace(f bool) *listWorkloadPrinter {
	p.printOptions.WithNamespace = f
	return p
}

func (p *listWorkloadPrinter) WithSummaries(s map[string]workload.Summary) *listWorkloadPrinter {
	p.summaries = s
	return p
}

func (p *listWorkloadPrinter) WithClock(c clock.Clock) *listWorkloadPrinter {
	p.clock = c
	return p
}

func newWorkloadTablePrinter() *listWorkloadPrinter {
	return &listWorkloadPrinter{
		clock: clock.RealClock{},
	}
}

func (p *listWorkloadPrinter) printWorkloadList(list *kueue.WorkloadList) []metav1.TableRow {
	rows := make([]metav1.TableRow, len(list.Items))
	for index := range list.Items {
		rows[index] = p.printWorkload(&list.Items[index])
	}
	return rows
}

func (p *listWorkloadPrinter) printWorkload(wl *kueue.Workload) metav1.TableRow {
	sum, ok := p.summaries[workload.Key(wl)]
	if !ok {
		sum = workload.Summarize(wl)
	}
	message := sum.HumanizedMessage
	if message == "" {
		message = sum.Message
	}
	return metav1.TableRow{
		Object: runtime.RawExtension{Object: wl},
		Cells: []any{
			wl.Name,
			sum.LocalQueue,
			sum.ClusterQueue,
			string(sum.Status),
			message,
			duration.HumanDuration(p.clock.Since(wl.CreationTimestamp.Time)),
		},
	}
}
