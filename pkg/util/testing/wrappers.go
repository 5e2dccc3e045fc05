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

package testing

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"
)

// NotebookGVK is the kind of the workbenches owning workloads.
var NotebookGVK = schema.GroupVersionKind{Group: "kubeflow.org", Version: "v1", Kind: "Notebook"}

type WorkloadWrapper struct{ kueue.Workload }

// MakeWorkload creates a wrapper for a Workload without conditions.
func MakeWorkload(name, ns string) *WorkloadWrapper {
	return &WorkloadWrapper{kueue.Workload{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns},
	}}
}

func (w *WorkloadWrapper) Obj() *kueue.Workload {
	return &w.Workload
}

func (w *WorkloadWrapper) Clone() *WorkloadWrapper {
	return &WorkloadWrapper{Workload: *w.DeepCopy()}
}

func (w *WorkloadWrapper) Queue(q string) *WorkloadWrapper {
	w.Spec.QueueName = kueue.LocalQueueName(q)
	return w
}

func (w *WorkloadWrapper) Active(a bool) *WorkloadWrapper {
	w.Spec.Active = ptr.To(a)
	return w
}

// ClusterQueue sets the admission of the workload to the given ClusterQueue.
func (w *WorkloadWrapper) ClusterQueue(cq string) *WorkloadWrapper {
	w.Status.Admission = &kueue.Admission{ClusterQueue: kueue.ClusterQueueReference(cq)}
	return w
}

func (w *WorkloadWrapper) Creation(t time.Time) *WorkloadWrapper {
	w.CreationTimestamp = metav1.NewTime(t)
	return w
}

// Conditions appends the conditions as given, duplicate types included.
func (w *WorkloadWrapper) Conditions(conditions ...metav1.Condition) *WorkloadWrapper {
	w.Status.Conditions = append(w.Status.Conditions, conditions...)
	return w
}

func (w *WorkloadWrapper) OwnerReference(gvk schema.GroupVersionKind, name, uid string) *WorkloadWrapper {
	w.OwnerReferences = append(w.OwnerReferences, metav1.OwnerReference{
		APIVersion: gvk.GroupVersion().String(),
		Kind:       gvk.Kind,
		Name:       name,
		UID:        types.UID(uid),
		Controller: ptr.To(true),
	})
	return w
}

// Notebook makes the workload owned by the named workbench.
func (w *WorkloadWrapper) Notebook(name string) *WorkloadWrapper {
	return w.OwnerReference(NotebookGVK, name, name+"-uid")
}

// ConditionWrapper wraps a Condition.
type ConditionWrapper struct{ metav1.Condition }

// MakeCondition creates a condition of the given type and status.
func MakeCondition(typ string, status metav1.ConditionStatus) *ConditionWrapper {
	return &ConditionWrapper{metav1.Condition{Type: typ, Status: status}}
}

func (c *ConditionWrapper) Reason(r string) *ConditionWrapper {
	c.Condition.Reason = r
	return c
}

func (c *ConditionWrapper) Message(m string) *ConditionWrapper {
	c.Condition.Message = m
	return c
}

func (c *ConditionWrapper) LastTransitionTime(t time.Time) *ConditionWrapper {
	c.Condition.LastTransitionTime = metav1.NewTime(t)
	return c
}

func (c *ConditionWrapper) Obj() metav1.Condition {
	return c.Condition
}
