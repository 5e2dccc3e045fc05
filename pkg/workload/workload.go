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

package workload

import (
	"fmt"
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/features"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

// NotebookKind is the owner kind identifying a workbench.
const NotebookKind = "Notebook"

// Summary is the classified view of a Workload.
type Summary struct {
	Namespace        string                `json:"namespace"`
	Name             string                `json:"name"`
	LocalQueue       string                `json:"localQueue,omitempty"`
	ClusterQueue     string                `json:"clusterQueue,omitempty"`
	Workbench        string                `json:"workbench,omitempty"`
	Status           workloadstatus.Status `json:"status"`
	Message          string                `json:"message,omitempty"`
	HumanizedMessage string                `json:"humanizedMessage,omitempty"`
	// StatusSince is the transition time of the condition deciding the
	// status, nil for the default status.
	StatusSince *metav1.Time `json:"statusSince,omitempty"`
	Created     metav1.Time  `json:"created"`
}

func (s *Summary) Key() string {
	return s.Namespace + "/" + s.Name
}

// DisplayName is the name shown to users, the workbench when the workload
// belongs to one.
func (s *Summary) DisplayName() string {
	if s.Workbench != "" {
		return s.Workbench
	}
	return s.Name
}

// Summarize resolves the status of the workload from its conditions.
func Summarize(wl *kueue.Workload) Summary {
	res, c := workloadstatus.ResolveCondition(wl.Status.Conditions)
	s := Summary{
		Namespace:    wl.Namespace,
		Name:         wl.Name,
		LocalQueue:   string(wl.Spec.QueueName),
		ClusterQueue: ClusterQueue(wl),
		Workbench:    Workbench(wl),
		Status:       res.Status,
		Message:      res.Message,
		Created:      wl.CreationTimestamp,
	}
	if c != nil && !c.LastTransitionTime.IsZero() {
		s.StatusSince = c.LastTransitionTime.DeepCopy()
	}
	if features.Enabled(features.HumanizedMessages) {
		s.HumanizedMessage = workloadstatus.Humanize(res.Status, res.Message, s.LocalQueue)
	}
	return s
}

func Key(wl *kueue.Workload) string {
	return fmt.Sprintf("%s/%s", wl.Namespace, wl.Name)
}

// Workbench returns the name of the Notebook owning the workload, if any.
func Workbench(wl *kueue.Workload) string {
	idx := slices.IndexFunc(wl.OwnerReferences, func(ref metav1.OwnerReference) bool {
		return ref.Kind == NotebookKind
	})
	if idx < 0 {
		return ""
	}
	return wl.OwnerReferences[idx].Name
}

// ClusterQueue returns the ClusterQueue the workload was admitted to, if any.
func ClusterQueue(wl *kueue.Workload) string {
	if wl.Status.Admission == nil {
		return ""
	}
	return string(wl.Status.Admission.ClusterQueue)
}
