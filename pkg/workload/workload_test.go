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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/features"
	utiltesting "sigs.k8s.io/kueue-workload-status/pkg/util/testing"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

func TestSummarize(t *testing.T) {
	created := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	transition := created.Add(7 * time.Minute)

	cases := map[string]struct {
		workload         *kueue.Workload
		disableHumanized bool
		want             Summary
	}{
		"new workload is queued": {
			workload: utiltesting.MakeWorkload("wl", "ns").Queue("lq").Creation(created).Obj(),
			want: Summary{
				Namespace:        "ns",
				Name:             "wl",
				LocalQueue:       "lq",
				Status:           workloadstatus.StatusQueued,
				HumanizedMessage: "Waiting for quota in lq",
				Created:          metav1.NewTime(created),
			},
		},
		"preempted workbench": {
			workload: utiltesting.MakeWorkload("wl", "ns").
				Queue("lq").
				ClusterQueue("cq").
				Notebook("my-notebook").
				Creation(created).
				Conditions(
					utiltesting.MakeCondition(workloadstatus.ConditionAdmitted, metav1.ConditionTrue).Reason("Admitted").Obj(),
					utiltesting.MakeCondition(workloadstatus.ConditionPreempted, metav1.ConditionTrue).
						Reason("InClusterQueue").
						Message("Preempted to accommodate a higher priority Workload").
						LastTransitionTime(transition).
						Obj(),
				).
				Obj(),
			want: Summary{
				Namespace:        "ns",
				Name:             "wl",
				LocalQueue:       "lq",
				ClusterQueue:     "cq",
				Workbench:        "my-notebook",
				Status:           workloadstatus.StatusPreempted,
				Message:          "Preempted to accommodate a higher priority Workload",
				HumanizedMessage: "Paused by a higher-priority job",
				StatusSince:      &metav1.Time{Time: transition},
				Created:          metav1.NewTime(created),
			},
		},
		"humanized messages disabled": {
			workload: utiltesting.MakeWorkload("wl", "ns").
				Queue("lq").
				Creation(created).
				Conditions(
					utiltesting.MakeCondition(workloadstatus.ConditionQuotaReserved, metav1.ConditionFalse).
						Reason(workloadstatus.ReasonInadmissible).
						Message("LocalQueue lq doesn't exist").
						Obj(),
				).
				Obj(),
			disableHumanized: true,
			want: Summary{
				Namespace:  "ns",
				Name:       "wl",
				LocalQueue: "lq",
				Status:     workloadstatus.StatusInadmissible,
				Message:    "LocalQueue lq doesn't exist",
				Created:    metav1.NewTime(created),
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if tc.disableHumanized {
				features.SetFeatureGateDuringTest(t, features.HumanizedMessages, false)
			}
			got := Summarize(tc.workload)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Unexpected summary (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestWorkbench(t *testing.T) {
	cases := map[string]struct {
		workload *kueue.Workload
		want     string
	}{
		"no owner": {
			workload: utiltesting.MakeWorkload("wl", "ns").Obj(),
		},
		"owned by a job": {
			workload: utiltesting.MakeWorkload("wl", "ns").
				OwnerReference(utiltesting.NotebookGVK.GroupVersion().WithKind("Job"), "job", "job-uid").
				Obj(),
		},
		"owned by a notebook": {
			workload: utiltesting.MakeWorkload("wl", "ns").Notebook("nb").Obj(),
			want:     "nb",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := Workbench(tc.workload); got != tc.want {
				t.Errorf("Workbench() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSummaryDisplayName(t *testing.T) {
	s := Summary{Name: "wl"}
	if got := s.DisplayName(); got != "wl" {
		t.Errorf("DisplayName() = %q, want %q", got, "wl")
	}
	s.Workbench = "nb"
	if got := s.DisplayName(); got != "nb" {
		t.Errorf("DisplayName() = %q, want %q", got, "nb")
	}
}
