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

package workloadstatus

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	testingclock "k8s.io/utils/clock/testing"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/features"
	"sigs.k8s.io/kueue-workload-status/pkg/store"
	utiltesting "sigs.k8s.io/kueue-workload-status/pkg/util/testing"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

func TestReconcile(t *testing.T) {
	now := time.Date(2024, time.March, 5, 15, 0, 0, 0, time.UTC)
	preemptedAt := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	running := utiltesting.MakeWorkload("wl", "ns").
		Queue("lq").
		ClusterQueue("cq").
		Notebook("my-notebook").
		Conditions(
			utiltesting.MakeCondition(workloadstatus.ConditionAdmitted, metav1.ConditionTrue).Reason("Admitted").Obj(),
			utiltesting.MakeCondition(workloadstatus.ConditionPodsReady, metav1.ConditionTrue).Reason("PodsReady").Message("All pods are ready").Obj(),
		)
	preempted := running.Clone().Conditions(
		utiltesting.MakeCondition(workloadstatus.ConditionPreempted, metav1.ConditionTrue).
			Reason("InClusterQueue").
			Message("Preempted to accommodate a higher priority Workload").
			LastTransitionTime(preemptedAt).
			Obj(),
	)
	key := types.NamespacedName{Namespace: "ns", Name: "wl"}
	wantNotification := store.Notification{
		Namespace: "ns",
		Workload:  "wl",
		Workbench: "my-notebook",
		Message:   "The workbench my-notebook was paused at Mar 5, 2024, 2:07:09 PM UTC because a higher-priority job needed its resources. It will resume when resources become available.",
		Timestamp: metav1.NewTime(now),
	}

	cases := map[string]struct {
		stored            []workload.Summary
		workload          *kueue.Workload
		disableToasts     bool
		wantStatuses      map[string]workloadstatus.Status
		wantNotifications []store.Notification
		wantEvents        []utiltesting.EventRecord
	}{
		"new workload": {
			workload:     running.Clone().Obj(),
			wantStatuses: map[string]workloadstatus.Status{"ns/wl": workloadstatus.StatusRunning},
		},
		"new preempted workload is not notified": {
			workload:     preempted.Clone().Obj(),
			wantStatuses: map[string]workloadstatus.Status{"ns/wl": workloadstatus.StatusPreempted},
		},
		"running workload gets preempted": {
			stored:            []workload.Summary{workload.Summarize(running.Clone().Obj())},
			workload:          preempted.Clone().Obj(),
			wantStatuses:      map[string]workloadstatus.Status{"ns/wl": workloadstatus.StatusPreempted},
			wantNotifications: []store.Notification{wantNotification},
			wantEvents: []utiltesting.EventRecord{{
				Key:       key,
				EventType: corev1.EventTypeNormal,
				Reason:    ReasonPreempted,
				Message:   wantNotification.Message,
			}},
		},
		"preemption notifications disabled": {
			stored:        []workload.Summary{workload.Summarize(running.Clone().Obj())},
			workload:      preempted.Clone().Obj(),
			disableToasts: true,
			wantStatuses:  map[string]workloadstatus.Status{"ns/wl": workloadstatus.StatusPreempted},
		},
		"preempted workload resumes": {
			stored:       []workload.Summary{workload.Summarize(preempted.Clone().Obj())},
			workload:     running.Clone().Obj(),
			wantStatuses: map[string]workloadstatus.Status{"ns/wl": workloadstatus.StatusRunning},
		},
		"deleted workload": {
			stored:       []workload.Summary{workload.Summarize(running.Clone().Obj())},
			wantStatuses: map[string]workloadstatus.Status{},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if tc.disableToasts {
				features.SetFeatureGateDuringTest(t, features.PreemptionNotifications, false)
			}
			ctx, _ := utiltesting.ContextWithLog(t)
			var objs []client.Object
			if tc.workload != nil {
				objs = append(objs, tc.workload)
			}
			cl := utiltesting.NewFakeClient(objs...)
			s := store.New(10)
			for _, sum := range tc.stored {
				s.Upsert(sum)
			}
			recorder := &utiltesting.EventTestRecorder{}
			r := NewWorkloadStatusReconciler(cl, s, recorder,
				WithClock(testingclock.NewFakeClock(now)),
				WithLocation(time.UTC),
			)

			if _, err := r.Reconcile(ctx, reconcile.Request{NamespacedName: key}); err != nil {
				t.Fatalf("Reconcile failed: %v", err)
			}

			gotStatuses := make(map[string]workloadstatus.Status)
			for _, sum := range s.List(store.ListOptions{}) {
				gotStatuses[sum.Key()] = sum.Status
			}
			if diff := cmp.Diff(tc.wantStatuses, gotStatuses); diff != "" {
				t.Errorf("Unexpected statuses (-want,+got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantNotifications, s.Notifications(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected notifications (-want,+got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantEvents, recorder.RecordedEvents, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Unexpected events (-want,+got):\n%s", diff)
			}
		})
	}
}

func TestReconcileWithoutWorkbench(t *testing.T) {
	ctx, _ := utiltesting.ContextWithLog(t)
	wl := utiltesting.MakeWorkload("job-wl", "ns").
		Conditions(utiltesting.MakeCondition(workloadstatus.ConditionEvicted, metav1.ConditionTrue).Reason("Preempted").Obj()).
		Obj()
	s := store.New(10)
	s.Upsert(workload.Summary{Namespace: "ns", Name: "job-wl", Status: workloadstatus.StatusAdmitted})
	r := NewWorkloadStatusReconciler(utiltesting.NewFakeClient(wl), s, &utiltesting.EventTestRecorder{})

	if _, err := r.Reconcile(ctx, reconcile.Request{NamespacedName: client.ObjectKeyFromObject(wl)}); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	notifications := s.Notifications()
	if len(notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifications))
	}
	want := "The workbench job-wl was paused because a higher-priority job needed its resources. It will resume when resources become available."
	if diff := cmp.Diff(want, notifications[0].Message); diff != "" {
		t.Errorf("Unexpected message (-want,+got):\n%s", diff)
	}
}
