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
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/tools/record"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/features"
	"sigs.k8s.io/kueue-workload-status/pkg/metrics"
	"sigs.k8s.io/kueue-workload-status/pkg/store"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

const (
	ControllerName = "workload-status"

	// ReasonPreempted is the reason of the event recorded when a workload
	// becomes Preempted.
	ReasonPreempted = "Preempted"
)

type options struct {
	clock    clock.Clock
	location *time.Location
}

// Option configures the reconciler.
type Option func(*options)

// WithClock allows to specify a custom clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLocation sets the time zone of the timestamps in notifications.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

var defaultOptions = options{
	clock: clock.RealClock{},
}

// WorkloadStatusReconciler keeps the store in sync with the Workloads in the
// cluster.
type WorkloadStatusReconciler struct {
	client   client.Client
	store    *store.Store
	recorder record.EventRecorder
	clock    clock.Clock
	location *time.Location
}

func NewWorkloadStatusReconciler(c client.Client, s *store.Store, recorder record.EventRecorder, opts ...Option) *WorkloadStatusReconciler {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &WorkloadStatusReconciler{
		client:   c,
		store:    s,
		recorder: recorder,
		clock:    options.clock,
		location: options.location,
	}
}

// +kubebuilder:rbac:groups=kueue.x-k8s.io,resources=workloads,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;watch;update;patch

func (r *WorkloadStatusReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx).WithValues("workload", klog.KRef(req.Namespace, req.Name))
	ctx = ctrl.LoggerInto(ctx, log)

	var wl kueue.Workload
	if err := r.client.Get(ctx, req.NamespacedName, &wl); err != nil {
		if !apierrors.IsNotFound(err) {
			return ctrl.Result{}, err
		}
		if _, found := r.store.Delete(req.Namespace, req.Name); found {
			log.V(2).Info("Workload deleted")
			r.reportWorkloads()
		}
		return ctrl.Result{}, nil
	}
	log.V(2).Info("Reconciling Workload")

	sum := workload.Summarize(&wl)
	prev, changed := r.store.Upsert(sum)
	if changed {
		log.V(2).Info("Workload status changed", "from", prev.Status, "to", sum.Status, "message", sum.Message)
		metrics.ReportStatusTransition(prev.Status, sum.Status)
		if sum.Status == workloadstatus.StatusPreempted && features.Enabled(features.PreemptionNotifications) {
			r.notifyPreemption(ctx, &wl, &sum)
		}
	}
	r.reportWorkloads()
	return ctrl.Result{}, nil
}

// notifyPreemption records the toast for a workload that just became
// Preempted and an event on the workload.
func (r *WorkloadStatusReconciler) notifyPreemption(ctx context.Context, wl *kueue.Workload, sum *workload.Summary) {
	var timestamp string
	if sum.StatusSince != nil {
		timestamp = sum.StatusSince.UTC().Format(time.RFC3339)
	}
	message := workloadstatus.PreemptionNotification(sum.DisplayName(), timestamp, r.location)
	r.store.AddNotification(store.Notification{
		Namespace: sum.Namespace,
		Workload:  sum.Name,
		Workbench: sum.Workbench,
		Message:   message,
		Timestamp: metav1.NewTime(r.clock.Now()),
	})
	r.recorder.Event(wl, corev1.EventTypeNormal, ReasonPreempted, message)
	metrics.ReportPreemptionNotification()
	ctrl.LoggerFrom(ctx).V(3).Info("Recorded preemption notification", "workbench", sum.DisplayName())
}

func (r *WorkloadStatusReconciler) reportWorkloads() {
	metrics.ReportWorkloadsByStatus(r.store.CountByStatus())
}

func (r *WorkloadStatusReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		Named(ControllerName).
		For(&kueue.Workload{}).
		Complete(r)
}
