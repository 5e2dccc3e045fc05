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
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/klog/v2"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	kueue "sigs.k8s.io/kueue/apis/kueue/v1beta2"

	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

const (
	DefaultWaitInterval = 2 * time.Second
	DefaultWaitTimeout  = 5 * time.Minute
)

// ErrTerminalStatus is returned when the workload reached a terminal status
// that was not waited for.
var ErrTerminalStatus = errors.New("workload reached a terminal status")

type WaitOptions struct {
	// Statuses to wait for. Terminal statuses always end the wait.
	Statuses []workloadstatus.Status
	Interval time.Duration
	Timeout  time.Duration
}

// WaitForStatus polls the workload until it reaches one of the wanted
// statuses or a terminal one, the timeout expires or ctx is done.
// A workload that does not exist yet is polled again.
func WaitForStatus(ctx context.Context, c client.Reader, key types.NamespacedName, opts WaitOptions) (Summary, error) {
	log := ctrl.LoggerFrom(ctx).WithValues("workload", klog.KRef(key.Namespace, key.Name))
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWaitInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	var last Summary
	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		var wl kueue.Workload
		if err := c.Get(ctx, key, &wl); err != nil {
			if apierrors.IsNotFound(err) {
				log.V(3).Info("Workload not found yet")
				return false, nil
			}
			return false, err
		}
		last = Summarize(&wl)
		log.V(3).Info("Polled workload status", "status", last.Status)
		return slices.Contains(opts.Statuses, last.Status) || workloadstatus.DisplayFor(last.Status).Terminal, nil
	})
	if err != nil {
		return last, fmt.Errorf("waiting for workload %s: %w", key, err)
	}
	if !slices.Contains(opts.Statuses, last.Status) {
		return last, fmt.Errorf("%w: %s", ErrTerminalStatus, last.Status)
	}
	return last, nil
}
