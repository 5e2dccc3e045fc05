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

package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"sigs.k8s.io/kueue-workload-status/pkg/version"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

const subsystemName = "workload_status"

var (
	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: subsystemName,
			Name:      "build_info",
			Help:      "Build information. 1 labeled by git version, git commit, build date, go version",
		},
		[]string{"git_version", "git_commit", "build_date", "go_version"},
	)

	Workloads = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: subsystemName,
			Name:      "workloads",
			Help: `The number of observed workloads, per resolved 'status'.
The label 'status' is one of Queued, Admitted, Running, Succeeded, Failed,
Preempted or Inadmissible.`,
		}, []string{"status"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystemName,
			Name:      "status_transitions_total",
			Help:      "The total number of observed changes of resolved status, per 'from' and 'to' status",
		}, []string{"from", "to"},
	)

	PreemptionNotificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystemName,
			Name:      "preemption_notifications_total",
			Help:      "The total number of notifications recorded for preempted workloads",
		},
	)
)

func ReportBuildInfo() {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version.GitVersion, version.GitCommit, version.BuildDate, runtime.Version()).Set(1)
}

// ReportWorkloadsByStatus sets the workloads gauge for every known status,
// statuses missing from counts are reported as zero.
func ReportWorkloadsByStatus(counts map[workloadstatus.Status]int) {
	for _, st := range workloadstatus.AllStatuses {
		Workloads.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
}

func ReportStatusTransition(from, to workloadstatus.Status) {
	StatusTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

func ReportPreemptionNotification() {
	PreemptionNotificationsTotal.Inc()
}

func Register() {
	metrics.Registry.MustRegister(
		buildInfo,
		Workloads,
		StatusTransitionsTotal,
		PreemptionNotificationsTotal,
	)
	ReportBuildInfo()
}
