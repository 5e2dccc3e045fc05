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

// Package workloadstatus derives a single user facing status from the
// conditions Kueue sets on a Workload, and turns the raw condition text into
// sentences suitable for a dashboard.
package workloadstatus

import "strings"

// Status is the user facing status of a Workload. It is never stored, it is
// recomputed from the condition list on every read.
type Status string

const (
	StatusQueued       Status = "Queued"
	StatusFailed       Status = "Failed"
	StatusPreempted    Status = "Preempted"
	StatusInadmissible Status = "Inadmissible"
	StatusRunning      Status = "Running"
	StatusAdmitted     Status = "Admitted"
	StatusSucceeded    Status = "Succeeded"
)

// AllStatuses lists every Status in display order.
var AllStatuses = []Status{
	StatusQueued,
	StatusAdmitted,
	StatusRunning,
	StatusSucceeded,
	StatusFailed,
	StatusPreempted,
	StatusInadmissible,
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus matches name case-insensitively against the known statuses.
func ParseStatus(name string) (Status, bool) {
	for _, known := range AllStatuses {
		if strings.EqualFold(string(known), name) {
			return known, true
		}
	}
	return "", false
}

// StatusWithMessage is the outcome of resolving a condition list. An empty
// Message means the winning condition carried neither a message nor a reason.
type StatusWithMessage struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Condition types and reasons set by Kueue on Workloads.
const (
	ConditionFinished      = "Finished"
	ConditionEvicted       = "Evicted"
	ConditionPreempted     = "Preempted"
	ConditionQuotaReserved = "QuotaReserved"
	ConditionPodsReady     = "PodsReady"
	ConditionAdmitted      = "Admitted"

	ReasonInadmissible = "Inadmissible"
)
