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
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// PriorityEntry binds a bucket to the status it produces and to its rank.
// Lower ranks win.
type PriorityEntry struct {
	Rank   int
	Bucket Bucket
	Status Status
}

// PriorityTable is the precedence used to pick the status. Evicted workloads
// are reported as Preempted.
var PriorityTable = []PriorityEntry{
	{Rank: 1, Bucket: BucketFailed, Status: StatusFailed},
	{Rank: 2, Bucket: BucketInadmissible, Status: StatusInadmissible},
	{Rank: 3, Bucket: BucketEvicted, Status: StatusPreempted},
	{Rank: 4, Bucket: BucketPreempted, Status: StatusPreempted},
	{Rank: 5, Bucket: BucketSucceeded, Status: StatusSucceeded},
	{Rank: 6, Bucket: BucketRunning, Status: StatusRunning},
	{Rank: 7, Bucket: BucketAdmitted, Status: StatusAdmitted},
	{Rank: 8, Bucket: BucketPending, Status: StatusQueued},
}

// Rank returns the precedence of bucket, or 0 if the bucket is unknown.
func Rank(bucket Bucket) int {
	for _, e := range PriorityTable {
		if e.Bucket == bucket {
			return e.Rank
		}
	}
	return 0
}

// Resolve returns the status of a Workload with the given conditions.
func Resolve(conditions []metav1.Condition) StatusWithMessage {
	s, _ := ResolveCondition(conditions)
	return s
}

// ResolveCondition is like Resolve and also returns the condition that
// decided the status, nil when the status is the Queued default.
func ResolveCondition(conditions []metav1.Condition) (StatusWithMessage, *metav1.Condition) {
	return ResolveBuckets(Extract(conditions))
}

// ResolveBuckets picks the highest priority populated bucket.
func ResolveBuckets(buckets Buckets) (StatusWithMessage, *metav1.Condition) {
	for _, e := range PriorityTable {
		if c := buckets.Get(e.Bucket); c != nil {
			return StatusWithMessage{Status: e.Status, Message: conditionMessage(c)}, c
		}
	}
	return StatusWithMessage{Status: StatusQueued}, nil
}

func conditionMessage(c *metav1.Condition) string {
	if msg := strings.TrimSpace(c.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(c.Reason)
}
