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
	"regexp"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Bucket names a group of conditions that can decide the Workload status.
type Bucket string

const (
	BucketFailed       Bucket = "Failed"
	BucketSucceeded    Bucket = "Succeeded"
	BucketEvicted      Bucket = "Evicted"
	BucketPreempted    Bucket = "Preempted"
	BucketInadmissible Bucket = "Inadmissible"
	BucketPending      Bucket = "Pending"
	BucketRunning      Bucket = "Running"
	BucketAdmitted     Bucket = "Admitted"
)

// Buckets holds at most one representative condition per Bucket. A missing
// key means no condition matched the bucket rule.
type Buckets map[Bucket]*metav1.Condition

// Get returns the condition captured for b, or nil.
func (b Buckets) Get(bucket Bucket) *metav1.Condition {
	return b[bucket]
}

func (b Buckets) keepFirst(bucket Bucket, c *metav1.Condition) {
	if _, found := b[bucket]; !found {
		b[bucket] = c
	}
}

type finishedCategory int

const (
	finishedNeutral finishedCategory = iota
	finishedFailure
	finishedSuccess
)

type finishedRule struct {
	pattern  *regexp.Regexp
	category finishedCategory
}

// finishedVocabulary classifies the text of a Finished=True condition.
// Rules are evaluated top to bottom and the first match wins; text matching
// none of them is neutral.
var finishedVocabulary = []finishedRule{
	{pattern: regexp.MustCompile(`error|failed|rejected|timeout|timed out`), category: finishedFailure},
	{pattern: regexp.MustCompile(`success|succeeded`), category: finishedSuccess},
}

func classifyFinished(c *metav1.Condition) finishedCategory {
	text := strings.ToLower(c.Message + " " + c.Reason)
	for _, rule := range finishedVocabulary {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return finishedNeutral
}

type conditionRule struct {
	bucket Bucket
	typ    string
	status metav1.ConditionStatus
	// reason is only compared when set.
	reason string
}

func (r conditionRule) matches(c *metav1.Condition) bool {
	return c.Type == r.typ && c.Status == r.status && (r.reason == "" || c.Reason == r.reason)
}

// conditionRules captures every bucket except the Finished derived ones.
// Inadmissible and Pending overlap on purpose: an Inadmissible condition is
// also Pending.
var conditionRules = []conditionRule{
	{bucket: BucketEvicted, typ: ConditionEvicted, status: metav1.ConditionTrue},
	{bucket: BucketPreempted, typ: ConditionPreempted, status: metav1.ConditionTrue},
	{bucket: BucketInadmissible, typ: ConditionQuotaReserved, status: metav1.ConditionFalse, reason: ReasonInadmissible},
	{bucket: BucketPending, typ: ConditionQuotaReserved, status: metav1.ConditionFalse},
	{bucket: BucketRunning, typ: ConditionPodsReady, status: metav1.ConditionTrue},
	{bucket: BucketAdmitted, typ: ConditionAdmitted, status: metav1.ConditionTrue},
}

// Extract walks conditions once, in order, and keeps the first condition
// matching each bucket rule. The returned conditions are copies.
func Extract(conditions []metav1.Condition) Buckets {
	buckets := make(Buckets, 8)
	var confirmedSuccess, fallbackSuccess *metav1.Condition

	for i := range conditions {
		c := conditions[i].DeepCopy()

		if c.Type == ConditionFinished && c.Status == metav1.ConditionTrue {
			switch classifyFinished(c) {
			case finishedFailure:
				buckets.keepFirst(BucketFailed, c)
			case finishedSuccess:
				if confirmedSuccess == nil {
					confirmedSuccess = c
				}
				if fallbackSuccess == nil {
					fallbackSuccess = c
				}
			default:
				if fallbackSuccess == nil {
					fallbackSuccess = c
				}
			}
		}

		for _, rule := range conditionRules {
			if rule.matches(c) {
				buckets.keepFirst(rule.bucket, c)
			}
		}
	}

	switch {
	case confirmedSuccess != nil:
		buckets[BucketSucceeded] = confirmedSuccess
	case fallbackSuccess != nil:
		buckets[BucketSucceeded] = fallbackSuccess
	}
	return buckets
}
