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
	"fmt"
	"regexp"
	"strings"
)

// DefaultQueueName stands in for the queue when the caller has no name.
const DefaultQueueName = "the queue"

var (
	QuotaPattern         = regexp.MustCompile(`(?i)insufficient unused quota|quota.*exceed|exceed.*quota`)
	QueueNotFoundPattern = regexp.MustCompile(`(?i)queue.*(not found|n[o']t exist)|(not found|n[o']t exist).*queue`)
	TimeoutPattern       = regexp.MustCompile(`(?i)timed\s*out|time\s*out`)
	FlavorPattern        = regexp.MustCompile(`(?i)couldn't assign flavors|\bflavor\b`)
)

type messageCategory int

const (
	// categoryRaw returns the raw message unchanged.
	categoryRaw messageCategory = iota
	categoryQuotaWait
	categoryWaitingForResources
	categoryQuotaExceeded
	categoryQueueMissing
	categoryTimedOut
	categoryPaused
)

func (c messageCategory) sentence(raw, queue string) string {
	switch c {
	case categoryQuotaWait:
		return fmt.Sprintf("Waiting for quota in %s", queue)
	case categoryWaitingForResources:
		return "Waiting for available resources"
	case categoryQuotaExceeded:
		return fmt.Sprintf("Exceeded quota for %s", queue)
	case categoryQueueMissing:
		return fmt.Sprintf("Queue %s does not exist", queue)
	case categoryTimedOut:
		return "Queue timed out"
	case categoryPaused:
		return "Paused by a higher-priority job"
	default:
		return raw
	}
}

type messageRule struct {
	pattern  *regexp.Regexp
	category messageCategory
}

// messagePolicy describes how one status is phrased. Rules are evaluated top
// to bottom against the raw message; the first match wins.
type messagePolicy struct {
	// always, when set, ignores the raw message entirely.
	always   *messageCategory
	empty    messageCategory
	rules    []messageRule
	fallback messageCategory
}

var pausedCategory = categoryPaused

var messagePolicies = map[Status]messagePolicy{
	StatusQueued: {
		empty: categoryQuotaWait,
		rules: []messageRule{
			{pattern: QuotaPattern, category: categoryQuotaWait},
			{pattern: FlavorPattern, category: categoryQuotaWait},
		},
		fallback: categoryWaitingForResources,
	},
	StatusFailed: {
		empty: categoryQuotaExceeded,
		rules: []messageRule{
			{pattern: QueueNotFoundPattern, category: categoryQueueMissing},
			{pattern: TimeoutPattern, category: categoryTimedOut},
			{pattern: QuotaPattern, category: categoryQuotaExceeded},
		},
		fallback: categoryRaw,
	},
	StatusPreempted: {
		always: &pausedCategory,
	},
	StatusInadmissible: {
		empty: categoryQueueMissing,
		rules: []messageRule{
			{pattern: QueueNotFoundPattern, category: categoryQueueMissing},
			{pattern: QuotaPattern, category: categoryQuotaExceeded},
			{pattern: FlavorPattern, category: categoryQuotaExceeded},
		},
		fallback: categoryRaw,
	},
}

// Humanize turns the raw message of a status into a sentence for users.
// queueName defaults to DefaultQueueName when empty.
func Humanize(status Status, rawMessage, queueName string) string {
	raw := strings.TrimSpace(rawMessage)
	queue := strings.TrimSpace(queueName)
	if queue == "" {
		queue = DefaultQueueName
	}

	policy, found := messagePolicies[status]
	if !found {
		if raw != "" {
			return raw
		}
		return string(status)
	}
	if policy.always != nil {
		return policy.always.sentence(raw, queue)
	}
	if raw == "" {
		return policy.empty.sentence(raw, queue)
	}
	for _, rule := range policy.rules {
		if rule.pattern.MatchString(raw) {
			return rule.category.sentence(raw, queue)
		}
	}
	return policy.fallback.sentence(raw, queue)
}
