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
	"strings"
	"time"
)

// NotificationTimeLayout is the layout used for timestamps in notifications.
const NotificationTimeLayout = "Jan 2, 2006, 3:04:05 PM MST"

// PreemptionNotification renders the body of the toast shown when a
// workbench gets preempted. timestamp is an RFC 3339 (ISO 8601) string, it is
// rendered in loc, or time.Local when loc is nil. An empty or unparsable
// timestamp selects the template without a time.
func PreemptionNotification(workbench, timestamp string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	if ts := strings.TrimSpace(timestamp); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return fmt.Sprintf("The workbench %s was paused at %s because a higher-priority job needed its resources. It will resume when resources become available.",
				workbench, t.In(loc).Format(NotificationTimeLayout))
		}
	}
	return fmt.Sprintf("The workbench %s was paused because a higher-priority job needed its resources. It will resume when resources become available.", workbench)
}
