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
)

func TestPreemptionNotification(t *testing.T) {
	cases := map[string]struct {
		workbench string
		timestamp string
		want      string
	}{
		"with timestamp": {
			workbench: "my-notebook",
			timestamp: "2024-03-05T14:07:09Z",
			want:      "The workbench my-notebook was paused at Mar 5, 2024, 2:07:09 PM UTC because a higher-priority job needed its resources. It will resume when resources become available.",
		},
		"timestamp with offset is converted": {
			workbench: "my-notebook",
			timestamp: "2024-03-05T16:07:09+02:00",
			want:      "The workbench my-notebook was paused at Mar 5, 2024, 2:07:09 PM UTC because a higher-priority job needed its resources. It will resume when resources become available.",
		},
		"without timestamp": {
			workbench: "my-notebook",
			want:      "The workbench my-notebook was paused because a higher-priority job needed its resources. It will resume when resources become available.",
		},
		"unparsable timestamp": {
			workbench: "my-notebook",
			timestamp: "yesterday",
			want:      "The workbench my-notebook was paused because a higher-priority job needed its resources. It will resume when resources become available.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := PreemptionNotification(tc.workbench, tc.timestamp, time.UTC)
			if got != tc.want {
				t.Errorf("Unexpected notification\nwant: %s\n got: %s", tc.want, got)
			}
		})
	}
}
