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

// Display is the presentation metadata of a status.
type Display struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	// Color is a PatternFly label color token.
	Color string `json:"color"`
	Icon  string `json:"icon"`
	// Terminal is true when the workload will not change status anymore
	// without user action.
	Terminal bool `json:"terminal"`
}

var displays = map[Status]Display{
	StatusQueued:       {Status: StatusQueued, Label: "Queued", Color: "grey", Icon: "PendingIcon"},
	StatusAdmitted:     {Status: StatusAdmitted, Label: "Admitted", Color: "cyan", Icon: "CheckIcon"},
	StatusRunning:      {Status: StatusRunning, Label: "Running", Color: "blue", Icon: "InProgressIcon"},
	StatusSucceeded:    {Status: StatusSucceeded, Label: "Succeeded", Color: "green", Icon: "CheckCircleIcon", Terminal: true},
	StatusFailed:       {Status: StatusFailed, Label: "Failed", Color: "red", Icon: "ExclamationCircleIcon", Terminal: true},
	StatusPreempted:    {Status: StatusPreempted, Label: "Preempted", Color: "orange", Icon: "PauseCircleIcon"},
	StatusInadmissible: {Status: StatusInadmissible, Label: "Inadmissible", Color: "gold", Icon: "ExclamationTriangleIcon"},
}

// DisplayFor returns the presentation metadata of status. Unknown statuses
// get a grey label showing the raw value.
func DisplayFor(status Status) Display {
	if d, found := displays[status]; found {
		return d
	}
	return Display{Status: status, Label: string(status), Color: "grey", Icon: "UnknownIcon"}
}

// Displays returns the metadata of every known status, in display order.
func Displays() []Display {
	out := make([]Display, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		out = append(out, displays[s])
	}
	return out
}
