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

package wait

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"sigs.k8s.io/controller-runtime/pkg/client"

	cmdtesting "sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/testing"
	"sigs.k8s.io/kueue-workload-status/pkg/features"
	utiltesting "sigs.k8s.io/kueue-workload-status/pkg/util/testing"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

func TestWaitCmd(t *testing.T) {
	succeeded := utiltesting.MakeWorkload("wl1", metav1.NamespaceDefault).
		Queue("lq1").
		Conditions(utiltesting.MakeCondition(workloadstatus.ConditionFinished, metav1.ConditionTrue).
			Reason("Succeeded").
			Message("Job finished successfully").
			Obj()).
		Obj()
	failed := utiltesting.MakeWorkload("wl2", metav1.NamespaceDefault).
		Queue("lq1").
		Conditions(utiltesting.MakeCondition(workloadstatus.ConditionFinished, metav1.ConditionTrue).
			Reason("Error").
			Message("job failed with exit code 1").
			Obj()).
		Obj()

	testCases := map[string]struct {
		objs      []client.Object
		args      []string
		wantOut   string
		wantErr   error
		wantErrIs func(error) bool
		wantErrIn string
	}{
		"should print the status reached": {
			objs:    []client.Object{succeeded},
			args:    []string{"wl1", "--for", "succeeded"},
			wantOut: "workload.kueue.x-k8s.io/wl1 reached status Succeeded: Job finished successfully\n",
		},
		"should stop on a terminal status": {
			objs:    []client.Object{failed},
			args:    []string{"wl2", "--for", "running"},
			wantOut: "workload.kueue.x-k8s.io/wl2 ended with status Failed: job failed with exit code 1\n",
			wantErr: workload.ErrTerminalStatus,
		},
		"should time out when the workload does not exist": {
			args:      []string{"wl3", "--for", "running", "--timeout", "50ms", "--interval", "10ms"},
			wantErrIs: wait.Interrupted,
		},
		"should reject an unknown status": {
			objs:      []client.Object{succeeded},
			args:      []string{"wl1", "--for", "suspended"},
			wantErrIn: "invalid status value (suspended)",
		},
		"should require the status": {
			args:      []string{"wl1"},
			wantErrIn: `required flag(s) "for" not set`,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			features.SetFeatureGateDuringTest(t, features.HumanizedMessages, false)
			streams, _, out, _ := genericiooptions.NewTestIOStreams()

			tcg := cmdtesting.NewTestClientGetter(utiltesting.NewFakeClient(tc.objs...))
			cmd := NewWaitCmd(tcg, streams)
			cmd.SetArgs(tc.args)

			gotErr := cmd.Execute()
			switch {
			case tc.wantErr != nil:
				if !errors.Is(gotErr, tc.wantErr) {
					t.Errorf("Expected error %v, got %v", tc.wantErr, gotErr)
				}
			case tc.wantErrIs != nil:
				if gotErr == nil || !tc.wantErrIs(gotErr) {
					t.Errorf("Unexpected error: %v", gotErr)
				}
			case tc.wantErrIn != "":
				if gotErr == nil || !strings.Contains(gotErr.Error(), tc.wantErrIn) {
					t.Errorf("Expected error containing %q, got %v", tc.wantErrIn, gotErr)
				}
			case gotErr != nil:
				t.Errorf("Unexpected error: %v", gotErr)
			}

			if diff := cmp.Diff(tc.wantOut, out.String()); diff != "" {
				t.Errorf("Unexpected output (-want/+got)\n%s", diff)
			}
		})
	}
}
