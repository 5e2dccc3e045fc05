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

package serve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	cmdtesting "sigs.k8s.io/kueue-workload-status/cmd/workload-status/app/testing"
	utiltesting "sigs.k8s.io/kueue-workload-status/pkg/util/testing"
)

func TestServeCmdFlags(t *testing.T) {
	cmd := NewServeCmd(cmdtesting.NewTestClientGetter(utiltesting.NewFakeClient()))

	for _, name := range []string{"config", "feature-gates", "zap-log-level", "zap-devel", "zap-encoder"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}

	if err := cmd.ParseFlags([]string{"--config", "config.yaml", "--feature-gates", "HumanizedMessages=false"}); err != nil {
		t.Fatalf("Unexpected error parsing flags: %v", err)
	}
	o := NewServeOptions()
	if o.ZapOptions.TimeEncoder == nil {
		t.Error("Expected a time encoder to be configured")
	}
	if diff := cmp.Diff("config.yaml", cmd.Flags().Lookup("config").Value.String()); diff != "" {
		t.Errorf("Unexpected config flag (-want,+got):\n%s", diff)
	}
	if diff := cmp.Diff("HumanizedMessages=false", cmd.Flags().Lookup("feature-gates").Value.String()); diff != "" {
		t.Errorf("Unexpected feature gates flag (-want,+got):\n%s", diff)
	}
}
