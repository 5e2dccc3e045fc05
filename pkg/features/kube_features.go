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

package features

import (
	"fmt"
	"testing"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/apimachinery/pkg/util/version"
	utilfeature "k8s.io/apiserver/pkg/util/feature"
	"k8s.io/component-base/featuregate"
	featuregatetesting "k8s.io/component-base/featuregate/testing"
)

const (
	// Records a notification and an event when a workload becomes Preempted.
	PreemptionNotifications featuregate.Feature = "PreemptionNotifications"

	// Fills the humanized message of workload summaries.
	HumanizedMessages featuregate.Feature = "HumanizedMessages"
)

func init() {
	runtime.Must(utilfeature.DefaultMutableFeatureGate.AddVersioned(defaultVersionedFeatureGates))
}

// defaultVersionedFeatureGates consists of all known feature keys.
//
// Entries are separated from each other with blank lines to avoid sweeping gofmt changes
// when adding or removing one entry.
var defaultVersionedFeatureGates = map[featuregate.Feature]featuregate.VersionedSpecs{
	PreemptionNotifications: {
		{Version: version.MustParse("0.1"), Default: false, PreRelease: featuregate.Alpha},
		{Version: version.MustParse("0.2"), Default: true, PreRelease: featuregate.Beta},
	},

	HumanizedMessages: {
		{Version: version.MustParse("0.1"), Default: true, PreRelease: featuregate.Beta},
	},
}

func SetFeatureGateDuringTest(tb testing.TB, f featuregate.Feature, value bool) {
	featuregatetesting.SetFeatureGateDuringTest(tb, utilfeature.DefaultFeatureGate, f, value)
}

// Enabled is helper for `utilfeature.DefaultFeatureGate.Enabled()`
func Enabled(f featuregate.Feature) bool {
	return utilfeature.DefaultFeatureGate.Enabled(f)
}

// SetFromMap applies gates read from the configuration file.
func SetFromMap(gates map[string]bool) error {
	if len(gates) == 0 {
		return nil
	}
	return utilfeature.DefaultMutableFeatureGate.SetFromMap(gates)
}

// Set applies a comma separated list of key=value pairs, as given on the command line.
func Set(featureGates string) error {
	if featureGates == "" {
		return nil
	}
	if err := utilfeature.DefaultMutableFeatureGate.Set(featureGates); err != nil {
		return fmt.Errorf("parsing feature gates %q: %w", featureGates, err)
	}
	return nil
}

func LogFeatureGates(log logr.Logger) {
	features := make(map[featuregate.Feature]bool, len(defaultVersionedFeatureGates))
	for f := range utilfeature.DefaultMutableFeatureGate.GetAll() {
		if _, ok := defaultVersionedFeatureGates[f]; ok {
			features[f] = Enabled(f)
		}
	}
	log.V(2).Info("Loaded feature gates", "featureGates", features)
}
