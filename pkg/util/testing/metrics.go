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

package testing

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type MetricDataPoint struct {
	Labels map[string]string
	Value  float64
}

// CollectFilteredGaugeVec returns the data points of a gauge or counter
// collector whose labels include all the given labels.
func CollectFilteredGaugeVec(c prometheus.Collector, labels prometheus.Labels) []MetricDataPoint {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	var result []MetricDataPoint
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			continue
		}
		point := MetricDataPoint{Labels: make(map[string]string, len(pb.GetLabel()))}
		for _, l := range pb.GetLabel() {
			point.Labels[l.GetName()] = l.GetValue()
		}
		if !matchesLabels(point.Labels, labels) {
			continue
		}
		switch {
		case pb.GetGauge() != nil:
			point.Value = pb.GetGauge().GetValue()
		case pb.GetCounter() != nil:
			point.Value = pb.GetCounter().GetValue()
		}
		result = append(result, point)
	}
	return result
}

func matchesLabels(got map[string]string, want prometheus.Labels) bool {
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}
