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

package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/gorilla/websocket"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"sigs.k8s.io/kueue-workload-status/pkg/config"
	"sigs.k8s.io/kueue-workload-status/pkg/server"
	"sigs.k8s.io/kueue-workload-status/pkg/store"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

func summary(ns, name string, status workloadstatus.Status) workload.Summary {
	return workload.Summary{Namespace: ns, Name: name, LocalQueue: "lq", Status: status}
}

var _ = ginkgo.Describe("API server", func() {
	var (
		s      *store.Store
		ts     *httptest.Server
		client *http.Client
	)

	ginkgo.BeforeEach(func() {
		s = store.New(10)
		s.Upsert(summary("team-a", "train", workloadstatus.StatusRunning))
		s.Upsert(summary("team-a", "notebook", workloadstatus.StatusPreempted))
		s.Upsert(summary("team-b", "eval", workloadstatus.StatusQueued))

		cfg := config.Default()
		srv, err := server.New(logr.Discard(), s, &cfg)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		ts = httptest.NewServer(srv.Handler())
		client = ts.Client()
	})

	ginkgo.AfterEach(func() {
		ts.Close()
	})

	get := func(path string) (int, []byte) {
		resp, err := client.Get(ts.URL + path)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return resp.StatusCode, body
	}

	post := func(path string, payload any) (int, []byte) {
		data, err := json.Marshal(payload)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		resp, err := client.Post(ts.URL+path, "application/json", bytes.NewReader(data))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		return resp.StatusCode, body
	}

	ginkgo.It("reports health", func() {
		code, body := get("/healthz")
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(body).To(gomega.MatchJSON(`{"status":"ok"}`))
	})

	ginkgo.It("lists the display of every status", func() {
		code, body := get("/api/v1/statuses")
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		var displays []workloadstatus.Display
		gomega.Expect(json.Unmarshal(body, &displays)).To(gomega.Succeed())
		gomega.Expect(displays).To(gomega.HaveLen(len(workloadstatus.AllStatuses)))
		gomega.Expect(displays[0].Status).To(gomega.Equal(workloadstatus.StatusQueued))
	})

	ginkgo.DescribeTable("lists workloads",
		func(query string, wantKeys []string) {
			code, body := get("/api/v1/workloads" + query)
			gomega.Expect(code).To(gomega.Equal(http.StatusOK))
			var sums []workload.Summary
			gomega.Expect(json.Unmarshal(body, &sums)).To(gomega.Succeed())
			keys := make([]string, 0, len(sums))
			for _, sum := range sums {
				keys = append(keys, sum.Key())
			}
			gomega.Expect(keys).To(gomega.Equal(wantKeys))
		},
		ginkgo.Entry("all", "", []string{"team-a/notebook", "team-a/train", "team-b/eval"}),
		ginkgo.Entry("by namespace", "?namespace=team-b", []string{"team-b/eval"}),
		ginkgo.Entry("by status", "?status=running,preempted", []string{"team-a/notebook", "team-a/train"}),
		ginkgo.Entry("by repeated status", "?status=Queued&status=Running", []string{"team-a/train", "team-b/eval"}),
		ginkgo.Entry("by local queue", "?localQueue=other", []string{}),
	)

	ginkgo.It("rejects unknown statuses", func() {
		code, body := get("/api/v1/workloads?status=Suspended")
		gomega.Expect(code).To(gomega.Equal(http.StatusBadRequest))
		gomega.Expect(body).To(gomega.MatchJSON(`{"error":"unknown status \"Suspended\""}`))
	})

	ginkgo.It("gets one workload", func() {
		code, body := get("/api/v1/workloads/team-a/train")
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		var sum workload.Summary
		gomega.Expect(json.Unmarshal(body, &sum)).To(gomega.Succeed())
		gomega.Expect(sum.Status).To(gomega.Equal(workloadstatus.StatusRunning))

		code, body = get("/api/v1/workloads/team-a/missing")
		gomega.Expect(code).To(gomega.Equal(http.StatusNotFound))
		gomega.Expect(body).To(gomega.MatchJSON(`{"error":"workload team-a/missing not found"}`))
	})

	ginkgo.It("lists notifications, newest first", func() {
		s.AddNotification(store.Notification{Namespace: "team-a", Workload: "first", Message: "first"})
		s.AddNotification(store.Notification{Namespace: "team-a", Workload: "second", Message: "second"})
		code, body := get("/api/v1/notifications")
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		var notifications []store.Notification
		gomega.Expect(json.Unmarshal(body, &notifications)).To(gomega.Succeed())
		gomega.Expect(notifications).To(gomega.HaveLen(2))
		gomega.Expect(notifications[0].Workload).To(gomega.Equal("second"))
	})

	ginkgo.It("resolves conditions", func() {
		code, body := post("/api/v1/resolve", server.ResolveRequest{Conditions: []metav1.Condition{
			{Type: workloadstatus.ConditionAdmitted, Status: metav1.ConditionTrue, Reason: "Admitted"},
			{Type: workloadstatus.ConditionFinished, Status: metav1.ConditionTrue, Reason: "Failed", Message: "  Job failed  "},
		}})
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(body).To(gomega.MatchJSON(`{"status":"Failed","message":"Job failed"}`))

		code, body = post("/api/v1/resolve", server.ResolveRequest{})
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(body).To(gomega.MatchJSON(`{"status":"Queued"}`))
	})

	ginkgo.It("humanizes messages", func() {
		code, body := post("/api/v1/humanize", server.HumanizeRequest{Status: "Queued", QueueName: "team-a-queue"})
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(body).To(gomega.MatchJSON(`{"text":"Waiting for quota in team-a-queue"}`))

		code, _ = post("/api/v1/humanize", server.HumanizeRequest{Status: "Suspended"})
		gomega.Expect(code).To(gomega.Equal(http.StatusBadRequest))

		code, _ = post("/api/v1/humanize", map[string]string{"message": "no status"})
		gomega.Expect(code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.It("serves metrics", func() {
		code, body := get("/metrics")
		gomega.Expect(code).To(gomega.Equal(http.StatusOK))
		parser := expfmt.NewTextParser(model.UTF8Validation)
		families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(families).To(gomega.HaveKey("workload_status_build_info"))
	})

	ginkgo.It("streams workload changes over a websocket", func() {
		wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/workloads?namespace=team-a"
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		defer conn.Close()

		read := func() server.WorkloadsFrame {
			var frame server.WorkloadsFrame
			gomega.Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(gomega.Succeed())
			_, data, err := conn.ReadMessage()
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(json.Unmarshal(data, &frame)).To(gomega.Succeed())
			return frame
		}

		frame := read()
		gomega.Expect(frame.Workloads).To(gomega.HaveLen(2))
		gomega.Expect(frame.Counts).To(gomega.HaveKeyWithValue(workloadstatus.StatusRunning, 1))

		// Changes outside of the namespace produce an identical frame, which
		// is skipped.
		s.Upsert(summary("team-b", "eval", workloadstatus.StatusAdmitted))
		s.Upsert(summary("team-a", "train", workloadstatus.StatusSucceeded))

		frame = read()
		gomega.Expect(frame.Counts).To(gomega.HaveKeyWithValue(workloadstatus.StatusSucceeded, 1))
		gomega.Expect(frame.Counts).To(gomega.HaveKeyWithValue(workloadstatus.StatusRunning, 0))
	})
})
