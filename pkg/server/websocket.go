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

package server

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"sigs.k8s.io/kueue-workload-status/pkg/store"
	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

const writeTimeout = 5 * time.Second

// frameJSON sorts map keys so equal payloads encode to equal frames.
var frameJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// WorkloadsFrame is the payload pushed on /ws/workloads.
type WorkloadsFrame struct {
	Workloads []workload.Summary            `json:"workloads"`
	Counts    map[workloadstatus.Status]int `json:"counts"`
}

type originChecker struct {
	allowAll bool
	allowed  map[string]bool
}

func newOriginChecker(origins []string) *originChecker {
	oc := &originChecker{allowAll: len(origins) == 0, allowed: make(map[string]bool, len(origins))}
	for _, origin := range origins {
		if origin == "*" {
			oc.allowAll = true
			continue
		}
		if clean, ok := cleanOrigin(origin, true); ok {
			oc.allowed[clean] = true
		}
	}
	return oc
}

// check allows requests without an Origin header, sent by non browser
// clients, and requests from an allowed origin.
func (oc *originChecker) check(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || oc.allowAll {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return oc.allowed[u.Scheme+"://"+u.Host]
}

func buildFrame(sums []workload.Summary) WorkloadsFrame {
	counts := make(map[workloadstatus.Status]int, len(workloadstatus.AllStatuses))
	for _, st := range workloadstatus.AllStatuses {
		counts[st] = 0
	}
	for _, sum := range sums {
		counts[sum.Status]++
	}
	return WorkloadsFrame{Workloads: sums, Counts: counts}
}

// watchWorkloads streams the workloads matching the query, first as a
// snapshot, then after every change. Identical consecutive frames are
// not sent.
func (s *Server) watchWorkloads(c *gin.Context) {
	opts, err := listOptionsFromQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	upgrader := websocket.Upgrader{CheckOrigin: s.origins.check}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.V(2).Info("Failed to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()
	log := s.log.WithValues("remoteAddr", c.Request.RemoteAddr)
	log.V(2).Info("WebSocket connection established")

	updates, cancelSubscription := s.source.Subscribe()
	defer cancelSubscription()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		// Reads only detect the client going away.
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var last []byte
	send := func() error {
		frame, err := frameJSON.Marshal(buildFrame(s.source.List(opts)))
		if err != nil {
			return err
		}
		if bytes.Equal(frame, last) {
			return nil
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return err
		}
		last = frame
		return nil
	}

	if err := send(); err != nil {
		log.Error(err, "Sending initial workloads")
		return
	}
	for {
		select {
		case <-ctx.Done():
			log.V(2).Info("WebSocket connection closed")
			return
		case <-updates:
			if err := send(); err != nil {
				log.V(2).Info("Sending workloads update failed", "error", err)
				return
			}
		}
	}
}

var _ WorkloadSource = (*store.Store)(nil)
