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
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"sigs.k8s.io/kueue-workload-status/pkg/store"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

type ResolveRequest struct {
	Conditions []metav1.Condition `json:"conditions"`
}

type HumanizeRequest struct {
	Status    string `json:"status" binding:"required"`
	Message   string `json:"message"`
	QueueName string `json:"queueName"`
}

type HumanizeResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func abortWithError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, errorResponse{Error: err.Error()})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, workloadstatus.Displays())
}

// parseStatuses accepts repeated and comma separated status parameters.
func parseStatuses(values []string) ([]workloadstatus.Status, error) {
	var statuses []workloadstatus.Status
	for _, v := range values {
		for name := range strings.SplitSeq(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			st, ok := workloadstatus.ParseStatus(name)
			if !ok {
				return nil, fmt.Errorf("unknown status %q", name)
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, nil
}

func listOptionsFromQuery(c *gin.Context) (store.ListOptions, error) {
	statuses, err := parseStatuses(c.QueryArray("status"))
	if err != nil {
		return store.ListOptions{}, err
	}
	return store.ListOptions{
		Namespace:  c.Query("namespace"),
		LocalQueue: c.Query("localQueue"),
		Statuses:   statuses,
	}, nil
}

func (s *Server) listWorkloads(c *gin.Context) {
	opts, err := listOptionsFromQuery(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.source.List(opts))
}

func (s *Server) getWorkload(c *gin.Context) {
	namespace, name := c.Param("namespace"), c.Param("name")
	sum, found := s.source.Get(namespace, name)
	if !found {
		abortWithError(c, http.StatusNotFound, fmt.Errorf("workload %s/%s not found", namespace, name))
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, s.source.Notifications())
}

func (s *Server) resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, workloadstatus.Resolve(req.Conditions))
}

func (s *Server) humanize(c *gin.Context) {
	var req HumanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	st, ok := workloadstatus.ParseStatus(req.Status)
	if !ok {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}
	c.JSON(http.StatusOK, HumanizeResponse{Text: workloadstatus.Humanize(st, req.Message, req.QueueName)})
}
