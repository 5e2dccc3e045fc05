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

// Package store keeps the classified status of the observed workloads in
// memory, together with the recent preemption notifications.
package store

import (
	"slices"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/api/equality"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/kueue-workload-status/pkg/workload"
	"sigs.k8s.io/kueue-workload-status/pkg/workloadstatus"
)

const DefaultNotificationCapacity = 100

// Notification is a toast shown to users when their workbench is preempted.
type Notification struct {
	Namespace string      `json:"namespace"`
	Workload  string      `json:"workload"`
	Workbench string      `json:"workbench,omitempty"`
	Message   string      `json:"message"`
	Timestamp metav1.Time `json:"timestamp"`
}

type ListOptions struct {
	// Namespace restricts the result to one namespace, empty means all.
	Namespace  string
	LocalQueue string
	// Statuses restricts the result to the given statuses, empty means all.
	Statuses []workloadstatus.Status
}

type Store struct {
	sync.RWMutex

	workloads map[string]workload.Summary

	// notifications holds at most capacity entries, oldest first.
	notifications []Notification
	capacity      int

	subscribers map[int]chan struct{}
	nextID      int
}

func New(notificationCapacity int) *Store {
	if notificationCapacity <= 0 {
		notificationCapacity = DefaultNotificationCapacity
	}
	return &Store{
		workloads:   make(map[string]workload.Summary),
		capacity:    notificationCapacity,
		subscribers: make(map[int]chan struct{}),
	}
}

// Upsert stores the summary. It returns the previously stored summary, nil
// for a workload seen for the first time, and whether the status of a
// previously stored summary changed.
func (s *Store) Upsert(sum workload.Summary) (*workload.Summary, bool) {
	s.Lock()
	defer s.Unlock()
	key := sum.Key()
	prev, found := s.workloads[key]
	if found && equality.Semantic.DeepEqual(prev, sum) {
		return &prev, false
	}
	s.workloads[key] = sum
	s.notify()
	if !found {
		return nil, false
	}
	return &prev, prev.Status != sum.Status
}

// Delete removes the workload and returns its last summary.
func (s *Store) Delete(namespace, name string) (workload.Summary, bool) {
	s.Lock()
	defer s.Unlock()
	key := namespace + "/" + name
	prev, found := s.workloads[key]
	if !found {
		return prev, false
	}
	delete(s.workloads, key)
	s.notify()
	return prev, true
}

func (s *Store) Get(namespace, name string) (workload.Summary, bool) {
	s.RLock()
	defer s.RUnlock()
	sum, found := s.workloads[namespace+"/"+name]
	return sum, found
}

// List returns the summaries matching opts, sorted by namespace and name.
func (s *Store) List(opts ListOptions) []workload.Summary {
	statuses := sets.New(opts.Statuses...)
	s.RLock()
	result := make([]workload.Summary, 0, len(s.workloads))
	for _, sum := range s.workloads {
		if opts.Namespace != "" && sum.Namespace != opts.Namespace {
			continue
		}
		if opts.LocalQueue != "" && sum.LocalQueue != opts.LocalQueue {
			continue
		}
		if statuses.Len() > 0 && !statuses.Has(sum.Status) {
			continue
		}
		result = append(result, sum)
	}
	s.RUnlock()
	slices.SortFunc(result, func(a, b workload.Summary) int {
		if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// CountByStatus returns the number of workloads per status. Every known
// status is present, with zero when no workload has it.
func (s *Store) CountByStatus() map[workloadstatus.Status]int {
	counts := make(map[workloadstatus.Status]int, len(workloadstatus.AllStatuses))
	for _, st := range workloadstatus.AllStatuses {
		counts[st] = 0
	}
	s.RLock()
	defer s.RUnlock()
	for _, sum := range s.workloads {
		counts[sum.Status]++
	}
	return counts
}

// AddNotification appends n, dropping the oldest notification when the
// capacity is reached.
func (s *Store) AddNotification(n Notification) {
	s.Lock()
	defer s.Unlock()
	if len(s.notifications) >= s.capacity {
		s.notifications = slices.Delete(s.notifications, 0, len(s.notifications)-s.capacity+1)
	}
	s.notifications = append(s.notifications, n)
	s.notify()
}

// Notifications returns the stored notifications, newest first.
func (s *Store) Notifications() []Notification {
	s.RLock()
	defer s.RUnlock()
	result := slices.Clone(s.notifications)
	slices.Reverse(result)
	return result
}

// Subscribe returns a channel receiving a signal after changes to the store.
// Signals are coalesced: a subscriber that has not consumed the pending
// signal gets no additional one. The returned func releases the
// subscription and must be called once.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.Lock()
	defer s.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch
	return ch, func() {
		s.Lock()
		defer s.Unlock()
		delete(s.subscribers, id)
	}
}

// notify must be called with the lock held.
func (s *Store) notify() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// A signal is already pending.
		}
	}
}
