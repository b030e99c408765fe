// Copyright 2026 The Locate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package locatortesting provides fakes that are useful when testing
// locators and the components around them.
package locatortesting

import (
	"sync"

	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/locator"
	"github.com/clusterkit/locate/node"
	"github.com/clusterkit/locate/request"
)

// FakeNode is an implementation of node.Node that records the requests
// sent to it. It never resolves them.
type FakeNode struct {
	addr     string
	services map[cluster.ServiceType]struct{}

	mu sync.Mutex
	// +checklocks:mu
	sent []request.Request
}

var _ node.Node = (*FakeNode)(nil)

// NewFakeNode returns a node with the given address running the given
// services.
func NewFakeNode(addr string, services ...cluster.ServiceType) *FakeNode {
	set := make(map[cluster.ServiceType]struct{}, len(services))
	for _, svc := range services {
		set[svc] = struct{}{}
	}
	return &FakeNode{addr: addr, services: set}
}

// Address implements node.Node.
func (n *FakeNode) Address() string {
	return n.addr
}

// ServiceEnabled implements node.Node.
func (n *FakeNode) ServiceEnabled(service cluster.ServiceType) bool {
	_, ok := n.services[service]
	return ok
}

// Send implements node.Node.
func (n *FakeNode) Send(req request.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
}

// Sent returns the requests sent to this node so far, in order.
func (n *FakeNode) Sent() []request.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]request.Request(nil), n.sent...)
}

// SentCount returns the number of requests sent to this node.
func (n *FakeNode) SentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// Nodes returns the given fake nodes as a node.Nodes.
func Nodes(nodes ...*FakeNode) node.Nodes {
	result := make([]node.Node, len(nodes))
	for i, n := range nodes {
		result[i] = n
	}
	return node.FromSlice(result)
}

// PoisonedNodes is a node.Nodes that panics on any access. It is used
// to verify that a code path never looks at the node list.
type PoisonedNodes struct{}

// Len implements node.Nodes. It always panics.
func (PoisonedNodes) Len() int {
	panic("poisoned node list accessed") //nolint:forbidigo
}

// Get implements node.Nodes. It always panics.
func (PoisonedNodes) Get(int) node.Node {
	panic("poisoned node list accessed") //nolint:forbidigo
}

// FakeRetrier records the requests handed to the retry path.
type FakeRetrier struct {
	mu sync.Mutex
	// +checklocks:mu
	requests []request.Request
}

var _ locator.Retrier = (*FakeRetrier)(nil)

// RetryOrCancel records the request.
func (r *FakeRetrier) RetryOrCancel(req request.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

// Requests returns the recorded requests, in order.
func (r *FakeRetrier) Requests() []request.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]request.Request(nil), r.requests...)
}

// RecordingObserver counts observed outcomes.
type RecordingObserver struct {
	mu sync.Mutex
	// +checklocks:mu
	counts map[observation]int
}

var _ locator.Observer = (*RecordingObserver)(nil)

type observation struct {
	locator string
	outcome locator.Outcome
}

// ObserveLocate implements locator.Observer.
func (o *RecordingObserver) ObserveLocate(name string, outcome locator.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[observation]int{}
	}
	o.counts[observation{locator: name, outcome: outcome}]++
}

// Count returns how many times the given outcome was observed.
func (o *RecordingObserver) Count(name string, outcome locator.Outcome) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[observation{locator: name, outcome: outcome}]
}

// Total returns how many outcomes were observed.
func (o *RecordingObserver) Total() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	total := 0
	for _, count := range o.counts {
		total += count
	}
	return total
}
