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

// Package node provides the representation of a cluster node as seen by
// a locator. Nodes are owned by the client's node lifecycle management;
// locators only read them for the duration of a single call and hand a
// request to at most one of them.
package node

import (
	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/request"
)

// Node is a cluster node.
type Node interface {
	// Address is the stable network address identifying this node.
	Address() string
	// ServiceEnabled reports whether the node runs the given service.
	ServiceEnabled(service cluster.ServiceType) bool
	// Send hands the request to the node's transport. It must not block;
	// the node resolves the request once a response arrives.
	Send(req request.Request)
}

// Nodes represents a read-only, ordered set of nodes.
type Nodes interface {
	// Len returns the total number of nodes in the set.
	Len() int
	// Get returns the node at index i.
	Get(i int) Node
}

// FromSlice returns a Nodes that represents the given slice. Note that no
// defensive copy is made, so changes to the given slice's contents will
// be reflected in the returned value.
func FromSlice(nodes []Node) Nodes {
	return nodeSlice(nodes)
}

// ToSlice copies the nodes in the set into a new slice.
func ToSlice(nodes Nodes) []Node {
	result := make([]Node, nodes.Len())
	for i := range result {
		result[i] = nodes.Get(i)
	}
	return result
}

// Addresses returns the addresses of the nodes in the set, in order. A
// nil node is reported as "<nil>".
func Addresses(nodes Nodes) []string {
	addrs := make([]string, nodes.Len())
	for i := range addrs {
		n := nodes.Get(i)
		if n == nil {
			addrs[i] = "<nil>"
			continue
		}
		addrs[i] = n.Address()
	}
	return addrs
}

type nodeSlice []Node

func (s nodeSlice) Len() int {
	return len(s)
}

func (s nodeSlice) Get(i int) Node {
	return s[i]
}
