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

package locator

import (
	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/node"
)

// FilterNodes returns the nodes that run the given service and own at
// least one primary partition of the bucket, in their input order.
// Nil entries are skipped. The inputs are never modified.
func FilterNodes(nodes node.Nodes, service cluster.ServiceType, bucket cluster.BucketConfig) []node.Node {
	return filter(nodes, func(n node.Node) bool {
		return n.ServiceEnabled(service) && bucket.HasPrimaryPartitionsOnNode(n.Address())
	})
}

// FilterByService returns the nodes that run the given service, in their
// input order. Nil entries are skipped.
func FilterByService(nodes node.Nodes, service cluster.ServiceType) []node.Node {
	return filter(nodes, func(n node.Node) bool {
		return n.ServiceEnabled(service)
	})
}

func filter(nodes node.Nodes, keep func(node.Node) bool) []node.Node {
	numNodes := nodes.Len()
	result := make([]node.Node, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		n := nodes.Get(i)
		if n != nil && keep(n) {
			result = append(result, n)
		}
	}
	return result
}
