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

package cluster_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/clusterkit/locate/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionedBucket(t *testing.T) {
	t.Parallel()

	servers := []string{"a:8091", "b:8091", "c:8091"}
	bucket, err := cluster.NewPartitionedBucket("travel", servers, [][]int{
		{0, 1},
		{1, 0},
		{cluster.NoPrimary, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "travel", bucket.Name())
	assert.True(t, bucket.PartitionAware())
	assert.Equal(t, 3, bucket.NumPartitions())
	assert.True(t, bucket.HasPrimaryPartitionsOnNode("a:8091"))
	assert.True(t, bucket.HasPrimaryPartitionsOnNode("b:8091"))
	// replica only
	assert.False(t, bucket.HasPrimaryPartitionsOnNode("c:8091"))
	assert.False(t, bucket.HasPrimaryPartitionsOnNode("d:8091"))

	_, err = cluster.NewPartitionedBucket("bad", servers, [][]int{{3}})
	require.ErrorContains(t, err, `bucket "bad": partition 0 references server 3 of 3`)
}

func TestMemcachedBucket(t *testing.T) {
	t.Parallel()

	bucket := cluster.NewMemcachedBucket("cache")
	assert.Equal(t, "cache", bucket.Name())
	assert.False(t, bucket.PartitionAware())
	assert.False(t, bucket.HasPrimaryPartitionsOnNode("a:8091"))
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	nodes := []cluster.NodeInfo{{Address: "a:8091", Services: []cluster.ServiceType{cluster.ServiceView}}}
	snapshot, err := cluster.NewSnapshot(nodes, cluster.NewMemcachedBucket("cache"))
	require.NoError(t, err)
	assert.NotNil(t, snapshot.BucketConfig("cache"))
	assert.Nil(t, snapshot.BucketConfig("missing"))
	assert.Equal(t, nodes, snapshot.Nodes())

	_, err = cluster.NewSnapshot(nil, cluster.NewMemcachedBucket("x"), cluster.NewMemcachedBucket("x"))
	require.ErrorContains(t, err, `duplicate bucket "x"`)
}

func TestServiceType(t *testing.T) {
	t.Parallel()

	svc, err := cluster.ParseServiceType(" View ")
	require.NoError(t, err)
	assert.Equal(t, cluster.ServiceView, svc)
	assert.Equal(t, "view", svc.String())

	var parsed cluster.ServiceType
	require.NoError(t, parsed.UnmarshalText([]byte("analytics")))
	assert.Equal(t, cluster.ServiceAnalytics, parsed)
	text, err := parsed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "analytics", string(text))

	_, err = cluster.ParseServiceType("graph")
	require.EqualError(t, err, `unknown service type "graph"`)
	// errors carry the stack of the call that created them
	assert.Contains(t, fmt.Sprintf("%+v", err), "cluster.ParseServiceType")
	assert.Equal(t, "ServiceType(42)", cluster.ServiceType(42).String())
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	const topology = `
nodes:
  - address: a:8091
    services: [kv, view]
  - address: b:8091
    services: [kv, query]
buckets:
  - name: travel
    type: partitioned
    partitions:
      - [0, 1]
      - [0, 1]
  - name: cache
    type: memcached
`
	snapshot, err := cluster.LoadYAML(strings.NewReader(topology))
	require.NoError(t, err)

	nodes := snapshot.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "a:8091", nodes[0].Address)
	assert.Equal(t, []cluster.ServiceType{cluster.ServiceKV, cluster.ServiceQuery}, nodes[1].Services)

	travel := snapshot.BucketConfig("travel")
	require.NotNil(t, travel)
	assert.True(t, travel.PartitionAware())
	assert.True(t, travel.HasPrimaryPartitionsOnNode("a:8091"))
	assert.False(t, travel.HasPrimaryPartitionsOnNode("b:8091"))

	cache := snapshot.BucketConfig("cache")
	require.NotNil(t, cache)
	assert.False(t, cache.PartitionAware())
}

func TestLoadYAMLErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		topology string
	}{
		{name: "unknown service", topology: "nodes:\n  - address: a\n    services: [graph]\n"},
		{name: "missing address", topology: "nodes:\n  - services: [kv]\n"},
		{name: "unknown bucket type", topology: "buckets:\n  - name: x\n    type: ephemeral\n"},
		{name: "bad partition", topology: "buckets:\n  - name: x\n    partitions: [[4]]\n"},
		{name: "malformed", topology: "nodes: {"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			_, err := cluster.LoadYAML(strings.NewReader(testCase.topology))
			assert.Error(t, err)
		})
	}
}
