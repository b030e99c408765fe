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

package cluster

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const (
	bucketTypePartitioned = "partitioned"
	bucketTypeMemcached   = "memcached"
)

type topologyFile struct {
	Nodes   []nodeEntry   `yaml:"nodes"`
	Buckets []bucketEntry `yaml:"buckets"`
}

type nodeEntry struct {
	Address  string   `yaml:"address"`
	Services []string `yaml:"services"`
}

type bucketEntry struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Partitions [][]int `yaml:"partitions"`
}

// LoadYAML reads a topology snapshot. Partition maps reference nodes by
// their position in the nodes list.
//
//	nodes:
//	  - address: 10.0.0.1:8091
//	    services: [kv, view]
//	buckets:
//	  - name: travel
//	    type: partitioned
//	    partitions: [[0, 1], [1, 0]]
func LoadYAML(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read topology")
	}
	var file topologyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode topology")
	}

	nodes := make([]NodeInfo, len(file.Nodes))
	servers := make([]string, len(file.Nodes))
	for i, entry := range file.Nodes {
		if entry.Address == "" {
			return nil, errors.Errorf("node %d: missing address", i)
		}
		services := make([]ServiceType, len(entry.Services))
		for j, name := range entry.Services {
			svc, err := ParseServiceType(name)
			if err != nil {
				return nil, errors.Wrapf(err, "node %s", entry.Address)
			}
			services[j] = svc
		}
		nodes[i] = NodeInfo{Address: entry.Address, Services: services}
		servers[i] = entry.Address
	}

	buckets := make([]BucketConfig, 0, len(file.Buckets))
	for _, entry := range file.Buckets {
		switch entry.Type {
		case bucketTypePartitioned, "":
			bucket, err := NewPartitionedBucket(entry.Name, servers, entry.Partitions)
			if err != nil {
				return nil, err
			}
			buckets = append(buckets, bucket)
		case bucketTypeMemcached:
			buckets = append(buckets, NewMemcachedBucket(entry.Name))
		default:
			return nil, errors.Errorf("bucket %q: unknown type %q", entry.Name, entry.Type)
		}
	}
	return NewSnapshot(nodes, buckets...)
}
