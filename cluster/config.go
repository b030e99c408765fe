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

import "github.com/pkg/errors"

// NoPrimary marks a partition that currently has no primary owner, as
// happens while a rebalance is moving it.
const NoPrimary = -1

// Config is a snapshot of the cluster's bucket topology.
type Config interface {
	// BucketConfig returns the configuration of the named bucket, or nil
	// if the bucket is not known.
	BucketConfig(name string) BucketConfig
}

// BucketConfig describes a single bucket.
type BucketConfig interface {
	Name() string
	// PartitionAware reports whether the bucket's data is sharded into
	// partitions owned by specific nodes. Services that route by partition
	// ownership are unavailable on buckets that are not partition-aware.
	PartitionAware() bool
	// HasPrimaryPartitionsOnNode reports whether the node with the given
	// address is the primary owner of at least one partition.
	HasPrimaryPartitionsOnNode(address string) bool
}

// NodeInfo is the topology's description of a node.
type NodeInfo struct {
	Address  string
	Services []ServiceType
}

// Snapshot is an immutable Config. Use NewSnapshot to create one.
type Snapshot struct {
	nodes   []NodeInfo
	buckets map[string]BucketConfig
}

var _ Config = (*Snapshot)(nil)

// NewSnapshot creates a snapshot over the given nodes and buckets. Bucket
// names must be unique.
func NewSnapshot(nodes []NodeInfo, buckets ...BucketConfig) (*Snapshot, error) {
	byName := make(map[string]BucketConfig, len(buckets))
	for _, bucket := range buckets {
		if _, ok := byName[bucket.Name()]; ok {
			return nil, errors.Errorf("duplicate bucket %q", bucket.Name())
		}
		byName[bucket.Name()] = bucket
	}
	return &Snapshot{
		nodes:   append([]NodeInfo(nil), nodes...),
		buckets: byName,
	}, nil
}

// BucketConfig implements Config.
func (s *Snapshot) BucketConfig(name string) BucketConfig {
	bucket, ok := s.buckets[name]
	if !ok {
		return nil
	}
	return bucket
}

// Nodes returns the nodes listed in the snapshot, in topology order.
func (s *Snapshot) Nodes() []NodeInfo {
	return append([]NodeInfo(nil), s.nodes...)
}

// PartitionedBucket is a partition-aware bucket. Its partition map lists,
// for each partition, the index into the server list of the primary
// owner followed by the replicas.
type PartitionedBucket struct {
	name       string
	partitions [][]int
	primaries  map[string]struct{}
}

var _ BucketConfig = (*PartitionedBucket)(nil)

// NewPartitionedBucket validates the partition map and returns the bucket.
// Partition entries use NoPrimary for an unassigned slot.
func NewPartitionedBucket(name string, servers []string, partitions [][]int) (*PartitionedBucket, error) {
	primaries := make(map[string]struct{}, len(servers))
	for i, owners := range partitions {
		for _, owner := range owners {
			if owner != NoPrimary && (owner < 0 || owner >= len(servers)) {
				return nil, errors.Errorf("bucket %q: partition %d references server %d of %d", name, i, owner, len(servers))
			}
		}
		if len(owners) > 0 && owners[0] != NoPrimary {
			primaries[servers[owners[0]]] = struct{}{}
		}
	}
	return &PartitionedBucket{
		name:       name,
		partitions: partitions,
		primaries:  primaries,
	}, nil
}

// Name implements BucketConfig.
func (b *PartitionedBucket) Name() string { return b.name }

// PartitionAware implements BucketConfig. It is always true.
func (b *PartitionedBucket) PartitionAware() bool { return true }

// HasPrimaryPartitionsOnNode implements BucketConfig.
func (b *PartitionedBucket) HasPrimaryPartitionsOnNode(address string) bool {
	_, ok := b.primaries[address]
	return ok
}

// NumPartitions returns the size of the partition map.
func (b *PartitionedBucket) NumPartitions() int { return len(b.partitions) }

// MemcachedBucket is a simple cache bucket. It has no partition map.
type MemcachedBucket struct {
	name string
}

var _ BucketConfig = MemcachedBucket{}

// NewMemcachedBucket returns a cache-only bucket with the given name.
func NewMemcachedBucket(name string) MemcachedBucket {
	return MemcachedBucket{name: name}
}

// Name implements BucketConfig.
func (b MemcachedBucket) Name() string { return b.name }

// PartitionAware implements BucketConfig. It is always false.
func (b MemcachedBucket) PartitionAware() bool { return false }

// HasPrimaryPartitionsOnNode implements BucketConfig. It is always false.
func (b MemcachedBucket) HasPrimaryPartitionsOnNode(string) bool { return false }
