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

// Package locate is the request-locating layer of a clustered database
// client. It decides which node of a cluster receives an outgoing request,
// or whether the request must be retried or failed instead.
//
// The pieces live in sub-packages:
//
//   - [github.com/clusterkit/locate/locator] selects a node for a request.
//     The view locator rotates round-robin over the nodes that run the view
//     service and host primary partitions of the target bucket. Service and
//     random locators cover the other services.
//   - [github.com/clusterkit/locate/cluster] describes the cluster
//     configuration: buckets, their partition maps and the nodes' services.
//     Snapshots can be loaded from YAML.
//   - [github.com/clusterkit/locate/request] and
//     [github.com/clusterkit/locate/node] define the request and node
//     abstractions a locator works with.
//   - [github.com/clusterkit/locate/retry] holds requests that could not be
//     dispatched and hands them back to a locator after a backoff delay,
//     until their timeout elapses.
//   - [github.com/clusterkit/locate/metrics] exports locator outcomes and
//     retry decisions as Prometheus counters.
//
// A minimal wiring looks like this:
//
//	collector, _ := metrics.NewCollector(prometheus.DefaultRegisterer)
//	view := locator.NewView(locator.WithObserver(collector))
//	var retrier *retry.Helper
//	retrier = retry.NewHelper(func(req request.Request) {
//		view.LocateAndDispatch(req, nodes, config, retrier)
//	}, retry.WithObserver(collector))
//	view.LocateAndDispatch(request.New("travel"), nodes, config, retrier)
//
// The locatesim command under cmd/ drives these packages against a
// topology file and prints how the requests were spread.
package locate
