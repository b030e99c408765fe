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

// Package locator provides functionality for choosing the cluster node
// that receives an outbound request.
//
// This package defines the core interface, [Locator], which is given a
// request, a snapshot of the cluster's nodes and its bucket topology, and
// a [Retrier]. Every call ends in exactly one of three dispositions:
//
//  1. The request is sent to a single chosen node. The locator does not
//     wait for, or observe, the response.
//  2. The request is failed immediately, because the requested service
//     is categorically unavailable for the target bucket. Such failures
//     are never retried.
//  3. The request is handed to the retrier, because no node is eligible
//     right now. This is expected while the cluster is rebalancing, and
//     the retrier decides whether to try again later or give up.
//
// Implementations are provided by the functions whose names start with
// "New". [NewView] routes view requests in a round-robin fashion over the
// nodes that run the view service and own primary partitions of the
// bucket. [NewService] does the same for services that are not tied to
// partition ownership, like query or search, and [NewRandom] picks a
// random node running a service. Locators never block and are safe for
// concurrent use.
package locator
