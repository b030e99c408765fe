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
	"math/rand/v2"

	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/node"
	"github.com/clusterkit/locate/request"
)

// Random sends each request to a node picked at random among those
// running a service. It keeps no state between calls.
type Random struct {
	service  cluster.ServiceType
	observer Observer
}

var _ Locator = (*Random)(nil)

// NewRandom creates a locator that picks a random node running the given
// service. It is used for requests, like configuration fetches, where any
// node can answer and no ordering is wanted.
func NewRandom(service cluster.ServiceType, opts ...Option) *Random {
	options := newOptions(opts)
	return &Random{
		service:  service,
		observer: options.observer,
	}
}

// LocateAndDispatch implements Locator. The config is not consulted.
func (r *Random) LocateAndDispatch(req request.Request, nodes node.Nodes, _ cluster.Config, retrier Retrier) {
	eligible := FilterByService(nodes, r.service)
	if len(eligible) == 0 {
		retrier.RetryOrCancel(req)
		r.observer.ObserveLocate(r.name(), OutcomeNoEligibleNode)
		return
	}
	eligible[rand.IntN(len(eligible))].Send(req) //nolint:gosec // does not need to be cryptographically secure
	r.observer.ObserveLocate(r.name(), OutcomeDispatched)
}

func (r *Random) name() string {
	return "random-" + r.service.String()
}
