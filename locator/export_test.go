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
	"github.com/clusterkit/locate/request"
)

func FloorMod(x, n int64) int64 {
	return floorMod(x, n)
}

func (v *View) Counter() int64 {
	return v.counter.Load()
}

func (s *Service) Counter() int64 {
	return s.counter.Load()
}

// DispatchEligible runs the selection and outcome steps of the view
// locator over an already filtered node list.
func (v *View) DispatchEligible(req request.Request, eligible []node.Node, retrier Retrier) {
	outcome := dispatchRoundRobin(&v.counter, req, eligible, retrier, v.logger)
	v.observer.ObserveLocate(cluster.ServiceView.String(), outcome)
}
