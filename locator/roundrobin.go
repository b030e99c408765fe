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
	"sync/atomic"

	"github.com/clusterkit/locate/cluster"
	"github.com/clusterkit/locate/internal"
	"github.com/clusterkit/locate/node"
	"github.com/clusterkit/locate/request"
	"github.com/sirupsen/logrus"
)

// View locates view requests. It sends each request to one of the nodes
// that run the view service and own at least one primary partition of
// the target bucket, cycling through them in order. Requests for buckets
// that are not partition-aware fail with an error matching
// ErrServiceNotAvailable.
//
// In order to mitigate the risk of a "thundering herd" scenario, where
// many freshly started clients all send their first request to the same
// node, the round-robin counter starts at a random value unless
// WithInitialCounter is used.
type View struct {
	logger   logrus.FieldLogger
	observer Observer
	// +checkatomic
	counter atomic.Int64
}

var _ Locator = (*View)(nil)

// NewView creates a round-robin locator for view requests.
func NewView(opts ...Option) *View {
	options := newOptions(opts)
	view := &View{
		logger:   options.logger,
		observer: options.observer,
	}
	view.counter.Store(initialCounter(options))
	return view
}

// LocateAndDispatch implements Locator.
func (v *View) LocateAndDispatch(req request.Request, nodes node.Nodes, config cluster.Config, retrier Retrier) {
	var bucket cluster.BucketConfig
	if config != nil {
		bucket = config.BucketConfig(req.Bucket())
	}
	if bucket == nil || !bucket.PartitionAware() {
		req.Fail(errViewsNotAvailable)
		v.observer.ObserveLocate(cluster.ServiceView.String(), OutcomeUnsupported)
		return
	}
	eligible := FilterNodes(nodes, cluster.ServiceView, bucket)
	outcome := dispatchRoundRobin(&v.counter, req, eligible, retrier, v.logger)
	v.observer.ObserveLocate(cluster.ServiceView.String(), outcome)
}

// Service locates requests for a service that is not bound to partition
// ownership, such as query, search or analytics. It cycles through the
// nodes running the service regardless of the target bucket.
type Service struct {
	service  cluster.ServiceType
	logger   logrus.FieldLogger
	observer Observer
	// +checkatomic
	counter atomic.Int64
}

var _ Locator = (*Service)(nil)

// NewService creates a round-robin locator for the given service.
func NewService(service cluster.ServiceType, opts ...Option) *Service {
	options := newOptions(opts)
	locator := &Service{
		service:  service,
		logger:   options.logger,
		observer: options.observer,
	}
	locator.counter.Store(initialCounter(options))
	return locator
}

// LocateAndDispatch implements Locator. The config is not consulted.
func (s *Service) LocateAndDispatch(req request.Request, nodes node.Nodes, _ cluster.Config, retrier Retrier) {
	eligible := FilterByService(nodes, s.service)
	outcome := dispatchRoundRobin(&s.counter, req, eligible, retrier, s.logger)
	s.observer.ObserveLocate(s.service.String(), outcome)
}

func initialCounter(opts options) int64 {
	if opts.initialCounter != nil {
		return *opts.initialCounter
	}
	return internal.RandomInitialCounter()
}

func dispatchRoundRobin(
	counter *atomic.Int64,
	req request.Request,
	eligible []node.Node,
	retrier Retrier,
	logger logrus.FieldLogger,
) Outcome {
	if len(eligible) == 0 {
		retrier.RetryOrCancel(req)
		return OutcomeNoEligibleNode
	}
	// Add returns the incremented value; subtracting one yields the value
	// this call claimed.
	offset := floorMod(counter.Add(1)-1, int64(len(eligible)))
	selected := eligible[offset]
	if selected == nil {
		logger.WithFields(logrus.Fields{
			"request": req,
			"bucket":  req.Bucket(),
			"offset":  offset,
			"nodes":   node.Addresses(node.FromSlice(eligible)),
		}).Warn("locator found selected node to be nil, this is a bug")
		retrier.RetryOrCancel(req)
		return OutcomeInvariantViolation
	}
	selected.Send(req)
	return OutcomeDispatched
}

// floorMod is the modulus rounded towards negative infinity. Its result
// has the sign of n, so it is a valid index for any x when n > 0. The
// counter wraps around to negative values after math.MaxInt64 calls.
func floorMod(x, n int64) int64 {
	m := x % n
	if m != 0 && (m < 0) != (n < 0) {
		m += n
	}
	return m
}
