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
	"github.com/sirupsen/logrus"
)

// Locator picks the node that receives a request and dispatches the
// request to it. See the package documentation for the possible outcomes.
type Locator interface {
	LocateAndDispatch(req request.Request, nodes node.Nodes, config cluster.Config, retrier Retrier)
}

// Retrier is the path taken by requests that cannot be delivered right
// now. It decides whether the request is tried again later or cancelled.
// RetryOrCancel must not block.
type Retrier interface {
	RetryOrCancel(req request.Request)
}

// RetrierFunc adapts a function to the Retrier interface.
type RetrierFunc func(req request.Request)

// RetryOrCancel implements Retrier.
func (f RetrierFunc) RetryOrCancel(req request.Request) {
	f(req)
}

// Func adapts a function to the Locator interface.
type Func func(req request.Request, nodes node.Nodes, config cluster.Config, retrier Retrier)

// LocateAndDispatch implements Locator.
func (f Func) LocateAndDispatch(req request.Request, nodes node.Nodes, config cluster.Config, retrier Retrier) {
	f(req, nodes, config, retrier)
}

// Error returns a locator that always fails requests with the given error.
func Error(err error) Locator {
	return Func(func(req request.Request, _ node.Nodes, _ cluster.Config, _ Retrier) {
		req.Fail(err)
	})
}

// Outcome is the disposition of a single LocateAndDispatch call.
type Outcome string

const (
	// OutcomeDispatched means the request was sent to a node.
	OutcomeDispatched Outcome = "dispatched"
	// OutcomeUnsupported means the request was failed because the bucket
	// does not support the service.
	OutcomeUnsupported Outcome = "unsupported"
	// OutcomeNoEligibleNode means no node qualified and the request was
	// handed to the retrier.
	OutcomeNoEligibleNode Outcome = "no_eligible_node"
	// OutcomeInvariantViolation means the selected node was nil. The
	// request was handed to the retrier.
	OutcomeInvariantViolation Outcome = "invariant_violation"
)

// Observer is notified of the outcome of every LocateAndDispatch call.
// It must be safe for concurrent use and must not block.
type Observer interface {
	ObserveLocate(locator string, outcome Outcome)
}

type nopObserver struct{}

func (nopObserver) ObserveLocate(string, Outcome) {}

// Option is an option used to customize the behavior of a locator.
type Option interface {
	apply(*options)
}

// WithLogger configures the logger used to report anomalies. If not
// specified, each locator logs to its own logrus.Logger writing to stderr.
func WithLogger(logger logrus.FieldLogger) Option {
	return optionFunc(func(opts *options) {
		opts.logger = logger
	})
}

// WithObserver configures an observer that is told the outcome of every
// call. This is typically used for metrics.
func WithObserver(observer Observer) Option {
	return optionFunc(func(opts *options) {
		opts.observer = observer
	})
}

// WithInitialCounter sets the starting value of a round-robin locator's
// counter, which otherwise is chosen at random in [0, 1024). This makes
// the sequence of selected nodes deterministic, which is mostly useful
// in tests. Other locators ignore this option.
func WithInitialCounter(value int64) Option {
	return optionFunc(func(opts *options) {
		opts.initialCounter = &value
	})
}

type options struct {
	logger         logrus.FieldLogger
	observer       Observer
	initialCounter *int64
}

func newOptions(opts []Option) options {
	var result options
	for _, opt := range opts {
		opt.apply(&result)
	}
	if result.logger == nil {
		result.logger = logrus.New()
	}
	if result.observer == nil {
		result.observer = nopObserver{}
	}
	return result
}

type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}
