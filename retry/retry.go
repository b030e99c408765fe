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

// Package retry provides the path taken by requests that a locator could
// not deliver. A [Helper] either schedules the request to be located
// again after a backoff delay, or cancels it when the retry strategy
// refuses or the request has been outstanding for too long.
package retry

import (
	"time"

	"github.com/clusterkit/locate/internal"
	"github.com/clusterkit/locate/request"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrRequestCancelled is matched, via errors.Is, by the error used to fail
// requests that will not be retried.
var ErrRequestCancelled = errors.New("request cancelled")

// Result is what the helper did with a request.
type Result string

const (
	ResultScheduled Result = "scheduled"
	ResultCancelled Result = "cancelled"
)

// Observer is told what happened to each request given to a Helper.
type Observer interface {
	ObserveRetry(result Result)
}

type nopObserver struct{}

func (nopObserver) ObserveRetry(Result) {}

// Helper implements the retry-or-cancel path. It is safe for concurrent
// use and never blocks: re-dispatch always happens on a timer.
type Helper struct {
	dispatch func(request.Request)
	strategy Strategy
	delay    Delay
	timeout  time.Duration
	clock    internal.Clock
	logger   logrus.FieldLogger
	observer Observer
}

// NewHelper returns a helper that hands retried requests back to
// dispatch, which typically calls a locator again with the current
// topology.
func NewHelper(dispatch func(req request.Request), opts ...Option) *Helper {
	config := options{
		strategy: BestEffort{},
		delay:    DefaultDelay(),
		timeout:  DefaultTimeout,
		clock:    internal.NewRealClock(),
	}
	for _, opt := range opts {
		opt.apply(&config)
	}
	if config.logger == nil {
		config.logger = logrus.New()
	}
	if config.observer == nil {
		config.observer = nopObserver{}
	}
	return &Helper{
		dispatch: dispatch,
		strategy: config.strategy,
		delay:    config.delay,
		timeout:  config.timeout,
		clock:    config.clock,
		logger:   config.logger,
		observer: config.observer,
	}
}

// RetryOrCancel either schedules the request to be dispatched again or
// fails it with an error matching ErrRequestCancelled. Requests that are
// already resolved are ignored.
func (h *Helper) RetryOrCancel(req request.Request) {
	if resolved(req) {
		return
	}
	age := h.clock.Since(req.CreatedAt())
	if h.timeout > 0 && age >= h.timeout {
		h.cancel(req, "timed out", age)
		return
	}
	if !h.strategy.ShouldRetry(req) {
		h.cancel(req, "retry strategy declined", age)
		return
	}

	attempt := req.IncrementRetryCount()
	wait := h.delay.Calculate(attempt)
	h.logger.WithFields(logrus.Fields{
		"request": req,
		"attempt": attempt,
		"delay":   wait,
	}).Debug("scheduling request retry")
	h.observer.ObserveRetry(ResultScheduled)
	h.clock.AfterFunc(wait, func() {
		if resolved(req) {
			return
		}
		h.dispatch(req)
	})
}

func (h *Helper) cancel(req request.Request, reason string, age time.Duration) {
	err := errors.Wrapf(ErrRequestCancelled, "%s after %d retries and %s", reason, req.RetryCount(), age)
	if req.Fail(err) {
		h.logger.WithFields(logrus.Fields{
			"request": req,
			"reason":  reason,
		}).Debug("request cancelled")
		h.observer.ObserveRetry(ResultCancelled)
	}
}

func resolved(req request.Request) bool {
	select {
	case <-req.Done():
		return true
	default:
		return false
	}
}
