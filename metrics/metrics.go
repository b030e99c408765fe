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

// Package metrics exports locator and retry outcomes as Prometheus
// counters.
package metrics

import (
	"github.com/clusterkit/locate/locator"
	"github.com/clusterkit/locate/retry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "locate"

// Collector implements both locator.Observer and retry.Observer.
type Collector struct {
	locates *prometheus.CounterVec
	retries *prometheus.CounterVec
}

var (
	_ locator.Observer = (*Collector)(nil)
	_ retry.Observer   = (*Collector)(nil)
)

// NewCollector creates the counters and registers them with registerer.
func NewCollector(registerer prometheus.Registerer) (*Collector, error) {
	collector := &Collector{
		locates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests located, by locator and outcome.",
		}, []string{"locator", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Requests handed to the retry path, by result.",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{collector.locates, collector.retries} {
		if err := registerer.Register(c); err != nil {
			return nil, errors.Wrap(err, "register locate metrics")
		}
	}
	return collector, nil
}

// ObserveLocate implements locator.Observer.
func (c *Collector) ObserveLocate(name string, outcome locator.Outcome) {
	c.locates.WithLabelValues(name, string(outcome)).Inc()
}

// ObserveRetry implements retry.Observer.
func (c *Collector) ObserveRetry(result retry.Result) {
	c.retries.WithLabelValues(string(result)).Inc()
}
