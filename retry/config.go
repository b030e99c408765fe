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

package retry

import (
	"time"

	"github.com/clusterkit/locate/internal"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout is how long a request may be retried when no timeout is
// configured.
const DefaultTimeout = 75 * time.Second

// Config is the environment-driven configuration of a Helper.
type Config struct {
	Strategy    string        `envconfig:"STRATEGY" default:"best-effort"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"75s"`
	DelayLower  time.Duration `envconfig:"DELAY_LOWER" default:"100us"`
	DelayUpper  time.Duration `envconfig:"DELAY_UPPER" default:"100ms"`
	DelayGrowth float64       `envconfig:"DELAY_GROWTH" default:"2"`
}

// LoadConfig reads the configuration from environment variables named
// with the given prefix, e.g. PREFIX_STRATEGY.
func LoadConfig(prefix string) (Config, error) {
	var config Config
	if err := envconfig.Process(prefix, &config); err != nil {
		return Config{}, errors.Wrap(err, "load retry config")
	}
	return config, nil
}

// Options converts the configuration into options for NewHelper.
func (c Config) Options() ([]Option, error) {
	strategy, err := ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	if c.DelayLower < 0 || c.DelayUpper < c.DelayLower {
		return nil, errors.Errorf("invalid retry delay bounds [%s, %s]", c.DelayLower, c.DelayUpper)
	}
	if c.DelayGrowth < 1 {
		return nil, errors.Errorf("retry delay growth must be at least 1, got %v", c.DelayGrowth)
	}
	return []Option{
		WithStrategy(strategy),
		WithTimeout(c.Timeout),
		WithDelay(ExponentialDelay{Lower: c.DelayLower, Upper: c.DelayUpper, Growth: c.DelayGrowth}),
	}, nil
}

// Option is an option used to customize a Helper.
type Option interface {
	apply(*options)
}

// WithStrategy sets the retry strategy. The default is BestEffort.
func WithStrategy(strategy Strategy) Option {
	return optionFunc(func(opts *options) {
		opts.strategy = strategy
	})
}

// WithDelay sets the backoff between attempts. The default is
// DefaultDelay.
func WithDelay(delay Delay) Option {
	return optionFunc(func(opts *options) {
		opts.delay = delay
	})
}

// WithTimeout sets how long after its creation a request may still be
// retried. Zero disables the limit. The default is DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(opts *options) {
		opts.timeout = timeout
	})
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return optionFunc(func(opts *options) {
		opts.logger = logger
	})
}

// WithObserver sets an observer that is told about every scheduled retry
// and every cancellation.
func WithObserver(observer Observer) Option {
	return optionFunc(func(opts *options) {
		opts.observer = observer
	})
}

type options struct {
	strategy Strategy
	delay    Delay
	timeout  time.Duration
	clock    internal.Clock
	logger   logrus.FieldLogger
	observer Observer
}

type optionFunc func(*options)

func (f optionFunc) apply(opts *options) {
	f(opts)
}
