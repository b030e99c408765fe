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
	"math"
	"time"

	"github.com/clusterkit/locate/request"
	"github.com/pkg/errors"
)

// Strategy decides whether a request may be retried.
type Strategy interface {
	ShouldRetry(req request.Request) bool
}

// BestEffort retries every request until it times out.
type BestEffort struct{}

// ShouldRetry implements Strategy.
func (BestEffort) ShouldRetry(request.Request) bool { return true }

// FailFast never retries.
type FailFast struct{}

// ShouldRetry implements Strategy.
func (FailFast) ShouldRetry(request.Request) bool { return false }

// ParseStrategy returns the strategy with the given name, either
// "best-effort" or "fail-fast".
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "best-effort":
		return BestEffort{}, nil
	case "fail-fast":
		return FailFast{}, nil
	default:
		return nil, errors.Errorf("unknown retry strategy %q", name)
	}
}

// Delay computes how long to wait before the given attempt. Attempts are
// numbered from 1.
type Delay interface {
	Calculate(attempt int) time.Duration
}

// FixedDelay waits the same amount of time before every attempt.
type FixedDelay time.Duration

// Calculate implements Delay.
func (d FixedDelay) Calculate(int) time.Duration { return time.Duration(d) }

// ExponentialDelay waits Lower before the first attempt and multiplies the
// wait by Growth for every following one, up to Upper.
type ExponentialDelay struct {
	Lower  time.Duration
	Upper  time.Duration
	Growth float64
}

// DefaultDelay returns the delay used when none is configured.
func DefaultDelay() ExponentialDelay {
	return ExponentialDelay{
		Lower:  100 * time.Microsecond,
		Upper:  100 * time.Millisecond,
		Growth: 2,
	}
}

// Calculate implements Delay.
func (d ExponentialDelay) Calculate(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	wait := float64(d.Lower) * math.Pow(d.Growth, float64(attempt-1))
	if d.Upper > 0 && (wait > float64(d.Upper) || math.IsInf(wait, 0) || math.IsNaN(wait)) {
		return d.Upper
	}
	return time.Duration(wait)
}
