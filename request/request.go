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

// Package request defines the outbound request as seen by locators and
// the retry path, along with a basic implementation.
//
// A request is resolved exactly once: either it succeeds with a value
// delivered by the node that served it, or it fails with an error. Any
// later attempt to resolve it is ignored and reported as such, so
// components that race to resolve the same request never double-deliver.
package request

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Request is an outbound request bound for a named bucket.
type Request interface {
	// Bucket is the name of the bucket the request targets.
	Bucket() string
	// Succeed resolves the request with the given value. It returns false
	// if the request had already been resolved.
	Succeed(value any) bool
	// Fail resolves the request with the given error. It returns false if
	// the request had already been resolved.
	Fail(err error) bool
	// Done returns a channel that is closed once the request is resolved.
	Done() <-chan struct{}
	// CreatedAt returns the time the request was created.
	CreatedAt() time.Time
	// RetryCount is the number of times the request has been handed to
	// the retry path.
	RetryCount() int
	// IncrementRetryCount bumps the retry count and returns the new value.
	IncrementRetryCount() int
}

//nolint:gochecknoglobals
var nextID atomic.Uint64

// Base is a basic Request. Use New to create one.
type Base struct {
	id        uint64
	bucket    string
	createdAt time.Time
	retries   atomic.Int32

	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

var _ Request = (*Base)(nil)

// Option customizes a request created with New.
type Option interface {
	apply(*Base)
}

// WithCreatedAt overrides the creation time, which otherwise is the
// wall-clock time at which New was called.
func WithCreatedAt(t time.Time) Option {
	return optionFunc(func(b *Base) {
		b.createdAt = t
	})
}

// New returns a new request for the given bucket.
func New(bucket string, opts ...Option) *Base {
	req := &Base{
		id:        nextID.Add(1),
		bucket:    bucket,
		createdAt: time.Now(),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt.apply(req)
	}
	return req
}

// ID is a process-unique sequence number, useful in logs.
func (b *Base) ID() uint64 { return b.id }

// Bucket implements Request.
func (b *Base) Bucket() string { return b.bucket }

// CreatedAt implements Request.
func (b *Base) CreatedAt() time.Time { return b.createdAt }

// RetryCount implements Request.
func (b *Base) RetryCount() int { return int(b.retries.Load()) }

// IncrementRetryCount implements Request.
func (b *Base) IncrementRetryCount() int { return int(b.retries.Add(1)) }

// Succeed implements Request.
func (b *Base) Succeed(value any) bool {
	return b.resolve(value, nil)
}

// Fail implements Request.
func (b *Base) Fail(err error) bool {
	return b.resolve(nil, err)
}

// Done implements Request.
func (b *Base) Done() <-chan struct{} { return b.done }

// Result returns the outcome of the request. It must only be called after
// Done is closed.
func (b *Base) Result() (any, error) {
	select {
	case <-b.done:
		return b.value, b.err
	default:
		panic("request: Result called before the request was resolved") //nolint:forbidigo
	}
}

func (b *Base) String() string {
	return fmt.Sprintf("request#%d[bucket=%s retries=%d]", b.id, b.bucket, b.RetryCount())
}

func (b *Base) resolve(value any, err error) bool {
	resolved := false
	b.once.Do(func() {
		b.value, b.err = value, err
		close(b.done)
		resolved = true
	})
	return resolved
}

type optionFunc func(*Base)

func (f optionFunc) apply(b *Base) {
	f(b)
}
