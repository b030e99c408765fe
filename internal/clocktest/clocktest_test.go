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

package clocktest_test

import (
	"context"
	"testing"
	"time"

	"github.com/clusterkit/locate/internal/clocktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClockAfterFunc(t *testing.T) {
	t.Parallel()

	clock := clocktest.NewFakeClock()
	start := clock.Now()
	fired := make(chan struct{})
	clock.AfterFunc(time.Second, func() { close(fired) })
	stopped := clock.AfterFunc(time.Second, func() { t.Error("stopped timer fired") })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
	assert.True(t, stopped.Stop())

	clock.Advance(999 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("timer fired early")
	default:
	}

	clock.Advance(time.Millisecond)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Equal(t, time.Second, clock.Since(start))
}
