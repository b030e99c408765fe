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

package internal

import (
	"hash/maphash"
	"math/rand"
)

// InitialCounterRange bounds the random starting value of round-robin
// counters. Independently started clients land on different first nodes.
const InitialCounterRange = 1024

// NewRand returns a *rand.Rand seeded from randomSeed. Each locator draws
// its starting counter from a fresh one, so no shared source is locked.
// The returned value must not be shared between goroutines.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(randomSeed())) //nolint:gosec // don't need cryptographic RNG
}

// RandomInitialCounter returns a value in [0, InitialCounterRange).
func RandomInitialCounter() int64 {
	return NewRand().Int63n(InitialCounterRange)
}

// randomSeed returns the sum of an empty maphash.Hash. Its seed is drawn
// from the runtime per process and per Hash, so two locators created in
// the same instant still start from different counters.
func randomSeed() int64 {
	var hash maphash.Hash
	return int64(hash.Sum64())
}
