// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memo implements a small random-replacement table that memoizes the
// results of a pure function.
package memo

import (
	"sync"
)

// DefaultSize is the number of entries kept by a Table created with a
// non-positive size.
const DefaultSize = 1 << 10

// Table memoizes calls to a function. Once the table holds more than its
// maximum number of entries, arbitrary entries are evicted.
//
// A Table is safe for concurrent use. Create one with New.
type Table[K comparable, V any] struct {
	fill func(K) V
	max  int

	mu sync.RWMutex
	m  map[K]V
}

// New returns a Table that holds at most size results of fill. fill must be
// safe for concurrent use and return the same value for equal keys.
func New[K comparable, V any](size int, fill func(K) V) *Table[K, V] {
	if size <= 0 {
		size = DefaultSize
	}
	return &Table[K, V]{fill: fill, max: size}
}

// Get returns fill(k), reusing an earlier result if there is one.
func (t *Table[K, V]) Get(k K) V {
	t.mu.RLock()
	if v, ok := t.m[k]; ok {
		t.mu.RUnlock()
		return v
	}
	t.mu.RUnlock()

	nv := t.fill(k)

	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.m[k]; ok {
		// another goroutine filled the entry in the meantime
		return v
	}
	if t.m == nil {
		t.m = make(map[K]V)
	}
	// Map iteration order is unspecified, which makes this a random
	// replacement policy.
	for old := range t.m {
		if len(t.m) < t.max {
			break
		}
		delete(t.m, old)
	}
	t.m[k] = nv
	return nv
}

// Len returns the number of results currently held.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// Forget drops the result for k, if any.
func (t *Table[K, V]) Forget(k K) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, k)
}

// Reset drops all results.
func (t *Table[K, V]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.m)
}
