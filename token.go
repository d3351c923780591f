// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

import "sync"

// token is the notification primitive owned by one Select invocation: a
// counting, level-triggered wake signal. Any number of channels may post
// to it concurrently; only the owning Select waits on it. It plays the
// role the Go runtime gives a parked goroutine's sudog in select.go, and
// the role the C original gives a POSIX semaphore in its select
// implementation — reimplemented here with sync.Cond, in the same spirit
// as the runtime's own sema.go, because Go has no public counting
// semaphore in the standard library and a Cond-guarded counter is exactly
// what sema.go itself boils down to for the single-waiter case this type
// needs.
type token struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newToken() *token {
	t := &token{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// post increments the count and wakes the waiter, if any. Safe to call
// from any number of goroutines concurrently with each other and with
// wait.
func (t *token) post() {
	t.mu.Lock()
	t.count++
	t.mu.Unlock()
	t.cond.Signal()
}

// wait blocks until at least one post has occurred since the last wait,
// then consumes it.
func (t *token) wait() {
	t.mu.Lock()
	for t.count == 0 {
		t.cond.Wait()
	}
	t.count--
	t.mu.Unlock()
}
