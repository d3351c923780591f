// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

import (
	"sync"

	"go.uber.org/atomic"
)

// rendezvousStage is the three-state machine that governs an unbuffered
// Channel[T]'s direct hand-off. See rendezvous.go.
type rendezvousStage int

const (
	stageIdle rendezvousStage = iota
	stageInitiated
	stageCommitting
)

// Channel is a many-producer, many-consumer conduit for values of type T.
// A Channel created with capacity 0 is unbuffered: Send and Receive
// rendezvous directly, each blocking until paired with a peer. A Channel
// created with capacity > 0 is buffered: Send blocks only while the
// internal queue is full.
//
// The zero value is not usable; construct with New. A *Channel[T] is safe
// for concurrent use by any number of goroutines.
type Channel[T any] struct {
	capacity int
	buf      *ring[T] // nil for unbuffered channels

	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	closed   atomic.Bool

	// Unbuffered rendezvous state. Buffered channels never change it
	// (Close still broadcasts stageFree and stageDone on every channel).
	stage       rendezvousStage
	op          direction
	slot        *T
	stageFree   *sync.Cond
	stageDone   *sync.Cond
	sendWaiters int
	recvWaiters int

	reg *registry
	dbg debugLogger
}

// New creates a Channel[T] of the given capacity. capacity == 0 yields an
// unbuffered (rendezvous) channel; capacity > 0 yields a buffered channel
// backed by a bounded FIFO of that size. A negative capacity is treated
// as 0, matching the specification's "non-negative integer" domain by
// clamping rather than panicking, since a library entry point should not
// crash a caller's process over an out-of-range construction argument.
func New[T any](capacity int, opts ...Option) *Channel[T] {
	if capacity < 0 {
		capacity = 0
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Channel[T]{
		capacity: capacity,
		reg:      newRegistry(),
		dbg:      newDebugLogger(o),
	}
	if capacity > 0 {
		c.buf = newRing[T](capacity)
	}
	c.notFull = sync.NewCond(&c.mu)
	c.notEmpty = sync.NewCond(&c.mu)
	c.stageFree = sync.NewCond(&c.mu)
	c.stageDone = sync.NewCond(&c.mu)

	c.dbg.created(capacity)
	return c
}

// Unbuffered reports whether c is a zero-capacity rendezvous channel.
func (c *Channel[T]) Unbuffered() bool { return c.capacity == 0 }

// Cap returns the channel's buffering capacity (0 for an unbuffered
// channel).
func (c *Channel[T]) Cap() int { return c.capacity }

// Send blocks until v is delivered — buffered into the channel's queue,
// or handed directly to a waiting receiver — or the channel is closed.
func (c *Channel[T]) Send(v T) error {
	if c.Unbuffered() {
		return c.rendezvousSend(v)
	}
	return c.bufferedSend(v)
}

// Receive blocks until a value is available — dequeued from the
// channel's buffer, or handed directly by a waiting sender — or the
// channel is closed.
func (c *Channel[T]) Receive() (T, error) {
	if c.Unbuffered() {
		return c.rendezvousReceive()
	}
	return c.bufferedReceive()
}

// TrySend attempts Send without blocking. It returns ErrFull if the
// operation would otherwise block. On an unbuffered channel it may wait
// briefly for a parked receiver, and while a Select is registered to
// receive on c and no rendezvous is in flight it blocks as Send does;
// see rendezvousTrySend.
func (c *Channel[T]) TrySend(v T) error {
	if c.Unbuffered() {
		return c.rendezvousTrySend(v)
	}
	return c.bufferedTrySend(v)
}

// TryReceive attempts Receive without blocking. It returns ErrEmpty if
// the operation would otherwise block. On an unbuffered channel it may
// wait briefly for a parked sender, and while a Select is registered to
// send on c and no rendezvous is in flight it blocks as Receive does;
// see rendezvousTrySend.
func (c *Channel[T]) TryReceive() (T, error) {
	if c.Unbuffered() {
		return c.rendezvousTryReceive()
	}
	return c.bufferedTryReceive()
}

func (c *Channel[T]) bufferedSend(v T) error {
	c.mu.Lock()
	for {
		if c.closed.Load() {
			c.mu.Unlock()
			return ErrClosed
		}
		if c.buf.push(v) {
			break
		}
		c.notFull.Wait()
	}
	c.mu.Unlock()

	c.notEmpty.Signal()
	c.reg.broadcast(dirRecv)
	return nil
}

func (c *Channel[T]) bufferedReceive() (T, error) {
	c.mu.Lock()
	for {
		if c.closed.Load() {
			c.mu.Unlock()
			var zero T
			return zero, ErrClosed
		}
		if v, ok := c.buf.pop(); ok {
			c.mu.Unlock()
			c.notFull.Signal()
			c.reg.broadcast(dirSend)
			return v, nil
		}
		c.notEmpty.Wait()
	}
}

func (c *Channel[T]) bufferedTrySend(v T) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.buf.push(v) {
		c.mu.Unlock()
		return ErrFull
	}
	c.mu.Unlock()

	c.notEmpty.Signal()
	c.reg.broadcast(dirRecv)
	return nil
}

func (c *Channel[T]) bufferedTryReceive() (T, error) {
	var zero T
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	v, ok := c.buf.pop()
	if !ok {
		c.mu.Unlock()
		return zero, ErrEmpty
	}
	c.mu.Unlock()

	c.notFull.Signal()
	c.reg.broadcast(dirSend)
	return v, nil
}

// Close marks the channel closed. Every operation issued after Close
// returns, on this channel or any still-parked on it, observes ErrClosed
// — including a Receive against a buffered channel that still holds
// values. This preserves the behavior of the C specification this
// package is modeled on rather than adopting the built-in `chan`'s
// drain-then-report-closed semantics; see DESIGN.md for the rationale.
//
// Close is idempotent only in the sense that a second call reports
// ErrClosed rather than panicking; it performs no further state change.
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed.Store(true)
	c.mu.Unlock()

	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	c.stageFree.Broadcast()
	c.stageDone.Broadcast()
	c.reg.broadcastAll()

	c.dbg.closed()
	return nil
}

// Destroy releases c's internal state. It requires that c already be
// closed and that the caller has ensured no goroutine still has an
// operation in flight against c; Destroy does not itself wait for
// quiescence. Unlike the C original there is nothing to explicitly
// `free` under Go's garbage collector, but the checked precondition
// (ErrDestroy on an open channel) is preserved so misuse is reported
// rather than silently ignored, and the buffer, registry, and logger
// references are dropped so they become eligible for collection
// immediately rather than whenever c itself is no longer reachable.
func (c *Channel[T]) Destroy() error {
	c.mu.Lock()
	if !c.closed.Load() {
		c.mu.Unlock()
		return ErrDestroy
	}
	c.buf = nil
	c.reg = nil
	c.mu.Unlock()

	c.dbg.destroyed()
	c.dbg = debugLogger{}
	return nil
}
