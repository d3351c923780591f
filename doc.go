// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csp implements a thread-safe, generic, CSP-style channel that
// can be used outside of the `chan` keyword: a many-producer,
// many-consumer conduit with both buffered (bounded-FIFO) and unbuffered
// (synchronous rendezvous) variants, blocking and non-blocking operations,
// explicit Close/Destroy lifecycle, and a multi-channel Select that picks
// the first ready among a set of send/receive cases.
//
// A Channel[T] is created with New and is safe for concurrent use by any
// number of goroutines. Unlike a built-in channel, a closed Channel[T]
// does not drain its buffer on Receive; every operation issued after
// Close returns ErrClosed, including receives against a channel that
// still holds buffered values. See the documentation on Channel.Close
// for the reasoning.
package csp
