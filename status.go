// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

// status is the sentinel error type shared by every exported entry point
// in this package. Callers compare against the exported Err* values with
// errors.Is (or ==, since status values are never wrapped).
type status string

func (s status) Error() string { return string(s) }

// Exported sentinel errors. A nil error return is the success case.
const (
	// ErrClosed is returned by any operation attempted on a channel that
	// has already been closed, including an operation that was parked
	// before Close was called.
	ErrClosed status = "csp: channel closed"

	// ErrFull is returned by TrySend when the channel cannot accept a
	// value without blocking.
	ErrFull status = "csp: channel full"

	// ErrEmpty is returned by TryReceive when the channel has no value
	// available without blocking.
	ErrEmpty status = "csp: channel empty"

	// ErrDestroy is returned by Destroy when called on a channel that has
	// not yet been closed.
	ErrDestroy status = "csp: destroy called on open channel"

	// ErrGeneric reports programmer misuse that cannot be attributed to
	// channel state: an empty Select call. SendCase and RecvCase do not
	// check for a nil Channel, so that case is not reported this way.
	ErrGeneric status = "csp: invalid use of channel primitive"
)
