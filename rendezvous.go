// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

// This file implements the unbuffered (zero-capacity) rendezvous path. A
// send and a receive must each return nil only after having exchanged
// exactly one value with a distinct peer; at most one rendezvous may be
// in flight on a given channel at a time.
//
// The Go runtime's own chan.go performs the equivalent hand-off by
// parking a sudog on c.recvq/c.sendq and having the peer dequeue it
// directly; here, with no runtime-internal scheduler to park a goroutine
// against, the three explicit stages below (idle / initiated /
// committing) and the stageDone/stageFree condition variables play that
// role. The goto-based retry of the C original is modeled as the
// re-entrant for loop below rather than a literal label, per the design
// notes: the three stages are states, not code positions.

func opposite(d direction) direction {
	if d == dirSend {
		return dirRecv
	}
	return dirSend
}

// rendezvousOp drives one blocking send or receive against an unbuffered
// channel. payload is the caller's slot: for a send it holds the value to
// transfer (read by whichever side commits the transfer), for a receive
// it is written into by whichever side commits the transfer.
func (c *Channel[T]) rendezvousOp(d direction, payload *T) error {
	c.mu.Lock()
	for {
		if c.closed.Load() {
			c.mu.Unlock()
			return ErrClosed
		}

		switch c.stage {
		case stageIdle:
			// Become the initiator: publish our slot and wait for a peer
			// of the opposite direction to commit the transfer.
			c.stage = stageInitiated
			c.op = d
			c.slot = payload
			c.dbg.rendezvousInitiated(d)

			c.reg.broadcast(opposite(d))
			if d == dirSend {
				c.notEmpty.Broadcast()
			} else {
				c.notFull.Broadcast()
			}

			for c.stage == stageInitiated && !c.closed.Load() {
				c.stageDone.Wait()
			}

			if c.stage == stageCommitting {
				// A completer consumed our slot; the transfer already
				// happened regardless of any concurrent close.
				c.stage = stageIdle
				c.op = dirNone
				c.slot = nil
				c.stageFree.Broadcast()
				c.mu.Unlock()
				c.dbg.rendezvousCommitted(d)
				return nil
			}

			// Woken by Close with nobody completing us: back out without
			// having committed anything.
			c.stage = stageIdle
			c.op = dirNone
			c.slot = nil
			c.stageFree.Broadcast()
			c.mu.Unlock()
			return ErrClosed

		case stageInitiated:
			if c.op != d {
				// Become the completer: perform the transfer through the
				// initiator's slot, then release it.
				if d == dirSend {
					*c.slot = *payload
				} else {
					*payload = *c.slot
				}
				c.stage = stageCommitting
				c.stageDone.Signal()
				c.mu.Unlock()
				c.dbg.rendezvousCommitted(d)
				return nil
			}
			// Same direction as the current initiator: wait for the slot
			// to free up and retry.
			c.parkSameDirection(d)

		case stageCommitting:
			// Previous rendezvous has not yet been torn down by its
			// initiator. Park alongside same-direction waiters and
			// retry once it is.
			c.parkSameDirection(d)
		}
	}
}

// parkSameDirection waits on stageFree, tracking d in the appropriate
// waiter counter so non-blocking callers can see that a same-direction
// peer is parked.
func (c *Channel[T]) parkSameDirection(d direction) {
	if d == dirSend {
		c.sendWaiters++
		c.stageFree.Wait()
		c.sendWaiters--
		return
	}
	c.recvWaiters++
	c.stageFree.Wait()
	c.recvWaiters--
}

func (c *Channel[T]) rendezvousSend(v T) error {
	return c.rendezvousOp(dirSend, &v)
}

func (c *Channel[T]) rendezvousReceive() (T, error) {
	var out T
	err := c.rendezvousOp(dirRecv, &out)
	return out, err
}

// rendezvousTrySend and rendezvousTryReceive implement the non-blocking
// variants described in the specification. Both give a parked opposite-
// direction peer a brief chance to reach stageInitiated (one bounded
// Cond.Wait/Signal round trip) before declaring the channel full/empty,
// so a receiver that is a scheduling tick away from committing does not
// cause a spurious ErrFull/ErrEmpty. When no rendezvous is in flight but
// a Select is registered for the opposite direction, they instead run the
// blocking protocol as initiator and return only once that rendezvous
// completes or the channel is closed. Both details are deliberate,
// documented deviations from a "strictly non-blocking" reading of
// TrySend/TryReceive; see DESIGN.md.
func (c *Channel[T]) rendezvousTrySend(v T) error {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return ErrClosed
	}

	if c.stage == stageIdle && c.recvWaiters > 0 && !c.reg.hasToken(dirRecv) {
		c.notFull.Wait()
		if c.closed.Load() {
			c.mu.Unlock()
			return ErrClosed
		}
	}

	if c.stage == stageInitiated && c.op == dirRecv {
		*c.slot = v
		c.stage = stageCommitting
		c.stageDone.Signal()
		c.mu.Unlock()
		c.dbg.rendezvousCommitted(dirSend)
		return nil
	}
	if c.reg.hasToken(dirRecv) && c.stage == stageIdle {
		// No blocked receiver yet, but a Select is registered and
		// waiting; become the initiator exactly as the blocking path
		// would, then hand off to the generic wait loop so the eventual
		// completer (a receiving Select) can commit against us.
		c.mu.Unlock()
		return c.rendezvousOp(dirSend, &v)
	}

	c.mu.Unlock()
	return ErrFull
}

func (c *Channel[T]) rendezvousTryReceive() (T, error) {
	var zero T
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return zero, ErrClosed
	}

	if c.stage == stageIdle && c.sendWaiters > 0 && !c.reg.hasToken(dirSend) {
		c.notEmpty.Wait()
		if c.closed.Load() {
			c.mu.Unlock()
			return zero, ErrClosed
		}
	}

	if c.stage == stageInitiated && c.op == dirSend {
		out := *c.slot
		c.stage = stageCommitting
		c.stageDone.Signal()
		c.mu.Unlock()
		c.dbg.rendezvousCommitted(dirRecv)
		return out, nil
	}
	if c.reg.hasToken(dirSend) && c.stage == stageIdle {
		c.mu.Unlock()
		var out T
		err := c.rendezvousOp(dirRecv, &out)
		return out, err
	}

	c.mu.Unlock()
	return zero, ErrEmpty
}
