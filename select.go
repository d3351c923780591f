// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

// registrable is the minimal, type-erased surface Select needs from a
// Channel[T] of any element type T. It is the one place this package
// falls back to an opaque-handle style of interface, exactly as the
// specification allows for a typed, non-generic setting: Select must be
// able to hold a slice of Case values spanning channels of different
// element types in one call, which Go generics cannot express directly
// over a single type parameter.
type registrable interface {
	register(dir direction, tok *token)
	unregister(dir direction, tok *token)
	notifySelected(index int)
}

func (c *Channel[T]) register(dir direction, tok *token)   { c.reg.register(dir, tok) }
func (c *Channel[T]) unregister(dir direction, tok *token) { c.reg.unregister(dir, tok) }
func (c *Channel[T]) notifySelected(index int)             { c.dbg.selectCommitted(index) }

// Case is one (channel, direction, payload) triple in a Select call.
// Construct one with SendCase or RecvCase.
type Case struct {
	dir direction
	ch  registrable
	try func() error
}

// SendCase builds a Case that attempts to send v on ch.
func SendCase[T any](ch *Channel[T], v T) Case {
	return Case{
		dir: dirSend,
		ch:  ch,
		try: func() error { return ch.TrySend(v) },
	}
}

// RecvCase builds a Case that attempts to receive from ch into *out. out
// is only written when the case is the one Select commits to.
func RecvCase[T any](ch *Channel[T], out *T) Case {
	return Case{
		dir: dirRecv,
		ch:  ch,
		try: func() error {
			v, err := ch.TryReceive()
			if err == nil {
				*out = v
			}
			return err
		},
	}
}

// Select blocks until one of cases is ready — the matching non-blocking
// send or receive on some case's channel would not return ErrFull/
// ErrEmpty — or any listed channel is closed, whichever happens first.
// It returns the index of the case that resolved and that case's status:
// nil on a successful transfer, ErrClosed if the first non-would-block
// status encountered was a close.
//
// Cases are tried in the order given on every pass; if multiple cases
// are simultaneously ready, the lowest-indexed one is chosen.
func Select(cases ...Case) (int, error) {
	if len(cases) == 0 {
		return 0, ErrGeneric
	}

	tok := newToken()
	for _, cs := range cases {
		cs.ch.register(cs.dir, tok)
	}
	defer func() {
		for _, cs := range cases {
			cs.ch.unregister(cs.dir, tok)
		}
	}()

	for {
		for i, cs := range cases {
			err := cs.try()
			if err == ErrFull || err == ErrEmpty {
				continue
			}
			cases[i].ch.notifySelected(i)
			return i, err
		}
		tok.wait()
	}
}
