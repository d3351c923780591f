// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

import "go.uber.org/zap"

// debugLogger mirrors the Go runtime's own runtime/chan.go debugChan gate:
// there, it is a compile-time false that guards plain print() calls on
// the hot send/receive path. Here the gate is runtime-toggleable (each
// Channel[T] carries its own *zap.Logger, defaulting to a no-op) and the
// output is structured rather than printed, but the intent is identical:
// instrumentation that costs nothing when disabled and never affects
// correctness.
type debugLogger struct {
	log   *zap.Logger
	label string
}

func newDebugLogger(o *options) debugLogger {
	return debugLogger{log: o.logger, label: o.label}
}

func (d debugLogger) fields(extra ...zap.Field) []zap.Field {
	if d.label == "" {
		return extra
	}
	return append([]zap.Field{zap.String("channel", d.label)}, extra...)
}

func (d debugLogger) created(capacity int) {
	d.log.Debug("channel created", d.fields(zap.Int("capacity", capacity))...)
}

func (d debugLogger) closed() {
	d.log.Debug("channel closed", d.fields()...)
}

func (d debugLogger) destroyed() {
	d.log.Debug("channel destroyed", d.fields()...)
}

func (d debugLogger) rendezvousInitiated(op direction) {
	d.log.Debug("rendezvous initiated", d.fields(zap.String("op", dirString(op)))...)
}

func (d debugLogger) rendezvousCommitted(op direction) {
	d.log.Debug("rendezvous committed", d.fields(zap.String("op", dirString(op)))...)
}

func (d debugLogger) selectCommitted(index int) {
	d.log.Debug("select committed", d.fields(zap.Int("index", index))...)
}

func dirString(dir direction) string {
	if dir == dirSend {
		return "send"
	}
	return "recv"
}
