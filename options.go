// Copyright 2024 The csp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csp

import "go.uber.org/zap"

// Option configures a Channel[T] at construction time. There is
// deliberately no file- or environment-based configuration: a Channel[T]
// is an in-process primitive, not a service, so its only configuration
// surface is the handful of construction-time knobs below.
type Option func(*options)

type options struct {
	logger *zap.Logger
	label  string
}

func defaultOptions() *options {
	return &options{logger: zap.NewNop()}
}

// WithLogger attaches a structured logger used for Debug-level
// instrumentation of channel lifecycle and rendezvous events. The default
// is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLabel attaches a human-readable name used in log fields, useful
// when a process owns many channels and needs to tell them apart in
// debug output.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
