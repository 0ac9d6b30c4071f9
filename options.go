// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tchdispatch

import (
	"github.com/jonboulle/clockwork"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/tchdispatch/api/backoff"
	intbackoff "go.uber.org/tchdispatch/internal/backoff"
	"go.uber.org/tchdispatch/retry"
	"go.uber.org/zap"
)

// Option customizes the behavior of a Dispatcher.
type Option interface {
	apply(*dispatcherOptions)
}

type optionFunc func(*dispatcherOptions)

func (f optionFunc) apply(opts *dispatcherOptions) { f(opts) }

type dispatcherOptions struct {
	logger       *zap.Logger
	scope        tally.Scope
	tracer       opentracing.Tracer
	clock        clockwork.Clock
	policy       retry.Policy
	backoff      backoff.Strategy
	defaults     *ProcedureDefaults
	defaultFlags retry.Flags
}

func defaultDispatcherOptions() dispatcherOptions {
	return dispatcherOptions{
		logger:       zap.NewNop(),
		scope:        tally.NoopScope,
		tracer:       opentracing.NoopTracer{},
		clock:        clockwork.NewRealClock(),
		policy:       retry.DefaultPolicy,
		backoff:      intbackoff.None,
		defaultFlags: retry.DefaultFlags,
	}
}

// Logger sets a zap Logger that will be used to record attempts and
// terminal failures.
func Logger(logger *zap.Logger) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.logger = logger
	})
}

// Tally sets a Tally scope that will be used to record dispatch metrics.
func Tally(scope tally.Scope) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.scope = scope
	})
}

// Tracer sets the tracer used to record a span per attempt.
func Tracer(tracer opentracing.Tracer) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.tracer = tracer
	})
}

// Clock sets the clock driving per-attempt timeouts, overall deadlines and
// backoff.
func Clock(clock clockwork.Clock) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.clock = clock
	})
}

// Policy replaces the retry decision. The policy is consulted exactly once
// per failed attempt.
func Policy(policy retry.Policy) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.policy = policy
	})
}

// Backoff sets the wait between a failed attempt and the next one. Defaults
// to no wait.
func Backoff(strategy backoff.Strategy) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.backoff = strategy
	})
}

// Overrides sets service and procedure specific attempt settings.
func Overrides(defaults *ProcedureDefaults) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.defaults = defaults
	})
}

// DefaultRetryFlags sets the flags used for requests that do not carry
// the retry flags header. Defaults to retry.DefaultFlags.
func DefaultRetryFlags(flags retry.Flags) Option {
	return optionFunc(func(opts *dispatcherOptions) {
		opts.defaultFlags = flags
	})
}
