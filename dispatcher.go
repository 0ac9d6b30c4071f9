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
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/tchdispatch/api/backoff"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/api/transport"
	"go.uber.org/tchdispatch/retry"
	"go.uber.org/tchdispatch/tcherrors"
)

// Dispatcher sends requests to peers picked by a peer.Selector and retries
// failed attempts on other peers.
//
// A Dispatcher is safe for concurrent use. Requests share the selector's
// pool but each has its own exclusion set and deadline.
type Dispatcher struct {
	selector peer.Selector
	outbound transport.UnaryOutbound

	clock        clockwork.Clock
	tracer       opentracing.Tracer
	policy       retry.Policy
	backoff      backoff.Strategy
	defaults     *ProcedureDefaults
	defaultFlags retry.Flags
	observer     *observer
}

// NewDispatcher builds a Dispatcher over the given peers and outbound.
func NewDispatcher(selector peer.Selector, outbound transport.UnaryOutbound, opts ...Option) *Dispatcher {
	options := defaultDispatcherOptions()
	for _, opt := range opts {
		opt.apply(&options)
	}

	return &Dispatcher{
		selector:     selector,
		outbound:     outbound,
		clock:        options.clock,
		tracer:       options.tracer,
		policy:       options.policy,
		backoff:      options.backoff,
		defaults:     options.defaults,
		defaultFlags: options.defaultFlags,
		observer:     newObserver(options.logger, options.scope),
	}
}

// Call sends req and waits for its terminal outcome.
//
// Call returns the first successful response. Otherwise it returns a
// *tcherrors.TimeoutError if the overall deadline elapsed, the last
// attempt's error if the request ran out of attempts, peers or retryable
// failures, or a *tcherrors.NoEligiblePeerError if no peer could be tried.
// If ctx is cancelled, Call stops retrying and returns ctx.Err().
func (d *Dispatcher) Call(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if err := transport.ValidateRequest(req); err != nil {
		d.observer.failure(_reasonBadRequest)
		return nil, err
	}

	flags := d.defaultFlags
	if v, ok := req.Headers.Get(retry.HeaderKey); ok {
		parsed, err := retry.ParseFlags(v)
		if err != nil {
			d.observer.failure(_reasonBadRequest)
			return nil, tcherrors.BadRequestErrorf("invalid %q header: %v", retry.HeaderKey, err)
		}
		flags = parsed
	}

	settings := d.defaults.Settings(req)
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < settings.TTL {
			settings.TTL = left
		}
	}

	c := &call{
		d:        d,
		ctx:      ctx,
		req:      req,
		flags:    flags,
		settings: settings,
		backoff:  d.backoff.Backoff(),
		excluded: make(map[string]struct{}, settings.MaxAttempts),
		obs:      d.observer.begin(req),
		state:    Idle,
	}
	return c.run()
}
