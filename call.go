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
	"github.com/opentracing/opentracing-go/ext"
	opentracinglog "github.com/opentracing/opentracing-go/log"
	"go.uber.org/tchdispatch/api/backoff"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/api/transport"
	"go.uber.org/tchdispatch/retry"
	"go.uber.org/tchdispatch/tcherrors"
)

// call is the state of a single request. It is owned by the goroutine
// running Dispatcher.Call.
type call struct {
	d        *Dispatcher
	ctx      context.Context
	req      *transport.Request
	flags    retry.Flags
	settings AttemptSettings
	backoff  backoff.Backoff
	obs      *callObserver

	state    State
	excluded map[string]struct{}
	attempts uint
	lastErr  error

	deadlineAt time.Time
	deadline   clockwork.Timer
}

// attemptResult is what the goroutine sending an attempt reports back.
type attemptResult struct {
	res *transport.Response
	err error
}

// outcome is the event that ended the wait on an attempt or a backoff.
type outcome int

const (
	outcomeDone outcome = iota
	outcomeDeadline
	outcomeCancelled
)

func (c *call) run() (*transport.Response, error) {
	c.deadlineAt = c.d.clock.Now().Add(c.settings.TTL)
	c.deadline = c.d.clock.NewTimer(c.settings.TTL)
	defer c.deadline.Stop()

	c.transition(Attempting)
	for {
		if c.deadlineElapsed() {
			return nil, c.timedOut()
		}

		p, err := c.d.selector.Next(c.excluded, c.settings.ScoreThreshold)
		if err != nil {
			if c.lastErr != nil {
				// The pool ran dry after at least one failure; that failure
				// is what the caller needs to see.
				return nil, c.fail(_reasonNoPeer, c.lastErr)
			}
			return nil, c.fail(_reasonNoPeer, err)
		}
		c.excluded[p.Identifier()] = struct{}{}
		c.attempts++

		result, out := c.attempt(p)
		switch out {
		case outcomeDeadline:
			return nil, c.timedOut()
		case outcomeCancelled:
			return nil, c.cancelled()
		}
		err = result.err
		if err == nil {
			c.transition(Succeeded)
			c.obs.success(c.attempts)
			return result.res, nil
		}

		c.lastErr = err
		c.obs.attemptFailed(p, c.attempts, err)

		// The deadline takes precedence over any retry decision.
		if c.deadlineElapsed() {
			return nil, c.timedOut()
		}
		if !c.d.policy.ShouldRetry(c.flags, err) {
			return nil, c.fail(_reasonNonRetryable, err)
		}
		if c.attempts >= c.settings.MaxAttempts {
			return nil, c.fail(_reasonMaxAttempts, err)
		}

		c.transition(Retrying)
		wait := c.backoff.Duration(c.attempts - 1)
		c.obs.retrying(c.attempts, wait)
		switch c.sleep(wait) {
		case outcomeDeadline:
			return nil, c.timedOut()
		case outcomeCancelled:
			return nil, c.cancelled()
		}
		c.transition(Attempting)
	}
}

// attempt sends the request to p and waits for the first of: the attempt's
// result, the per-attempt timeout, the overall deadline, or the caller
// giving up. The in-flight attempt is cancelled if it loses.
func (c *call) attempt(p peer.Peer) (attemptResult, outcome) {
	c.obs.attempt(p, c.attempts)

	now := c.d.clock.Now()
	timeout := c.settings.TimeoutPerAttempt
	left := c.deadlineAt.Sub(now)
	boundByDeadline := left <= timeout
	if boundByDeadline {
		timeout = left
	}
	expiresAt := now.Add(timeout)

	ctx, span := c.startSpan(p)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	onFinish := p.StartRequest()
	results := make(chan attemptResult, 1)
	go func() {
		res, err := c.d.outbound.Call(ctx, p, c.req)
		results <- attemptResult{res: res, err: err}
	}()

	timer := c.d.clock.NewTimer(c.settings.TimeoutPerAttempt)
	defer timer.Stop()

	var (
		result attemptResult
		out    = outcomeDone
	)
	select {
	case result = <-results:
		if result.err == nil {
			break
		}
		// A peer that honours the TTL it was sent gives up just before we
		// do, so a failure arriving that close to expiry is a timeout.
		expiring := ctx.Err() == context.DeadlineExceeded ||
			expiresAt.Sub(c.d.clock.Now()) <= _timeoutSlack
		switch {
		case c.ctx.Err() != nil:
			out = outcomeCancelled
		case !expiring:
			// An ordinary failure reported by the outbound.
		case boundByDeadline:
			out = outcomeDeadline
		default:
			result.err = c.attemptTimeout(p)
		}
	case <-timer.Chan():
		result.err = c.attemptTimeout(p)
	case <-c.deadline.Chan():
		out = outcomeDeadline
		result.err = tcherrors.TimeoutErrorf("overall deadline elapsed")
	case <-c.ctx.Done():
		out = outcomeCancelled
		result.err = tcherrors.CancelledErrorf("request cancelled by caller")
	}

	onFinish(result.err)
	finishSpan(span, result.err)
	return result, out
}

// _timeoutSlack is how close to the expiry of an attempt its failure must
// arrive to count as a timeout.
const _timeoutSlack = 5 * time.Millisecond

// attemptTimeout is the failure of an attempt that outlived its timeout.
func (c *call) attemptTimeout(p peer.Peer) error {
	return tcherrors.TimeoutErrorf("attempt to peer %q timed out after %v",
		p.Identifier(), c.settings.TimeoutPerAttempt)
}

// sleep waits out a backoff between attempts.
func (c *call) sleep(wait time.Duration) outcome {
	if wait <= 0 {
		return outcomeDone
	}

	timer := c.d.clock.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return outcomeDone
	case <-c.deadline.Chan():
		return outcomeDeadline
	case <-c.ctx.Done():
		return outcomeCancelled
	}
}

func (c *call) deadlineElapsed() bool {
	return !c.d.clock.Now().Before(c.deadlineAt)
}

func (c *call) transition(to State) {
	c.obs.transition(c.state, to)
	c.state = to
}

func (c *call) fail(reason string, err error) error {
	c.transition(Failed)
	c.obs.failed(reason, c.attempts, err)
	return err
}

func (c *call) timedOut() error {
	c.transition(TimedOut)
	err := &tcherrors.TimeoutError{
		Service:   c.req.Service,
		Procedure: c.req.Procedure,
		TTL:       c.settings.TTL,
		Attempts:  c.attempts,
	}
	c.obs.failed(_reasonTimeout, c.attempts, err)
	return err
}

// cancelled reports the caller giving up. A caller deadline is the overall
// deadline as far as the caller can tell, so it surfaces as a timeout.
func (c *call) cancelled() error {
	if c.ctx.Err() == context.DeadlineExceeded {
		return c.timedOut()
	}
	c.transition(Failed)
	err := c.ctx.Err()
	c.obs.failed(_reasonCancelled, c.attempts, err)
	return err
}

func (c *call) startSpan(p peer.Peer) (context.Context, opentracing.Span) {
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(c.ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}

	span := c.d.tracer.StartSpan(
		c.req.Procedure,
		opentracing.StartTime(c.d.clock.Now()),
		opentracing.ChildOf(parent),
		opentracing.Tags{
			"rpc.caller":    c.req.Caller,
			"rpc.service":   c.req.Service,
			"rpc.format":    string(c.req.Format),
			"rpc.transport": "tchannel",
			"rpc.attempt":   c.attempts,
			"peer.hostport": p.Identifier(),
		},
	)
	ext.PeerService.Set(span, c.req.Service)
	ext.SpanKindRPCClient.Set(span)
	return opentracing.ContextWithSpan(c.ctx, span), span
}

func finishSpan(span opentracing.Span, err error) {
	if err != nil {
		span.SetTag("error", true)
		span.LogFields(opentracinglog.String("event", err.Error()))
	}
	span.Finish()
}
