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
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/api/transport"
	"go.uber.org/tchdispatch/retry"
	"go.uber.org/zap"
)

// Reasons a request failed, used to tag the failures counter.
const (
	_reasonNonRetryable = "non_retryable"
	_reasonMaxAttempts  = "max_attempts"
	_reasonNoPeer       = "no_peer"
	_reasonTimeout      = "timeout"
	_reasonCancelled    = "cancelled"
	_reasonBadRequest   = "bad_request"
)

type observer struct {
	logger *zap.Logger

	callCounter    tally.Counter
	attemptCounter tally.Counter
	successCounter tally.Counter
	retryCounter   tally.Counter

	// scope holds the counters tagged per failure.
	scope tally.Scope
}

func newObserver(logger *zap.Logger, scope tally.Scope) *observer {
	return &observer{
		logger:         logger,
		callCounter:    scope.Counter("calls"),
		attemptCounter: scope.Counter("attempts"),
		successCounter: scope.Counter("successes"),
		retryCounter:   scope.Counter("retries"),
		scope:          scope,
	}
}

// begin starts observing a single request.
func (o *observer) begin(req *transport.Request) *callObserver {
	o.callCounter.Inc(1)
	return &callObserver{
		observer: o,
		logger: o.logger.With(
			zap.String("caller", req.Caller),
			zap.String("service", req.Service),
			zap.String("procedure", req.Procedure),
		),
	}
}

func (o *observer) failure(reason string) {
	o.scope.Tagged(map[string]string{"reason": reason}).Counter("failures").Inc(1)
}

func (o *observer) attemptFailure(category retry.Category) {
	o.scope.Tagged(map[string]string{"category": category.String()}).Counter("attempt_failures").Inc(1)
}

type callObserver struct {
	*observer

	logger *zap.Logger
}

func (c *callObserver) transition(from, to State) {
	c.logger.Debug("request state changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to))
}

func (c *callObserver) attempt(p peer.Peer, n uint) {
	c.attemptCounter.Inc(1)
	c.logger.Debug("sending attempt",
		zap.String("peer", p.Identifier()),
		zap.Uint("attempt", n))
}

func (c *callObserver) attemptFailed(p peer.Peer, n uint, err error) {
	category := retry.ClassifyError(err)
	c.attemptFailure(category)
	c.logger.Debug("attempt failed",
		zap.String("peer", p.Identifier()),
		zap.Uint("attempt", n),
		zap.Stringer("category", category),
		zap.Error(err))
}

func (c *callObserver) retrying(n uint, wait time.Duration) {
	c.retryCounter.Inc(1)
	c.logger.Debug("retrying request",
		zap.Uint("attempts", n),
		zap.Duration("backoff", wait))
}

func (c *callObserver) success(n uint) {
	c.successCounter.Inc(1)
	c.logger.Debug("request succeeded", zap.Uint("attempts", n))
}

func (c *callObserver) failed(reason string, n uint, err error) {
	c.failure(reason)
	c.logger.Info("request failed",
		zap.String("reason", reason),
		zap.Uint("attempts", n),
		zap.Error(err))
}
