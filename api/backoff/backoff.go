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

// Package backoff defines how long the dispatcher waits between a failed
// attempt and the next attempt against a different peer.
package backoff

import "time"

// Strategy is a factory for backoff algorithms. The dispatcher obtains one
// Backoff per request.
//
// The strategy guarantees that these backoff instances are either
// referentially independent and lockless or thread safe.
type Strategy interface {
	Backoff() Backoff
}

// Backoff is an algorithm for determining how long to wait after a number of
// failed attempts. Instances are used by a single request's attempt loop.
type Backoff interface {
	Duration(attempts uint) time.Duration
}

// BackoffFunc adapts a function into a Backoff.
type BackoffFunc func(attempts uint) time.Duration

// Duration implements Backoff.
func (f BackoffFunc) Duration(attempts uint) time.Duration { return f(attempts) }
