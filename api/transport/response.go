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

package transport

import (
	"context"
	"sync"
)

// Response is the result of a successful attempt.
type Response struct {
	// Header resolves to the response header blob (arg2).
	Header *Value

	// Body resolves to the response payload (arg3).
	Body *Value

	// ApplicationError is true if the remote reported an application level
	// failure. Application errors are responses, not retryable failures.
	ApplicationError bool
}

// NewResponse builds a Response with unresolved header and body values.
func NewResponse() *Response {
	return &Response{
		Header: NewValue(),
		Body:   NewValue(),
	}
}

// Value is a byte payload that is resolved exactly once and may be awaited
// by any number of readers.
type Value struct {
	once  sync.Once
	ready chan struct{}

	b   []byte
	err error
}

// NewValue returns an unresolved Value.
func NewValue() *Value {
	return &Value{ready: make(chan struct{})}
}

// ResolvedValue returns a Value already resolved with b.
func ResolvedValue(b []byte) *Value {
	v := NewValue()
	v.Resolve(b, nil)
	return v
}

// Resolve sets the payload, or the error that prevented reading it. Only the
// first call has any effect; it reports whether this call resolved the Value.
func (v *Value) Resolve(b []byte, err error) (resolved bool) {
	v.once.Do(func() {
		v.b, v.err = b, err
		close(v.ready)
		resolved = true
	})
	return resolved
}

// Resolved reports whether the Value has been resolved.
func (v *Value) Resolved() bool {
	select {
	case <-v.ready:
		return true
	default:
		return false
	}
}

// Get blocks until the Value is resolved or ctx is done.
func (v *Value) Get(ctx context.Context) ([]byte, error) {
	select {
	case <-v.ready:
		return v.b, v.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
