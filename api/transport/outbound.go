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

	"go.uber.org/tchdispatch/api/peer"
)

// Lifecycle objects are started and stopped, typically by the owner of the
// resources they hold.
type Lifecycle interface {
	Start() error
	Stop() error
	IsRunning() bool
}

// UnaryOutbound sends a single attempt of a request to a chosen peer.
type UnaryOutbound interface {
	// Call sends the request to p and returns its response.
	//
	// Call MUST return promptly once ctx is done; the dispatcher cancels ctx
	// when an attempt loses its race against a timer. Remote failures MUST
	// be reported as *tcherrors.ProtocolError. This MUST be safe to call
	// concurrently.
	Call(ctx context.Context, p peer.Peer, req *Request) (*Response, error)
}

// UnaryOutboundFunc adapts a function into a UnaryOutbound.
type UnaryOutboundFunc func(context.Context, peer.Peer, *Request) (*Response, error)

// Call implements UnaryOutbound.
func (f UnaryOutboundFunc) Call(ctx context.Context, p peer.Peer, req *Request) (*Response, error) {
	return f(ctx, p, req)
}
