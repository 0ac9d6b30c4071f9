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

// Package tchdispatch dispatches TChannel requests to a pool of scored peers,
// retrying failed attempts on peers the request has not tried yet.
//
// A Dispatcher sends each request to the best eligible peer of its
// peer.Selector. When an attempt fails, the failure is classified
// (see package retry) and the request's retry flags, carried in the "re"
// header, decide whether another peer gets a try. Every request is bounded
// by a maximum number of attempts, a per-attempt timeout and an overall
// deadline (TTL).
//
//	d := tchdispatch.NewDispatcher(list, outbound,
//		tchdispatch.Logger(logger),
//		tchdispatch.Tally(scope),
//	)
//	res, err := d.Call(ctx, &transport.Request{
//		Caller:    "client",
//		Service:   "keyvalue",
//		Procedure: "get",
//		Headers:   transport.NewHeaders().With(retry.HeaderKey, "ct"),
//		Body:      []byte("key"),
//	})
//
// Callers distinguish the terminal failures with package tcherrors: a
// *tcherrors.TimeoutError means the overall deadline elapsed, a
// *tcherrors.ProtocolError is the last failure reported for the request,
// and a *tcherrors.NoEligiblePeerError means no peer could be tried at all.
package tchdispatch
