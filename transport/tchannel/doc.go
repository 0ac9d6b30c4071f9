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

// Package tchannel sends dispatcher attempts over the TChannel protocol.
//
// An Outbound wraps a *tchannel.Channel owned by the caller. Peers are
// created with Outbound.NewPeer so that each one carries the channel's root
// peer for its host:port.
//
//	ch, err := tchannel.NewChannel("myservice", nil)
//	out := tchtransport.NewOutbound(ch)
//	list := scorelist.New()
//	list.Add(out.NewPeer("127.0.0.1:4040"))
//	d := tchdispatch.NewDispatcher(list, out)
//
// Request headers, including the "re" retry flags, are written to arg2:
// JSON encoded for the json and http formats, and as
//
//	nh:2 (k~2 v~2){nh}
//
// for every other format. The body is written to arg3 as is. The response's
// arg2 and arg3 are returned unparsed; DecodeHeaders reads a header blob.
//
// System errors of the remote are reported as *tcherrors.ProtocolError with
// the same code and message. A deadline exceeded while waiting is a timeout,
// a cancelled context is cancelled, and failing to reach the peer at all is
// a network error.
package tchannel
