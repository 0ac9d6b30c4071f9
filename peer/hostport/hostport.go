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

package hostport

import (
	"go.uber.org/atomic"
	"go.uber.org/tchdispatch/api/peer"
)

// PeerIdentifier uniquely references a host:port combination using a common interface
type PeerIdentifier string

// Identifier generates a (should be) unique identifier for this PeerIdentifier (to use in maps, etc)
func (p PeerIdentifier) Identifier() string {
	return string(p)
}

// Option customizes a Peer.
type Option func(*Peer)

// Score sets the initial score of the peer.
func Score(score float64) Option {
	return func(p *Peer) {
		p.score.Store(score)
	}
}

// Handle attaches an opaque connection handle owned by the transport.
func Handle(handle interface{}) Option {
	return func(p *Peer) {
		p.handle = handle
	}
}

// NewPeer creates a new hostport.Peer from a hostport.PeerIdentifier. Peers
// start with a score of 1.
func NewPeer(pid PeerIdentifier, opts ...Option) *Peer {
	p := &Peer{PeerIdentifier: pid}
	p.score.Store(1)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Peer is a remote host:port with a score and outcome counters. All methods
// are safe for concurrent use.
type Peer struct {
	PeerIdentifier

	handle interface{}

	score     atomic.Float64
	pending   atomic.Int32
	successes atomic.Int64
	failures  atomic.Int64
}

var _ peer.Peer = (*Peer)(nil)

// HostPort surfaces the HostPort in this function, if you want to access the hostport directly (for a downstream call)
func (p *Peer) HostPort() string {
	return string(p.PeerIdentifier)
}

// Handle returns the connection handle the transport attached to this peer,
// or nil.
func (p *Peer) Handle() interface{} {
	return p.handle
}

// Score returns the current score of the peer.
func (p *Peer) Score() float64 {
	return p.score.Load()
}

// SetScore replaces the score of the peer.
func (p *Peer) SetScore(score float64) {
	p.score.Store(score)
}

// Status returns a snapshot of the peer's counters.
func (p *Peer) Status() Status {
	return Status{
		PendingRequestCount: int(p.pending.Load()),
		Successes:           p.successes.Load(),
		Failures:            p.failures.Load(),
	}
}

// StartRequest runs at the beginning of a request and returns a callback for
// when the request finished.
func (p *Peer) StartRequest() func(error) {
	p.pending.Inc()
	var done atomic.Bool
	return func(err error) {
		if done.Swap(true) {
			return
		}
		p.endRequest(err)
	}
}

func (p *Peer) endRequest(err error) {
	p.pending.Dec()
	if err != nil {
		p.failures.Inc()
		return
	}
	p.successes.Inc()
}

// Status is a snapshot of a Peer's counters.
type Status struct {
	// PendingRequestCount is the number of attempts in flight to the peer.
	PendingRequestCount int

	// Successes and Failures count finished attempts by outcome.
	Successes int64
	Failures  int64
}
