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

package peer

// Identifier is able to uniquely identify a peer (e.g. hostport)
type Identifier interface {
	Identifier() string
}

// Peer is a single remote endpoint that may receive attempts.
//
// Peers are shared by every request in the process. A request only borrows a
// peer for the duration of one attempt.
type Peer interface {
	Identifier

	// Score is the current fitness of the peer. Higher is better. A peer
	// whose score is below a request's threshold is not eligible for that
	// request.
	Score() float64

	// StartRequest tells the peer that an attempt is starting. The returned
	// function must be called exactly once with the attempt's outcome.
	StartRequest() (onFinish func(error))
}

// Selector yields the next peer to attempt for a request.
type Selector interface {
	// Next returns the best peer whose identifier is not in excluded and
	// whose score is at least threshold. It returns a
	// *tcherrors.NoEligiblePeerError when no such peer exists.
	//
	// excluded is owned by the caller and scoped to a single request; Next
	// must not retain or modify it.
	Next(excluded map[string]struct{}, threshold float64) (Peer, error)
}

// ListUpdates specifies the updates to be made to a peer pool.
type ListUpdates struct {
	// Additions are the peers that should be added to the pool.
	Additions []Peer

	// Removals are the identifiers that should be removed from the pool.
	Removals []Identifier
}
