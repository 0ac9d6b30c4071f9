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

// Package scorelist provides a peer.Selector over a pool of scored peers.
//
// Next returns the highest scoring peer that meets the request's threshold
// and has not been tried by the request yet. Ties go to the peer that was
// added first.
package scorelist

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/tcherrors"
	"go.uber.org/zap"
)

type options struct {
	capacity int
	logger   *zap.Logger
}

var defaultOptions = options{
	capacity: 10,
}

// Option customizes the behavior of a list.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(options *options) { f(options) }

// Capacity specifies the default capacity of the underlying
// data structures for this list
//
// Defaults to 10.
func Capacity(capacity int) Option {
	return optionFunc(func(options *options) {
		options.capacity = capacity
	})
}

// Logger specifies a logger.
func Logger(logger *zap.Logger) Option {
	return optionFunc(func(options *options) {
		options.logger = logger
	})
}

// List is a pool of peers shared by every request of a process.
type List struct {
	lock sync.RWMutex

	// peers is in insertion order.
	peers []peer.Peer
	index map[string]int

	logger *zap.Logger
}

var _ peer.Selector = (*List)(nil)

// New creates an empty List.
func New(opts ...Option) *List {
	options := defaultOptions
	for _, o := range opts {
		o.apply(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &List{
		peers:  make([]peer.Peer, 0, options.capacity),
		index:  make(map[string]int, options.capacity),
		logger: logger,
	}
}

// Add adds a peer to the pool.
func (pl *List) Add(p peer.Peer) error {
	pl.lock.Lock()
	defer pl.lock.Unlock()
	return pl.add(p)
}

// Remove removes the peer with the given identifier from the pool.
func (pl *List) Remove(id peer.Identifier) error {
	pl.lock.Lock()
	defer pl.lock.Unlock()
	return pl.remove(id)
}

// Update applies removals then additions. Every change that can be applied
// is; the errors of those that cannot are combined.
func (pl *List) Update(updates peer.ListUpdates) error {
	pl.logger.Debug("peer list update",
		zap.Int("additions", len(updates.Additions)),
		zap.Int("removals", len(updates.Removals)))

	if len(updates.Additions) == 0 && len(updates.Removals) == 0 {
		return nil
	}

	pl.lock.Lock()
	defer pl.lock.Unlock()

	var errs error
	for _, id := range updates.Removals {
		errs = multierr.Append(errs, pl.remove(id))
	}
	for _, p := range updates.Additions {
		errs = multierr.Append(errs, pl.add(p))
	}
	return errs
}

func (pl *List) add(p peer.Peer) error {
	id := p.Identifier()
	if _, ok := pl.index[id]; ok {
		return peer.ErrPeerAddAlreadyInList(id)
	}
	pl.index[id] = len(pl.peers)
	pl.peers = append(pl.peers, p)
	return nil
}

func (pl *List) remove(pid peer.Identifier) error {
	id := pid.Identifier()
	i, ok := pl.index[id]
	if !ok {
		return peer.ErrPeerRemoveNotInList(id)
	}

	copy(pl.peers[i:], pl.peers[i+1:])
	pl.peers[len(pl.peers)-1] = nil
	pl.peers = pl.peers[:len(pl.peers)-1]

	delete(pl.index, id)
	for j := i; j < len(pl.peers); j++ {
		pl.index[pl.peers[j].Identifier()] = j
	}
	return nil
}

// Get returns the peer with the given identifier.
func (pl *List) Get(id string) (peer.Peer, bool) {
	pl.lock.RLock()
	defer pl.lock.RUnlock()

	i, ok := pl.index[id]
	if !ok {
		return nil, false
	}
	return pl.peers[i], true
}

// Len returns the number of peers in the pool.
func (pl *List) Len() int {
	pl.lock.RLock()
	defer pl.lock.RUnlock()
	return len(pl.peers)
}

// Peers returns a copy of the pool in insertion order.
func (pl *List) Peers() []peer.Peer {
	pl.lock.RLock()
	defer pl.lock.RUnlock()

	peers := make([]peer.Peer, len(pl.peers))
	copy(peers, pl.peers)
	return peers
}

// Next returns the best eligible peer. A peer is eligible if its identifier
// is not in excluded and its score is at least threshold.
func (pl *List) Next(excluded map[string]struct{}, threshold float64) (peer.Peer, error) {
	pl.lock.RLock()
	defer pl.lock.RUnlock()

	var (
		best      peer.Peer
		bestScore float64
	)
	for _, p := range pl.peers {
		if _, skip := excluded[p.Identifier()]; skip {
			continue
		}
		score := p.Score()
		if score < threshold {
			continue
		}
		// Strictly greater keeps the earliest peer among equals.
		if best == nil || score > bestScore {
			best, bestScore = p, score
		}
	}

	if best == nil {
		return nil, &tcherrors.NoEligiblePeerError{
			Threshold: threshold,
			Excluded:  len(excluded),
		}
	}
	return best, nil
}
