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

package tchannel

import (
	"context"
	"time"

	"github.com/uber/tchannel-go"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/api/transport"
	"go.uber.org/tchdispatch/internal/lifecycle"
	"go.uber.org/tchdispatch/peer/hostport"
	"go.uber.org/tchdispatch/tcherrors"
	"go.uber.org/zap"
)

var (
	errOutboundNotStarted = tcherrors.UnexpectedErrorf("tchannel outbound has not been started or was stopped")
	errDeadlineRequired   = tcherrors.BadRequestErrorf("tchannel calls require a deadline on the context")
)

// OutboundOption customizes an Outbound.
type OutboundOption func(*Outbound)

// Logger sets the logger used to record failed calls.
func Logger(logger *zap.Logger) OutboundOption {
	return func(o *Outbound) {
		o.logger = logger
	}
}

// Outbound sends requests to TChannel peers over a shared channel.
type Outbound struct {
	ch     *tchannel.Channel
	logger *zap.Logger
	once   *lifecycle.Once
}

var (
	_ transport.UnaryOutbound = (*Outbound)(nil)
	_ transport.Lifecycle     = (*Outbound)(nil)
)

// NewOutbound builds an Outbound over ch. Stopping the outbound closes ch.
func NewOutbound(ch *tchannel.Channel, opts ...OutboundOption) *Outbound {
	o := &Outbound{
		ch:     ch,
		logger: zap.NewNop(),
		once:   lifecycle.NewOnce(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Channel returns the underlying channel.
func (o *Outbound) Channel() *tchannel.Channel {
	return o.ch
}

// NewPeer creates a peer for the given host:port whose handle is the
// channel's root peer for that address.
func (o *Outbound) NewPeer(hp string, opts ...hostport.Option) *hostport.Peer {
	opts = append(opts, hostport.Handle(o.ch.RootPeers().GetOrAdd(hp)))
	return hostport.NewPeer(hostport.PeerIdentifier(hp), opts...)
}

// Start starts the outbound.
func (o *Outbound) Start() error {
	return o.once.Start(nil)
}

// Stop stops the outbound and closes its channel.
func (o *Outbound) Stop() error {
	return o.once.Stop(func() error {
		o.ch.Close()
		return nil
	})
}

// IsRunning returns whether the outbound is running.
func (o *Outbound) IsRunning() bool {
	return o.once.IsRunning()
}

// Call sends a single attempt of req to p.
func (o *Outbound) Call(ctx context.Context, p peer.Peer, req *transport.Request) (*transport.Response, error) {
	if !o.IsRunning() {
		return nil, errOutboundNotStarted
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errDeadlineRequired
	}

	res, err := o.call(ctx, o.rootPeer(p), req)
	if err != nil {
		err = toProtocolError(ctx, time.Now(), err)
		o.logger.Debug("tchannel call failed",
			zap.String("peer", p.Identifier()),
			zap.String("service", req.Service),
			zap.String("procedure", req.Procedure),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (o *Outbound) call(ctx context.Context, tp *tchannel.Peer, req *transport.Request) (*transport.Response, error) {
	format := tchannel.Format(req.Format)
	if format == "" {
		format = tchannel.Raw
	}

	call, err := tp.BeginCall(ctx, req.Service, req.Procedure, &tchannel.CallOptions{Format: format})
	if err != nil {
		return nil, err
	}

	if err := writeHeaders(format, req.Headers, call.Arg2Writer); err != nil {
		return nil, err
	}
	if err := tchannel.NewArgWriter(call.Arg3Writer()).Write(req.Body); err != nil {
		return nil, err
	}

	res := call.Response()
	var header, body []byte
	if err := tchannel.NewArgReader(res.Arg2Reader()).Read(&header); err != nil {
		return nil, err
	}
	if err := tchannel.NewArgReader(res.Arg3Reader()).Read(&body); err != nil {
		return nil, err
	}

	return &transport.Response{
		Header:           transport.ResolvedValue(header),
		Body:             transport.ResolvedValue(body),
		ApplicationError: res.ApplicationError(),
	}, nil
}

// rootPeer returns the channel peer for p, reusing the handle attached by
// NewPeer if there is one.
func (o *Outbound) rootPeer(p peer.Peer) *tchannel.Peer {
	if h, ok := p.(interface{ Handle() interface{} }); ok {
		if tp, ok := h.Handle().(*tchannel.Peer); ok {
			return tp
		}
	}
	return o.ch.RootPeers().GetOrAdd(p.Identifier())
}
