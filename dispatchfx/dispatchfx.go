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

// Package dispatchfx provides a TChannel dispatcher, its outbound and its
// peer pool to an fx application.
//
// The application supplies a *dispatchconfig.Config; a *zap.Logger, an
// opentracing.Tracer and a tally.Scope are used when present.
//
//	fx.New(
//		fx.Provide(func() (*dispatchconfig.Config, error) {
//			return dispatchconfig.LoadYAML(data)
//		}),
//		dispatchfx.Module,
//		fx.Invoke(func(d *tchdispatch.Dispatcher) { ... }),
//	)
package dispatchfx

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"github.com/uber/tchannel-go"
	"go.uber.org/fx"
	"go.uber.org/tchdispatch"
	"go.uber.org/tchdispatch/api/peer"
	"go.uber.org/tchdispatch/dispatchconfig"
	"go.uber.org/tchdispatch/peer/scorelist"
	tchtransport "go.uber.org/tchdispatch/transport/tchannel"
	"go.uber.org/zap"
)

// Module provides a *tchdispatch.Dispatcher and starts its outbound with
// the application.
var Module = fx.Options(
	fx.Provide(NewOutbound),
	fx.Provide(NewPeerList),
	fx.Provide(NewDispatcher),
)

// OutboundParams defines the dependencies of NewOutbound.
type OutboundParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *dispatchconfig.Config
	Logger    *zap.Logger        `optional:"true"`
	Tracer    opentracing.Tracer `optional:"true"`
}

// OutboundResult defines the values produced by NewOutbound.
type OutboundResult struct {
	fx.Out

	Outbound *tchtransport.Outbound
}

// NewOutbound creates a TChannel channel named after the configured service
// and an outbound over it. The outbound starts and stops with the
// application.
func NewOutbound(p OutboundParams) (OutboundResult, error) {
	ch, err := tchannel.NewChannel(p.Config.Service, &tchannel.ChannelOptions{
		Tracer: p.Tracer,
	})
	if err != nil {
		return OutboundResult{}, err
	}

	var opts []tchtransport.OutboundOption
	if p.Logger != nil {
		opts = append(opts, tchtransport.Logger(p.Logger.Named("tchannel")))
	}
	out := tchtransport.NewOutbound(ch, opts...)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return out.Start()
		},
		OnStop: func(context.Context) error {
			return out.Stop()
		},
	})
	return OutboundResult{Outbound: out}, nil
}

// PeerListParams defines the dependencies of NewPeerList.
type PeerListParams struct {
	fx.In

	Config   *dispatchconfig.Config
	Outbound *tchtransport.Outbound
	Logger   *zap.Logger `optional:"true"`
}

// PeerListResult defines the values produced by NewPeerList.
type PeerListResult struct {
	fx.Out

	List     *scorelist.List
	Selector peer.Selector
}

// NewPeerList builds the peer pool from the configured peers. The List is
// provided so that the application can update the pool at runtime.
func NewPeerList(p PeerListParams) (PeerListResult, error) {
	var opts []scorelist.Option
	if p.Logger != nil {
		opts = append(opts, scorelist.Logger(p.Logger.Named("peers")))
	}

	list, err := p.Config.PeerList(p.Outbound.NewPeer, opts...)
	if err != nil {
		return PeerListResult{}, err
	}
	return PeerListResult{List: list, Selector: list}, nil
}

// DispatcherParams defines the dependencies of NewDispatcher.
type DispatcherParams struct {
	fx.In

	Config   *dispatchconfig.Config
	Selector peer.Selector
	Outbound *tchtransport.Outbound
	Logger   *zap.Logger        `optional:"true"`
	Tracer   opentracing.Tracer `optional:"true"`
	Scope    tally.Scope        `optional:"true"`
}

// DispatcherResult defines the values produced by NewDispatcher.
type DispatcherResult struct {
	fx.Out

	Dispatcher *tchdispatch.Dispatcher
}

// NewDispatcher builds the dispatcher.
func NewDispatcher(p DispatcherParams) (DispatcherResult, error) {
	opts, err := p.Config.DispatcherOptions()
	if err != nil {
		return DispatcherResult{}, err
	}
	if p.Logger != nil {
		opts = append(opts, tchdispatch.Logger(p.Logger))
	}
	if p.Tracer != nil {
		opts = append(opts, tchdispatch.Tracer(p.Tracer))
	}
	if p.Scope != nil {
		opts = append(opts, tchdispatch.Tally(p.Scope))
	}

	return DispatcherResult{
		Dispatcher: tchdispatch.NewDispatcher(p.Selector, p.Outbound, opts...),
	}, nil
}
