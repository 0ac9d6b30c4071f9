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

// Package dispatchconfig builds dispatchers from YAML or map configuration.
//
//	service: myservice
//	retryFlags: ct
//	peers:
//	  - hostport: 127.0.0.1:4040
//	  - hostport: 127.0.0.1:4041
//	    score: 0.5
//	defaults:
//	  ttl: 2s
//	  timeoutPerAttempt: 500ms
//	  maxAttempts: 3
//	backoff:
//	  exponential:
//	    base: 10ms
//	    max: 200ms
//	policies:
//	  patient:
//	    ttl: 10s
//	    maxAttempts: 5
//	overrides:
//	  - service: keyvalue
//	    procedure: get
//	    with: patient
//
// Note that YAML reads a bare n as a boolean; quote it ("n") to disable
// retries.
package dispatchconfig

import (
	"fmt"
	"net"
	"sort"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/tchdispatch"
	"go.uber.org/tchdispatch/api/backoff"
	intbackoff "go.uber.org/tchdispatch/internal/backoff"
	iconfig "go.uber.org/tchdispatch/internal/config"
	"go.uber.org/tchdispatch/peer/hostport"
	"go.uber.org/tchdispatch/peer/scorelist"
	"go.uber.org/tchdispatch/retry"
)

// Config is the configuration of a dispatcher and its peers.
type Config struct {
	// Service is the name of the local service, used as the caller name of
	// the TChannel channel.
	Service string `config:"service"`

	// RetryFlags are used for requests without the "re" header, written the
	// same way as the header. Defaults to retry.DefaultFlags.
	RetryFlags string `config:"retryFlags"`

	// Peers seeds the peer pool.
	Peers []PeerConfig `config:"peers"`

	// Defaults apply to every request that does not set its own values and
	// has no matching override.
	Defaults AttemptConfig `config:"defaults"`

	// Backoff between attempts. No backoff if unset.
	Backoff BackoffConfig `config:"backoff"`

	// Policies is a map of names to attempt settings which overrides can
	// reference.
	Policies map[string]AttemptConfig `config:"policies"`

	// Overrides change the attempt settings of requests matching a service,
	// or a service and procedure.
	Overrides []OverrideConfig `config:"overrides"`
}

// PeerConfig is a single peer of the pool.
type PeerConfig struct {
	HostPort string `config:"hostport"`

	// Score is the initial score of the peer. Defaults to 1.
	Score *float64 `config:"score"`
}

// AttemptConfig bounds the attempts of a request. Zero values are unset.
type AttemptConfig struct {
	TTL               time.Duration `config:"ttl"`
	TimeoutPerAttempt time.Duration `config:"timeoutPerAttempt"`
	MaxAttempts       uint          `config:"maxAttempts"`
	ScoreThreshold    float64       `config:"scoreThreshold"`
}

func (a AttemptConfig) settings() tchdispatch.AttemptSettings {
	return tchdispatch.AttemptSettings{
		TTL:               a.TTL,
		TimeoutPerAttempt: a.TimeoutPerAttempt,
		MaxAttempts:       a.MaxAttempts,
		ScoreThreshold:    a.ScoreThreshold,
	}
}

func (a AttemptConfig) validate(name string) (err error) {
	if a.TTL < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: ttl must not be negative, got %v", name, a.TTL))
	}
	if a.TimeoutPerAttempt < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: timeoutPerAttempt must not be negative, got %v", name, a.TimeoutPerAttempt))
	}
	return err
}

// OverrideConfig applies a named policy to a service, or to a procedure of
// a service.
type OverrideConfig struct {
	Service   string `config:"service"`
	Procedure string `config:"procedure"`

	// WithPolicy names the policy to use. It MUST reference an existing
	// policy.
	WithPolicy string `config:"with"`
}

// BackoffConfig specifies the wait between attempts. The only supported
// strategy is "exponential" with full jitter.
type BackoffConfig struct {
	Exponential *ExponentialBackoffConfig `config:"exponential"`
}

// ExponentialBackoffConfig details the exponential with full jitter backoff
// strategy.
type ExponentialBackoffConfig struct {
	Min  time.Duration `config:"min"`
	Max  time.Duration `config:"max"`
	Base time.Duration `config:"base"`
}

// Strategy returns the configured backoff strategy.
func (c BackoffConfig) Strategy() (backoff.Strategy, error) {
	if c.Exponential == nil {
		return intbackoff.None, nil
	}

	var opts []intbackoff.ExponentialOption
	if c.Exponential.Min > 0 {
		opts = append(opts, intbackoff.MinBackoff(c.Exponential.Min))
	}
	if c.Exponential.Max > 0 {
		opts = append(opts, intbackoff.MaxBackoff(c.Exponential.Max))
	}
	if c.Exponential.Base > 0 {
		opts = append(opts, intbackoff.BaseJump(c.Exponential.Base))
	}
	return intbackoff.NewExponential(opts...)
}

// Load decodes and validates a configuration from a map, as produced by a
// YAML or JSON parser.
func Load(src interface{}) (*Config, error) {
	var cfg Config
	if err := iconfig.DecodeInto(&cfg, src); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadYAML decodes and validates a YAML configuration.
func LoadYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := iconfig.DecodeYAML(&cfg, data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() (err error) {
	if c.Service == "" {
		err = multierr.Append(err, fmt.Errorf("service name is required"))
	}

	seen := make(map[string]struct{}, len(c.Peers))
	for i, p := range c.Peers {
		if _, _, splitErr := net.SplitHostPort(p.HostPort); splitErr != nil {
			err = multierr.Append(err, fmt.Errorf("peer %d: invalid hostport %q: %v", i, p.HostPort, splitErr))
			continue
		}
		if _, dup := seen[p.HostPort]; dup {
			err = multierr.Append(err, fmt.Errorf("peer %d: duplicate hostport %q", i, p.HostPort))
		}
		seen[p.HostPort] = struct{}{}
	}

	err = multierr.Append(err, c.Defaults.validate("defaults"))
	for _, name := range c.policyNames() {
		err = multierr.Append(err, c.Policies[name].validate(fmt.Sprintf("policy %q", name)))
	}

	for _, o := range c.Overrides {
		if _, ok := c.Policies[o.WithPolicy]; !ok {
			err = multierr.Append(err, fmt.Errorf("invalid policy: %q, possibilities are: %v", o.WithPolicy, c.policyNames()))
		}
		if o.Service == "" {
			err = multierr.Append(err, fmt.Errorf("did not specify a service for policy override: %q", o.WithPolicy))
		}
	}

	if c.RetryFlags != "" {
		if _, flagsErr := retry.ParseFlags(c.RetryFlags); flagsErr != nil {
			err = multierr.Append(err, flagsErr)
		}
	}

	if c.Backoff.Exponential != nil {
		_, backoffErr := c.Backoff.Strategy()
		err = multierr.Append(err, backoffErr)
	}
	return err
}

// ProcedureDefaults returns the registry of attempt settings described by
// the defaults, policies and overrides.
func (c *Config) ProcedureDefaults() *tchdispatch.ProcedureDefaults {
	pd := tchdispatch.NewProcedureDefaults()
	pd.SetDefault(c.Defaults.settings())
	for _, o := range c.Overrides {
		policy, ok := c.Policies[o.WithPolicy]
		if !ok {
			continue
		}
		if o.Procedure != "" {
			pd.RegisterServiceProcedure(o.Service, o.Procedure, policy.settings())
			continue
		}
		pd.RegisterService(o.Service, policy.settings())
	}
	return pd
}

// DispatcherOptions returns the dispatcher options described by the
// configuration.
func (c *Config) DispatcherOptions() ([]tchdispatch.Option, error) {
	strategy, err := c.Backoff.Strategy()
	if err != nil {
		return nil, err
	}

	opts := []tchdispatch.Option{
		tchdispatch.Overrides(c.ProcedureDefaults()),
		tchdispatch.Backoff(strategy),
	}
	if c.RetryFlags != "" {
		flags, err := retry.ParseFlags(c.RetryFlags)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tchdispatch.DefaultRetryFlags(flags))
	}
	return opts, nil
}

// PeerList builds the peer pool using newPeer to create each peer.
func (c *Config) PeerList(newPeer func(hp string, opts ...hostport.Option) *hostport.Peer, opts ...scorelist.Option) (*scorelist.List, error) {
	list := scorelist.New(opts...)

	var errs error
	for _, p := range c.Peers {
		var peerOpts []hostport.Option
		if p.Score != nil {
			peerOpts = append(peerOpts, hostport.Score(*p.Score))
		}
		errs = multierr.Append(errs, list.Add(newPeer(p.HostPort, peerOpts...)))
	}
	return list, errs
}

func (c *Config) policyNames() []string {
	names := make([]string, 0, len(c.Policies))
	for name := range c.Policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
