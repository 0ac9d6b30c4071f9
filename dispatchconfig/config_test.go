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

package dispatchconfig

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/tchdispatch"
	"go.uber.org/tchdispatch/api/transport"
	intbackoff "go.uber.org/tchdispatch/internal/backoff"
	"go.uber.org/tchdispatch/peer/hostport"
)

const _fullYAML = `
service: myservice
retryFlags: ct
peers:
  - hostport: 127.0.0.1:4040
  - hostport: 127.0.0.1:4041
    score: 0.5
defaults:
  ttl: 2s
  timeoutPerAttempt: 500ms
  maxAttempts: 3
backoff:
  exponential:
    base: 10ms
    max: 200ms
policies:
  patient:
    ttl: 10s
    maxAttempts: 7
  brief:
    timeoutPerAttempt: 50ms
overrides:
  - service: keyvalue
    procedure: get
    with: patient
  - service: keyvalue
    with: brief
`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML([]byte(_fullYAML))
	require.NoError(t, err)

	assert.Equal(t, "myservice", cfg.Service)
	assert.Equal(t, "ct", cfg.RetryFlags)
	require.Len(t, cfg.Peers, 2)
	assert.Equal(t, "127.0.0.1:4040", cfg.Peers[0].HostPort)
	assert.Nil(t, cfg.Peers[0].Score)
	require.NotNil(t, cfg.Peers[1].Score)
	assert.Equal(t, 0.5, *cfg.Peers[1].Score)

	assert.Equal(t, AttemptConfig{
		TTL:               2 * time.Second,
		TimeoutPerAttempt: 500 * time.Millisecond,
		MaxAttempts:       3,
	}, cfg.Defaults)

	require.NotNil(t, cfg.Backoff.Exponential)
	assert.Equal(t, 10*time.Millisecond, cfg.Backoff.Exponential.Base)
	assert.Equal(t, 200*time.Millisecond, cfg.Backoff.Exponential.Max)

	assert.Len(t, cfg.Policies, 2)
	assert.Equal(t, []OverrideConfig{
		{Service: "keyvalue", Procedure: "get", WithPolicy: "patient"},
		{Service: "keyvalue", WithPolicy: "brief"},
	}, cfg.Overrides)
}

func TestLoadMap(t *testing.T) {
	cfg, err := Load(map[string]interface{}{
		"service":    "myservice",
		"retryFlags": "n",
		"defaults": map[string]interface{}{
			"ttl":         "1500ms",
			"maxAttempts": 2,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "n", cfg.RetryFlags)
	assert.Equal(t, 1500*time.Millisecond, cfg.Defaults.TTL)
	assert.Equal(t, uint(2), cfg.Defaults.MaxAttempts)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		desc    string
		give    string
		wantErr []string
	}{
		{
			desc:    "missing service",
			give:    "peers: [{hostport: '127.0.0.1:4040'}]",
			wantErr: []string{"service name is required"},
		},
		{
			desc: "bad peers",
			give: `
service: foo
peers:
  - hostport: nope
  - hostport: 127.0.0.1:1
  - hostport: 127.0.0.1:1
`,
			wantErr: []string{
				`peer 0: invalid hostport "nope"`,
				`peer 2: duplicate hostport "127.0.0.1:1"`,
			},
		},
		{
			desc: "negative durations",
			give: `
service: foo
defaults:
  ttl: -1s
policies:
  slow:
    timeoutPerAttempt: -1s
`,
			wantErr: []string{
				"defaults: ttl must not be negative, got -1s",
				`policy "slow": timeoutPerAttempt must not be negative, got -1s`,
			},
		},
		{
			desc: "unknown policy",
			give: `
service: foo
policies:
  a: {ttl: 1s}
  b: {ttl: 2s}
overrides:
  - service: bar
    with: c
  - procedure: baz
    with: a
`,
			wantErr: []string{
				`invalid policy: "c", possibilities are: [a b]`,
				`did not specify a service for policy override: "a"`,
			},
		},
		{
			desc:    "invalid retry flags",
			give:    "service: foo\nretryFlags: cx",
			wantErr: []string{`retry flags "cx": unknown flag 'x'`},
		},
		{
			desc: "invalid backoff",
			give: `
service: foo
backoff:
  exponential:
    min: 2s
    max: 1s
`,
			wantErr: []string{"exponential max value must be greater than min value"},
		},
		{
			desc:    "unknown field",
			give:    "service: foo\nfoo: bar",
			wantErr: []string{"foo"},
		},
		{
			desc:    "not yaml",
			give:    "service: [",
			wantErr: []string{"failed to parse YAML"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := LoadYAML([]byte(tt.give))
			require.Error(t, err)
			for _, msg := range tt.wantErr {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestProcedureDefaults(t *testing.T) {
	cfg, err := LoadYAML([]byte(_fullYAML))
	require.NoError(t, err)
	pd := cfg.ProcedureDefaults()

	tests := []struct {
		desc string
		give transport.Request
		want tchdispatch.AttemptSettings
	}{
		{
			desc: "service and procedure",
			give: transport.Request{Service: "keyvalue", Procedure: "get"},
			// Unset fields of "patient" fall through to "brief", then to
			// the defaults.
			want: tchdispatch.AttemptSettings{
				TTL:               10 * time.Second,
				TimeoutPerAttempt: 50 * time.Millisecond,
				MaxAttempts:       7,
				ScoreThreshold:    math.Inf(-1),
			},
		},
		{
			desc: "service",
			give: transport.Request{Service: "keyvalue", Procedure: "set"},
			want: tchdispatch.AttemptSettings{
				TTL:               2 * time.Second,
				TimeoutPerAttempt: 50 * time.Millisecond,
				MaxAttempts:       3,
				ScoreThreshold:    math.Inf(-1),
			},
		},
		{
			desc: "defaults",
			give: transport.Request{Service: "other", Procedure: "get"},
			want: tchdispatch.AttemptSettings{
				TTL:               2 * time.Second,
				TimeoutPerAttempt: 500 * time.Millisecond,
				MaxAttempts:       3,
				ScoreThreshold:    math.Inf(-1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			req := tt.give
			assert.Equal(t, tt.want, pd.Settings(&req))
		})
	}
}

func TestBackoffStrategy(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		s, err := BackoffConfig{}.Strategy()
		require.NoError(t, err)
		assert.Equal(t, intbackoff.None, s)
	})

	t.Run("exponential", func(t *testing.T) {
		s, err := BackoffConfig{Exponential: &ExponentialBackoffConfig{
			Base: time.Millisecond,
			Max:  5 * time.Millisecond,
		}}.Strategy()
		require.NoError(t, err)

		b := s.Backoff()
		for i := uint(0); i < 10; i++ {
			assert.True(t, b.Duration(i) <= 5*time.Millisecond)
		}
	})
}

func TestDispatcherOptions(t *testing.T) {
	cfg, err := LoadYAML([]byte(_fullYAML))
	require.NoError(t, err)

	opts, err := cfg.DispatcherOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	cfg.RetryFlags = ""
	opts, err = cfg.DispatcherOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	cfg.RetryFlags = "zz"
	_, err = cfg.DispatcherOptions()
	assert.Error(t, err)
}

func TestPeerList(t *testing.T) {
	cfg, err := LoadYAML([]byte(_fullYAML))
	require.NoError(t, err)

	newPeer := func(hp string, opts ...hostport.Option) *hostport.Peer {
		return hostport.NewPeer(hostport.PeerIdentifier(hp), opts...)
	}
	list, err := cfg.PeerList(newPeer)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	p, ok := list.Get("127.0.0.1:4040")
	require.True(t, ok)
	assert.Equal(t, 1.0, p.Score())

	p, ok = list.Get("127.0.0.1:4041")
	require.True(t, ok)
	assert.Equal(t, 0.5, p.Score())
}
