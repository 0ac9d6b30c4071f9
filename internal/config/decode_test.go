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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `config:"name"`
	Timeout time.Duration `config:"timeout"`
	Peers   []string      `config:"peers"`
}

func TestDecodeInto(t *testing.T) {
	var cfg testConfig
	err := DecodeInto(&cfg, map[string]interface{}{
		"name":    "keyvalue",
		"timeout": "250ms",
		"peers":   []interface{}{"127.0.0.1:4040"},
	})
	require.NoError(t, err)
	assert.Equal(t, testConfig{
		Name:    "keyvalue",
		Timeout: 250 * time.Millisecond,
		Peers:   []string{"127.0.0.1:4040"},
	}, cfg)
}

func TestDecodeYAML(t *testing.T) {
	var cfg testConfig
	require.NoError(t, DecodeYAML(&cfg, []byte("name: kv\ntimeout: 1s\npeers: [a:1, b:2]\n")))
	assert.Equal(t, "kv", cfg.Name)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Peers)

	err := DecodeYAML(&cfg, []byte("name: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
