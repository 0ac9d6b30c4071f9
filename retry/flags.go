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

package retry

import (
	"fmt"
	"strings"

	"go.uber.org/tchdispatch/api/transport"
)

// HeaderKey is the request header carrying retry flags.
const HeaderKey = "re"

// Flags is the set of failure categories a request may be retried on.
type Flags uint8

const (
	// Never retries. This is the zero value.
	Never Flags = 0

	// ConnectionError retries busy, declined and network errors.
	ConnectionError Flags = 1 << 0

	// Timeout retries timeouts, whether reported by the remote or caused by
	// the per-attempt timeout.
	Timeout Flags = 1 << 1

	// ConnectionErrorAndTimeout retries both categories.
	ConnectionErrorAndTimeout = ConnectionError | Timeout

	// TimeoutAndConnectionError is the same set as ConnectionErrorAndTimeout.
	TimeoutAndConnectionError = ConnectionErrorAndTimeout

	// DefaultFlags apply to requests without a retry flags header.
	DefaultFlags = ConnectionError
)

// Has reports whether every bit in other is set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// String returns the header spelling of the flags.
func (f Flags) String() string {
	if f == Never {
		return "n"
	}
	var sb strings.Builder
	if f.Has(ConnectionError) {
		sb.WriteByte('c')
	}
	if f.Has(Timeout) {
		sb.WriteByte('t')
	}
	return sb.String()
}

// ParseFlags parses the header spelling of retry flags. Each letter sets one
// flag, so "ct" and "tc" are the same value.
func ParseFlags(s string) (Flags, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Never, fmt.Errorf("empty retry flags")
	}
	if s == "n" {
		return Never, nil
	}

	var f Flags
	for _, r := range s {
		switch r {
		case 'c':
			f |= ConnectionError
		case 't':
			f |= Timeout
		case 'n':
			return Never, fmt.Errorf("retry flags %q: %q cannot be combined with other flags", s, r)
		default:
			return Never, fmt.Errorf("retry flags %q: unknown flag %q", s, r)
		}
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Flags) UnmarshalText(text []byte) error {
	parsed, err := ParseFlags(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FlagsFromHeaders reads the retry flags of a request. Requests without the
// header get DefaultFlags.
func FlagsFromHeaders(h transport.Headers) (Flags, error) {
	v, ok := h.Get(HeaderKey)
	if !ok {
		return DefaultFlags, nil
	}
	return ParseFlags(v)
}
