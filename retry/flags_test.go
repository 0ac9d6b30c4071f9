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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/tchdispatch/api/transport"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		give    string
		want    Flags
		wantErr string
	}{
		{give: "n", want: Never},
		{give: "c", want: ConnectionError},
		{give: "t", want: Timeout},
		{give: "ct", want: ConnectionErrorAndTimeout},
		{give: "tc", want: TimeoutAndConnectionError},
		{give: " CT ", want: ConnectionErrorAndTimeout},
		{give: "cc", want: ConnectionError},
		{give: "", wantErr: "empty retry flags"},
		{give: "nc", wantErr: `retry flags "nc": 'n' cannot be combined with other flags`},
		{give: "cx", wantErr: `retry flags "cx": unknown flag 'x'`},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			got, err := ParseFlags(tt.give)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagAliases(t *testing.T) {
	assert.Equal(t, ConnectionErrorAndTimeout, TimeoutAndConnectionError)
	assert.Equal(t, Flags(0), Never)
}

func TestFlagsText(t *testing.T) {
	for _, f := range []Flags{Never, ConnectionError, Timeout, ConnectionErrorAndTimeout} {
		text, err := f.MarshalText()
		require.NoError(t, err)

		var got Flags
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, f, got, "round trip of %q", text)
	}
	assert.Equal(t, "ct", TimeoutAndConnectionError.String())

	var f Flags
	assert.Error(t, f.UnmarshalText([]byte("z")))
}

func TestFlagsFromHeaders(t *testing.T) {
	f, err := FlagsFromHeaders(transport.NewHeaders())
	require.NoError(t, err)
	assert.Equal(t, DefaultFlags, f)

	f, err = FlagsFromHeaders(transport.NewHeaders().With("RE", "tc"))
	require.NoError(t, err)
	assert.Equal(t, ConnectionErrorAndTimeout, f)

	_, err = FlagsFromHeaders(transport.NewHeaders().With(HeaderKey, "q"))
	assert.Error(t, err)
}
