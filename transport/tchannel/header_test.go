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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/tchdispatch/api/transport"
)

func TestEncodeHeaders(t *testing.T) {
	tests := []struct {
		msg   string
		give  transport.Headers
		bytes []byte
	}{
		{
			msg:   "no headers",
			give:  transport.NewHeaders(),
			bytes: []byte{0x00, 0x00},
		},
		{
			msg:  "retry flags",
			give: transport.NewHeaders().With("re", "ct"),
			bytes: []byte{
				0x00, 0x01,
				0x00, 0x02, 'r', 'e',
				0x00, 0x02, 'c', 't',
			},
		},
		{
			msg:  "sorted keys",
			give: transport.NewHeaders().With("b", "2").With("a", "1"),
			bytes: []byte{
				0x00, 0x02,
				0x00, 0x01, 'a', 0x00, 0x01, '1',
				0x00, 0x01, 'b', 0x00, 0x01, '2',
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, err := encodeHeaders(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.bytes, got)

			decoded, err := DecodeHeaders(transport.Raw, got)
			require.NoError(t, err)
			assert.Equal(t, tt.give.Len(), decoded.Len())
			for k, v := range tt.give.Items() {
				dv, ok := decoded.Get(k)
				assert.True(t, ok, "missing header %q", k)
				assert.Equal(t, v, dv)
			}
		})
	}
}

func TestDecodeHeaders(t *testing.T) {
	h, err := DecodeHeaders(transport.Raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())

	h, err = DecodeHeaders(transport.JSON, []byte(`{"RE":"t"}`))
	require.NoError(t, err)
	v, ok := h.Get("re")
	assert.True(t, ok)
	assert.Equal(t, "t", v)

	_, err = DecodeHeaders(transport.HTTP, []byte(`{`))
	assert.Error(t, err)

	_, err = DecodeHeaders(transport.Raw, []byte{0x00, 0x01, 0x00, 0x05, 'a'})
	assert.Error(t, err)
}
