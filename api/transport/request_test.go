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

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/tchdispatch/tcherrors"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		msg  string
		req  *Request
		want string
	}{
		{
			msg:  "nil",
			want: "code:bad_request message:request was nil",
		},
		{
			msg:  "missing everything",
			req:  &Request{},
			want: "code:bad_request message:missing service name, procedure, and caller name",
		},
		{
			msg:  "missing two",
			req:  &Request{Caller: "caller"},
			want: "code:bad_request message:missing service name and procedure",
		},
		{
			msg:  "missing one",
			req:  &Request{Caller: "caller", Service: "svc"},
			want: "code:bad_request message:missing procedure",
		},
		{
			msg: "valid",
			req: &Request{Caller: "caller", Service: "svc", Procedure: "proc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
			assert.Equal(t, tcherrors.CodeBadRequest, tcherrors.CodeOf(err))
		})
	}
}
