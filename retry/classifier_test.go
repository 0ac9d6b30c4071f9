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
	"go.uber.org/tchdispatch/tcherrors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code tcherrors.Code
		want Category
	}{
		{tcherrors.CodeBusy, ConnectionErrorCategory},
		{tcherrors.CodeDeclined, ConnectionErrorCategory},
		{tcherrors.CodeNetworkError, ConnectionErrorCategory},
		{tcherrors.CodeTimeout, TimeoutCategory},
		{tcherrors.CodeUnexpected, NonRetryable},
		{tcherrors.CodeCancelled, NonRetryable},
		{tcherrors.CodeBadRequest, NonRetryable},
		{tcherrors.CodeProtocol, NonRetryable},
		{tcherrors.Code(0), NonRetryable},
		{tcherrors.Code(0x42), NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}

func TestClassifyIsStable(t *testing.T) {
	for _, code := range _allCodes {
		first := Classify(code)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Classify(code), "code %v", code)
		}
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "connection-error", ConnectionErrorCategory.String())
	assert.Equal(t, "timeout", TimeoutCategory.String())
	assert.Equal(t, "non-retryable", NonRetryable.String())
	assert.Equal(t, "non-retryable", Category(99).String())
}
