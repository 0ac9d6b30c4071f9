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

import "go.uber.org/tchdispatch/tcherrors"

// Category is the class of a failure for retry purposes.
type Category int

const (
	// NonRetryable failures are never retried. This is the zero value so
	// that anything unclassified fails safe.
	NonRetryable Category = iota

	// ConnectionErrorCategory failures mean the remote could not or would
	// not process the call for a transient reason.
	ConnectionErrorCategory

	// TimeoutCategory failures mean the call timed out.
	TimeoutCategory
)

var _categoryToString = map[Category]string{
	NonRetryable:            "non-retryable",
	ConnectionErrorCategory: "connection-error",
	TimeoutCategory:         "timeout",
}

func (c Category) String() string {
	if s, ok := _categoryToString[c]; ok {
		return s
	}
	return _categoryToString[NonRetryable]
}

// flag returns the retry flag that allows retrying this category.
func (c Category) flag() Flags {
	switch c {
	case ConnectionErrorCategory:
		return ConnectionError
	case TimeoutCategory:
		return Timeout
	default:
		return Never
	}
}

// Classify maps an error code to its retry category.
func Classify(code tcherrors.Code) Category {
	switch code {
	case tcherrors.CodeBusy, tcherrors.CodeDeclined, tcherrors.CodeNetworkError:
		return ConnectionErrorCategory
	case tcherrors.CodeTimeout:
		return TimeoutCategory
	default:
		return NonRetryable
	}
}

// ClassifyError maps an attempt's error to its retry category. Errors that
// are not protocol errors are NonRetryable.
func ClassifyError(err error) Category {
	perr, ok := tcherrors.FromError(err)
	if !ok {
		return NonRetryable
	}
	return Classify(perr.Code)
}
