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

// Policy decides whether a failed attempt may be retried.
type Policy interface {
	ShouldRetry(flags Flags, err error) bool
}

// PolicyFunc adapts a function into a Policy.
type PolicyFunc func(flags Flags, err error) bool

// ShouldRetry implements Policy.
func (f PolicyFunc) ShouldRetry(flags Flags, err error) bool { return f(flags, err) }

// DefaultPolicy is ShouldRetry as a Policy.
var DefaultPolicy Policy = PolicyFunc(ShouldRetry)

// ShouldRetry reports whether a request with the given flags may be retried
// after err. NonRetryable failures are never retried; other failures are
// retried iff the flag for their category is set.
func ShouldRetry(flags Flags, err error) bool {
	category := ClassifyError(err)
	if category == NonRetryable {
		return false
	}
	return flags.Has(category.flag())
}
