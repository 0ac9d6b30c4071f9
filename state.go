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

package tchdispatch

// State is the progress of a single request through the Dispatcher.
type State int

const (
	// Idle requests have not been sent yet.
	Idle State = iota
	// Attempting requests are waiting on an attempt against a peer.
	Attempting
	// Retrying requests failed an attempt and will try another peer.
	Retrying
	// Succeeded requests received a response. Terminal.
	Succeeded
	// Failed requests ran out of attempts, peers or retryable failures.
	// Terminal.
	Failed
	// TimedOut requests exceeded their overall deadline. Terminal.
	TimedOut
)

var _stateToString = map[State]string{
	Idle:       "idle",
	Attempting: "attempting",
	Retrying:   "retrying",
	Succeeded:  "succeeded",
	Failed:     "failed",
	TimedOut:   "timed-out",
}

func (s State) String() string {
	if name, ok := _stateToString[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed || s == TimedOut
}
