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

package tcherrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
)

// ProtocolError is a failure reported by a remote peer, or synthesized
// locally for a single attempt (e.g. the attempt timed out).
type ProtocolError struct {
	Code        Code
	Description string
}

// Newf returns a new ProtocolError with the given code.
func Newf(code Code, format string, args ...interface{}) *ProtocolError {
	desc := format
	if len(args) > 0 {
		desc = fmt.Sprintf(format, args...)
	}
	return &ProtocolError{Code: code, Description: desc}
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(e.Code.String())
	if e.Description != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(e.Description)
	}
	return buffer.String()
}

// FromError returns the ProtocolError wrapped by err, if any.
func FromError(err error) (*ProtocolError, bool) {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// IsProtocolError returns whether err is, or wraps, a ProtocolError.
func IsProtocolError(err error) bool {
	_, ok := FromError(err)
	return ok
}

// CodeOf returns the Code of the ProtocolError wrapped by err. Errors that
// are not ProtocolErrors are reported as CodeUnexpected.
func CodeOf(err error) Code {
	if perr, ok := FromError(err); ok {
		return perr.Code
	}
	return CodeUnexpected
}

// TimeoutError is returned when the overall deadline of a request elapses
// before any attempt succeeded.
type TimeoutError struct {
	Service   string
	Procedure string
	TTL       time.Duration
	Attempts  uint
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to service %q procedure %q timed out after %v (%d attempts)",
		e.Service, e.Procedure, e.TTL, e.Attempts)
}

// Unwrap allows errors.Is(err, context.DeadlineExceeded).
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// IsTimeout returns whether err is, or wraps, a TimeoutError.
func IsTimeout(err error) bool {
	var terr *TimeoutError
	return errors.As(err, &terr)
}

// NoEligiblePeerError is returned when no peer in the pool satisfies the
// score threshold and has not already been tried by the request.
type NoEligiblePeerError struct {
	Threshold float64
	Excluded  int
}

// Error implements the error interface.
func (e *NoEligiblePeerError) Error() string {
	return fmt.Sprintf("no eligible peer with score >= %v (%d excluded)", e.Threshold, e.Excluded)
}

// IsNoEligiblePeer returns whether err is, or wraps, a NoEligiblePeerError.
func IsNoEligiblePeer(err error) bool {
	var nerr *NoEligiblePeerError
	return errors.As(err, &nerr)
}

// TimeoutErrorf returns a new ProtocolError with code CodeTimeout.
func TimeoutErrorf(format string, args ...interface{}) error {
	return Newf(CodeTimeout, format, args...)
}

// CancelledErrorf returns a new ProtocolError with code CodeCancelled.
func CancelledErrorf(format string, args ...interface{}) error {
	return Newf(CodeCancelled, format, args...)
}

// BusyErrorf returns a new ProtocolError with code CodeBusy.
func BusyErrorf(format string, args ...interface{}) error {
	return Newf(CodeBusy, format, args...)
}

// DeclinedErrorf returns a new ProtocolError with code CodeDeclined.
func DeclinedErrorf(format string, args ...interface{}) error {
	return Newf(CodeDeclined, format, args...)
}

// UnexpectedErrorf returns a new ProtocolError with code CodeUnexpected.
func UnexpectedErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnexpected, format, args...)
}

// BadRequestErrorf returns a new ProtocolError with code CodeBadRequest.
func BadRequestErrorf(format string, args ...interface{}) error {
	return Newf(CodeBadRequest, format, args...)
}

// NetworkErrorf returns a new ProtocolError with code CodeNetworkError.
func NetworkErrorf(format string, args ...interface{}) error {
	return Newf(CodeNetworkError, format, args...)
}
