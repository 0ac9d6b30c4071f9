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
	"fmt"
	"strings"
	"time"

	"go.uber.org/tchdispatch/tcherrors"
)

const (
	// DefaultTimeoutPerAttempt bounds a single attempt when the request does
	// not specify TimeoutPerAttempt.
	DefaultTimeoutPerAttempt = time.Second

	// DefaultTTL is the overall deadline of a request that does not specify
	// a TTL.
	DefaultTTL = time.Second

	// DefaultMaxAttempts is the number of attempts, first attempt included,
	// made for a request that does not specify MaxAttempts.
	DefaultMaxAttempts uint = 5
)

// Format is the argument scheme of a request, carried as the TChannel "as"
// header.
type Format string

const (
	// Raw arguments are opaque bytes.
	Raw Format = "raw"

	// JSON arguments are JSON documents.
	JSON Format = "json"

	// HTTP arguments carry an HTTP request; arg2 holds the JSON encoded
	// header blob.
	HTTP Format = "http"
)

// Request is the envelope for one logical call. It is read-only once handed
// to the dispatcher; every attempt sends the same Request.
type Request struct {
	// Name of the service making the request.
	Caller string

	// Name of the service to which the request is being made.
	Service string

	// Name of the procedure (endpoint) being called.
	Procedure string

	// Format of the arguments.
	Format Format

	// Headers for the request, including the "re" retry flags.
	Headers Headers

	// Body is the request payload (arg3).
	Body []byte

	// TimeoutPerAttempt bounds a single attempt. Zero means
	// DefaultTimeoutPerAttempt.
	TimeoutPerAttempt time.Duration

	// TTL is the overall deadline across all attempts, measured from the
	// moment the request is dispatched. Zero means DefaultTTL.
	TTL time.Duration

	// MaxAttempts bounds the number of attempts. Zero means
	// DefaultMaxAttempts.
	MaxAttempts uint

	// ScoreThreshold is the minimum peer score eligible for this request.
	// Zero means unset: the zero value admits every peer, whatever its
	// score.
	ScoreThreshold float64
}

// ValidateRequest validates the given request. An error is returned if the
// request is invalid.
func ValidateRequest(req *Request) error {
	if req == nil {
		return tcherrors.BadRequestErrorf("request was nil")
	}
	var missingParams []string
	if req.Service == "" {
		missingParams = append(missingParams, "service name")
	}
	if req.Procedure == "" {
		missingParams = append(missingParams, "procedure")
	}
	if req.Caller == "" {
		missingParams = append(missingParams, "caller name")
	}
	if len(missingParams) > 0 {
		return tcherrors.BadRequestErrorf("%s", missingParameters(missingParams))
	}
	return nil
}

func missingParameters(ps []string) string {
	s := "missing "
	if len(ps) == 1 {
		return s + ps[0]
	}
	if len(ps) == 2 {
		return s + fmt.Sprintf("%s and %s", ps[0], ps[1])
	}
	s += strings.Join(ps[:len(ps)-1], ", ")
	s += fmt.Sprintf(", and %s", ps[len(ps)-1])
	return s
}
