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
	"fmt"
	"strconv"
	"strings"
)

// Code is a TChannel system error code. The numeric values match the codes
// carried in TChannel error frames.
type Code byte

const (
	// CodeTimeout means the remote, or an intermediary, timed out the call.
	CodeTimeout Code = 0x01

	// CodeCancelled means the call was cancelled, typically by the caller.
	CodeCancelled Code = 0x02

	// CodeBusy means the remote was too busy to take the call.
	CodeBusy Code = 0x03

	// CodeDeclined means the remote declined the call for a reason other
	// than load, e.g. it is draining.
	CodeDeclined Code = 0x04

	// CodeUnexpected means the remote failed unexpectedly while handling the
	// call.
	CodeUnexpected Code = 0x05

	// CodeBadRequest means the request was malformed or addressed an
	// unknown endpoint.
	CodeBadRequest Code = 0x06

	// CodeNetworkError means a network failure prevented the call from
	// completing.
	CodeNetworkError Code = 0x07

	// CodeProtocol means a protocol level violation occurred.
	CodeProtocol Code = 0xff
)

var (
	_codeToString = map[Code]string{
		CodeTimeout:      "timeout",
		CodeCancelled:    "cancelled",
		CodeBusy:         "busy",
		CodeDeclined:     "declined",
		CodeUnexpected:   "unexpected",
		CodeBadRequest:   "bad_request",
		CodeNetworkError: "network_error",
		CodeProtocol:     "protocol",
	}
	_stringToCode = map[string]Code{
		"timeout":       CodeTimeout,
		"cancelled":     CodeCancelled,
		"busy":          CodeBusy,
		"declined":      CodeDeclined,
		"unexpected":    CodeUnexpected,
		"bad_request":   CodeBadRequest,
		"network_error": CodeNetworkError,
		"protocol":      CodeProtocol,
	}
)

// String returns the name of the Code, or its number if it is not a known
// code.
func (c Code) String() string {
	if s, ok := _codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if s, ok := _codeToString[c]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	code, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = code
	return nil
}
