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
	"context"
	"errors"
	"time"

	"github.com/uber/tchannel-go"
	"go.uber.org/tchdispatch/tcherrors"
)

var _tchannelCodeToCode = map[tchannel.SystemErrCode]tcherrors.Code{
	tchannel.ErrCodeTimeout:    tcherrors.CodeTimeout,
	tchannel.ErrCodeCancelled:  tcherrors.CodeCancelled,
	tchannel.ErrCodeBusy:       tcherrors.CodeBusy,
	tchannel.ErrCodeDeclined:   tcherrors.CodeDeclined,
	tchannel.ErrCodeUnexpected: tcherrors.CodeUnexpected,
	tchannel.ErrCodeBadRequest: tcherrors.CodeBadRequest,
	tchannel.ErrCodeNetwork:    tcherrors.CodeNetworkError,
	tchannel.ErrCodeProtocol:   tcherrors.CodeProtocol,
}

func fromSystemError(err tchannel.SystemError) *tcherrors.ProtocolError {
	code, ok := _tchannelCodeToCode[err.Code()]
	if !ok {
		// Unknown codes keep their value and classify as non-retryable.
		code = tcherrors.Code(err.Code())
	}
	return tcherrors.Newf(code, "%s", err.Message())
}

// _timeoutSlack is how close to the call's deadline a failure reported by the
// remote must arrive to count as a timeout. Handlers that honour the TTL
// carried by TChannel give up slightly before the caller does.
const _timeoutSlack = 5 * time.Millisecond

// toProtocolError converts the failure of a call, observed at now, into the
// error reported to the dispatcher.
func toProtocolError(ctx context.Context, now time.Time, err error) error {
	if err == nil {
		return nil
	}

	var serr tchannel.SystemError
	if errors.As(err, &serr) {
		perr := fromSystemError(serr)
		if nearDeadline(ctx, now) && perr.Code != tcherrors.CodeBusy && perr.Code != tcherrors.CodeDeclined {
			return tcherrors.Newf(tcherrors.CodeTimeout, "%s", serr.Message())
		}
		return perr
	}
	if tcherrors.IsProtocolError(err) {
		return err
	}

	switch ctx.Err() {
	case context.DeadlineExceeded:
		return tcherrors.TimeoutErrorf("%v", err)
	case context.Canceled:
		return tcherrors.CancelledErrorf("%v", err)
	}
	return tcherrors.NetworkErrorf("%v", err)
}

func nearDeadline(ctx context.Context, now time.Time) bool {
	deadline, ok := ctx.Deadline()
	return ok && deadline.Sub(now) <= _timeoutSlack
}
