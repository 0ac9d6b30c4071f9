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
	"encoding/json"
	"fmt"
	"sort"

	"github.com/uber/tchannel-go"
	"github.com/uber/tchannel-go/typed"
	"go.uber.org/tchdispatch/api/transport"
)

// usesJSONHeaders reports whether arg2 of the format is a JSON object.
func usesJSONHeaders(format tchannel.Format) bool {
	return format == tchannel.JSON || format == tchannel.Format(transport.HTTP)
}

// writeHeaders writes the given headers using the given function to get the
// arg writer.
func writeHeaders(format tchannel.Format, headers transport.Headers, getWriter func() (tchannel.ArgWriter, error)) error {
	if usesJSONHeaders(format) {
		items := headers.Items()
		if items == nil {
			items = map[string]string{}
		}
		return tchannel.NewArgWriter(getWriter()).WriteJSON(items)
	}

	b, err := encodeHeaders(headers)
	if err != nil {
		return err
	}
	return tchannel.NewArgWriter(getWriter()).Write(b)
}

// DecodeHeaders parses a header blob written in the given format. An empty
// blob has no headers.
func DecodeHeaders(format transport.Format, b []byte) (transport.Headers, error) {
	if len(b) == 0 {
		return transport.NewHeaders(), nil
	}
	if usesJSONHeaders(tchannel.Format(format)) {
		var items map[string]string
		if err := json.Unmarshal(b, &items); err != nil {
			return transport.NewHeaders(), fmt.Errorf("failed to decode JSON headers: %v", err)
		}
		return transport.HeadersFromMap(items), nil
	}
	return decodeHeaders(b)
}

// encodeHeaders encodes headers using the format:
//
//	nh:2 (k~2 v~2){nh}
//
// Keys are written in sorted order.
func encodeHeaders(hs transport.Headers) ([]byte, error) {
	items := hs.Items()
	keys := make([]string, 0, len(items))
	size := 2 // nh:2
	for k, v := range items {
		keys = append(keys, k)
		size += len(k) + 2 // k~2
		size += len(v) + 2 // v~2
	}
	sort.Strings(keys)

	out := make([]byte, size)
	wb := typed.NewWriteBuffer(out)
	wb.WriteUint16(uint16(len(keys)))
	for _, k := range keys {
		wb.WriteLen16String(k)
		wb.WriteLen16String(items[k])
	}
	if err := wb.Err(); err != nil {
		return nil, fmt.Errorf("failed to encode headers: %v", err)
	}
	return out[:wb.BytesWritten()], nil
}

// decodeHeaders decodes headers using the format:
//
//	nh:2 (k~2 v~2){nh}
func decodeHeaders(b []byte) (transport.Headers, error) {
	rb := typed.NewReadBuffer(b)

	headers := transport.NewHeaders()
	count := rb.ReadUint16()
	for i := 0; i < int(count) && rb.Err() == nil; i++ {
		k := rb.ReadLen16String()
		v := rb.ReadLen16String()
		headers = headers.With(k, v)
	}
	if err := rb.Err(); err != nil {
		return transport.NewHeaders(), fmt.Errorf("failed to decode headers: %v", err)
	}
	return headers, nil
}
