// Copyright (C) 2017-2025 Steve Merrony
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
//

package telnet

import "context"

// Header is the 5-byte TN3270E record header (RFC 2355 §3.1): data-type,
// request-flag, response-flag, and a 2-byte sequence number.
type Header struct {
	DataType     byte
	RequestFlag  byte
	ResponseFlag byte
	Seq          uint16
}

func (h Header) bytes() []byte {
	return []byte{h.DataType, h.RequestFlag, h.ResponseFlag, byte(h.Seq >> 8), byte(h.Seq)}
}

func parseHeader(b []byte) (Header, []byte, bool) {
	if len(b) < 5 {
		return Header{}, b, false
	}
	h := Header{DataType: b[0], RequestFlag: b[1], ResponseFlag: b[2], Seq: uint16(b[3])<<8 | uint16(b[4])}
	return h, b[5:], true
}

// Record is one inbound 3270 record: bytes between two IAC EOR
// delimiters, with the TN3270E header split out when negotiated.
type Record struct {
	Header Header // zero value when not in TN3270E mode
	Body   []byte
}

// ReadRecord blocks until a full EOR-delimited record has arrived,
// unescaping any doubled IAC bytes in the body.
func (e *Engine) ReadRecord(ctx context.Context) (Record, error) {
	buf := make([]byte, 4096)
	for {
		if rec, ok, err := e.tryExtractRecord(); err != nil {
			return Record{}, err
		} else if ok {
			return rec, nil
		}
		n, err := e.conn.Read(ctx, buf)
		if err != nil {
			return Record{}, err
		}
		e.inbuf = append(e.inbuf, buf[:n]...)
	}
}

// tryExtractRecord looks for IAC EOR in e.inbuf and, if found, unescapes
// and returns the record before it.
func (e *Engine) tryExtractRecord() (Record, bool, error) {
	for i := 0; i+1 < len(e.inbuf); i++ {
		if e.inbuf[i] != CmdIAC {
			continue
		}
		switch e.inbuf[i+1] {
		case CmdIAC:
			i++ // escaped data byte 0xFF, skip past the pair
			continue
		case CmdEOR: // IAC EOR: per RFC 885, EOR command is byte 239
			raw := unescapeIAC(e.inbuf[:i])
			e.inbuf = e.inbuf[i+2:]
			body := raw
			var hdr Header
			if e.device.IsTN3270E {
				var ok bool
				hdr, body, ok = parseHeader(raw)
				if !ok {
					return Record{}, false, &ProtocolError{Phase: "record", Detail: "truncated TN3270E header"}
				}
			}
			return Record{Header: hdr, Body: body}, true, nil
		default:
			return Record{}, false, &ProtocolError{Phase: "record", Detail: "unexpected IAC command in data stream"}
		}
	}
	return Record{}, false, nil
}

// WriteRecord transmits body as one EOR-delimited 3270 record, prefixing
// the TN3270E header when negotiated.
func (e *Engine) WriteRecord(dataType byte, body []byte) error {
	var payload []byte
	if e.device.IsTN3270E {
		h := Header{DataType: dataType, RequestFlag: 0, ResponseFlag: RspFlagNoResponse, Seq: e.nextSeq()}
		payload = append(payload, h.bytes()...)
	}
	payload = append(payload, escapeIAC(body)...)
	payload = append(payload, CmdIAC, CmdEOR)
	return e.conn.Write(payload)
}

// WriteResponse sends a positive or negative TN3270E response record, as
// required when the RESPONSES function is negotiated and the host sent a
// definite-response request. positive selects RspPositive/RspNegative.
func (e *Engine) WriteResponse(positive bool, reqSeq uint16, detail []byte) error {
	code := RspPositive
	if !positive {
		code = RspNegative
	}
	body := append([]byte{code}, detail...)
	h := Header{DataType: DataTypeResponse, RequestFlag: 0, ResponseFlag: RspFlagNoResponse, Seq: reqSeq}
	payload := append(h.bytes(), escapeIAC(body)...)
	payload = append(payload, CmdIAC, CmdEOR)
	return e.conn.Write(payload)
}

func (e *Engine) nextSeq() uint16 {
	e.outSeq++
	return e.outSeq
}

// HasFunction reports whether fn is among the negotiated TN3270E
// functions.
func (e *Engine) HasFunction(fn byte) bool {
	for _, f := range e.device.Functions {
		if f == fn {
			return true
		}
	}
	return false
}
