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

package stream

import "tn3270/ps"

// BuildReadBuffer constructs the outbound RB payload: AID, encoded
// cursor address, then the PresentationSpace's own ReadBuffer()
// rendering, per the Data Stream Programmer's Reference's Read Buffer
// command.
func (in *Interpreter) BuildReadBuffer() []byte {
	out := in.readHeader()
	out = append(out, in.ps.ReadBuffer()...)
	return out
}

// BuildReadModified constructs the outbound RM/RMA payload: AID,
// encoded cursor address, then the PresentationSpace's ReadModified()
// rendering.
func (in *Interpreter) BuildReadModified(includeAll bool) []byte {
	out := in.readHeader()
	out = append(out, in.ps.ReadModified(includeAll)...)
	return out
}

// readHeader builds the AID + encoded cursor prefix shared by RB and
// RM/RMA responses.
func (in *Interpreter) readHeader() []byte {
	aid := in.ps.LastAID()
	addr := ps.EncodeAddress(in.ps.CursorGet(), in.ps.Size())
	return []byte{aid, addr[0], addr[1]}
}

// BuildQueryReply constructs a Query Reply structured field record: an
// AID-Structured-Field byte followed by one or more length-prefixed
// Query Reply fields. When qcodes is nil, the full set this
// interpreter supports is sent (tnz.py's "Query" path); when non-nil
// (a Query-List request), only the intersection with the requested
// QCODEs is sent.
//
// Grounded on tnz.py's __query_reply: the Summary, Usable Area, and
// Implicit Partitions replies are reproduced; Color/Highlight/Character
// Sets/Reply Modes are advertised in the Summary but, since no terminal
// renders them, their detail replies are reduced to minimal valid
// bodies. DDM is advertised only when a DDM handler has actually been
// installed (SetDDMHandler), so a host never sees IND$FILE offered
// unless the session wired it.
func (in *Interpreter) BuildQueryReply(qcodes []byte) []byte {
	want := func(q byte) bool {
		if qcodes == nil {
			return true
		}
		for _, c := range qcodes {
			if c == q {
				return true
			}
		}
		return false
	}

	out := []byte{AIDStructuredField}
	if want(QCodeSummary) {
		out = appendQueryField(out, QCodeSummary, in.summaryBody())
	}
	if want(QCodeUsableArea) {
		out = appendQueryField(out, QCodeUsableArea, in.usableAreaBody())
	}
	if want(QCodeImplicitPartitions) {
		out = appendQueryField(out, QCodeImplicitPartitions, in.implicitPartitionsBody())
	}
	if want(QCodeCharacterSets) {
		out = appendQueryField(out, QCodeCharacterSets, []byte{0x02, 0x00, 0x06, 0x0c, 0, 0, 0, 0, 0})
	}
	if want(QCodeHighlight) {
		out = appendQueryField(out, QCodeHighlight, []byte{0x00})
	}
	if want(QCodeReplyModes) {
		out = appendQueryField(out, QCodeReplyModes, []byte{0x00, 0x01, 0x02})
	}
	if want(QCodeColor) {
		out = appendQueryField(out, QCodeColor, []byte{0x00})
	}
	if in.ddmHandler != nil && want(QCodeDDM) {
		out = appendQueryField(out, QCodeDDM, in.ddmBody())
	}
	return out
}

// appendQueryField appends one length-prefixed Query Reply field: a
// 2-byte big-endian length (itself plus the SFQueryReply id byte, the
// qcode byte, and body), the id byte, the qcode, then body.
func appendQueryField(out []byte, qcode byte, body []byte) []byte {
	length := 2 + 1 + 1 + len(body)
	out = append(out, byte(length>>8), byte(length))
	out = append(out, SFQueryReply, qcode)
	out = append(out, body...)
	return out
}

func (in *Interpreter) summaryBody() []byte {
	body := []byte{QCodeSummary, QCodeUsableArea, QCodeCharacterSets, QCodeHighlight, QCodeReplyModes, QCodeImplicitPartitions, QCodeColor}
	if in.ddmHandler != nil {
		body = append(body, QCodeDDM)
	}
	return body
}

// ddmQueryLimit is the LIMIN/LIMOUT this package advertises for DDM: the
// largest inbound/outbound DDM data buffer a request may carry. Kept
// equal to xfer.BlockPayloadLen by convention (not by import, so this
// package stays independent of the file-transfer sub-protocol's byte
// format) — a change to one should be mirrored in the other.
const ddmQueryLimit = 1024

// ddmBody reports the DDM Query Reply: 2 reserved flag bytes followed by
// LIMIN and LIMOUT.
func (in *Interpreter) ddmBody() []byte {
	return []byte{
		0x00, 0x00,
		byte(ddmQueryLimit >> 8), byte(ddmQueryLimit & 0xFF),
		byte(ddmQueryLimit >> 8), byte(ddmQueryLimit & 0xFF),
	}
}

func (in *Interpreter) usableAreaBody() []byte {
	rows, cols := in.ps.Rows(), in.ps.Cols()
	body := []byte{
		0x01, 0x00, // flags: 12/14-bit addressing allowed
		byte(cols >> 8), byte(cols),
		byte(rows >> 8), byte(rows),
		0x00,       // units: inches
		0x00, 0x01, // Xr numerator
		0x00, 0x60, // Xr denominator (96)
		0x00, 0x01, // Yr numerator
		0x00, 0x60, // Yr denominator (96)
		0x06, // AW
		0x0c, // AH
	}
	return body
}

func (in *Interpreter) implicitPartitionsBody() []byte {
	rows, cols := in.ps.Rows(), in.ps.Cols()
	body := []byte{0x00, 0x00}
	body = append(body, 0x0b, 0x01, 0x00,
		byte(cols>>8), byte(cols),
		byte(rows>>8), byte(rows),
		byte(cols>>8), byte(cols),
		byte(rows>>8), byte(rows))
	return body
}
