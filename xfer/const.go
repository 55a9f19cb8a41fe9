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

// Package xfer implements the IND$FILE file-transfer sub-protocol: the
// DDM (Distributed Data Management) structured fields that IND$FILE
// tunnels through the 3270 data stream, in place of a raw byte-framed
// transport.
//
// Grounded on two sources: original_source/tnz/tnz.py's
// _process_wsf_0xd0 docstring (original_source), which lays out the
// download and upload message sequences this package's state machine
// follows, and the teacher's xmodem.go (block number, 1's-complement
// block check, CRC-16, ACK/NAK retry), whose block/ack/retry shape is
// reused here with the wire framing replaced by DDM structured fields.
package xfer

// DDM request/reply subtype codes. These occupy the two bytes
// following the 0xd0 structured field id (tnz.py's "ddm_req" 3-byte
// key); open-systems IND$FILE implementations vary in the exact byte
// assignments, so this package defines its own self-consistent set
// rather than guessing at undocumented host-specific values.
const (
	ReqOpenDownload  byte = 0x01
	ReqOpenUpload    byte = 0x02
	ReqOpenAck       byte = 0x03
	ReqDownloadData  byte = 0x04
	ReqDataAck       byte = 0x05
	ReqUploadData    byte = 0x06
	ReqSetCursorGet  byte = 0x07
	ReqCloseRequest  byte = 0x08
	ReqCloseAck      byte = 0x09
	ReqOpenMessages  byte = 0x0a
	ReqMsgComplete   byte = 0x0b
	ReqGetPastEOF    byte = 0x0c
)

// Sub-byte 0 of the 2-byte subtype field (constant across all
// requests), kept distinct from the structured field id byte (0xd0)
// itself so a DDM field's header is always [0xd0, 0x00, reqCode].
const subtypeReserved byte = 0x00

// BlockPayloadLen mirrors the teacher's SHORT_PACKET_PAYLOAD_LEN: the
// amount of file data carried per Download/Upload Data Buffer request.
const BlockPayloadLen = 1024

// OperatorAreaMarker is the banner tnz.py's host writes into the
// operator information area when DDM structured fields are not
// available and transfer progress must instead be inferred from screen
// text.
const OperatorAreaMarker = "File transfer in progress"
