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

package xfer

import "fmt"

// State is the file-transfer sub-state exposed by session.FileTransferState.
type State int

const (
	Idle State = iota
	InProgress
	DownloadsAvailable
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in-progress"
	case DownloadsAvailable:
		return "downloads-available"
	default:
		return "unknown"
	}
}

// Direction distinguishes an upload (PUT, PC to host) from a download
// (GET, host to PC).
type Direction int

const (
	Upload Direction = iota
	Download
)

// Error is returned for a malformed DDM exchange: a field too short to
// hold the DDM header, a download block whose CRC check fails more than
// 10 times in a row, or an unrecognized request code. Requests are not
// checked against the controller's current state.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return "xfer: " + e.Detail }

// Controller drives one IND$FILE transfer at a time on behalf of a
// session. It is not safe for concurrent use; the session's single
// task goroutine owns it.
type Controller struct {
	state     State
	direction Direction

	// Upload: data queued by the UI layer via BeginUpload, split into
	// BlockPayloadLen chunks and drained as the host issues
	// Set-Cursor-And-Get requests.
	uploadData  []byte
	uploadBlock int

	// Download: chunks accumulated from Download Data Buffer requests
	// until a Close Request completes the transfer.
	downloadBuf []byte
	completed   [][]byte

	retries int
}

// NewController returns an idle Controller.
func NewController() *Controller {
	return &Controller{}
}

// State reports the controller's current transfer state.
func (c *Controller) State() State { return c.state }

// BeginUpload queues data for a PUT transfer and moves the controller
// to InProgress; the session layer is responsible for having already
// negotiated Read-Partition Query / Query Reply before calling this.
func (c *Controller) BeginUpload(data []byte) {
	c.state = InProgress
	c.direction = Upload
	c.uploadData = data
	c.uploadBlock = 0
	c.retries = 0
}

// PendingDownload pops the oldest completed download, if any, and
// reports whether one was available. When the queue empties the state
// falls back to Idle.
func (c *Controller) PendingDownload() ([]byte, bool) {
	if len(c.completed) == 0 {
		return nil, false
	}
	data := c.completed[0]
	c.completed = c.completed[1:]
	if len(c.completed) == 0 && c.state == DownloadsAvailable {
		c.state = Idle
	}
	return data, true
}

// HandleDDM processes one inbound DDM request (the 3-byte header
// [0xd0, 0x00, reqCode] followed by any payload, per the
// structured-field body stream's dispatch) and returns the outbound DDM
// request to send in reply, in the same header format, or nil when no
// reply is due.
func (c *Controller) HandleDDM(field []byte) ([]byte, error) {
	if len(field) < 3 {
		return nil, &Error{Detail: "DDM field too short"}
	}
	req := field[2]
	switch req {
	case ReqOpenDownload:
		c.state = InProgress
		c.direction = Download
		c.downloadBuf = c.downloadBuf[:0]
		return ddmField(ReqOpenAck, nil), nil

	case ReqOpenUpload:
		c.state = InProgress
		c.direction = Upload
		return ddmField(ReqOpenAck, nil), nil

	case ReqDownloadData:
		payload := field[3:]
		data, crc, ok := unframeBlock(payload)
		if !ok {
			c.retries++
			if c.retries > 10 {
				return nil, &Error{Detail: "download block CRC failed after 10 retries"}
			}
			return nil, nil // caller resends a NAK-equivalent by not acking; simplified here as no-op
		}
		_ = crc
		c.retries = 0
		c.downloadBuf = append(c.downloadBuf, data...)
		return ddmField(ReqDataAck, nil), nil

	case ReqSetCursorGet:
		block := c.nextUploadBlock()
		if block == nil {
			return ddmField(ReqGetPastEOF, nil), nil
		}
		return ddmField(ReqUploadData, frameBlock(block)), nil

	case ReqCloseRequest:
		if c.direction == Download {
			c.completed = append(c.completed, append([]byte(nil), c.downloadBuf...))
			c.downloadBuf = nil
			c.state = DownloadsAvailable
		} else {
			c.state = Idle
		}
		return ddmField(ReqCloseAck, nil), nil

	case ReqOpenMessages:
		return ddmField(ReqOpenAck, nil), nil

	case ReqMsgComplete:
		return ddmField(ReqDataAck, nil), nil

	default:
		return nil, &Error{Detail: fmt.Sprintf("unrecognized DDM request 0x%02x", req)}
	}
}

// nextUploadBlock returns the next BlockPayloadLen chunk of the queued
// upload, or nil once every byte has been sent (the host follows with a
// Close Request after receiving Get-Past-End-of-File).
func (c *Controller) nextUploadBlock() []byte {
	start := c.uploadBlock * BlockPayloadLen
	if start >= len(c.uploadData) {
		return nil
	}
	end := start + BlockPayloadLen
	if end > len(c.uploadData) {
		end = len(c.uploadData)
	}
	c.uploadBlock++
	return c.uploadData[start:end]
}

// ddmField builds a DDM request: the 0xd0 id byte, a reserved byte,
// the request code, then payload. The stream interpreter wraps this in
// the outer structured-field envelope when it hits the wire, so this
// package deals only in the DDM-specific bytes.
func ddmField(req byte, payload []byte) []byte {
	out := make([]byte, 0, 3+len(payload))
	out = append(out, 0xd0, subtypeReserved, req)
	out = append(out, payload...)
	return out
}

// frameBlock appends the teacher's xmodem-style CRC-16 trailer to a
// data block (grounded on xmodem.go's crc16/sendBlock, replacing its
// raw-byte framing with the DDM field as the outer container).
func frameBlock(data []byte) []byte {
	crc := crc16(data)
	out := append([]byte(nil), data...)
	return append(out, byte(crc>>8), byte(crc))
}

// unframeBlock splits a received block into its data and trailing
// CRC-16, reporting ok=false on a CRC mismatch.
func unframeBlock(framed []byte) (data []byte, crc uint16, ok bool) {
	if len(framed) < 2 {
		return nil, 0, false
	}
	data = framed[:len(framed)-2]
	crc = uint16(framed[len(framed)-2])<<8 | uint16(framed[len(framed)-1])
	return data, crc, crc == crc16(data)
}

// crc16 is the teacher's CRC-CCITT implementation (xmodem.go), used
// here to validate DDM Download/Upload Data Buffer payloads instead of
// raw XMODEM packets.
func crc16(data []byte) uint16 {
	var u16CRC uint16
	for _, b := range data {
		u16CRC ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if u16CRC&0x8000 != 0 {
				u16CRC = u16CRC<<1 ^ 0x1021
			} else {
				u16CRC = u16CRC << 1
			}
		}
	}
	return u16CRC
}
