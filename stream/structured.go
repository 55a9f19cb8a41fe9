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

// processWSF walks a Write Structured Field record body: a sequence of
// 2-byte-length-prefixed fields, each dispatched by its type byte
// (tnz.py's process_command_0xf3 loop). Only the first field that
// produces an outbound reply wins; in practice a WSF record carries at
// most one reply-generating field.
func (in *Interpreter) processWSF(body []byte) ([]byte, error) {
	var response []byte
	i := 0
	for i < len(body) {
		if i+2 > len(body) {
			return nil, &ProtocolError{Phase: "structured-field", Detail: "truncated length", Byte: CmdWSF}
		}
		sfl := int(body[i])<<8 | int(body[i+1])
		if sfl == 0 {
			sfl = len(body) - i
		}
		if sfl < 3 {
			return nil, &ProtocolError{Phase: "structured-field", Detail: "length too short", Byte: CmdWSF}
		}
		if i+sfl > len(body) {
			return nil, &ProtocolError{Phase: "structured-field", Detail: "length exceeds record", Byte: CmdWSF}
		}
		field := body[i : i+sfl]
		sfType := field[2]
		resp, err := in.dispatchSF(sfType, field)
		if err != nil {
			return nil, err
		}
		if resp != nil && response == nil {
			response = resp
		}
		i += sfl
	}
	return response, nil
}

func (in *Interpreter) dispatchSF(sfType byte, field []byte) ([]byte, error) {
	switch sfType {
	case SFReadPartition:
		return in.processReadPartition(field)
	case SFErase3270:
		return nil, in.processEraseReset(field)
	case SFSetReplyMode:
		return nil, in.processSetReplyMode(field)
	case SFCreatePartition:
		return nil, in.processCreatePartition(field)
	case SFOutbound3270DS:
		return nil, in.processOutbound3270DS(field)
	case SFDDM:
		if in.ddmHandler != nil {
			// field carries the WSF 2-byte length prefix before the
			// DDM header; HandleDDM expects the header itself to start
			// at index 0.
			raw, err := in.ddmHandler(field[2:])
			if err != nil || raw == nil {
				return nil, err
			}
			return wrapStructuredFieldResponse(raw), nil
		}
		return nil, &ProtocolError{Phase: "structured-field", Detail: "no DDM handler installed", Byte: sfType}
	default:
		return nil, &ProtocolError{Phase: "structured-field", Detail: "unrecognized structured field type", Byte: sfType}
	}
}

// processReadPartition handles Read-Partition: field[3] is the
// partition id, field[4] the sub-type (Query, Query-List, or one of the
// RB/RM/RMA equivalents).
func (in *Interpreter) processReadPartition(field []byte) ([]byte, error) {
	if len(field) < 5 {
		return nil, &ProtocolError{Phase: "structured-field", Detail: "Read-Partition too short", Byte: SFReadPartition}
	}
	rpType := field[4]
	switch rpType {
	case RPQuery:
		return in.BuildQueryReply(nil), nil
	case RPQueryList:
		if len(field) < 6 {
			return in.BuildQueryReply(nil), nil
		}
		return in.BuildQueryReply(field[6:]), nil
	case RPRB:
		return in.BuildReadBuffer(), nil
	case RPRM:
		return in.BuildReadModified(false), nil
	case RPRMA:
		return in.BuildReadModified(true), nil
	default:
		return nil, &ProtocolError{Phase: "structured-field", Detail: "unknown Read-Partition type", Byte: rpType}
	}
}

// processEraseReset handles Erase/Reset: clears the presentation space,
// optionally resizing to the alternate size when the IPZ flag is set.
func (in *Interpreter) processEraseReset(field []byte) error {
	if len(field) < 4 {
		return &ProtocolError{Phase: "structured-field", Detail: "Erase/Reset too short", Byte: SFErase3270}
	}
	ipz := field[3]&0x80 != 0
	if ipz {
		in.eraseLocked(in.altRows, in.altCols)
	} else {
		in.eraseLocked(in.defaultRows, in.defaultCols)
	}
	return nil
}

// processSetReplyMode records the reply mode (Field, Extended-Field, or
// Character) for future Read-Modified responses; only pid 0 (the
// implicit partition) is supported.
func (in *Interpreter) processSetReplyMode(field []byte) error {
	if len(field) < 5 {
		return &ProtocolError{Phase: "structured-field", Detail: "Set-Reply-Mode too short", Byte: SFSetReplyMode}
	}
	if pid := field[3]; pid != 0 {
		return &ProtocolError{Phase: "structured-field", Detail: "non-zero partition id not supported", Byte: pid}
	}
	mode := field[4]
	if mode > 2 {
		return &ProtocolError{Phase: "structured-field", Detail: "bad reply mode", Byte: mode}
	}
	in.replyMode = mode
	return nil
}

// processCreatePartition records a partition's declared geometry; this
// interpreter models only the implicit partition for data-stream
// purposes, so Create-Partition is accepted and stored but does not
// change how W/EW/RB/RM address the buffer.
func (in *Interpreter) processCreatePartition(field []byte) error {
	if len(field) < 9 {
		return &ProtocolError{Phase: "structured-field", Detail: "Create-Partition too short", Byte: SFCreatePartition}
	}
	pid := field[3]
	rows := int(field[7])<<8 | int(field[8])
	var cols int
	if len(field) >= 11 {
		cols = int(field[9])<<8 | int(field[10])
	}
	in.partitions[pid] = partition{rows: rows, cols: cols}
	return nil
}

// processOutbound3270DS unwraps an Outbound-3270DS structured field:
// field[3] is the partition id, field[4] the 3270 command being carried
// (W/EW/EWA/EAU), and the remainder is that command's own body.
func (in *Interpreter) processOutbound3270DS(field []byte) error {
	if len(field) < 5 {
		return &ProtocolError{Phase: "structured-field", Detail: "Outbound-3270DS too short", Byte: SFOutbound3270DS}
	}
	pid := field[3]
	if pid != 0 {
		return &ProtocolError{Phase: "structured-field", Detail: "non-zero partition id not supported", Byte: pid}
	}
	cmnd := field[4]
	switch cmnd {
	case CmdW:
		return in.processWrite(field[5:])
	case CmdEW:
		in.eraseLocked(in.defaultRows, in.defaultCols)
		return in.processWrite(field[5:])
	case CmdEWA:
		in.eraseLocked(in.altRows, in.altCols)
		return in.processWrite(field[5:])
	case CmdEAU:
		in.ps.EraseAllUnprotected()
		return nil
	default:
		return &ProtocolError{Phase: "structured-field", Detail: "unsupported Outbound-3270DS command", Byte: cmnd}
	}
}

// wrapStructuredFieldResponse frames a raw structured-field body (type
// byte first, as the DDM handler produces) as an inbound
// AID-Structured-Field record: AID byte, then a 2-byte length prefix
// covering itself and body, then body.
func wrapStructuredFieldResponse(body []byte) []byte {
	length := 2 + len(body)
	out := []byte{AIDStructuredField, byte(length >> 8), byte(length)}
	return append(out, body...)
}
