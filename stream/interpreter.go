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

import (
	"tn3270/ps"
)

// Interpreter consumes 3270 data-stream records and mutates a
// ps.PresentationSpace. One Interpreter belongs to exactly one session;
// it has no locking of its own because its caller already serializes
// every call onto the session's single task goroutine.
//
// Grounded on tnz.py's TnzInputDev.process_command_0xNN/process_order_0xNN
// dispatch (original_source), generalized from its single giant class
// into a dispatch table over command and order bytes, in the manner of
// the teacher's terminal.go switch-per-escape-byte loop.
type Interpreter struct {
	ps *ps.PresentationSpace

	defaultRows, defaultCols int
	altRows, altCols         int

	bufAddr int // current buffer address orders/data advance from

	procEH, procFG, procBG, procCS byte // current Set Attribute context
	replyMode                      byte
	partitions                     map[byte]partition

	ddmHandler func(field []byte) ([]byte, error)
}

// SetDDMHandler installs the callback dispatchSF invokes for a DDM
// (0xd0) structured field, letting a session wire IND$FILE handling in
// without this package depending on the xfer package. A nil handler
// (the default) makes a DDM field a protocol error, same as any other
// unrecognized structured field.
func (in *Interpreter) SetDDMHandler(fn func(field []byte) ([]byte, error)) {
	in.ddmHandler = fn
}

type partition struct {
	rows, cols int
	active     bool
}

// New builds an Interpreter over ps, with the given default (EW) and
// alternate (EWA) screen sizes.
func New(p *ps.PresentationSpace, defaultRows, defaultCols, altRows, altCols int) *Interpreter {
	return &Interpreter{
		ps:          p,
		defaultRows: defaultRows, defaultCols: defaultCols,
		altRows: altRows, altCols: altCols,
		partitions: make(map[byte]partition),
	}
}

// Apply processes one record body (the bytes following the TN3270E
// record header) and returns an outbound payload to send back to the
// host, if the command demands an immediate reply (RB/RM/RMA, or a
// structured field such as Read-Partition Query). A nil response means
// no reply is due (the reply, if any, will come later via send_aid).
func (in *Interpreter) Apply(body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, &ProtocolError{Phase: "command", Detail: "empty record"}
	}
	cmd := normalizeCommand(body[0])
	switch cmd {
	case CmdNOP:
		return nil, nil
	case CmdW:
		return nil, in.processWrite(body[1:])
	case CmdEW:
		in.eraseLocked(in.defaultRows, in.defaultCols)
		return nil, in.processWrite(body[1:])
	case CmdEWA:
		in.eraseLocked(in.altRows, in.altCols)
		return nil, in.processWrite(body[1:])
	case CmdEAU:
		in.ps.EraseAllUnprotected()
		return nil, nil
	case CmdRB:
		return in.BuildReadBuffer(), nil
	case CmdRM:
		return in.BuildReadModified(false), nil
	case CmdRMA:
		return in.BuildReadModified(true), nil
	case CmdWSF:
		return in.processWSF(body[1:])
	default:
		return nil, &ProtocolError{Phase: "command", Detail: "unrecognized command byte", Byte: body[0]}
	}
}

// normalizeCommand maps the short-form command codes onto their
// long-form equivalents so callers only need one switch.
func normalizeCommand(b byte) byte {
	switch b {
	case CmdWShort:
		return CmdW
	case CmdRBShort:
		return CmdRB
	case CmdEWShort:
		return CmdEW
	case CmdRMShort:
		return CmdRM
	case CmdEWAShort:
		return CmdEWA
	case CmdEAUShort:
		return CmdEAU
	case CmdWSFShort:
		return CmdWSF
	default:
		return b
	}
}

func (in *Interpreter) eraseLocked(rows, cols int) {
	if rows > 0 && cols > 0 {
		in.ps.Resize(rows, cols)
	} else {
		in.ps.Clear()
	}
	in.bufAddr = 0
}

// processWrite applies the WCC then the order/data stream of a W/EW/EWA
// command. Both the plain-command form (Apply) and the Outbound-3270DS
// structured-field form (processOutbound3270DS) hand it a body whose
// first byte is the WCC; the structured-field form has already stripped
// its own partition-id and command bytes before calling in.
func (in *Interpreter) processWrite(body []byte) error {
	if len(body) == 0 {
		return nil // a W with no WCC byte at all is a no-op
	}
	wcc := body[0]
	in.applyWCC(wcc, true)
	if err := in.processOrders(body[1:]); err != nil {
		return err
	}
	in.applyWCC(wcc, false)
	return nil
}

// applyWCC processes one WCC byte. forMDT selects the bits that must
// take effect before the orders that follow are applied (reset-MDT,
// reset-partition: clearing the buffer after orders have already
// written to it would discard them); the remaining bits (alarm,
// keyboard-restore) apply after.
func (in *Interpreter) applyWCC(wcc byte, forMDT bool) {
	if forMDT {
		if wcc&WCCResetPartition != 0 {
			in.ps.Clear()
		}
		if wcc&WCCResetMDT != 0 {
			in.resetMDT()
		}
		return
	}
	if wcc&WCCKeyboardRestore != 0 {
		in.ps.KeyboardUnlock()
	}
	// Start-printer and sound-alarm have no presentation-space effect;
	// a session layer with a bell/printer sink may observe WCC directly.
}

func (in *Interpreter) resetMDT() {
	for _, f := range in.ps.AllFields() {
		if f.Modified {
			in.ps.ClearModified(f)
		}
	}
}
