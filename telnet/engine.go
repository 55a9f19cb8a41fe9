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

import (
	"context"
)

// State is a telnet engine's position in the RFC 2355 negotiation state
// machine: BINARY/EOR/TERMINAL-TYPE first, then TN3270E device-type and
// functions if requested.
type State int

const (
	StateOffering State = iota
	StateNegotiatingTType
	StateNegotiatingTN3270E
	StateActive
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOffering:
		return "OFFERING"
	case StateNegotiatingTType:
		return "NEGOTIATING_TTYPE"
	case StateNegotiatingTN3270E:
		return "NEGOTIATING_TN3270E"
	case StateActive:
		return "ACTIVE"
	case StateClosing:
		return "CLOSING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// byteConn is the minimal transport surface the engine needs; satisfied
// structurally by *transport.Conn.
type byteConn interface {
	Read(ctx context.Context, p []byte) (int, error)
	Write(p []byte) error
	Close() error
}

// Device describes the negotiated TN3270E device identity.
type Device struct {
	TerminalType string // e.g. IBM-3278-2-E, IBM-DYNAMIC
	Functions    []byte // negotiated TN3270E functions
	IsTN3270E    bool   // false: fell back to plain TN3270 (BINARY+EOR only)
}

// Engine drives the Telnet option negotiation and 3270-record framing for
// one connection. It is not safe for concurrent use; the session
// controller serializes access from its single task goroutine.
type Engine struct {
	conn byteConn

	state State

	// requested terminal types to offer, in order, cycling if the host
	// REJECTs one (TN3270E device-type negotiation, RFC 2355 §4.2).
	termTypes   []string
	termTypeIdx int

	wantTN3270E bool
	wantFunctions []byte

	device Device

	localBinary, remoteBinary bool
	localEOR, remoteEOR       bool
	tn3270eRejected           bool
	functionsNegotiated       bool // FUNCTIONS IS exchanged in either direction

	inbuf  []byte // raw bytes read from the transport, not yet framed
	outSeq uint16

	trace func(format string, args ...any)
}

// NewEngine constructs an Engine that will offer termTypes in order during
// TERMINAL-TYPE negotiation and request TN3270E with wantFunctions if
// requestTN3270E is true.
func NewEngine(conn byteConn, termTypes []string, requestTN3270E bool, wantFunctions []byte) *Engine {
	return &Engine{
		conn:          conn,
		state:         StateOffering,
		termTypes:     termTypes,
		wantTN3270E:   requestTN3270E,
		wantFunctions: wantFunctions,
		trace:         func(string, ...any) {},
	}
}

// SetTrace installs a debug-trace sink, matching the teacher's
// traceExpect-style opt-in tracing.
func (e *Engine) SetTrace(fn func(format string, args ...any)) {
	if fn != nil {
		e.trace = fn
	}
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Device() Device { return e.device }

// sendIAC writes an IAC-prefixed 2- or 3-byte command.
func (e *Engine) sendIAC(bytes ...byte) error {
	return e.conn.Write(append([]byte{CmdIAC}, bytes...))
}

func (e *Engine) sendSubneg(option byte, body []byte) error {
	payload := []byte{CmdIAC, CmdSB, option}
	payload = append(payload, escapeIAC(body)...)
	payload = append(payload, CmdIAC, CmdSE)
	return e.conn.Write(payload)
}

// escapeIAC doubles any literal 0xFF bytes inside a subnegotiation body,
// per RFC 855.
func escapeIAC(body []byte) []byte {
	out := make([]byte, 0, len(body))
	for _, b := range body {
		out = append(out, b)
		if b == CmdIAC {
			out = append(out, CmdIAC)
		}
	}
	return out
}

// Negotiate drives OFFERING -> ... -> ACTIVE (or returns a
// *NegotiationError / *ProtocolError and leaves the engine CLOSED).
//
// It offers DO/WILL for BINARY and END-OF-RECORD in both directions, and
// if requested, negotiates TN3270E device-type and functions; on
// TN3270E rejection it falls back to plain TN3270 (BINARY+EOR only), per
// RFC 2355 §3.1.
func (e *Engine) Negotiate(ctx context.Context) error {
	e.state = StateOffering

	if err := e.sendIAC(CmdWILL, OptBinary); err != nil {
		return e.fail(&NegotiationError{Option: OptBinary, Reason: err.Error()})
	}
	if err := e.sendIAC(CmdDO, OptBinary); err != nil {
		return e.fail(&NegotiationError{Option: OptBinary, Reason: err.Error()})
	}
	if err := e.sendIAC(CmdWILL, OptEOR); err != nil {
		return e.fail(&NegotiationError{Option: OptEOR, Reason: err.Error()})
	}
	if err := e.sendIAC(CmdDO, OptEOR); err != nil {
		return e.fail(&NegotiationError{Option: OptEOR, Reason: err.Error()})
	}
	if err := e.sendIAC(CmdWILL, OptTTYPE); err != nil {
		return e.fail(&NegotiationError{Option: OptTTYPE, Reason: err.Error()})
	}

	e.state = StateNegotiatingTType

	buf := make([]byte, 4096)
	for e.state != StateActive {
		n, err := e.conn.Read(ctx, buf)
		if err != nil {
			return e.fail(&NegotiationError{Reason: err.Error()})
		}
		e.inbuf = append(e.inbuf, buf[:n]...)
		if err := e.processNegotiationBytes(); err != nil {
			return e.fail(err)
		}
		if e.localBinary && e.remoteBinary && e.localEOR && e.remoteEOR {
			if e.wantTN3270E && e.state != StateNegotiatingTN3270E && !e.device.IsTN3270E {
				e.state = StateNegotiatingTN3270E
				if err := e.sendIAC(CmdDO, OptTN3270E); err != nil {
					return e.fail(&NegotiationError{Option: OptTN3270E, Reason: err.Error()})
				}
			} else if !e.wantTN3270E || e.tn3270eRejected ||
				(e.device.IsTN3270E && e.functionsNegotiated) {
				// Device-type alone isn't enough: FUNCTIONS must also be
				// settled, or e.device.Functions (and HasFunction) could
				// still read empty even though the host granted RESPONSES.
				e.state = StateActive
			}
		}
	}
	return nil
}

func (e *Engine) fail(err error) error {
	e.state = StateClosed
	return err
}
