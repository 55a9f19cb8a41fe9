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

// processNegotiationBytes consumes complete IAC sequences from e.inbuf,
// updating option state, until only a (possibly empty) partial sequence
// remains buffered.
func (e *Engine) processNegotiationBytes() error {
	for {
		i := indexByte(e.inbuf, CmdIAC)
		if i < 0 {
			e.inbuf = nil
			return nil
		}
		if i+1 >= len(e.inbuf) {
			e.inbuf = e.inbuf[i:] // wait for more
			return nil
		}
		cmd := e.inbuf[i+1]
		switch cmd {
		case CmdWILL, CmdWONT, CmdDO, CmdDONT:
			if i+2 >= len(e.inbuf) {
				e.inbuf = e.inbuf[i:]
				return nil
			}
			opt := e.inbuf[i+2]
			e.inbuf = e.inbuf[i+3:]
			if err := e.handleNegotiationCmd(cmd, opt); err != nil {
				return err
			}
		case CmdSB:
			end := indexSubnegEnd(e.inbuf[i+2:])
			if end < 0 {
				e.inbuf = e.inbuf[i:]
				return nil
			}
			opt := e.inbuf[i+2]
			body := unescapeIAC(e.inbuf[i+3 : i+2+end])
			e.inbuf = e.inbuf[i+2+end+2:]
			if err := e.handleSubnegotiation(opt, body); err != nil {
				return err
			}
		default:
			// NOP/GA/etc. during negotiation: ignore.
			e.inbuf = e.inbuf[i+2:]
		}
	}
}

// indexSubnegEnd returns the offset (relative to b) of the IAC byte that
// starts the terminating "IAC SE", or -1 if not yet present.
func indexSubnegEnd(b []byte) int {
	for i := 0; i+1 < len(b); i++ {
		if b[i] == CmdIAC {
			if b[i+1] == CmdSE {
				return i
			}
			if b[i+1] == CmdIAC {
				i++ // escaped 0xFF, skip the pair
				continue
			}
		}
	}
	return -1
}

func unescapeIAC(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == CmdIAC && i+1 < len(b) && b[i+1] == CmdIAC {
			i++
		}
	}
	return out
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

func (e *Engine) handleNegotiationCmd(cmd, opt byte) error {
	switch opt {
	case OptBinary:
		switch cmd {
		case CmdDO:
			e.localBinary = true
		case CmdDONT:
			e.localBinary = false
			return &NegotiationError{Option: OptBinary, Reason: "host refused DO BINARY"}
		case CmdWILL:
			e.remoteBinary = true
		case CmdWONT:
			e.remoteBinary = false
			return &NegotiationError{Option: OptBinary, Reason: "host refused WILL BINARY"}
		}
	case OptEOR:
		switch cmd {
		case CmdDO:
			e.localEOR = true
		case CmdDONT:
			e.localEOR = false
			return &NegotiationError{Option: OptEOR, Reason: "host refused DO EOR"}
		case CmdWILL:
			e.remoteEOR = true
		case CmdWONT:
			e.remoteEOR = false
			return &NegotiationError{Option: OptEOR, Reason: "host refused WILL EOR"}
		}
	case OptTTYPE:
		if cmd == CmdDO {
			// Host wants us to identify; wait for its SEND subnegotiation.
		} else if cmd == CmdDONT {
			// Non-fatal: terminal type is advisory.
			e.trace("TTYPE refused by host")
		}
	case OptTN3270E:
		switch cmd {
		case CmdDO:
			// Host invites us to enable TN3270E (RFC 2355 §3.1): confirm
			// with WILL, then wait for its SEND DEVICE-TYPE subnegotiation
			// before volunteering a device type.
			return e.sendIAC(CmdWILL, OptTN3270E)
		case CmdDONT, CmdWONT:
			e.tn3270eRejected = true
			e.trace("TN3270E rejected by host, falling back to plain TN3270")
		case CmdWILL:
			// host offers TN3270E in its direction too; nothing further needed.
		}
	}
	return nil
}

func (e *Engine) handleSubnegotiation(opt byte, body []byte) error {
	switch opt {
	case OptTTYPE:
		if len(body) == 0 || body[0] != 1 { // 1 == SEND
			return &ProtocolError{Phase: "ttype", Detail: "malformed TTYPE subnegotiation"}
		}
		tt := e.nextTermType()
		payload := append([]byte{0}, []byte(tt)...) // 0 == IS
		return e.sendSubneg(OptTTYPE, payload)
	case OptTN3270E:
		return e.handleTN3270ESubneg(body)
	default:
		return &ProtocolError{Phase: "subnegotiation", Detail: "unrecognized option"}
	}
}

func (e *Engine) nextTermType() string {
	if len(e.termTypes) == 0 {
		return "IBM-DYNAMIC"
	}
	tt := e.termTypes[e.termTypeIdx%len(e.termTypes)]
	e.termTypeIdx++
	return tt
}

func (e *Engine) handleTN3270ESubneg(body []byte) error {
	if len(body) < 1 {
		return &ProtocolError{Phase: "tn3270e", Detail: "empty subnegotiation"}
	}
	switch body[0] {
	case TN3270EDeviceType:
		if len(body) < 2 {
			return &ProtocolError{Phase: "tn3270e device-type", Detail: "truncated"}
		}
		switch body[1] {
		case TN3270ESend:
			// Host asks us to volunteer a device type (RFC 2355 §4.2).
			tt := e.nextTermType()
			return e.sendSubneg(OptTN3270E, append([]byte{TN3270EDeviceType, TN3270ERequest}, []byte(tt)...))
		case TN3270EIs:
			e.device.TerminalType = string(body[2:])
			e.device.IsTN3270E = true
			return e.sendSubneg(OptTN3270E, append([]byte{TN3270EFunctions, TN3270ERequest}, e.wantFunctions...))
		case TN3270ERejected:
			tt := e.nextTermType()
			return e.sendSubneg(OptTN3270E, append([]byte{TN3270EDeviceType, TN3270ERequest}, []byte(tt)...))
		}
	case TN3270EFunctions:
		if len(body) < 2 {
			return &ProtocolError{Phase: "tn3270e functions", Detail: "truncated"}
		}
		switch body[1] {
		case TN3270ESend:
			return e.sendSubneg(OptTN3270E, append([]byte{TN3270EFunctions, TN3270ERequest}, e.wantFunctions...))
		case TN3270EIs:
			e.device.Functions = append([]byte(nil), body[2:]...)
			e.functionsNegotiated = true
		case TN3270ERequest:
			// host is proposing functions; intersect with what we want and agree.
			granted := intersectFunctions(e.wantFunctions, body[2:])
			e.device.Functions = granted
			e.functionsNegotiated = true
			return e.sendSubneg(OptTN3270E, append([]byte{TN3270EFunctions, TN3270EIs}, granted...))
		}
	}
	return nil
}

func intersectFunctions(want, offered []byte) []byte {
	set := make(map[byte]bool, len(offered))
	for _, f := range offered {
		set[f] = true
	}
	out := make([]byte, 0, len(want))
	for _, f := range want {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}
