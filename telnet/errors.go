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

import "fmt"

// NegotiationError reports that the host refused a mandatory TN3270
// option (BINARY or END-OF-RECORD, or TTYPE with no usable terminal
// type).
type NegotiationError struct {
	Option byte
	Reason string
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("telnet: negotiation failed for option %d: %s", e.Option, e.Reason)
}

// ProtocolError reports a malformed IAC sequence or subnegotiation.
type ProtocolError struct {
	Phase string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("telnet: protocol error in %s: %s", e.Phase, e.Detail)
}
