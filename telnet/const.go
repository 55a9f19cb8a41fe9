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

// Package telnet implements RFC 854/855 IAC framing plus the TN3270(E)
// options needed to carry 3270 data streams (RFC 2355): BINARY,
// END-OF-RECORD, TERMINAL-TYPE, and TN3270E itself.
//
// Grounded on the teacher's ad hoc IAC handling in terminal.go (the
// inTelnetCommand/gotTelnetDo/gotTelnetWill booleans), generalized into an
// explicit per-option state machine the way moodclient-telnet/telopts
// gives each telnet option its own file.
package telnet

// Telnet commands (RFC 854).
const (
	CmdSE   byte = 240
	CmdNOP  byte = 241
	CmdDM   byte = 242
	CmdBRK  byte = 243
	CmdIP   byte = 244
	CmdAO   byte = 245
	CmdAYT  byte = 246
	CmdEC   byte = 247
	CmdEL   byte = 248
	CmdGA   byte = 249
	CmdSB   byte = 250
	CmdWILL byte = 251
	CmdWONT byte = 252
	CmdDO   byte = 253
	CmdDONT byte = 254
	CmdIAC  byte = 255
	CmdEOR  byte = 239 // sent as IAC EOR, not inside an IAC command byte range but reserved by RFC 885
)

// Telnet options relevant to TN3270(E) (RFC 855, RFC 1091, RFC 2355).
const (
	OptBinary    byte = 0
	OptEcho      byte = 1
	OptSGA       byte = 3
	OptTTYPE     byte = 24
	OptEOR       byte = 25
	OptTN3270E   byte = 40
)

// TN3270E subnegotiation sub-commands (RFC 2355 §4).
const (
	TN3270EAssociate   byte = 0
	TN3270EConnect     byte = 1
	TN3270EDeviceType  byte = 2
	TN3270EFunctions   byte = 3
	TN3270EIs          byte = 4
	TN3270EReason      byte = 5
	TN3270ERejected    byte = 6
	TN3270ERequest     byte = 7
	TN3270ESend        byte = 8
)

// TN3270E functions (RFC 2355 §4.4).
const (
	FuncBindImage  byte = 0
	FuncDataStreamCtl byte = 1
	FuncResponses  byte = 2
	FuncScsCtlCodes byte = 3
	FuncSysreq     byte = 4
)

// TN3270E data-types (RFC 2355 §3.1), used in the 5-byte record header.
const (
	DataType3270Data   byte = 0
	DataTypeSCSData    byte = 1
	DataTypeResponse   byte = 2
	DataTypeBindImage  byte = 3
	DataTypeUnbind     byte = 4
	DataTypeNVTData    byte = 5
	DataTypeRequest    byte = 6
	DataTypeSSCPLUData byte = 7
	DataTypePrintEOJ   byte = 8
)

// Response flags used in the TN3270E header's response-flag byte.
const (
	RspFlagNoResponse  byte = 0
	RspFlagErrorResp   byte = 1
	RspFlagAlwaysResp  byte = 2
)

// Positive/negative response data-type values carried in a response record.
const (
	RspPositive byte = 0
	RspNegative byte = 1
)
