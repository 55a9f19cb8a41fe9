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

// Package stream implements the 3270 data-stream interpreter: it
// consumes a Record's body (telnet.Record.Body) and mutates a
// ps.PresentationSpace, and constructs outbound AID/read-response
// payloads on demand.
//
// Grounded on the teacher's terminal.go processing loop (a switch over
// command/order bytes driving direct cell-buffer writes), generalized
// into a dispatch table keyed by the real 3270 command/order bytes
// rather than the teacher's Dasher-specific escape codes. Byte values
// are taken from original_source/tnz/tnz.py's _process_command_0xNN /
// _process_order_0xNN method names, which name the wire values directly.
package stream

// Command bytes: the first byte of a 3270 data-stream record.
const (
	CmdW   byte = 0xf1
	CmdRB  byte = 0xf2
	CmdEW  byte = 0xf5
	CmdRM  byte = 0xf6
	CmdEWA byte = 0x7e
	CmdEAU byte = 0x6f
	CmdWSF byte = 0xf3
	CmdRMA byte = 0x6e
	CmdNOP byte = 0x03

	// Short form command codes, equivalent to the long form above
	// (tnz.py aliases _process_command_0x1 etc. to the long forms).
	CmdWShort   byte = 0x01
	CmdRBShort  byte = 0x02
	CmdEWShort  byte = 0x05
	CmdRMShort  byte = 0x06
	CmdEWAShort byte = 0x0d
	CmdEAUShort byte = 0x0f
	CmdWSFShort byte = 0x11
)

// Order bytes encountered within a Write/Erase-Write order stream.
const (
	OrderPT  byte = 0x05
	OrderGE  byte = 0x08
	OrderSBA byte = 0x11
	OrderEUA byte = 0x12
	OrderIC  byte = 0x13
	OrderSF  byte = 0x1d
	OrderSA  byte = 0x28
	OrderSFE byte = 0x29
	OrderMF  byte = 0x2c
	OrderRA  byte = 0x3c
)

// WCC (Write Control Character) bits.
const (
	WCCResetMDT       byte = 0x01
	WCCKeyboardRestore byte = 0x02
	WCCSoundAlarm      byte = 0x04
	WCCStartPrinter    byte = 0x08
	WCCResetPartition  byte = 0x40
)

// Structured field type bytes (first data byte of a WSF-carried field).
const (
	SFReadPartition    byte = 0x01
	SFErase3270        byte = 0x03
	SFSetReplyMode     byte = 0x09
	SFCreatePartition  byte = 0x0c
	SFOutbound3270DS   byte = 0x40
	SFInbound3270DS    byte = 0x41
	SFQueryReply       byte = 0x81
	SFDDM              byte = 0xd0
)

// Read-Partition sub-types (byte following the partition id).
const (
	RPQuery     byte = 0x02
	RPQueryList byte = 0x03
	RPRMA       byte = 0x6e
	RPRB        byte = 0xf2
	RPRM        byte = 0xf6
)

// Query Reply QCODEs, per the Data Stream Programmer's Reference's
// structured-field chapter.
const (
	QCodeSummary           byte = 0x80
	QCodeUsableArea         byte = 0x81
	QCodeCharacterSets      byte = 0x85
	QCodeColor              byte = 0x86
	QCodeHighlight          byte = 0x87
	QCodeReplyModes         byte = 0x88
	QCodeDDM                byte = 0x95
	QCodeImplicitPartitions byte = 0xa6
)

// AIDStructuredField is the AID sent with a structured-field response
// record (e.g. a Query Reply).
const AIDStructuredField byte = 0x88

// AIDReadPartition is the AID used internally for Read-Partition
// RB/RM/RMA requests (tnz.py's AID_READP).
const AIDReadPartition byte = 0x61
