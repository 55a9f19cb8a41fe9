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

package session

// AID values an external caller passes to SendAID, matching the 3270
// Data Stream Programmer's Reference AID assignments (tnz.py's
// AID_ENTER/AID_CLEAR/AID_PFn/AID_PAn constants).
const (
	AIDNone  byte = 0x60
	AIDEnter byte = 0x7d
	AIDClear byte = 0x6d

	AIDPA1 byte = 0x6c
	AIDPA2 byte = 0x6e
	AIDPA3 byte = 0x6b

	AIDPF1  byte = 0xf1
	AIDPF2  byte = 0xf2
	AIDPF3  byte = 0xf3
	AIDPF4  byte = 0xf4
	AIDPF5  byte = 0xf5
	AIDPF6  byte = 0xf6
	AIDPF7  byte = 0xf7
	AIDPF8  byte = 0xf8
	AIDPF9  byte = 0xf9
	AIDPF10 byte = 0x7a
	AIDPF11 byte = 0x7b
	AIDPF12 byte = 0x7c
	AIDPF13 byte = 0xc1
	AIDPF14 byte = 0xc2
	AIDPF15 byte = 0xc3
	AIDPF16 byte = 0xc4
	AIDPF17 byte = 0xc5
	AIDPF18 byte = 0xc6
	AIDPF19 byte = 0xc7
	AIDPF20 byte = 0xc8
	AIDPF21 byte = 0xc9
	AIDPF22 byte = 0x4a
	AIDPF23 byte = 0x4b
	AIDPF24 byte = 0x4c
)
