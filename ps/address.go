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

package ps

// Buffer addresses travel on the wire in one of two forms: a 12-bit form
// (two 6-bit groups, each encoded into a printable byte per the 3270
// "6-bit address code" chart) used when the buffer holds no more than
// 4096 positions, and a 14-bit form (plain big-endian 16-bit, high two
// bits always zero for in-range addresses) used for larger buffers.
//
// The encode/decode tables are grounded on tnz.py's bit6()/address()/
// address_bytes() functions (original_source), which this spec was
// distilled from.

// bit6 translates a 6-bit value into a printable byte per the Data
// Stream Programmer's Reference figure D-1 "6-bit code" chart.
func bit6(v byte) byte {
	v &= 0x3f
	cc11 := v | 0xC0
	if v == 48 {
		return cc11
	}
	cc01 := v | 0x40
	if v == 33 {
		return cc01
	}
	if low := v & 0x0f; low > 0 && low < 10 {
		return cc11
	}
	return cc01
}

// unbit6 inverts bit6: strips the mode bits, leaving the original 6-bit
// value.
func unbit6(b byte) byte { return b & 0x3f }

// Bit6 exposes bit6 for callers outside the package (the stream
// interpreter's SFE/MF order handling, which must translate a raw field
// attribute byte the same way an SF order's attribute byte is stored).
func Bit6(v byte) byte { return bit6(v) }

// Encode12 encodes addr (must be in [0, 4096)) into its 12-bit wire form.
func Encode12(addr int) [2]byte {
	high, low := addr/64, addr%64
	return [2]byte{bit6(byte(high)), bit6(byte(low))}
}

// Decode12 decodes a 12-bit wire address.
func Decode12(b [2]byte) int {
	high := int(unbit6(b[0]))
	low := int(unbit6(b[1]))
	return high*64 + low
}

// Is12BitForm reports whether b looks like a 12-bit encoded address:
// the top two bits of the first byte are a nonzero mode indicator in
// the 12-bit form, per the Data Stream Programmer's Reference's buffer
// address chart.
func Is12BitForm(b [2]byte) bool {
	return b[0]&0xC0 != 0
}

// Encode14 encodes addr (must be in [0, 16384)) into its 14-bit wire
// form: plain big-endian 16 bits.
func Encode14(addr int) [2]byte {
	return [2]byte{byte(addr >> 8), byte(addr)}
}

// Decode14 decodes a 14-bit wire address.
func Decode14(b [2]byte) int {
	return int(b[0])<<8 | int(b[1])
}

// DecodeAddress decodes a 2-byte wire address, choosing the 12- or 14-bit
// form based on bufferSize (<=4096 positions -> 12-bit, larger buffers
// -> 14-bit). The form is chosen from bufferSize alone; the mode bits of
// the address bytes are not consulted.
func DecodeAddress(b [2]byte, bufferSize int) int {
	if bufferSize <= 4096 {
		return Decode12(b)
	}
	return Decode14(b)
}

// EncodeAddress encodes addr using the 12-bit form when bufferSize fits,
// else the 14-bit form.
func EncodeAddress(addr, bufferSize int) [2]byte {
	if bufferSize <= 4096 {
		return Encode12(addr)
	}
	return Encode14(addr)
}
