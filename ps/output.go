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

// Outbound order bytes, duplicated here (rather than imported from
// stream, to avoid a package cycle: stream imports ps to drive it).
// Values per original_source/tnz.py's order byte constants.
const (
	orderSBA byte = 0x11
	orderSF  byte = 0x1d
)

// ReadBuffer produces the RB payload per the Data Stream Programmer's
// Reference: every position in address order, with an SBA+SF pair
// inserted at each field-attribute cell. The AID and cursor address
// themselves are prepended by the caller (stream/session), which alone
// knows the current AID.
func (p *PresentationSpace) ReadBuffer() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	size := p.rows * p.cols
	out := make([]byte, 0, size*2)
	for i := 0; i < size; i++ {
		c := p.cells[i]
		if c.IsFieldAttribute {
			addr := EncodeAddress(i, size)
			out = append(out, orderSBA, addr[0], addr[1], orderSF, c.AttrByte)
			continue
		}
		out = append(out, c.CodePoint)
	}
	return out
}

// ReadModified produces the RM/RMA payload: for each modified field (or,
// if includeAll, every unprotected field regardless of MDT), an SBA to
// the field's start address followed by its data up to the next field
// attribute, with trailing null bytes dropped per the standard.
func (p *PresentationSpace) ReadModified(includeAll bool) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()

	size := p.rows * p.cols
	var out []byte
	for _, f := range p.dir.fields {
		if f.Implicit {
			continue // unformatted screen: RM with no fields returns AID+cursor only
		}
		if f.Protected {
			continue
		}
		if !includeAll && !f.Modified {
			continue
		}
		data := make([]byte, f.Length)
		for i := 0; i < f.Length; i++ {
			data[i] = p.cells[(f.Start+i)%size].CodePoint
		}
		for len(data) > 0 && data[len(data)-1] == 0 {
			data = data[:len(data)-1]
		}
		addr := EncodeAddress(f.Start, size)
		out = append(out, orderSBA, addr[0], addr[1])
		out = append(out, data...)
	}
	return out
}
