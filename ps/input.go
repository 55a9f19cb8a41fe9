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

import "tn3270/codec"

// numericAllowed reports whether r is one of the characters a
// numeric-only field accepts per the Data Stream Programmer's
// Reference: 0-9, ., -, + or DUP.
func numericAllowed(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '+':
		return true
	case r == dupRune:
		return true
	}
	return false
}

// dupRune is a sentinel Unicode value (in the Private Use Area) callers
// use to represent a press of the DUP key, since DUP has no natural
// Unicode character.
const dupRune rune = ''

// Type performs one local keystroke at cursor position addr: it honors
// field protection and numeric-only rules, shifts cells right first when
// insert is true, and sets MDT on the containing field on success. It
// returns the cursor position after the keystroke.
func (p *PresentationSpace) Type(addr int, r rune, insert bool) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()

	addr = p.wrap(addr)
	f, ok := p.findFieldLocked(addr)
	if ok && f.Protected {
		return addr, &ProtectedField{Addr: addr}
	}
	if ok && f.Numeric && !numericAllowed(r) {
		b, _ := codec.EncodeRune(r, p.codePage)
		return addr, &NumericOnly{Addr: addr, Key: b}
	}

	var b byte
	if r == dupRune {
		b = ebcdicDUP
	} else {
		enc, err := codec.EncodeRune(r, p.codePage)
		if err != nil {
			return addr, err
		}
		b = enc
	}

	size := p.rows * p.cols
	if insert {
		if ok && !f.Implicit {
			if err := p.shiftRightLocked(f, addr, size); err != nil {
				return addr, err
			}
		}
	}
	p.cells[addr].WriteData(b)
	if ok {
		p.setFieldModifiedLocked(f)
	}

	next := (addr + 1) % size
	return next, nil
}

// shiftRightLocked shifts cells in [addr, field-end) one position to the
// right, dropping the last cell only if it is empty (null); otherwise
// the field has no room (FieldFull).
func (p *PresentationSpace) shiftRightLocked(f Field, addr, size int) error {
	end := (f.Start + f.Length - 1) % size
	last := p.cells[end]
	if last.CodePoint != 0 || last.IsFieldAttribute {
		return &FieldFull{Addr: addr}
	}
	for i := end; i != addr; i = (i - 1 + size) % size {
		prev := (i - 1 + size) % size
		p.cells[i] = p.cells[prev]
	}
	return nil
}

func (p *PresentationSpace) setFieldModifiedLocked(f Field) {
	if f.Implicit {
		return
	}
	p.cells[f.AttrAddr].SetModified(true)
	for i := range p.dir.fields {
		if p.dir.fields[i].AttrAddr == f.AttrAddr {
			p.dir.fields[i].Modified = true
		}
	}
}

// DupRune exposes the DUP-key sentinel for callers translating keyboard
// input (e.g. session.SendKeys).
func DupRune() rune { return dupRune }
