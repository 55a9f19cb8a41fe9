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

// Field is a derived record describing one field run in the
// presentation space: it starts at the position immediately following a
// field-attribute cell and ends at the position before the next
// field-attribute cell, wrapping around the end of the buffer.
//
// An unformatted screen (no field-attribute cells at all) is modeled as
// a single implicit field covering the whole buffer (Implicit true).
type Field struct {
	AttrAddr int // address of the field-attribute cell itself
	Start    int // first data position (AttrAddr+1, mod size)
	Length   int // number of data positions, excluding the attribute cell

	Protected bool
	Numeric   bool
	Modified  bool

	Implicit bool // true for the synthetic whole-screen field on an unformatted screen
}

// Contains reports whether addr (a data position) falls within the
// field's run, accounting for wraparound.
func (f Field) Contains(addr, size int) bool {
	if f.Length <= 0 {
		return false
	}
	end := (f.Start + f.Length) % size
	if f.Start <= end || end == f.Start {
		if f.Start < end {
			return addr >= f.Start && addr < end
		}
		// Length spans (or exactly equals) the whole buffer.
		return f.Length >= size
	}
	return addr >= f.Start || addr < end
}

// Directory is the ordered, derived field list, indexed by starting
// address. Rebuilt lazily by PresentationSpace.rebuildFields after any
// field-attribute write, never maintained incrementally: cells never
// back-link to their field, so a stale directory only costs a rebuild,
// never a dangling pointer.
type Directory struct {
	fields []Field
	dirty  bool
}

func (d *Directory) markDirty() { d.dirty = true }

// All returns the full field list in directory order (by starting
// address). The PresentationSpace, which alone knows the buffer size
// needed to resolve wraparound, is responsible for field lookups
// (FindField, NextUnprotected); Directory just holds the derived list.
func (d *Directory) All() []Field { return d.fields }
