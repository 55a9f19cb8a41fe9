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

// Cell is one position in the presentation space: either a data
// position carrying a code point plus rendering attributes, or a field
// attribute position (IsFieldAttribute true), which occupies the screen
// but renders as a space and carries the field's protected/numeric/
// intensity/MDT/pen-selectable bits in AttrByte.
//
// Grounded on the teacher's cell.go (charValue + boolean attribute
// flags), generalized from a terminal-emulator cell (blink/dim/reverse/
// underscore/protect) to a 3270 presentation-space cell (host code
// point, extended highlight/color/charset, field-attribute flag).
type Cell struct {
	CodePoint byte // host (EBCDIC) byte

	AttrByte byte // valid only when IsFieldAttribute

	ExtHighlight *byte
	FGColor      *byte
	BGColor      *byte
	CharSet      *byte

	IsFieldAttribute bool
}

// Field attribute bits within AttrByte (3270 Data Stream Programmer's
// Reference, "Field Attribute" byte layout).
const (
	FAProtected    byte = 0x20
	FANumeric      byte = 0x10
	FADisplayMask  byte = 0x0C // intensity bits
	FADisplayHigh  byte = 0x08
	FADisplayNoDet byte = 0x0C
	FAModified     byte = 0x01
	FASelectorPen  byte = 0x04 // detectable-light-pen bit, shares display bits per chart
)

// CharSetAPL is the GE (Graphic Escape) character-set id: the 3270 Data
// Stream Programmer's Reference names it char set ID 1, decoded against
// the APL/text code page (CP310) rather than the host's default code
// page.
const CharSetAPL byte = 1

func (c *Cell) Protected() bool { return c.IsFieldAttribute && c.AttrByte&FAProtected != 0 }
func (c *Cell) Numeric() bool   { return c.IsFieldAttribute && c.AttrByte&FANumeric != 0 }
func (c *Cell) Modified() bool  { return c.IsFieldAttribute && c.AttrByte&FAModified != 0 }

func (c *Cell) SetModified(on bool) {
	if !c.IsFieldAttribute {
		return
	}
	if on {
		c.AttrByte |= FAModified
	} else {
		c.AttrByte &^= FAModified
	}
}

// ClearToNull resets a data cell to the null/blank state, preserving
// nothing (used by EW/EWA/EAU).
func (c *Cell) ClearToNull() {
	*c = Cell{}
}

// WriteData sets a data-position cell's code point, clearing any stale
// field-attribute flag (writing data over a field attribute invalidates
// it — see PresentationSpace.WriteCell).
func (c *Cell) WriteData(b byte) {
	c.CodePoint = b
	c.IsFieldAttribute = false
}
