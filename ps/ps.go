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

// Package ps implements the 3270 presentation space: the row x col
// buffer of character cells, the derived field directory, the cursor,
// and the keyboard/AID state, plus the editing rules (protection,
// numeric-only, insert, MDT) that govern local keystrokes.
//
// Grounded on the teacher's terminalT (terminal.go): a mutex-guarded
// fixed matrix of cells with cursor/X/Y fields, generalized from a
// scan-line terminal buffer into a field-aware 3270 presentation space.
package ps

import (
	"sync"

	"tn3270/codec"
)

// Standard screen sizes; an alternate size may also be negotiated.
const (
	Rows24Cols80  = "24x80"
	Rows32Cols80  = "32x80"
	Rows43Cols80  = "43x80"
	Rows27Cols132 = "27x132"
)

// KeyboardState models the AID/keyboard condition.
type KeyboardState int

const (
	Unlocked KeyboardState = iota
	LockedWaiting
	SystemLocked
	InputInhibited
)

// AID codes (Attention Identifier), per 3270 Data Stream reference /
// original_source tnz.py key_aid() call sites.
const (
	AIDNone       byte = 0x60
	AIDEnter      byte = 0x7D
	AIDClear      byte = 0x6D
	AIDPA1        byte = 0x6C
	AIDPA2        byte = 0x6E
	AIDPA3        byte = 0x6B
	AIDPF1        byte = 0xF1
	AIDPF2        byte = 0xF2
	AIDPF3        byte = 0xF3
	AIDPF4        byte = 0xF4
	AIDPF5        byte = 0xF5
	AIDPF6        byte = 0xF6
	AIDPF7        byte = 0xF7
	AIDPF8        byte = 0xF8
	AIDPF9        byte = 0xF9
	AIDPF10       byte = 0x7A
	AIDPF11       byte = 0x7B
	AIDPF12       byte = 0x7C
	AIDPF13       byte = 0xC1
	AIDPF14       byte = 0xC2
	AIDPF15       byte = 0xC3
	AIDPF16       byte = 0xC4
	AIDPF17       byte = 0xC5
	AIDPF18       byte = 0xC6
	AIDPF19       byte = 0xC7
	AIDPF20       byte = 0xC8
	AIDPF21       byte = 0xC9
	AIDPF22       byte = 0x4A
	AIDPF23       byte = 0x4B
	AIDPF24       byte = 0x4C
	AIDStructured byte = 0x88
)

// DUP and FM (field mark) are special EBCDIC keys. DUP is accepted in
// numeric-only fields alongside digits and sign characters; Type has no
// input for FM.
const (
	ebcdicDUP byte = 0x1C
	ebcdicFM  byte = 0x1E
)

// PresentationSpace is the authoritative 3270 screen buffer. All
// mutation happens through its methods; the zero value is not usable,
// construct with New.
type PresentationSpace struct {
	mu sync.RWMutex

	rows, cols int
	cells      []Cell
	dir        Directory

	cursor int
	kbd    KeyboardState
	insert bool
	lastAID byte

	codePage codec.CodePage
}

// New constructs a PresentationSpace of the given dimensions, cleared to
// nulls with one implicit protected field covering the whole buffer.
func New(rows, cols int, cp codec.CodePage) *PresentationSpace {
	p := &PresentationSpace{codePage: cp}
	p.resizeLocked(rows, cols)
	return p
}

func (p *PresentationSpace) Rows() int { p.mu.RLock(); defer p.mu.RUnlock(); return p.rows }
func (p *PresentationSpace) Cols() int { p.mu.RLock(); defer p.mu.RUnlock(); return p.cols }
func (p *PresentationSpace) Size() int { p.mu.RLock(); defer p.mu.RUnlock(); return p.rows * p.cols }

// Resize clears the presentation space and adopts new dimensions. The
// session controller is responsible for only calling this before the
// session is ACTIVE, or in response to an Erase/Write Alternate with a
// dynamic size; PresentationSpace itself has no notion of session
// lifecycle and always honors the call.
func (p *PresentationSpace) Resize(rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizeLocked(rows, cols)
}

func (p *PresentationSpace) resizeLocked(rows, cols int) {
	p.rows, p.cols = rows, cols
	p.cells = make([]Cell, rows*cols)
	p.cursor = 0
	p.kbd = Unlocked
	p.insert = false
	p.rebuildFieldsLocked()
}

// Clear resets every cell to null without changing dimensions (EW/EWA's
// "clear PS to nulls" step, before orders are applied).
func (p *PresentationSpace) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cells {
		p.cells[i] = Cell{}
	}
	p.cursor = 0
	p.rebuildFieldsLocked()
}

func (p *PresentationSpace) wrap(addr int) int {
	size := p.rows * p.cols
	addr %= size
	if addr < 0 {
		addr += size
	}
	return addr
}

// WriteCell is the host-side (data-stream interpreter) write path: no
// protection checks apply, since the host may write anywhere. Writing
// into what was a field-attribute position implicitly invalidates the
// field directory. Any ext functions run after the code point is set,
// letting a caller tag extended attributes (e.g. GE's CharSetAPL) on
// the freshly written cell.
func (p *PresentationSpace) WriteCell(addr int, b byte, ext ...func(*Cell)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	addr = p.wrap(addr)
	wasFA := p.cells[addr].IsFieldAttribute
	p.cells[addr].WriteData(b)
	for _, fn := range ext {
		fn(&p.cells[addr])
	}
	if wasFA {
		p.dir.markDirty()
	}
}

// WriteFieldAttr starts a field at addr: the cell becomes a
// non-editable field-attribute cell carrying attrByte (and any extended
// attributes), and the field directory is marked dirty for lazy rebuild.
func (p *PresentationSpace) WriteFieldAttr(addr int, attrByte byte, ext ...func(*Cell)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	addr = p.wrap(addr)
	c := &p.cells[addr]
	*c = Cell{IsFieldAttribute: true, AttrByte: attrByte}
	for _, fn := range ext {
		fn(c)
	}
	p.dir.markDirty()
}

func (p *PresentationSpace) CellAt(addr int) Cell {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cells[p.wrap(addr)]
}

func (p *PresentationSpace) CursorGet() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cursor
}

func (p *PresentationSpace) CursorSet(addr int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = p.wrap(addr)
}

func (p *PresentationSpace) KeyboardState() KeyboardState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.kbd
}

func (p *PresentationSpace) KeyboardLock(state KeyboardState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kbd = state
}

func (p *PresentationSpace) KeyboardUnlock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kbd = Unlocked
}

func (p *PresentationSpace) InsertMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.insert
}

func (p *PresentationSpace) SetInsertMode(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.insert = on
}

func (p *PresentationSpace) LastAID() byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastAID
}

func (p *PresentationSpace) SetLastAID(aid byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastAID = aid
}

// RebuildFields forces an immediate directory rebuild; normally callers
// rely on the lazy rebuild inside FindField/NextUnprotected/ReadModified.
func (p *PresentationSpace) RebuildFields() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rebuildFieldsLocked()
}

func (p *PresentationSpace) rebuildFieldsLocked() {
	size := p.rows * p.cols
	var attrs []int
	for i := 0; i < size; i++ {
		if p.cells[i].IsFieldAttribute {
			attrs = append(attrs, i)
		}
	}
	if len(attrs) == 0 {
		p.dir.fields = []Field{{Start: 0, Length: size, Protected: true, Implicit: true}}
		p.dir.dirty = false
		return
	}
	fields := make([]Field, 0, len(attrs))
	for k, a := range attrs {
		start := (a + 1) % size
		var next int
		if k+1 < len(attrs) {
			next = attrs[k+1]
		} else {
			next = attrs[0]
		}
		length := next - start
		if length < 0 {
			length += size
		}
		if length == 0 && len(attrs) == 1 {
			length = size - 1 // single field attribute: rest of buffer
		}
		attr := p.cells[a].AttrByte
		fields = append(fields, Field{
			AttrAddr:  a,
			Start:     start,
			Length:    length,
			Protected: attr&FAProtected != 0,
			Numeric:   attr&FANumeric != 0,
			Modified:  attr&FAModified != 0,
		})
	}
	p.dir.fields = fields
	p.dir.dirty = false
}

func (p *PresentationSpace) ensureFieldsLocked() {
	if p.dir.dirty || p.dir.fields == nil {
		p.rebuildFieldsLocked()
	}
}

// FindField returns the field containing data position addr.
func (p *PresentationSpace) FindField(addr int) (Field, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	return p.findFieldLocked(addr)
}

func (p *PresentationSpace) findFieldLocked(addr int) (Field, bool) {
	addr = p.wrap(addr)
	size := p.rows * p.cols
	for _, f := range p.dir.fields {
		if f.Implicit {
			return f, true
		}
		if f.Contains(addr, size) {
			return f, true
		}
	}
	return Field{}, false
}

// NextUnprotected returns the start (first data position) of the first
// unprotected field that begins strictly after addr, wrapping around the
// buffer; ok is false if there is none
// (every field is protected, including the implicit whole-screen
// field).
func (p *PresentationSpace) NextUnprotected(addr int) (next int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	return p.nextUnprotectedLocked(addr)
}

func (p *PresentationSpace) nextUnprotectedLocked(addr int) (int, bool) {
	size := p.rows * p.cols
	if len(p.dir.fields) == 1 && p.dir.fields[0].Implicit {
		return 0, false
	}
	// Walk the field list in start order looking for the first
	// unprotected field whose run starts after addr (wrapping).
	best := -1
	for _, f := range p.dir.fields {
		if f.Protected {
			continue
		}
		delta := (f.Start - addr - 1 + size) % size
		if best == -1 || delta < (p.dir.fields[best].Start-addr-1+size)%size {
			best = indexOfField(p.dir.fields, f)
		}
	}
	if best == -1 {
		return 0, false
	}
	return p.dir.fields[best].Start, true
}

func indexOfField(fields []Field, target Field) int {
	for i, f := range fields {
		if f.AttrAddr == target.AttrAddr {
			return i
		}
	}
	return -1
}

// EraseEOF clears from addr to the end of its containing field.
func (p *PresentationSpace) EraseEOF(addr int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	f, ok := p.findFieldLocked(addr)
	if !ok {
		return
	}
	size := p.rows * p.cols
	addr = p.wrap(addr)
	end := (f.Start + f.Length) % size
	for i := addr; i != end; i = (i + 1) % size {
		p.cells[i] = Cell{}
	}
}

// EraseUnprotectedToAddress clears unprotected positions from addr up to
// (not including) stop, used by the EUA order.
func (p *PresentationSpace) EraseUnprotectedToAddress(addr, stop int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	size := p.rows * p.cols
	addr, stop = p.wrap(addr), p.wrap(stop)
	for i := addr; i != stop; i = (i + 1) % size {
		f, ok := p.findFieldLocked(i)
		if !ok || f.Protected {
			continue // field-attribute cell, or protected data
		}
		p.cells[i] = Cell{}
	}
}

// EraseAllUnprotected clears every unprotected field to nulls, resets
// their MDT, unlocks the keyboard, and moves the cursor to the first
// unprotected position. The EAU 3270 command; idempotent if called again
// with nothing left to clear.
func (p *PresentationSpace) EraseAllUnprotected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	size := p.rows * p.cols
	for idx, f := range p.dir.fields {
		if f.Protected || f.Implicit {
			continue
		}
		for i := 0; i < f.Length; i++ {
			p.cells[(f.Start+i)%size] = Cell{}
		}
		p.cells[f.AttrAddr].SetModified(false)
		p.dir.fields[idx].Modified = false
	}
	p.kbd = Unlocked
	if first, ok := p.nextUnprotectedLocked(size - 1); ok {
		p.cursor = first
	} else {
		p.cursor = 0
	}
}

// EraseInput is the local-editing equivalent of EraseAllUnprotected.
func (p *PresentationSpace) EraseInput() { p.EraseAllUnprotected() }

// AllFields returns a snapshot of the current field directory, rebuilt
// first if stale. Used by the stream interpreter to apply WCC reset-MDT
// across every field.
func (p *PresentationSpace) AllFields() []Field {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureFieldsLocked()
	return append([]Field(nil), p.dir.fields...)
}

// ClearModified resets the MDT of the field whose attribute cell is at
// f.AttrAddr (a Field previously obtained from this PresentationSpace).
func (p *PresentationSpace) ClearModified(f Field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f.Implicit {
		return
	}
	p.cells[p.wrap(f.AttrAddr)].SetModified(false)
	for i := range p.dir.fields {
		if p.dir.fields[i].AttrAddr == f.AttrAddr {
			p.dir.fields[i].Modified = false
		}
	}
}
