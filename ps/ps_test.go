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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tn3270/codec"
)

func TestUnformattedScreenIsOneImplicitField(t *testing.T) {
	p := New(24, 80, codec.CP037)
	f, ok := p.FindField(0)
	require.True(t, ok)
	assert.True(t, f.Implicit)
	assert.True(t, f.Protected)
}

func TestWriteFieldAttrInvalidatesDirectory(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, FAProtected)
	p.WriteFieldAttr(10, 0) // unprotected field at 11..1919 (next attr is at 0)

	f, ok := p.FindField(5)
	require.True(t, ok)
	assert.True(t, f.Protected)

	f2, ok := p.FindField(11)
	require.True(t, ok)
	assert.False(t, f2.Protected)
}

func TestScenario1_WriteHelloField(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, FAProtected)
	for i, ch := range "HELLO" {
		b, err := codec.EncodeRune(ch, codec.CP037)
		require.NoError(t, err)
		p.WriteCell(1+i, b)
	}
	p.WriteFieldAttr(10, 0) // unprotected field starts at 11
	p.CursorSet(11)

	f, ok := p.FindField(1)
	require.True(t, ok)
	assert.True(t, f.Protected)
	assert.Equal(t, 1, f.Start)

	text, err := codec.Decode([]byte{p.CellAt(1).CodePoint, p.CellAt(2).CodePoint, p.CellAt(3).CodePoint, p.CellAt(4).CodePoint, p.CellAt(5).CodePoint}, codec.CP037)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", text)
	assert.Equal(t, 11, p.CursorGet())
}

func TestTypeIntoProtectedFieldFails(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, FAProtected)
	_, err := p.Type(1, 'X', false)
	var protErr *ProtectedField
	require.ErrorAs(t, err, &protErr)
}

func TestTypeSetsMDT(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, 0)
	_, err := p.Type(1, 'X', false)
	require.NoError(t, err)
	f, ok := p.FindField(1)
	require.True(t, ok)
	assert.True(t, f.Modified)
}

func TestNumericOnlyRejectsLetters(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, FANumeric)
	_, err := p.Type(1, 'A', false)
	var numErr *NumericOnly
	require.ErrorAs(t, err, &numErr)

	_, err = p.Type(1, '5', false)
	require.NoError(t, err)
}

func TestEraseAllUnprotectedIdempotent(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(0, FAProtected)
	p.WriteFieldAttr(5, 0)
	_, err := p.Type(6, 'X', false)
	require.NoError(t, err)

	p.EraseAllUnprotected()
	snap1 := append([]Cell(nil), p.cells...)
	cursor1 := p.CursorGet()

	p.EraseAllUnprotected()
	cursor2 := p.CursorGet()

	assert.Equal(t, snap1, p.cells)
	assert.Equal(t, cursor1, cursor2)
}

func TestFieldWrapsAroundZero(t *testing.T) {
	p := New(24, 80, codec.CP037)
	size := p.Size()
	p.WriteFieldAttr(size-5, 0) // field starts at size-4, wraps past 0
	f, ok := p.FindField(0)
	require.True(t, ok)
	assert.False(t, f.Implicit)
	assert.True(t, f.Contains(0, size))
}

func TestReadModifiedNoFieldsReturnsEmpty(t *testing.T) {
	p := New(24, 80, codec.CP037)
	out := p.ReadModified(false)
	assert.Empty(t, out)
}

func TestReadModifiedDropsTrailingNulls(t *testing.T) {
	p := New(24, 80, codec.CP037)
	p.WriteFieldAttr(10, 0)
	_, err := p.Type(11, 'W', false)
	require.NoError(t, err)
	out := p.ReadModified(false)
	require.NotEmpty(t, out)
	assert.Equal(t, byte(orderSBA), out[0])
	// SBA, two address bytes, 'W'; the field's trailing nulls are dropped.
	assert.Len(t, out, 4)
}

func TestAddressCodecRoundTrip12(t *testing.T) {
	for a := 0; a < 4096; a += 37 {
		got := Decode12(Encode12(a))
		require.Equal(t, a, got)
	}
}

func TestAddressCodecRoundTrip14(t *testing.T) {
	for a := 0; a < 16384; a += 131 {
		got := Decode14(Encode14(a))
		require.Equal(t, a, got)
	}
}
