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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripCP037(t *testing.T) {
	text := "HELLO WORLD 123"
	hostBytes, err := Encode(text, CP037, nil)
	require.NoError(t, err)

	back, err := Decode(hostBytes, CP037)
	require.NoError(t, err)
	assert.Equal(t, text, back)
}

func TestDecodeIsTotal(t *testing.T) {
	// Every byte value must decode to something, never error.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	out, err := Decode(all, CP037)
	require.NoError(t, err)
	assert.Len(t, []rune(out), 256)
}

func TestEncodeErrorUnmappable(t *testing.T) {
	_, err := Encode("☃", CP037, nil) // snowman, not in CP037
	require.Error(t, err)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, CP037, encErr.CodePage)
}

func TestEncodeSubstitution(t *testing.T) {
	sub := Substitution('?')
	out, err := Encode("☃", CP037, &sub)
	require.NoError(t, err)
	require.Len(t, out, 1)

	back, err := Decode(out, CP037)
	require.NoError(t, err)
	assert.Equal(t, "?", back)
}

func TestCP310HasAPLGraphics(t *testing.T) {
	// 0xB1 in CP310 maps to U+2208 (ELEMENT OF), not present in CP037.
	r, err := DecodeByte(0xB1, CP310)
	require.NoError(t, err)
	assert.Equal(t, '∈', r)
}

func TestCodePagesAreDistinct(t *testing.T) {
	r037, _ := DecodeByte(0xB1, CP037)
	r310, _ := DecodeByte(0xB1, CP310)
	assert.NotEqual(t, r037, r310)
}
