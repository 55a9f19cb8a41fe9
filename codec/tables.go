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

// Package codec translates between host EBCDIC code pages and Unicode.
//
// The tables here are data, not protocol: CP037 and CP310 are taken
// byte-for-byte from the reference EBCDIC code page definitions (CP310
// from the tnz project's cp310 module, CP037 from the standard IBM037
// mapping). CP1047 shares CP037's table pending an authoritative source
// for its handful of differing code points (see DESIGN.md).
package codec

// CodePage names a supported EBCDIC code page.
type CodePage string

const (
	CP037 CodePage = "cp037"
	CP1047 CodePage = "cp1047"
	CP310 CodePage = "cp310" // APL graphics, used by 3278T-style terminals
)

// table holds the decode direction (host byte -> rune) and a derived
// reverse map for encode (rune -> host byte), built once at init time.
type table struct {
	decode [256]rune
	encode map[rune]byte
}

func buildTable(decode [256]rune) *table {
	t := &table{decode: decode, encode: make(map[rune]byte, 256)}
	// charmap_build semantics: lowest byte value wins for a duplicate rune,
	// so fill from the top down and let smaller indices overwrite.
	for b := 255; b >= 0; b-- {
		t.encode[decode[b]] = byte(b)
	}
	return t
}

var tables = map[CodePage]*table{
	CP037:  buildTable(cp037Decode),
	CP1047: buildTable(cp037Decode), // see package doc
	CP310:  buildTable(cp310Decode),
}

func lookup(cp CodePage) (*table, bool) {
	t, ok := tables[cp]
	return t, ok
}
