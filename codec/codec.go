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

import "fmt"

// EncodeError reports a Unicode character with no representation in the
// target code page.
type EncodeError struct {
	Char     rune
	CodePage CodePage
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("codec: character %q has no mapping in code page %s", e.Char, e.CodePage)
}

// Substitution is a replacement character. When a non-nil *Substitution
// is passed, it is encoded through the target code page and written in
// place of any character that has no mapping there.
type Substitution byte

// Encode translates text into host bytes for codepage. Unmappable
// characters fail with *EncodeError unless sub is non-nil, in which case
// the substitution character, encoded through cp, is used instead; if it
// has no mapping either, *EncodeError is returned.
func Encode(text string, cp CodePage, sub *Substitution) ([]byte, error) {
	t, ok := lookup(cp)
	if !ok {
		return nil, fmt.Errorf("codec: unknown code page %q", cp)
	}
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := t.encode[r]
		if !ok {
			if sub != nil {
				sb, ok := t.encode[rune(*sub)]
				if !ok {
					return nil, &EncodeError{Char: r, CodePage: cp}
				}
				out = append(out, sb)
				continue
			}
			return nil, &EncodeError{Char: r, CodePage: cp}
		}
		out = append(out, b)
	}
	return out, nil
}

// Decode translates host bytes into text. Decode is total: any byte with
// no assigned character decodes to U+FFFD, matching the code pages'
// reference decoding tables.
func Decode(hostBytes []byte, cp CodePage) (string, error) {
	t, ok := lookup(cp)
	if !ok {
		return "", fmt.Errorf("codec: unknown code page %q", cp)
	}
	runes := make([]rune, len(hostBytes))
	for i, b := range hostBytes {
		runes[i] = t.decode[b]
	}
	return string(runes), nil
}

// DecodeByte decodes a single host byte, for callers translating cell by
// cell (the presentation space reads one cell at a time).
func DecodeByte(b byte, cp CodePage) (rune, error) {
	t, ok := lookup(cp)
	if !ok {
		return 0, fmt.Errorf("codec: unknown code page %q", cp)
	}
	return t.decode[b], nil
}

// EncodeRune encodes a single Unicode character, for callers translating
// a keystroke at a time.
func EncodeRune(r rune, cp CodePage) (byte, error) {
	t, ok := lookup(cp)
	if !ok {
		return 0, fmt.Errorf("codec: unknown code page %q", cp)
	}
	b, ok := t.encode[r]
	if !ok {
		return 0, &EncodeError{Char: r, CodePage: cp}
	}
	return b, nil
}
