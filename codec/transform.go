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
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Encoding adapts a CodePage to the golang.org/x/text/encoding.Encoding
// interface so callers that already compose x/text transform.Transformer
// pipelines (e.g. streaming a download through IND$FILE) can plug an
// EBCDIC code page in the same way they'd plug in any other charmap.
type Encoding struct {
	cp  CodePage
	sub *Substitution
}

// NewEncoding returns an x/text Encoding for cp. If sub is non-nil it is
// used in place of EncodeError for unmappable runes.
func NewEncoding(cp CodePage, sub *Substitution) *Encoding {
	return &Encoding{cp: cp, sub: sub}
}

func (e *Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decodeTransformer{cp: e.cp}}
}

func (e *Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encodeTransformer{cp: e.cp, sub: e.sub}}
}

type decodeTransformer struct{ cp CodePage }

func (d *decodeTransformer) Reset() {}

func (d *decodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t, ok := lookup(d.cp)
	if !ok {
		return 0, 0, &EncodeError{CodePage: d.cp}
	}
	for nSrc < len(src) {
		r := t.decode[src[nSrc]]
		n := copySizeRune(r)
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], string(r))
		nSrc++
	}
	return nDst, nSrc, nil
}

type encodeTransformer struct {
	cp  CodePage
	sub *Substitution
}

func (e *encodeTransformer) Reset() {}

func (e *encodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	t, ok := lookup(e.cp)
	if !ok {
		return 0, 0, &EncodeError{CodePage: e.cp}
	}
	for nSrc < len(src) {
		r, size := decodeRuneAt(src[nSrc:])
		if size == 0 {
			if !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			break
		}
		b, ok := t.encode[r]
		if !ok {
			if e.sub == nil {
				return nDst, nSrc, &EncodeError{Char: r, CodePage: e.cp}
			}
			sb, ok := t.encode[rune(*e.sub)]
			if !ok {
				return nDst, nSrc, &EncodeError{Char: r, CodePage: e.cp}
			}
			b = sb
		}
		if nDst+1 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}

func copySizeRune(r rune) int { return utf8.RuneLen(r) }

// decodeRuneAt decodes one UTF-8 rune from the front of b, returning its
// size in bytes, or (0, 0) if b does not yet hold a complete rune.
func decodeRuneAt(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	if !utf8.FullRune(b) {
		return 0, 0
	}
	r, size := utf8.DecodeRune(b)
	return r, size
}
