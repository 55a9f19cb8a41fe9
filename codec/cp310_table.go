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

// Code generated from tnz's cp310.py (CP310 APL graphics EBCDIC mapping).

package codec

var cp310Decode = [256]rune{
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0x0020, 0x1D434, 0x1D435, 0x1D436, 0x1D437, 0x1D438, 0x1D439, 0x1D43A,
	0x1D43B, 0x1D43C, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0x1D43D, 0x1D43E, 0x1D43F, 0x1D440, 0x1D441, 0x1D442, 0x1D443,
	0x1D444, 0x1D445, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0x1D446, 0x1D447, 0x1D448, 0x1D449, 0x1D44A, 0x1D44B,
	0x1D44C, 0x1D44D, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0x22C4, 0x2227, 0x00A8, 0x233B, 0x2378, 0x2377, 0x22A2, 0x22A3,
	0x2228, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD, 0xFFFD,
	0x223C, 0x2551, 0x2550, 0x23B8, 0x23B9, 0x2502, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0x2191, 0x2193, 0x2264, 0x2308, 0x230A, 0x2192,
	0x2395, 0x258C, 0x2590, 0x2580, 0x2584, 0x2588, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0x2283, 0x2282, 0x2311, 0x25CB, 0x00B1, 0x2190,
	0x00AF, 0x00B0, 0x2500, 0x2219, 0x2099, 0xFFFD, 0xFFFD, 0xFFFD,
	0xFFFD, 0xFFFD, 0x2229, 0x222A, 0x22A5, 0x005B, 0x2265, 0x2218,
	0x237A, 0x2208, 0x2373, 0x2374, 0x2375, 0xFFFD, 0x00D7, 0x2216,
	0x00F7, 0xFFFD, 0x2207, 0x2206, 0x22A4, 0x005D, 0x2260, 0x2502,
	0x007B, 0x207D, 0x207A, 0x25A0, 0x2514, 0x250C, 0x251C, 0x2534,
	0x00A7, 0xFFFD, 0x2372, 0x2371, 0x2337, 0x233D, 0x2342, 0x2349,
	0x007D, 0x207E, 0x207B, 0x253C, 0x2518, 0x2510, 0x2524, 0x252C,
	0x00B6, 0xFFFD, 0x2336, 0x01C3, 0x2352, 0x234B, 0x235E, 0x235D,
	0x2261, 0x2081, 0x2082, 0x2083, 0x2364, 0x2365, 0x236A, 0x20AC,
	0xFFFD, 0xFFFD, 0x233F, 0x2340, 0x2235, 0x2296, 0x2339, 0x2355,
	0x2070, 0x00B9, 0x00B2, 0x00B3, 0x2074, 0x2075, 0x2076, 0x2077,
	0x2078, 0x2079, 0xFFFD, 0x236B, 0x2359, 0x235F, 0x234E, 0xFFFD,
}
