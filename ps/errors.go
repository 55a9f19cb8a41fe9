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

import "fmt"

// ProtectedField is returned when an edit targets a protected field.
type ProtectedField struct{ Addr int }

func (e *ProtectedField) Error() string {
	return fmt.Sprintf("ps: position %d is in a protected field", e.Addr)
}

// NumericOnly is returned when a non-numeric key is typed into a
// numeric-only field.
type NumericOnly struct {
	Addr int
	Key  byte
}

func (e *NumericOnly) Error() string {
	return fmt.Sprintf("ps: position %d accepts only numeric input, got %q", e.Addr, e.Key)
}

// FieldFull is returned when insert mode has no room left to shift into.
type FieldFull struct{ Addr int }

func (e *FieldFull) Error() string {
	return fmt.Sprintf("ps: field containing position %d is full", e.Addr)
}
