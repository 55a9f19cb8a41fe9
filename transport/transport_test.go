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

package transport

import "testing"

func TestDefaultPort(t *testing.T) {
	if DefaultPort(true) != 992 {
		t.Errorf("expected TLS default port 992, got %d", DefaultPort(true))
	}
	if DefaultPort(false) != 23 {
		t.Errorf("expected plain default port 23, got %d", DefaultPort(false))
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	inner := ErrClosed
	e := &TransportError{Op: "read", Err: inner}
	if e.Unwrap() != inner {
		t.Errorf("Unwrap should return the wrapped error")
	}
	if e.Error() == "" {
		t.Errorf("Error() should produce a message")
	}
}
