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

package session

// Events carries the optional callbacks an external caller can install
// to observe session activity without polling. All callbacks run on the
// session's own task goroutine; they must not block or call back into
// the session synchronously (that would deadlock the command queue).
type Events struct {
	OnHostWrite      func()
	OnKeyboardUnlock func()
	OnSessionClose   func(err error)
}

func (e Events) fireHostWrite() {
	if e.OnHostWrite != nil {
		e.OnHostWrite()
	}
}

func (e Events) fireKeyboardUnlock() {
	if e.OnKeyboardUnlock != nil {
		e.OnKeyboardUnlock()
	}
}

func (e Events) fireSessionClose(err error) {
	if e.OnSessionClose != nil {
		e.OnSessionClose(err)
	}
}
