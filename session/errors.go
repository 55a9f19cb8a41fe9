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

import "errors"

// ErrKeyboardLocked is returned by SendAID when the keyboard is locked:
// an AID issued before the keyboard unlocks fails outright rather than
// queueing past the lock.
var ErrKeyboardLocked = errors.New("session: keyboard is locked")

// ErrSessionClosed is returned by any operation attempted after Close,
// or after the session closed on its own (transport/negotiation/protocol
// failure).
var ErrSessionClosed = errors.New("session: session is closed")

// ErrTimeout is returned by Wait when its deadline expires before the
// predicate becomes true.
var ErrTimeout = errors.New("session: wait timed out")
