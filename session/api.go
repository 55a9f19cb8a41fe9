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

import (
	"context"
	"time"

	"tn3270/codec"
	"tn3270/ps"
	"tn3270/telnet"
	"tn3270/xfer"
)

// Wait blocks until predicate reports true against the session's
// presentation space, ctx is done, or the session closes. Callers see
// this as a synchronous, cancellable operation rather than a raw
// goroutine park.
func (s *Session) Wait(ctx context.Context, predicate func(*ps.PresentationSpace) bool) error {
	for {
		if predicate(s.ps) {
			return nil
		}
		s.updateMu.Lock()
		ch := s.updateCh
		s.updateMu.Unlock()
		select {
		case <-ch:
		case <-s.closeCh:
			return ErrSessionClosed
		case <-ctx.Done():
			return ErrTimeout
		}
	}
}

// SendKeys types text into the presentation space at the current
// cursor position, honoring field protection/numeric/insert rules. It
// fails on the first rune ps.Type rejects; earlier runes remain
// applied, matching a real keyboard's stop-on-inhibit behavior.
func (s *Session) SendKeys(text string) error {
	_, err := s.do(func() (any, error) {
		addr := s.ps.CursorGet()
		insert := s.ps.InsertMode()
		for _, r := range text {
			next, err := s.ps.Type(addr, r, insert)
			if err != nil {
				return nil, err
			}
			addr = next
		}
		return nil, nil
	})
	return err
}

// SendAID transmits aid (one of the AID* constants) plus the read
// response the host expects for it, then locks the keyboard until the
// host's next write restores it.
func (s *Session) SendAID(aid byte) error {
	_, err := s.do(func() (any, error) {
		if s.ps.KeyboardState() != ps.Unlocked {
			return nil, ErrKeyboardLocked
		}
		s.ps.SetLastAID(aid)

		var resp []byte
		switch aid {
		case AIDClear:
			s.ps.Clear()
			resp = []byte{aid}
		case AIDPA1, AIDPA2, AIDPA3:
			addr := ps.EncodeAddress(s.ps.CursorGet(), s.ps.Size())
			resp = []byte{aid, addr[0], addr[1]}
		default:
			resp = s.interp.BuildReadModified(false)
		}

		if err := s.engine.WriteRecord(telnet.DataType3270Data, resp); err != nil {
			return nil, err
		}
		s.ps.KeyboardLock(ps.LockedWaiting)
		return nil, nil
	})
	return err
}

// ScreenText decodes the presentation space to host-codepage text, one
// line per row, joined with "\n". With no rows given, every row is
// returned; otherwise only the given 0-based row indices, in order.
// Cells written by a GE (Graphic Escape) order decode against CP310
// instead of the row's default CP037, so APL graphics survive.
func (s *Session) ScreenText(rows ...int) (string, error) {
	v, err := s.do(func() (any, error) {
		total := s.ps.Rows()
		cols := s.ps.Cols()
		idx := rows
		if len(idx) == 0 {
			idx = make([]int, total)
			for i := range idx {
				idx[i] = i
			}
		}
		var out []rune
		for n, r := range idx {
			if n > 0 {
				out = append(out, '\n')
			}
			for c := 0; c < cols; c++ {
				cell := s.ps.CellAt(r*cols + c)
				cp := codec.CP037
				if cell.CharSet != nil && *cell.CharSet == ps.CharSetAPL {
					cp = codec.CP310
				}
				ch, err := codec.DecodeByte(cell.CodePoint, cp)
				if err != nil {
					return nil, err
				}
				out = append(out, ch)
			}
		}
		return string(out), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// FileTransferState reports the IND$FILE controller's current state.
func (s *Session) FileTransferState() xfer.State {
	v, _ := s.do(func() (any, error) { return s.xferC.State(), nil })
	st, _ := v.(xfer.State)
	return st
}

// Upload begins an IND$FILE upload of data; the controller streams it
// to the host block by block as DDM Set-Cursor-Get requests arrive.
func (s *Session) Upload(data []byte) error {
	_, err := s.do(func() (any, error) {
		s.xferC.BeginUpload(data)
		return nil, nil
	})
	return err
}

// Receive returns the oldest completed IND$FILE download still pending,
// if any, consuming it.
func (s *Session) Receive() ([]byte, bool) {
	v, _ := s.do(func() (any, error) {
		data, ok := s.xferC.PendingDownload()
		return [2]any{data, ok}, nil
	})
	pair, ok := v.([2]any)
	if !ok {
		return nil, false
	}
	data, _ := pair[0].([]byte)
	found, _ := pair[1].(bool)
	return data, found
}

// Close tears the session down. Idempotent; safe to call more than
// once or concurrently with other operations.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateClosed || s.state == StateClosing {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosing
	s.mu.Unlock()

	select {
	case <-s.closeCh:
	default:
		s.closeLocked(nil)
	}
	return nil
}

// closeWithTimeout runs Close but stops waiting for it after d,
// returning ErrTimeout; production callers use Close.
func (s *Session) closeWithTimeout(d time.Duration) error {
	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(d):
		return ErrTimeout
	}
}
