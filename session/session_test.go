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
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tn3270/codec"
	"tn3270/internal/trace"
	"tn3270/ps"
	"tn3270/stream"
	"tn3270/telnet"
	"tn3270/xfer"
)

// fakeConn is a minimal byteConn (structurally satisfying telnet's
// unexported interface) that records writes and never produces
// inbound bytes, enough to exercise SendAID's outbound framing without
// a real socket.
type fakeConn struct {
	buf *bytes.Buffer
}

func newFakeConn() *fakeConn { return &fakeConn{buf: &bytes.Buffer{}} }

func (c *fakeConn) Read(ctx context.Context, p []byte) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}
func (c *fakeConn) Write(p []byte) error { c.buf.Write(p); return nil }
func (c *fakeConn) Close() error         { return nil }

// newTestSession builds a Session with no network I/O: a real
// presentation space and interpreter, a telnet.Engine wired to a
// fakeConn (so SendAID's WriteRecord has somewhere to go), and its
// run loop started against record/error channels the test controls
// directly, bypassing Connect's dial and negotiation.
func newTestSession(t *testing.T, ev Events) (*Session, chan telnet.Record, chan error) {
	t.Helper()
	p := ps.New(24, 80, codec.CP037)
	interp := stream.New(p, 24, 80, 43, 80)
	xferC := xfer.NewController()
	interp.SetDDMHandler(xferC.HandleDDM)

	engine := telnet.NewEngine(newFakeConn(), []string{"IBM-3278-2-E"}, true, []byte{telnet.FuncResponses})

	s := &Session{
		state:    StateBound,
		ps:       p,
		interp:   interp,
		engine:   engine,
		xferC:    xferC,
		cmdCh:    make(chan request),
		closeCh:  make(chan struct{}),
		updateCh: make(chan struct{}),
		events:   ev,
		trace:    trace.New("session-test"),
		cancel:   func() {},
	}

	recordCh := make(chan telnet.Record)
	readErrCh := make(chan error, 1)
	go s.runLoop(recordCh, readErrCh)
	return s, recordCh, readErrCh
}

func TestSendKeysAndScreenText(t *testing.T) {
	s, _, _ := newTestSession(t, Events{})
	defer s.Close()

	// A blank presentation space is one implicit protected field; carve
	// out an unprotected field before typing into it, as a host write
	// would.
	s.ps.WriteFieldAttr(0, 0)
	s.ps.CursorSet(1)

	require.NoError(t, s.SendKeys("HELLO"))

	text, err := s.ScreenText(0)
	require.NoError(t, err)
	assert.Contains(t, text, "HELLO")
}

func TestSendAIDLocksKeyboardUntilHostRestores(t *testing.T) {
	s, recordCh, _ := newTestSession(t, Events{})
	defer s.Close()

	require.NoError(t, s.SendAID(AIDEnter))
	assert.Equal(t, ps.LockedWaiting, s.ps.KeyboardState())

	err := s.SendAID(AIDEnter)
	assert.ErrorIs(t, err, ErrKeyboardLocked)

	// Host restores the keyboard via a Write whose WCC sets the
	// keyboard-restore bit.
	recordCh <- telnet.Record{Body: []byte{stream.CmdW, stream.WCCKeyboardRestore}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = s.Wait(ctx, func(p *ps.PresentationSpace) bool {
		return p.KeyboardState() == ps.Unlocked
	})
	require.NoError(t, err)
}

func TestWaitTimesOutWithoutUpdate(t *testing.T) {
	s, _, _ := newTestSession(t, Events{})
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Wait(ctx, func(p *ps.PresentationSpace) bool { return false })
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFileTransferUploadReportsInProgress(t *testing.T) {
	s, _, _ := newTestSession(t, Events{})
	defer s.Close()

	assert.Equal(t, xfer.Idle, s.FileTransferState())
	require.NoError(t, s.Upload([]byte("payload")))
	assert.Equal(t, xfer.InProgress, s.FileTransferState())
}

func TestCloseIsIdempotentAndUnblocksPendingOps(t *testing.T) {
	s, _, _ := newTestSession(t, Events{})
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	err := s.SendKeys("X")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestReadErrorClosesSessionAndFiresEvent(t *testing.T) {
	closed := make(chan error, 1)
	s, _, readErrCh := newTestSession(t, Events{OnSessionClose: func(err error) { closed <- err }})

	boom := assert.AnError
	readErrCh <- boom

	select {
	case err := <-closed:
		assert.Equal(t, boom, err)
	case <-time.After(time.Second):
		t.Fatal("OnSessionClose was not fired")
	}
	assert.Equal(t, StateClosed, s.State())
}
