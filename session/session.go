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
	"strings"
	"sync"

	"tn3270/codec"
	"tn3270/internal/trace"
	"tn3270/ps"
	"tn3270/stream"
	"tn3270/telnet"
	"tn3270/transport"
	"tn3270/xfer"
)

const (
	defaultRows, defaultCols = 24, 80
	altRows, altCols         = 43, 80
)

var defaultTermTypes = []string{"IBM-3278-2-E", "IBM-3279-2-E", "IBM-DYNAMIC"}

// request is one closure enqueued onto the session's command queue,
// run on the session's own goroutine, with its result delivered back
// over reply. External callers interact only through this queue; all
// presentation-space mutation happens on the session's own task.
type request struct {
	fn    func() (any, error)
	reply chan result
}

type result struct {
	val any
	err error
}

// Session owns one TN3270(E) connection's lifecycle. The zero value is
// not usable; build one with Connect.
type Session struct {
	mu    sync.Mutex
	state State

	ps     *ps.PresentationSpace
	interp *stream.Interpreter
	engine *telnet.Engine
	conn   *transport.Conn
	xferC  *xfer.Controller

	cmdCh    chan request
	closeCh  chan struct{}
	closeErr error

	updateMu sync.Mutex
	updateCh chan struct{}

	events Events
	trace  *trace.Logger

	cancel context.CancelFunc
}

// Connect dials host:port, negotiates Telnet/TN3270E, and starts the
// session's task goroutine. On success the returned Session is BOUND.
func Connect(ctx context.Context, host string, port int, cfg Config, ev Events) (*Session, error) {
	tcfg := transport.Config{TLS: cfg.TLS, SecLevel: cfg.SecLevel, Verify: cfg.Verify, CACertPEM: cfg.CACertPEM}
	if port == 0 {
		port = transport.DefaultPort(cfg.TLS)
	}

	s := &Session{
		state:    StateConnecting,
		cmdCh:    make(chan request),
		closeCh:  make(chan struct{}),
		updateCh: make(chan struct{}),
		events:   ev,
		xferC:    xfer.NewController(),
		trace:    trace.New("session"),
	}

	conn, err := transport.Dial(ctx, host, port, tcfg)
	if err != nil {
		return nil, err
	}
	s.conn = conn

	termTypes := defaultTermTypes
	if cfg.TermType != "" {
		termTypes = append([]string{cfg.TermType}, defaultTermTypes...)
	}

	s.state = StateNegotiating
	s.engine = telnet.NewEngine(connAdapter{conn}, termTypes, true, []byte{telnet.FuncResponses, telnet.FuncDataStreamCtl})
	if err := s.engine.Negotiate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	rows, cols := cfg.Rows, cfg.Cols
	if rows == 0 || cols == 0 {
		rows, cols = defaultRows, defaultCols
	}
	s.ps = ps.New(rows, cols, codec.CP037)
	s.interp = stream.New(s.ps, rows, cols, altRows, altCols)
	s.interp.SetDDMHandler(s.xferC.HandleDDM)

	s.state = StateBound

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	recordCh := make(chan telnet.Record)
	readErrCh := make(chan error, 1)
	go s.readLoop(runCtx, recordCh, readErrCh)
	go s.runLoop(recordCh, readErrCh)

	return s, nil
}

// connAdapter satisfies telnet's byteConn structural interface over
// *transport.Conn (both already share the same Read/Write/Close
// shapes; the adapter exists only to keep the packages decoupled).
type connAdapter struct{ c *transport.Conn }

func (a connAdapter) Read(ctx context.Context, p []byte) (int, error) { return a.c.Read(ctx, p) }
func (a connAdapter) Write(p []byte) error                            { return a.c.Write(p) }
func (a connAdapter) Close() error                                    { return a.c.Close() }

// readLoop pulls framed records off the wire and forwards them to the
// run loop, stopping on the first error (transport failure or
// malformed record).
func (s *Session) readLoop(ctx context.Context, out chan<- telnet.Record, errCh chan<- error) {
	for {
		rec, err := s.engine.ReadRecord(ctx)
		if err != nil {
			errCh <- err
			return
		}
		select {
		case out <- rec:
		case <-ctx.Done():
			return
		}
	}
}

// runLoop is the session's single task: it multiplexes inbound records
// against the external command queue, so no two goroutines ever touch
// the presentation space concurrently.
func (s *Session) runLoop(recordCh <-chan telnet.Record, readErrCh <-chan error) {
	for {
		select {
		case rec := <-recordCh:
			s.handleRecord(rec)

		case err := <-readErrCh:
			s.closeLocked(err)
			return

		case req := <-s.cmdCh:
			val, err := req.fn()
			req.reply <- result{val: val, err: err}
		}
	}
}

func (s *Session) handleRecord(rec telnet.Record) {
	resp, err := s.interp.Apply(rec.Body)
	if err != nil {
		s.trace.Printf("protocol error: %v", err)
		if s.engine.HasFunction(telnet.FuncResponses) {
			s.engine.WriteResponse(false, rec.Header.Seq, nil)
		}
		s.closeLocked(err)
		return
	}
	if resp != nil {
		s.engine.WriteRecord(telnet.DataType3270Data, resp)
	}
	s.checkFileTransferMarker()
	s.mu.Lock()
	if s.ps.KeyboardState() == ps.Unlocked {
		s.state = StateIdle
	}
	s.mu.Unlock()
	s.events.fireHostWrite()
	if s.ps.KeyboardState() == ps.Unlocked {
		s.events.fireKeyboardUnlock()
	}
	s.notifyUpdate()
}

// checkFileTransferMarker looks for the "File transfer in progress"
// banner in row 0 (the conventional operator information area) as the
// fallback IND$FILE detection path when the host has not negotiated
// structured-field capability.
func (s *Session) checkFileTransferMarker() {
	if s.xferC.State() != xfer.Idle {
		return
	}
	cols := s.ps.Cols()
	runes := make([]rune, cols)
	for i := 0; i < cols; i++ {
		cell := s.ps.CellAt(i)
		cp := codec.CP037
		if cell.CharSet != nil && *cell.CharSet == ps.CharSetAPL {
			cp = codec.CP310
		}
		ch, err := codec.DecodeByte(cell.CodePoint, cp)
		if err != nil {
			return
		}
		runes[i] = ch
	}
	text := string(runes)
	if strings.Contains(text, xfer.OperatorAreaMarker) {
		s.trace.Printf("IND$FILE marker detected via operator area")
	}
}

func (s *Session) closeLocked(err error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.closeErr = err
	s.mu.Unlock()
	close(s.closeCh)
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	s.events.fireSessionClose(err)
}

// notifyUpdate wakes every goroutine blocked in Wait.
func (s *Session) notifyUpdate() {
	s.updateMu.Lock()
	close(s.updateCh)
	s.updateCh = make(chan struct{})
	s.updateMu.Unlock()
}

// do enqueues fn to run on the session task and blocks for its result,
// or returns ErrSessionClosed if the session is already closed.
func (s *Session) do(fn func() (any, error)) (any, error) {
	select {
	case <-s.closeCh:
		return nil, ErrSessionClosed
	default:
	}
	reply := make(chan result, 1)
	select {
	case s.cmdCh <- request{fn: fn, reply: reply}:
	case <-s.closeCh:
		return nil, ErrSessionClosed
	}
	select {
	case r := <-reply:
		return r.val, r.err
	case <-s.closeCh:
		return nil, ErrSessionClosed
	}
}

// State reports the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
