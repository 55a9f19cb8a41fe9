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

package telnet

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	for _, b := range [][]byte{
		{},
		{0x01, 0x02, 0x03},
		{CmdIAC},
		{CmdIAC, CmdIAC},
		{0x00, CmdIAC, 0xFE, CmdIAC, CmdIAC, 0x01},
	} {
		escaped := escapeIAC(b)
		got := unescapeIAC(escaped)
		assert.Equal(t, b, got, "round trip for %v", b)
	}
}

// fakeConn is an in-memory byteConn for exercising the record framer
// without a real socket.
type fakeConn struct {
	toEngine  *bytes.Buffer
	fromEngine *bytes.Buffer
}

func newFakeConn() *fakeConn {
	return &fakeConn{toEngine: &bytes.Buffer{}, fromEngine: &bytes.Buffer{}}
}

func (f *fakeConn) Read(ctx context.Context, p []byte) (int, error) {
	return f.toEngine.Read(p)
}

func (f *fakeConn) Write(p []byte) error {
	_, err := f.fromEngine.Write(p)
	return err
}

func (f *fakeConn) Close() error { return nil }

func TestWriteRecordThenReadRecordRoundTrip(t *testing.T) {
	conn := newFakeConn()
	writer := NewEngine(conn, []string{"IBM-3278-2-E"}, false, nil)
	writer.state = StateActive

	body := []byte{0x05, CmdIAC, 0x10} // contains a literal 0xFF that must be escaped
	require.NoError(t, writer.WriteRecord(DataType3270Data, body))

	reader := NewEngine(&fakeConn{toEngine: conn.fromEngine, fromEngine: &bytes.Buffer{}}, nil, false, nil)
	reader.state = StateActive
	rec, err := reader.ReadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, body, rec.Body)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{DataType: DataType3270Data, RequestFlag: 1, ResponseFlag: RspFlagAlwaysResp, Seq: 0x1234}
	got, rest, ok := parseHeader(h.bytes())
	require.True(t, ok)
	assert.Empty(t, rest)
	assert.Equal(t, h, got)
}

func TestIntersectFunctions(t *testing.T) {
	want := []byte{FuncResponses, FuncSysreq}
	offered := []byte{FuncBindImage, FuncResponses}
	got := intersectFunctions(want, offered)
	assert.Equal(t, []byte{FuncResponses}, got)
}
