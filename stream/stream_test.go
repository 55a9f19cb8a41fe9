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

package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tn3270/codec"
	"tn3270/ps"
)

func newTestInterpreter() (*ps.PresentationSpace, *Interpreter) {
	p := ps.New(24, 80, codec.CP037)
	in := New(p, 24, 80, 43, 80)
	return p, in
}

func TestWriteThenSBAThenSF(t *testing.T) {
	p, in := newTestInterpreter()
	addr := ps.Encode12(5)
	body := []byte{CmdEW, 0x00, // WCC = 0
		OrderSBA, addr[0], addr[1],
		OrderSF, 0x20, // protected field
		'H', 'I',
	}
	resp, err := in.Apply(body)
	require.NoError(t, err)
	assert.Nil(t, resp)

	f, ok := p.FindField(6)
	require.True(t, ok)
	assert.True(t, f.Protected)
	assert.Equal(t, byte('H'), p.CellAt(6).CodePoint)
	assert.Equal(t, byte('I'), p.CellAt(7).CodePoint)
}

func TestUnrecognizedCommandIsProtocolError(t *testing.T) {
	_, in := newTestInterpreter()
	_, err := in.Apply([]byte{0xAB})
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "command", perr.Phase)
}

func TestUnrecognizedOrderIsProtocolError(t *testing.T) {
	_, in := newTestInterpreter()
	body := []byte{CmdW, 0x00, 0x99} // 0x99 is data, not an order -- use a truncated SBA instead
	_, err := in.Apply(body)
	require.NoError(t, err) // 0x99 is just a data byte, no error expected

	body2 := []byte{CmdW, 0x00, OrderSBA, 0x00} // truncated SBA
	_, err2 := in.Apply(body2)
	var perr *ProtocolError
	require.ErrorAs(t, err2, &perr)
	assert.Equal(t, "order", perr.Phase)
}

func TestEAUClearsUnprotectedAndUnlocksKeyboard(t *testing.T) {
	p, in := newTestInterpreter()
	p.WriteFieldAttr(0, 0) // unprotected field spanning the rest of the buffer
	_, err := p.Type(1, 'X', false)
	require.NoError(t, err)
	p.KeyboardLock(ps.LockedWaiting)

	_, err = in.Apply([]byte{CmdEAU})
	require.NoError(t, err)
	assert.Equal(t, ps.Unlocked, p.KeyboardState())
	assert.Equal(t, byte(0), p.CellAt(1).CodePoint)
}

func TestReadBufferRoundTrip(t *testing.T) {
	p, in := newTestInterpreter()
	addr := ps.Encode12(10)
	body := []byte{CmdEW, 0x00,
		OrderSBA, addr[0], addr[1],
		OrderSF, 0x20,
		'A', 'B', 'C',
	}
	_, err := in.Apply(body)
	require.NoError(t, err)
	p.SetLastAID(ps.AIDEnter)

	resp, err := in.Apply([]byte{CmdRB})
	require.NoError(t, err)
	require.NotEmpty(t, resp)
	assert.Equal(t, ps.AIDEnter, resp[0])

	p2 := ps.New(24, 80, codec.CP037)
	in2 := New(p2, 24, 80, 43, 80)
	// Replay: EW, WCC=0, then the body of the RB response minus AID+cursor.
	replayBody := append([]byte{CmdEW, 0x00}, resp[3:]...)
	_, err = in2.Apply(replayBody)
	require.NoError(t, err)

	for i := 0; i < p.Size(); i++ {
		assert.Equal(t, p.CellAt(i), p2.CellAt(i), "cell %d mismatch", i)
	}
}

func TestReadModifiedOnlyModifiedFields(t *testing.T) {
	p, in := newTestInterpreter()
	addr1 := ps.Encode12(0)
	addr2 := ps.Encode12(20)
	body := []byte{CmdEW, 0x00,
		OrderSBA, addr1[0], addr1[1],
		OrderSF, 0x20, // protected
		OrderSBA, addr2[0], addr2[1],
		OrderSF, 0x00, // unprotected
	}
	_, err := in.Apply(body)
	require.NoError(t, err)
	_, err = p.Type(21, 'Y', false)
	require.NoError(t, err)
	p.SetLastAID(ps.AIDEnter)

	resp, err := in.Apply([]byte{CmdRM})
	require.NoError(t, err)
	require.NotEmpty(t, resp)
	want, err := codec.EncodeRune('Y', codec.CP037)
	require.NoError(t, err)
	assert.Contains(t, resp, want)
}

func TestQueryReplyStartsWithStructuredFieldAID(t *testing.T) {
	_, in := newTestInterpreter()
	reply := in.BuildQueryReply(nil)
	require.NotEmpty(t, reply)
	assert.Equal(t, byte(AIDStructuredField), reply[0])
}

func TestRepeatToAddress(t *testing.T) {
	p, in := newTestInterpreter()
	stop := ps.Encode12(5)
	body := []byte{CmdW, 0x00, OrderRA, stop[0], stop[1], 'Z'}
	_, err := in.Apply(body)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.Equal(t, byte('Z'), p.CellAt(i).CodePoint)
	}
}
