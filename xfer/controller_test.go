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

package xfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadFlow(t *testing.T) {
	c := NewController()
	data := []byte("HELLO WORLD, THIS IS THE FILE CONTENTS")
	c.BeginUpload(data)
	assert.Equal(t, InProgress, c.State())

	resp, err := c.HandleDDM(ddmField(ReqOpenUpload, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqOpenAck, resp[2])

	resp, err = c.HandleDDM(ddmField(ReqSetCursorGet, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqUploadData, resp[2])
	framed := resp[3:]
	got, _, ok := unframeBlock(framed)
	require.True(t, ok)
	assert.Equal(t, data, got)

	resp, err = c.HandleDDM(ddmField(ReqSetCursorGet, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqGetPastEOF, resp[2])

	resp, err = c.HandleDDM(ddmField(ReqCloseRequest, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqCloseAck, resp[2])
	assert.Equal(t, Idle, c.State())
}

func TestDownloadFlow(t *testing.T) {
	c := NewController()
	resp, err := c.HandleDDM(ddmField(ReqOpenDownload, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqOpenAck, resp[2])
	assert.Equal(t, InProgress, c.State())

	chunk := frameBlock([]byte("chunk one "))
	ddmChunk := ddmField(ReqDownloadData, chunk)
	resp, err = c.HandleDDM(ddmChunk)
	require.NoError(t, err)
	assert.Equal(t, ReqDataAck, resp[2])

	resp, err = c.HandleDDM(ddmField(ReqCloseRequest, nil))
	require.NoError(t, err)
	assert.Equal(t, ReqCloseAck, resp[2])
	assert.Equal(t, DownloadsAvailable, c.State())

	data, ok := c.PendingDownload()
	require.True(t, ok)
	assert.Equal(t, []byte("chunk one "), data)
	assert.Equal(t, Idle, c.State())

	_, ok = c.PendingDownload()
	assert.False(t, ok)
}

func TestMultiBlockUpload(t *testing.T) {
	c := NewController()
	data := make([]byte, BlockPayloadLen*2+10)
	for i := range data {
		data[i] = byte(i)
	}
	c.BeginUpload(data)
	_, err := c.HandleDDM(ddmField(ReqOpenUpload, nil))
	require.NoError(t, err)

	var got []byte
	for {
		resp, err := c.HandleDDM(ddmField(ReqSetCursorGet, nil))
		require.NoError(t, err)
		if resp[2] == ReqGetPastEOF {
			break
		}
		require.Equal(t, ReqUploadData, resp[2])
		block, _, ok := unframeBlock(resp[3:])
		require.True(t, ok)
		got = append(got, block...)
	}
	assert.Equal(t, data, got)
}

func TestUnrecognizedDDMRequest(t *testing.T) {
	c := NewController()
	_, err := c.HandleDDM([]byte{0, 0, 0xd0, 0xff})
	var xferErr *Error
	require.ErrorAs(t, err, &xferErr)
}
