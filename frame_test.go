// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameBytes(typ TypeTag, payload []byte) []byte {
	b := make([]byte, 5+len(payload))
	binary.LittleEndian.PutUint32(b[0:4], uint32(len(payload)+1))
	b[4] = byte(typ)
	copy(b[5:], payload)
	return b
}

func TestFrameCodecReadHeaderAndPayload(t *testing.T) {
	wire := frameBytes(TagOk, []byte("hello"))
	stream := &loopbackStream{r: bytes.NewReader(wire), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	done, err := fc.ReadHeaderCont()
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, TagOk, fc.Type())
	assert.EqualValues(t, 6, fc.Size())
	assert.Equal(t, 5, fc.PayloadLen())

	done, err = fc.ReadPayloadCont()
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, []byte("hello"), fc.Payload())
}

func TestFrameCodecHeaderSplitAcrossReads(t *testing.T) {
	wire := frameBytes(TagError, []byte("x"))
	r := &scriptedReader{}
	r.push(wire[0:2], nil)
	r.push(nil, ErrWouldBlock)
	r.push(wire[2:], nil)
	stream := &loopbackStream{r: r, w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	done, err := fc.ReadHeaderCont()
	require.ErrorIs(t, err, ErrWouldBlock)
	require.False(t, done)

	done, err = fc.ReadHeaderCont()
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, TagError, fc.Type())
}

func TestFrameCodecCleanEOFAtBoundary(t *testing.T) {
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	_, err := fc.ReadHeaderCont()
	assert.ErrorIs(t, err, io.EOF)
}

func TestFrameCodecEOSMidHeader(t *testing.T) {
	wire := frameBytes(TagOk, nil)
	stream := &loopbackStream{r: bytes.NewReader(wire[:2]), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	_, err := fc.ReadHeaderCont()
	assert.ErrorIs(t, err, ErrEos)
}

func TestFrameCodecZeroSizeIsFrameError(t *testing.T) {
	b := make([]byte, 5)
	stream := &loopbackStream{r: bytes.NewReader(b), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	_, err := fc.ReadHeaderCont()
	assert.ErrorIs(t, err, ErrFrame)
}

func TestFrameCodecOversizeRejected(t *testing.T) {
	b := make([]byte, 5)
	binary.LittleEndian.PutUint32(b[0:4], 100)
	stream := &loopbackStream{r: bytes.NewReader(b), w: &bytes.Buffer{}}
	o := defaultOptions
	o.MaxFrame = 10
	fc := newFrameCodec(stream, o)

	_, err := fc.ReadHeaderCont()
	assert.ErrorIs(t, err, ErrOversize)
}

func TestFrameCodecBeginWriteOversize(t *testing.T) {
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &bytes.Buffer{}}
	o := defaultOptions
	o.MaxFrame = 4
	fc := newFrameCodec(stream, o)

	err := fc.BeginWrite(TagOk, []byte("abcd"))
	assert.ErrorIs(t, err, ErrOversize)
}

func TestFrameCodecWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &buf}
	o := defaultOptions
	fc := newFrameCodec(stream, o)

	require.NoError(t, fc.BeginWrite(TagNotice, []byte("payload")))
	done, err := fc.WriteCont()
	require.NoError(t, err)
	require.True(t, done)

	assert.Equal(t, frameBytes(TagNotice, []byte("payload")), buf.Bytes())
}

func TestFrameCodecResetClearsReadAndWriteBookkeeping(t *testing.T) {
	wire := frameBytes(TagOk, []byte("hello"))
	stream := &loopbackStream{r: bytes.NewReader(wire), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	require.NoError(t, fc.ReadHeaderWait())
	require.NoError(t, fc.BeginWrite(TagOk, []byte("x")))

	fc.Reset()
	assert.EqualValues(t, 0, fc.Size())
	assert.Equal(t, TypeTag(0), fc.Type())

	// A fresh WriteCont should report done immediately: Reset cleared
	// wr_total, so there is nothing left to flush from the stale BeginWrite.
	done, err := fc.WriteCont()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestFrameCodecHighWaterTracksLargestFrame(t *testing.T) {
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	require.NoError(t, fc.BeginWrite(TagOk, make([]byte, 10)))
	assert.EqualValues(t, 11, fc.HighWater())

	require.NoError(t, fc.BeginWrite(TagOk, make([]byte, 3)))
	assert.EqualValues(t, 11, fc.HighWater(), "high water must not shrink on a smaller frame")

	fc.Reset()
	assert.EqualValues(t, 11, fc.HighWater(), "Reset must not clear the high-water mark")
}

func TestFrameCodecWriteWouldBlockResumes(t *testing.T) {
	w := &limitedWriter{limit: 3}
	stream := &loopbackStream{r: bytes.NewReader(nil), w: w}
	o := defaultOptions
	o.RetryDelay = -1
	fc := newFrameCodec(stream, o)

	payload := []byte("hello world")
	require.NoError(t, fc.BeginWrite(TagOk, payload))
	for {
		done, err := fc.WriteCont()
		if done {
			break
		}
		require.ErrorIs(t, err, ErrWouldBlock)
		w.limit += 3
	}
	assert.Equal(t, frameBytes(TagOk, payload), w.buf.Bytes())
}
