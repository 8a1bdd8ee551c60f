// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xprotocol is a client/server codec and dispatcher for the MySQL
// X Protocol: a length-prefixed, typed-message wire protocol carried over a
// reliable byte stream.
//
// Wire format (fixed, §6.1): a 4-byte little-endian unsigned length L,
// followed by a 1-byte type tag T, followed by L-1 bytes of payload.
// Constraint: 1 <= L <= MaxFrame. Messages abut with no trailing delimiter.
//
// The package is built from three cooperating pieces: FrameCodec (this
// file) turns that wire format into buffered header/payload reads and
// writes; SendOp and RecvOp (sendop.go, recvop.go) turn FrameCodec calls
// into resumable, non-blocking stages; Engine (engine.go) owns the
// ByteStream plus at most one of each op and exposes Send/Recv to callers.
package xprotocol

import (
	"encoding/binary"
	"io"
	"runtime"
	"time"
)

// frameHeaderLen is the fixed 5-byte frame header: 4-byte LE size + 1-byte
// type tag. Unlike the teacher's framer package, the X Protocol wire format
// never varies this layout by payload size or transport.
const frameHeaderLen = 5

// FrameCodec encodes one outgoing message into wr_buf and drives the stream
// write to completion; it reads exactly 5 bytes of header then exactly
// size-1 bytes of payload into rd_buf (§4.1). It owns both buffers; I1
// guarantees only the RecvOp/SendOp currently in flight touches them.
type FrameCodec struct {
	stream   ByteStream
	maxFrame uint32
	retry    time.Duration

	rdBuf    []byte
	rdHeader [frameHeaderLen]byte
	rdHdrOff int
	rdType   TypeTag
	rdSize   uint32 // declared frame size (includes the type tag); 0 until header parsed
	rdPayOff int

	wrBuf   []byte
	wrOff   int
	wrTotal int

	highWater uint32
}

func newFrameCodec(stream ByteStream, o Options) *FrameCodec {
	maxFrame := o.MaxFrame
	if maxFrame == 0 || maxFrame > MaxFrame {
		maxFrame = MaxFrame
	}
	return &FrameCodec{
		stream:   stream,
		maxFrame: maxFrame,
		retry:    o.RetryDelay,
		rdBuf:    make([]byte, o.InitialBufferSize),
		wrBuf:    make([]byte, o.InitialBufferSize),
	}
}

// Type returns the type tag of the frame whose header has just completed.
func (fc *FrameCodec) Type() TypeTag { return fc.rdType }

// Size returns the declared frame size (including the type tag byte) of the
// frame whose header has just completed.
func (fc *FrameCodec) Size() uint32 { return fc.rdSize }

// PayloadLen returns the payload length of the frame whose header has just
// completed: size - 1.
func (fc *FrameCodec) PayloadLen() int { return int(fc.rdSize) - 1 }

// Payload returns the decoded frame's payload bytes. Valid until the next
// ReadPayloadCont call reuses rd_buf.
func (fc *FrameCodec) Payload() []byte { return fc.rdBuf[:fc.PayloadLen()] }

// ResetRead clears per-frame read bookkeeping so the codec is ready to parse
// the next header. It does not release rd_buf's capacity (§3: growth is
// monotonic, shrinkage is not required).
func (fc *FrameCodec) ResetRead() {
	fc.rdHdrOff = 0
	fc.rdPayOff = 0
	fc.rdSize = 0
	fc.rdType = 0
}

// Reset clears all read and write bookkeeping (ResetRead's fields plus the
// write side's offsets), without releasing rd_buf/wr_buf capacity, so a
// pooled Engine can rebind a FrameCodec to a fresh exchange without
// reallocating. HighWater is unaffected: it tracks the buffer's lifetime,
// not a single exchange.
func (fc *FrameCodec) Reset() {
	fc.ResetRead()
	fc.wrOff = 0
	fc.wrTotal = 0
}

// HighWater reports the largest declared frame size (type tag + payload, the
// value of the 4-byte length field), on either the read or write side, this FrameCodec has buffered since
// construction. Callers and tests use it to assert I3 (no frame ever
// exceeds MaxFrame) directly against observed traffic rather than the
// configured limit.
func (fc *FrameCodec) HighWater() uint32 { return fc.highWater }

func (fc *FrameCodec) trackHighWater(total uint32) {
	if total > fc.highWater {
		fc.highWater = total
	}
}

func (fc *FrameCodec) waitOnceOnWouldBlock() bool {
	if fc.retry < 0 {
		return false
	}
	if fc.retry == 0 {
		runtime.Gosched()
		return true
	}
	time.Sleep(fc.retry)
	return true
}

func (fc *FrameCodec) readOnce(p []byte) (int, error) {
	for {
		n, err := fc.stream.Read(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrNoProgress
		}
		if n > 0 {
			return n, err
		}
		if !isRetryable(err) {
			return n, err
		}
		if !fc.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

func (fc *FrameCodec) writeOnce(p []byte) (int, error) {
	for {
		n, err := fc.stream.Write(p)
		if len(p) != 0 && n == 0 && err == nil {
			return 0, io.ErrShortWrite
		}
		if n > 0 {
			return n, err
		}
		if !isRetryable(err) {
			return n, err
		}
		if !fc.waitOnceOnWouldBlock() {
			return n, err
		}
	}
}

// ReadHeaderCont advances a non-blocking read of the 5-byte header. It
// returns (true, nil) once Type/Size/PayloadLen are valid. A clean EOF with
// zero header bytes consumed so far is returned as io.EOF; any other EOF is
// ErrEos (the stream closed mid-frame).
func (fc *FrameCodec) ReadHeaderCont() (done bool, err error) {
	for fc.rdHdrOff < frameHeaderLen {
		n, rerr := fc.readOnce(fc.rdHeader[fc.rdHdrOff:frameHeaderLen])
		fc.rdHdrOff += n
		if rerr != nil {
			if rerr == io.EOF {
				if fc.rdHdrOff == 0 {
					return false, io.EOF
				}
				return false, ErrEos
			}
			return false, rerr
		}
	}
	size := binary.LittleEndian.Uint32(fc.rdHeader[0:4])
	if size == 0 {
		return false, ErrFrame
	}
	if size > fc.maxFrame {
		return false, ErrOversize
	}
	fc.rdSize = size
	fc.rdType = TypeTag(fc.rdHeader[4])
	fc.trackHighWater(size)
	return true, nil
}

// ReadHeaderWait blocks (cooperatively yielding) until ReadHeaderCont
// completes or fails.
func (fc *FrameCodec) ReadHeaderWait() error {
	for {
		done, err := fc.ReadHeaderCont()
		if done {
			return nil
		}
		if err != nil {
			if isRetryable(err) {
				runtime.Gosched()
				continue
			}
			return err
		}
		runtime.Gosched()
	}
}

func (fc *FrameCodec) growRdBuf(need int) {
	if cap(fc.rdBuf) < need {
		fc.rdBuf = make([]byte, need)
		return
	}
	fc.rdBuf = fc.rdBuf[:need]
}

// ReadPayloadCont advances a non-blocking read of the current frame's
// payload into rd_buf, growing it as needed (never beyond MaxFrame-1, since
// ReadHeaderCont already rejected an oversize declared size — I3).
func (fc *FrameCodec) ReadPayloadCont() (done bool, err error) {
	need := fc.PayloadLen()
	if len(fc.rdBuf) != need {
		fc.growRdBuf(need)
	}
	for fc.rdPayOff < need {
		n, rerr := fc.readOnce(fc.rdBuf[fc.rdPayOff:need])
		fc.rdPayOff += n
		if rerr != nil {
			if rerr == io.EOF {
				return false, ErrEos
			}
			return false, rerr
		}
	}
	return true, nil
}

// ReadPayloadWait blocks until ReadPayloadCont completes or fails.
func (fc *FrameCodec) ReadPayloadWait() error {
	for {
		done, err := fc.ReadPayloadCont()
		if done {
			return nil
		}
		if err != nil {
			if isRetryable(err) {
				runtime.Gosched()
				continue
			}
			return err
		}
		runtime.Gosched()
	}
}

// BeginWrite serializes one outgoing message into wr_buf at offset 5,
// growing the buffer if needed, and fills in the 5-byte header. It fails
// with ErrOversize if 1+len(payload) > MaxFrame. The ordering guarantee from
// §4.1 holds because binary.LittleEndian.PutUint32 places the low byte of
// size at wr_buf[0], the first byte WriteCont will send.
func (fc *FrameCodec) BeginWrite(typ TypeTag, payload []byte) error {
	if uint32(len(payload))+1 > fc.maxFrame {
		return ErrOversize
	}
	total := frameHeaderLen + len(payload)
	if cap(fc.wrBuf) < total {
		fc.wrBuf = make([]byte, total)
	} else {
		fc.wrBuf = fc.wrBuf[:total]
	}
	binary.LittleEndian.PutUint32(fc.wrBuf[0:4], uint32(len(payload)+1))
	fc.wrBuf[4] = byte(typ)
	copy(fc.wrBuf[frameHeaderLen:], payload)
	fc.wrOff = 0
	fc.wrTotal = total
	fc.trackHighWater(uint32(len(payload) + 1))
	return nil
}

// WriteCont advances a non-blocking write of the buffered frame.
func (fc *FrameCodec) WriteCont() (done bool, err error) {
	for fc.wrOff < fc.wrTotal {
		n, werr := fc.writeOnce(fc.wrBuf[fc.wrOff:fc.wrTotal])
		fc.wrOff += n
		if werr != nil {
			return false, werr
		}
	}
	fc.wrOff, fc.wrTotal = 0, 0
	return true, nil
}

// WriteWait blocks until WriteCont completes or fails.
func (fc *FrameCodec) WriteWait() error {
	for {
		done, err := fc.WriteCont()
		if done {
			return nil
		}
		if err != nil {
			if isRetryable(err) {
				runtime.Gosched()
				continue
			}
			return err
		}
		runtime.Gosched()
	}
}
