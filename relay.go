// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "runtime"

// relayStage is Relay's position in its read-then-write forwarding cycle.
type relayStage uint8

const (
	relayHeader relayStage = iota
	relayPayload
	relayWrite
)

// Relay forwards whole frames from src to dst unmodified, preserving message
// boundaries and the type tag, without ever decoding a payload. It is the
// same two-phase (read-then-write) staged design as the teacher's
// Forwarder.ForwardOnce, simplified because the X Protocol wire format never
// varies by transport the way framer's packet-vs-stream modes did: there is
// exactly one read FrameCodec and one write FrameCodec, relayed frame by
// frame.
//
// Relay is meant for test harnesses and protocol-level proxies — observing
// or splicing a client/server exchange — not for production traffic, which
// should run a real Engine with a Processor on each side instead.
type Relay struct {
	rd *FrameCodec
	wr *FrameCodec

	stage relayStage
}

// NewRelay constructs a Relay forwarding frames read from src to dst.
func NewRelay(dst, src ByteStream, opts ...Option) *Relay {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Relay{rd: newFrameCodec(src, o), wr: newFrameCodec(dst, o)}
}

// ForwardOnce advances the relay by one non-blocking step. It returns
// (true, nil) once one whole frame has been forwarded, (false, err) when the
// stream needs another call (err is ErrWouldBlock/ErrMore or nil), and
// (false, err) with a non-retryable err on a hard failure — including io.EOF
// once src is cleanly exhausted between frames.
func (r *Relay) ForwardOnce() (done bool, err error) {
	for {
		switch r.stage {
		case relayHeader:
			hdone, herr := r.rd.ReadHeaderCont()
			if herr != nil {
				return false, herr
			}
			if !hdone {
				return false, nil
			}
			r.stage = relayPayload
		case relayPayload:
			pdone, perr := r.rd.ReadPayloadCont()
			if perr != nil {
				return false, perr
			}
			if !pdone {
				return false, nil
			}
			if err := r.wr.BeginWrite(r.rd.Type(), r.rd.Payload()); err != nil {
				return false, err
			}
			r.stage = relayWrite
		case relayWrite:
			wdone, werr := r.wr.WriteCont()
			if werr != nil {
				return false, werr
			}
			if !wdone {
				return false, nil
			}
			r.rd.ResetRead()
			r.stage = relayHeader
			return true, nil
		}
	}
}

// ForwardWait blocks until one frame has been forwarded or forwarding fails.
func (r *Relay) ForwardWait() error {
	for {
		done, err := r.ForwardOnce()
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
