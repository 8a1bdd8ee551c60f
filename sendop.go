// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

// SendOp is a single in-flight asynchronous send, serializing one typed
// message onto the stream (§4.2). It is a thin wrapper: construction hands
// (type, payload) straight to FrameCodec.BeginWrite, and Cont/Wait just
// drive FrameCodec.WriteCont/WriteWait. Cancellation is not supported — a
// cancelled send would desync the stream (§5) — so there is no Cancel
// method, not a stub that panics.
type SendOp struct {
	fc        *FrameCodec
	completed bool
	err       error
}

// newSendOp constructs a SendOp and immediately begins serializing msg.
// If the message cannot be framed at all (e.g. ErrOversize), the SendOp is
// returned already done, carrying that error for Cont/Wait, and no bytes
// were written to the stream.
func newSendOp(fc *FrameCodec, typ TypeTag, payload []byte) *SendOp {
	op := &SendOp{fc: fc}
	if err := fc.BeginWrite(typ, payload); err != nil {
		op.completed = true
		op.err = err
	}
	return op
}

// Cont advances the send by one non-blocking step. It returns (true, nil)
// once the whole frame has been written, (false, ErrWouldBlock/ErrMore) if
// the stream needs another Cont call, and (false, err) on a hard failure.
func (op *SendOp) Cont() (done bool, err error) {
	if op.completed {
		return true, op.err
	}
	done, err = op.fc.WriteCont()
	if done || (err != nil && !isRetryable(err)) {
		op.completed = true
		op.err = err
	}
	return done, err
}

// Wait blocks until the send completes or fails.
func (op *SendOp) Wait() error {
	if op.completed {
		return op.err
	}
	err := op.fc.WriteWait()
	op.completed = true
	op.err = err
	return err
}

// Done reports whether the op has finished (successfully or not).
func (op *SendOp) Done() bool { return op.completed }
