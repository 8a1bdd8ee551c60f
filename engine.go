// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "io"

// Engine owns one ByteStream and at most one in-flight SendOp and RecvOp at
// a time (I1, §4.5). It is not safe for concurrent use from more than one
// goroutine; the whole package's non-blocking design assumes a single
// caller driving Cont/Wait cooperatively, the same single-threaded
// assumption the teacher's framer package makes for its Reader/Writer.
type Engine struct {
	dir  Direction
	fc   *FrameCodec
	opts Options

	send *SendOp
	recv *RecvOp
}

// NewEngine constructs an Engine bound to stream. dir fixes which half of
// the MessageRegistry RecvOps started on this engine consult.
func NewEngine(stream ByteStream, dir Direction, opts ...Option) (*Engine, error) {
	if stream == nil {
		return nil, ErrInvalidArgument
	}
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{dir: dir, fc: newFrameCodec(stream, o), opts: o}, nil
}

// Direction reports which half of the registry this engine's RecvOps use.
func (e *Engine) Direction() Direction { return e.dir }

// StartSend begins serializing one message and returns the SendOp driving
// it. It fails with ErrBusy if a previously started SendOp has not finished
// (I1); callers that want fire-and-forget sequencing should use Send
// instead.
func (e *Engine) StartSend(typ TypeTag, payload []byte) (*SendOp, error) {
	if e.send != nil && !e.send.Done() {
		return nil, ErrBusy
	}
	op := newSendOp(e.fc, typ, payload)
	e.send = op
	return op, nil
}

// Send starts and blocks until one message is fully written, updating
// metrics on completion.
func (e *Engine) Send(typ TypeTag, payload []byte) error {
	op, err := e.StartSend(typ, payload)
	if err != nil {
		return err
	}
	err = op.Wait()
	if err == nil {
		e.opts.Metrics.sent(e.opts.TransportLabel)
	}
	return err
}

// StartRecv begins or resumes a receive exchange governed by variant,
// dispatching decoded messages to proc, and returns the RecvOp driving it.
// Unlike StartSend, a live RecvOp is not Busy: calling StartRecv again while
// the current op is still in flight rebinds it to variant/proc and resumes
// at its current stage, rather than starting a new frame (P7 resumption
// idempotence). A finished RecvOp is discarded and a fresh one started at
// the header stage.
func (e *Engine) StartRecv(variant RecvVariant, proc Processor) (*RecvOp, error) {
	if e.recv != nil && !e.recv.Done() {
		e.recv.resume(variant, proc)
		return e.recv, nil
	}
	op := newRecvOp(e.fc, e.dir, variant, proc)
	e.recv = op
	return op, nil
}

// Recv starts and blocks until variant's exchange completes, updating
// metrics on completion or failure.
func (e *Engine) Recv(variant RecvVariant, proc Processor) error {
	op, err := e.StartRecv(variant, proc)
	if err != nil {
		return err
	}
	err = op.Wait()
	if err != nil {
		e.opts.Metrics.recvError(e.opts.TransportLabel, err)
	} else {
		e.opts.Metrics.received(e.opts.TransportLabel)
	}
	return err
}

// Close releases the underlying stream, if it implements io.Closer. It does
// not wait for any in-flight SendOp/RecvOp to finish; a caller that closes
// out from under an in-flight op will simply see that op fail on its next
// Cont/Wait call, which is the expected way to cancel a receive (§5: there
// is no RecvOp.Cancel either).
func (e *Engine) Close() error {
	if c, ok := e.fc.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
