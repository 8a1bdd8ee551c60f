// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "runtime"

// recvStage is RecvOp's position in the Header -> Payload -> Dispatch ->
// LoopOrDone state machine (§4.3).
type recvStage uint8

const (
	stageHeader recvStage = iota
	stagePayload
	stageDispatch
)

// RecvOp is a single in-flight, resumable receive of one request/response
// exchange, which may span several frames (§4.3). Which tags are legal and
// which one ends the exchange is delegated to a RecvVariant rather than
// hardcoded here, so the same staged loop drives every kind of exchange in
// the protocol.
type RecvOp struct {
	fc      *FrameCodec
	dir     Direction
	variant RecvVariant
	proc    Processor

	stage     recvStage
	completed bool
	err       error
}

// newRecvOp constructs a RecvOp bound to fc, ready to read its first header.
func newRecvOp(fc *FrameCodec, dir Direction, variant RecvVariant, proc Processor) *RecvOp {
	return &RecvOp{fc: fc, dir: dir, variant: variant, proc: proc}
}

func (op *RecvOp) finish(err error) (bool, error) {
	op.completed = true
	op.err = err
	return true, err
}

// resume rebinds a still-live RecvOp to a new variant/processor pair without
// discarding its stage (§4.5 recv_start: create-or-resume). The next Cont
// call picks up exactly where the previous one left off: a new header if no
// frame is in flight, or the current payload/dispatch stage otherwise.
func (op *RecvOp) resume(variant RecvVariant, proc Processor) {
	op.variant = variant
	op.proc = proc
}

// Cont advances the receive by one non-blocking step, looping internally
// across LoopOrDone without yielding back to the caller when a stage
// finishes without I/O. It returns (true, nil) once the variant's terminal
// message has been dispatched, (true, err) on any failure (including a
// *ServerError, per I5), and (false, err) when the stream needs another
// Cont call (err is ErrWouldBlock/ErrMore or nil).
func (op *RecvOp) Cont() (done bool, err error) {
	if op.completed {
		return true, op.err
	}
	for {
		switch op.stage {
		case stageHeader:
			hdone, herr := op.fc.ReadHeaderCont()
			if herr != nil {
				if isRetryable(herr) {
					return false, herr
				}
				return op.finish(herr)
			}
			if !hdone {
				return false, nil
			}
			op.stage = stagePayload
		case stagePayload:
			pdone, perr := op.fc.ReadPayloadCont()
			if perr != nil {
				if isRetryable(perr) {
					return false, perr
				}
				return op.finish(perr)
			}
			if !pdone {
				return false, nil
			}
			op.stage = stageDispatch
		case stageDispatch:
			tag := op.fc.Type()
			universal := tag == TagError || tag == TagNotice
			if !universal && !op.variant.Accepts(tag) {
				op.fc.ResetRead()
				if _, ok := lookupEntry(op.dir, tag); ok {
					return op.finish(&UnexpectedMessageError{Type: tag})
				}
				return op.finish(&UnknownMessageError{Type: tag})
			}
			payload := op.fc.Payload()
			size := op.fc.Size()
			stop, derr := dispatchMessage(op.proc, op.dir, tag, size, payload)
			// The frame is fully consumed; clear the read state so the next
			// header (in this op or a fresh one) starts from scratch.
			op.fc.ResetRead()
			op.stage = stageHeader
			if derr != nil {
				return op.finish(derr)
			}
			if stop {
				// A BaseProcessor asked to stop; honor it ahead of the
				// variant's own looping rules, including Notice's "never
				// ends an exchange on its own".
				return op.finish(nil)
			}
			if universal && tag == TagNotice {
				// Notice never ends an exchange on its own (§3); keep reading
				// within the same variant.
				continue
			}
			if op.variant.Terminal(tag) {
				return op.finish(nil)
			}
		}
	}
}

// Wait blocks (cooperatively yielding) until Cont completes or fails.
func (op *RecvOp) Wait() error {
	for {
		done, err := op.Cont()
		if done {
			return err
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

// Done reports whether the op has finished (successfully or not).
func (op *RecvOp) Done() bool { return op.completed }
