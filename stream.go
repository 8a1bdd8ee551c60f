// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"io"

	"code.hybscloud.com/iox"
)

// ByteStream is the reliable, ordered byte channel an Engine drives (§6.3).
// Any io.Reader+io.Writer qualifies, including one that reports partial,
// resumable progress via ErrWouldBlock/ErrMore instead of blocking — the
// same non-blocking-first contract the teacher's framer package consumes
// from code.hybscloud.com/iox.
type ByteStream interface {
	io.Reader
	io.Writer
}

// These are re-exported so callers never need to import iox directly to
// recognize the control-flow signals their ByteStream may return, the same
// aliasing idiom the teacher uses in framer.go.
var (
	// ErrWouldBlock means "no further progress without waiting". It is an
	// expected, non-failure control-flow signal for non-blocking I/O. Any
	// returned byte count still represents real progress that SendOp/RecvOp
	// retain across the next Cont call.
	ErrWouldBlock = iox.ErrWouldBlock

	// ErrMore means "this completion is usable and more completions will
	// follow". The operation remains active; the caller should process the
	// returned bytes and call again for the next chunk.
	ErrMore = iox.ErrMore
)

// isRetryable reports whether err is a non-blocking control-flow signal that
// SendOp/RecvOp should treat as "not done yet" rather than a hard failure.
func isRetryable(err error) bool {
	return err == ErrWouldBlock || err == ErrMore
}
