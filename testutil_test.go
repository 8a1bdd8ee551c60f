// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"bytes"
	"io"
)

// scriptedReader replays a fixed sequence of (bytes, error) steps, modeling
// a transport that delivers data across several non-blocking reads —
// the same fake shape the teacher's framer_test.go uses.
type scriptedReader struct {
	steps []struct {
		b   []byte
		err error
	}
	step int
	off  int
}

func (r *scriptedReader) push(b []byte, err error) {
	r.steps = append(r.steps, struct {
		b   []byte
		err error
	}{b, err})
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	for {
		if r.step >= len(r.steps) {
			return 0, io.EOF
		}
		st := r.steps[r.step]
		if len(st.b) == 0 {
			r.step++
			r.off = 0
			return 0, st.err
		}
		if r.off >= len(st.b) {
			r.step++
			r.off = 0
			continue
		}
		n := copy(p, st.b[r.off:])
		r.off += n
		if r.off >= len(st.b) {
			return n, st.err
		}
		return n, nil
	}
}

// limitedWriter accepts at most limit bytes per Write call, returning
// ErrWouldBlock for the remainder, modeling a non-blocking socket buffer.
type limitedWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := w.limit
	if n > len(p) {
		n = len(p)
	}
	if n <= 0 {
		return 0, ErrWouldBlock
	}
	w.buf.Write(p[:n])
	if n < len(p) {
		return n, ErrWouldBlock
	}
	return n, nil
}

// loopbackStream is a ByteStream backed by independent read/write buffers,
// for tests that only drive one direction at a time.
type loopbackStream struct {
	r io.Reader
	w io.Writer
}

func (s *loopbackStream) Read(p []byte) (int, error)  { return s.r.Read(p) }
func (s *loopbackStream) Write(p []byte) (int, error) { return s.w.Write(p) }
