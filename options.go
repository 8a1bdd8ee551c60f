// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "time"

// MaxFrame is the hard wire limit from §3: a frame declaring size > MaxFrame
// is a framing error. It is also the default accepted frame size;
// WithMaxFrame can only lower it.
const MaxFrame = 1 << 30 // 1 GiB, includes the 1-byte type tag

// initialBufferSize is the starting capacity for rd_buf/wr_buf; both grow
// on demand up to MaxFrame and never shrink within a connection (§3 Buffers).
const initialBufferSize = 4096

// Options configures an Engine. Byte order is not configurable: §9 fixes the
// wire as always little-endian, unlike the teacher's per-transport
// WithByteOrder, because the X Protocol schema mandates it.
type Options struct {
	// MaxFrame caps the accepted frame size. Zero means the package default
	// (MaxFrame constant). Never settable above the constant.
	MaxFrame uint32

	// InitialBufferSize is the starting rd_buf/wr_buf capacity.
	InitialBufferSize int

	// RetryDelay controls how SendOp/RecvOp handle ErrWouldBlock from the
	// ByteStream:
	//   - negative: nonblocking; Cont returns (false, ErrWouldBlock) immediately
	//   - zero: yield (runtime.Gosched) and retry within the same Cont call
	//   - positive: sleep for the duration and retry within the same Cont call
	RetryDelay time.Duration

	// Metrics receives engine lifecycle counters. Nil is a valid no-op sink.
	Metrics *MetricsSink

	// TransportLabel tags emitted metrics (e.g. "tcp", "tls", "unix"). It has
	// no effect on wire behavior; see metrics.go.
	TransportLabel string
}

var defaultOptions = Options{
	MaxFrame:          MaxFrame,
	InitialBufferSize: initialBufferSize,
	RetryDelay:        -1, // default: nonblock, caller drives Cont itself
	TransportLabel:    "unknown",
}

// Option configures an Engine at construction time.
type Option func(*Options)

// WithMaxFrame lowers the accepted frame size below the package MaxFrame.
// Values above MaxFrame or zero are clamped to MaxFrame.
func WithMaxFrame(limit uint32) Option {
	return func(o *Options) {
		if limit == 0 || limit > MaxFrame {
			limit = MaxFrame
		}
		o.MaxFrame = limit
	}
}

// WithInitialBufferSize sets the starting rd_buf/wr_buf capacity.
func WithInitialBufferSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.InitialBufferSize = n
		}
	}
}

// WithRetryDelay sets the retry/wait policy used when the ByteStream returns
// ErrWouldBlock (or ErrMore) mid-stage.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithBlock enables cooperative blocking (yield-and-retry) on ErrWouldBlock.
func WithBlock() Option {
	return func(o *Options) { o.RetryDelay = 0 }
}

// WithNonblock forces non-blocking behavior: Cont returns immediately on
// ErrWouldBlock instead of retrying. This is the default.
func WithNonblock() Option {
	return func(o *Options) { o.RetryDelay = -1 }
}

// WithMetrics attaches a MetricsSink to the engine.
func WithMetrics(m *MetricsSink) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithTransportLabel tags metrics emitted by the engine, mirroring the
// teacher's per-transport Option constructors (WithTCP/WithUnix/...) but as
// a single observability label rather than a wire-format switch, since the
// X Protocol wire format does not vary by transport the way framer's does.
func WithTransportLabel(label string) Option {
	return func(o *Options) {
		if label != "" {
			o.TransportLabel = label
		}
	}
}
