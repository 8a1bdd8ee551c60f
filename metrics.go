// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "github.com/prometheus/client_golang/prometheus"

// MetricsSink exposes the engine's lifecycle counters as Prometheus metrics
// (§5: the engine has no logging of its own, so observability is entirely
// through these counters plus whatever a caller does with the errors Cont/
// Wait return). A nil *MetricsSink is valid everywhere it's accepted and
// every method on it is a no-op.
type MetricsSink struct {
	framesSent     *prometheus.CounterVec
	framesReceived *prometheus.CounterVec
	recvErrors     *prometheus.CounterVec
}

// NewMetricsSink registers the engine's counters on reg and returns a sink
// ready to pass via WithMetrics. The counter names are fixed, so calling
// NewMetricsSink twice with the same reg panics on the duplicate
// registration, matching prometheus.MustRegister's usual contract; engines
// that share a registry share one sink and tell themselves apart by
// TransportLabel.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	m := &MetricsSink{
		framesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xprotocol",
			Name:      "frames_sent_total",
			Help:      "Frames successfully written to the stream.",
		}, []string{"transport"}),
		framesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xprotocol",
			Name:      "frames_received_total",
			Help:      "Frames successfully read and dispatched from the stream.",
		}, []string{"transport"}),
		recvErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "xprotocol",
			Name:      "recv_errors_total",
			Help:      "RecvOp failures, labeled by error kind.",
		}, []string{"transport", "kind"}),
	}
	reg.MustRegister(m.framesSent, m.framesReceived, m.recvErrors)
	return m
}

func (m *MetricsSink) sent(transport string) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(transport).Inc()
}

func (m *MetricsSink) received(transport string) {
	if m == nil {
		return
	}
	m.framesReceived.WithLabelValues(transport).Inc()
}

func (m *MetricsSink) recvError(transport string, err error) {
	if m == nil {
		return
	}
	m.recvErrors.WithLabelValues(transport, errorKind(err)).Inc()
}

// errorKind maps an error returned by RecvOp to the §7 Kind taxonomy, for
// metric cardinality that stays bounded regardless of message content.
func errorKind(err error) string {
	switch err.(type) {
	case *UnknownMessageError:
		return "unknown_message"
	case *UnexpectedMessageError:
		return "unexpected_message"
	case *DecodeError:
		return "decode"
	case *ServerError:
		return "server_error"
	}
	switch err {
	case ErrEos:
		return "eos"
	case ErrFrame:
		return "frame"
	case ErrOversize:
		return "oversize"
	case ErrBusy:
		return "busy"
	}
	return "io"
}
