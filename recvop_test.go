// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysqlx-proto/xprotocol/wire"
)

type resultSetSink struct {
	columns []*wire.Column
	rows    []*wire.Row
	fetchDone bool
	stmtOk    bool
}

func (s *resultSetSink) Column(c *wire.Column) error { s.columns = append(s.columns, c); return nil }
func (s *resultSetSink) Row(r *wire.Row) error        { s.rows = append(s.rows, r); return nil }
func (s *resultSetSink) FetchDone() error             { s.fetchDone = true; return nil }
func (s *resultSetSink) FetchDoneMoreResultsets() error { return nil }
func (s *resultSetSink) StmtExecuteOk() error         { s.stmtOk = true; return nil }

func buildFrames(frames ...[]byte) []byte {
	var out []byte
	for _, f := range frames {
		out = append(out, f...)
	}
	return out
}

func TestRecvOpResultSetSequence(t *testing.T) {
	col := &wire.Column{Name: "id", Type: 7}
	row := &wire.Row{Fields: [][]byte{[]byte("1")}}

	wireBytes := buildFrames(
		frameBytes(TagColumnMetaData, col.Marshal(nil)),
		frameBytes(TagRow, row.Marshal(nil)),
		frameBytes(TagFetchDone, nil),
		frameBytes(TagStmtExecuteOk, nil),
	)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	sink := &resultSetSink{}
	op := newRecvOp(fc, DirFromServer, StmtExecuteRecv{}, sink)

	require.NoError(t, op.Wait())
	require.Len(t, sink.columns, 1)
	assert.Equal(t, "id", sink.columns[0].Name)
	require.Len(t, sink.rows, 1)
	assert.True(t, sink.fetchDone)
	assert.True(t, sink.stmtOk)
}

func TestRecvOpUnknownMessage(t *testing.T) {
	wireBytes := frameBytes(TypeTag(250), nil)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, nil)

	err := op.Wait()
	var unk *UnknownMessageError
	require.ErrorAs(t, err, &unk)
	assert.EqualValues(t, 250, unk.Type)
}

func TestRecvOpUnexpectedMessage(t *testing.T) {
	wireBytes := frameBytes(TagRow, (&wire.Row{}).Marshal(nil))
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, nil)

	err := op.Wait()
	var unexpected *UnexpectedMessageError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, TagRow, unexpected.Type)
}

type errorSink struct{ received *ServerError }

func (s *errorSink) Error(e *ServerError) { s.received = e }

func TestRecvOpServerErrorTerminates(t *testing.T) {
	e := &wire.Error{Code: 1045, SQLState: "28000", Msg: "Access denied"}
	wireBytes := frameBytes(TagError, e.Marshal(nil))
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	sink := &errorSink{}
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, sink)

	err := op.Wait()
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.EqualValues(t, 1045, se.Code)
	require.NotNil(t, sink.received)
	assert.Equal(t, "28000", sink.received.SQLState)
}

type noticeSink struct {
	notices []*wire.Notice
	okCalled bool
}

func (s *noticeSink) Notice(n *wire.Notice) error { s.notices = append(s.notices, n); return nil }
func (s *noticeSink) Ok() error                    { s.okCalled = true; return nil }

func TestRecvOpNoticeDoesNotTerminate(t *testing.T) {
	n := &wire.Notice{Type: 3}
	wireBytes := buildFrames(
		frameBytes(TagNotice, n.Marshal(nil)),
		frameBytes(TagOk, nil),
	)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	sink := &noticeSink{}
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, sink)

	require.NoError(t, op.Wait())
	require.Len(t, sink.notices, 1)
	assert.True(t, sink.okCalled)
}

func TestRecvOpAuthenticateRecvLoop(t *testing.T) {
	wireBytes := buildFrames(
		frameBytes(TagAuthenticateContinue, (&wire.AuthenticateContinue{AuthData: []byte("a")}).Marshal(nil)),
		frameBytes(TagAuthenticateContinue, (&wire.AuthenticateContinue{AuthData: []byte("b")}).Marshal(nil)),
		frameBytes(TagAuthenticateOk, (&wire.AuthenticateOk{}).Marshal(nil)),
	)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	var continues int
	var done bool
	sink := &funcAuthSink{
		cont: func(*wire.AuthenticateContinue) error { continues++; return nil },
		ok:   func(*wire.AuthenticateOk) error { done = true; return nil },
	}
	op := newRecvOp(fc, DirFromServer, AuthenticateRecv{}, sink)
	require.NoError(t, op.Wait())
	assert.Equal(t, 2, continues)
	assert.True(t, done)
}

type funcAuthSink struct {
	cont func(*wire.AuthenticateContinue) error
	ok   func(*wire.AuthenticateOk) error
}

func (s *funcAuthSink) AuthenticateContinue(a *wire.AuthenticateContinue) error { return s.cont(a) }
func (s *funcAuthSink) AuthenticateOk(a *wire.AuthenticateOk) error             { return s.ok(a) }

type boundarySink struct {
	begins  []TypeTag
	ends    int
	stopOn  TypeTag
	okCalls int
}

func (s *boundarySink) MessageBegin(_ Direction, typ TypeTag, _ uint32) { s.begins = append(s.begins, typ) }
func (s *boundarySink) MessageEnd() MessageAction {
	s.ends++
	if len(s.begins) > 0 && s.begins[len(s.begins)-1] == s.stopOn {
		return StopMessage
	}
	return ContinueMessage
}
func (s *boundarySink) Ok() error { s.okCalls++; return nil }

func TestRecvOpBaseProcessorMessageBoundaries(t *testing.T) {
	wireBytes := frameBytes(TagOk, nil)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	sink := &boundarySink{}
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, sink)

	require.NoError(t, op.Wait())
	assert.Equal(t, []TypeTag{TagOk}, sink.begins)
	assert.Equal(t, 1, sink.ends)
	assert.Equal(t, 1, sink.okCalls)
}

func TestRecvOpMessageEndStopEndsExchangeEarly(t *testing.T) {
	// A Notice normally never ends an exchange on its own; StopMessage from
	// MessageEnd overrides that and finishes the RecvOp right away, before
	// the Ok frame that follows is even read.
	wireBytes := buildFrames(
		frameBytes(TagNotice, (&wire.Notice{Type: 1}).Marshal(nil)),
		frameBytes(TagOk, nil),
	)
	stream := &loopbackStream{r: bytes.NewReader(wireBytes), w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)
	sink := &boundarySink{stopOn: TagNotice}
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, sink)

	require.NoError(t, op.Wait())
	assert.Equal(t, []TypeTag{TagNotice}, sink.begins)
	assert.Equal(t, 0, sink.okCalls)
}

func TestRecvOpResumeRebindsProcessorMidExchange(t *testing.T) {
	r := &scriptedReader{}
	wireBytes := frameBytes(TagOk, nil)
	r.push(wireBytes[:2], nil)
	r.push(nil, ErrWouldBlock)
	r.push(wireBytes[2:], nil)
	stream := &loopbackStream{r: r, w: &bytes.Buffer{}}
	fc := newFrameCodec(stream, defaultOptions)

	first := &okProc{}
	op := newRecvOp(fc, DirFromServer, DefaultRecv{Tag: TagOk}, first)

	done, err := op.Cont()
	require.ErrorIs(t, err, ErrWouldBlock)
	require.False(t, done)
	require.False(t, op.Done())

	second := &okProc{}
	op.resume(DefaultRecv{Tag: TagOk}, second)

	require.NoError(t, op.Wait())
	assert.False(t, first.called)
	assert.True(t, second.called)
}
