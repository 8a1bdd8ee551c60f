// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"bytes"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okProc struct{ called bool }

func (p *okProc) Ok() error { p.called = true; return nil }

func TestEngineSendRecvRoundTrip(t *testing.T) {
	c1, c2 := net.Pipe()
	defer c1.Close()
	defer c2.Close()

	server, err := NewEngine(c1, DirFromServer, WithBlock())
	require.NoError(t, err)
	client, err := NewEngine(c2, DirFromServer, WithBlock())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, server.Send(TagOk, nil))
	}()

	proc := &okProc{}
	require.NoError(t, client.Recv(DefaultRecv{Tag: TagOk}, proc))
	wg.Wait()
	assert.True(t, proc.called)
}

func TestEngineSendBusy(t *testing.T) {
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &limitedWriter{limit: 0}}
	e, err := NewEngine(stream, DirFromServer)
	require.NoError(t, err)

	_, err = e.StartSend(TagOk, []byte("x"))
	require.NoError(t, err)

	_, err = e.StartSend(TagOk, []byte("y"))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestEngineStartRecvResumesLiveOp(t *testing.T) {
	stream := &loopbackStream{r: bytes.NewReader(nil), w: &bytes.Buffer{}}
	e, err := NewEngine(stream, DirFromServer)
	require.NoError(t, err)

	first, err := e.StartRecv(DefaultRecv{Tag: TagOk}, &okProc{})
	require.NoError(t, err)

	again, err := e.StartRecv(DefaultRecv{Tag: TagOk}, &okProc{})
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestNewEngineRejectsNilStream(t *testing.T) {
	_, err := NewEngine(nil, DirFromServer)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
