// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelayForwardsFrameUnmodified(t *testing.T) {
	src := frameBytes(TagStmtExecute, []byte("select 1"))
	var dst bytes.Buffer
	r := NewRelay(&loopbackStream{r: bytes.NewReader(nil), w: &dst}, &loopbackStream{r: bytes.NewReader(src), w: &bytes.Buffer{}})

	require.NoError(t, r.ForwardWait())
	assert.Equal(t, src, dst.Bytes())
}

func TestRelayForwardOnceWouldBlockOnWrite(t *testing.T) {
	src := frameBytes(TagOk, []byte("x"))
	w := &limitedWriter{limit: 1}
	r := NewRelay(&loopbackStream{r: bytes.NewReader(nil), w: w}, &loopbackStream{r: bytes.NewReader(src), w: &bytes.Buffer{}})

	done, err := r.ForwardOnce()
	for !done {
		if err != nil {
			require.ErrorIs(t, err, ErrWouldBlock)
		}
		w.limit += 1
		done, err = r.ForwardOnce()
	}
	require.NoError(t, err)
	assert.Equal(t, src, w.buf.Bytes())
}
