// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	cases := []*Scalar{
		{Kind: ScalarNull},
		{Kind: ScalarString, StringValue: []byte("hello"), StringCharset: 33},
		{Kind: ScalarInt64, Int64Value: -42},
		{Kind: ScalarUint64, Uint64Value: 42},
		{Kind: ScalarFloat, FloatValue: 3.5},
		{Kind: ScalarDouble, DoubleValue: 2.71828},
		{Kind: ScalarBool, BoolValue: true},
		{Kind: ScalarBytes, BytesValue: []byte{0x01, 0x02, 0x03}},
	}
	for _, want := range cases {
		got, err := UnmarshalScalar(want.Marshal(nil))
		require.NoError(t, err)
		assert.Equal(t, want.Kind, got.Kind)
		switch want.Kind {
		case ScalarString:
			assert.Equal(t, want.StringValue, got.StringValue)
			assert.Equal(t, want.StringCharset, got.StringCharset)
		case ScalarInt64:
			assert.Equal(t, want.Int64Value, got.Int64Value)
		case ScalarUint64:
			assert.Equal(t, want.Uint64Value, got.Uint64Value)
		case ScalarFloat:
			assert.Equal(t, want.FloatValue, got.FloatValue)
		case ScalarDouble:
			assert.Equal(t, want.DoubleValue, got.DoubleValue)
		case ScalarBool:
			assert.Equal(t, want.BoolValue, got.BoolValue)
		case ScalarBytes:
			assert.Equal(t, want.BytesValue, got.BytesValue)
		}
	}
}

func TestAnyObjectAndArrayRoundTrip(t *testing.T) {
	doc := &Any{
		Kind: AnyObject,
		Object: []ObjectField{
			{Key: "name", Value: Any{Kind: AnyScalar, Scalar: &Scalar{Kind: ScalarString, StringValue: []byte("alice")}}},
			{Key: "tags", Value: Any{Kind: AnyArray, Array: []Any{
				{Kind: AnyScalar, Scalar: &Scalar{Kind: ScalarInt64, Int64Value: 1}},
				{Kind: AnyScalar, Scalar: &Scalar{Kind: ScalarInt64, Int64Value: 2}},
			}}},
		},
	}

	got, err := UnmarshalAny(doc.Marshal(nil))
	require.NoError(t, err)
	require.Equal(t, AnyObject, got.Kind)
	require.Len(t, got.Object, 2)
	assert.Equal(t, "name", got.Object[0].Key)
	assert.Equal(t, []byte("alice"), got.Object[0].Value.Scalar.StringValue)
	require.Len(t, got.Object[1].Value.Array, 2)
	assert.EqualValues(t, 2, got.Object[1].Value.Array[1].Scalar.Int64Value)
}

func TestUnmarshalScalarTruncated(t *testing.T) {
	_, err := UnmarshalScalar([]byte{0x08}) // tag for varint field 1 (kind) with no value
	assert.Error(t, err)
}
