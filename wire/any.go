// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ScalarKind is the closed set of scalar leaves in the Any visitor (§6.5):
// {null, string, string-with-charset, int64, uint64, float, double, bool,
// bytes}. StringCharset and String share wire shape; the charset field is
// simply zero when unset.
type ScalarKind uint8

const (
	ScalarNull ScalarKind = iota + 1
	ScalarString
	ScalarInt64
	ScalarUint64
	ScalarFloat
	ScalarDouble
	ScalarBool
	ScalarBytes
)

// Scalar is one leaf value of the Any/Expression visitor surface.
type Scalar struct {
	Kind ScalarKind

	StringValue   []byte
	StringCharset uint32 // 0 = unspecified/utf8

	Int64Value  int64
	Uint64Value uint64
	FloatValue  float32
	DoubleValue float64
	BoolValue   bool
	BytesValue  []byte
}

const (
	fScalarKind          protowire.Number = 1
	fScalarVString       protowire.Number = 2
	fScalarVStringValue  protowire.Number = 1
	fScalarVStringCset   protowire.Number = 2
	fScalarVSignedInt    protowire.Number = 3
	fScalarVUnsignedInt  protowire.Number = 4
	fScalarVFloat        protowire.Number = 5
	fScalarVDouble       protowire.Number = 6
	fScalarVBool         protowire.Number = 7
	fScalarVOctets       protowire.Number = 8
	fScalarVOctetsValue  protowire.Number = 1
	fScalarVOctetsCtype  protowire.Number = 2
)

// Marshal appends the wire encoding of s to b.
func (s *Scalar) Marshal(b []byte) []byte {
	b = appendVarintAlways(b, fScalarKind, uint64(s.Kind))
	switch s.Kind {
	case ScalarString:
		var sub []byte
		sub = appendBytes(sub, fScalarVStringValue, s.StringValue)
		sub = appendVarint(sub, fScalarVStringCset, uint64(s.StringCharset))
		b = appendSubmessage(b, fScalarVString, sub)
	case ScalarInt64:
		b = protowire.AppendTag(b, fScalarVSignedInt, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(s.Int64Value))
	case ScalarUint64:
		b = appendVarintAlways(b, fScalarVUnsignedInt, s.Uint64Value)
	case ScalarFloat:
		b = protowire.AppendTag(b, fScalarVFloat, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, floatBits(s.FloatValue))
	case ScalarDouble:
		b = appendFixed64(b, fScalarVDouble, doubleBits(s.DoubleValue))
	case ScalarBool:
		v := uint64(0)
		if s.BoolValue {
			v = 1
		}
		b = protowire.AppendTag(b, fScalarVBool, protowire.VarintType)
		b = protowire.AppendVarint(b, v)
	case ScalarBytes:
		var sub []byte
		sub = appendBytes(sub, fScalarVOctetsValue, s.BytesValue)
		b = appendSubmessage(b, fScalarVOctets, sub)
	case ScalarNull:
		// no value field
	}
	return b
}

// UnmarshalScalar parses a Scalar from b.
func UnmarshalScalar(b []byte) (*Scalar, error) {
	s := &Scalar{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fScalarKind:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.Kind = ScalarKind(v)
			return r, nil
		case fScalarVString:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case fScalarVStringValue:
					v, r2, err := consumeBytes(rr)
					if err != nil {
						return nil, err
					}
					s.StringValue = v
					return r2, nil
				case fScalarVStringCset:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					s.StringCharset = uint32(v)
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			return r, nil
		case fScalarVSignedInt:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.Int64Value = protowire.DecodeZigZag(v)
			return r, nil
		case fScalarVUnsignedInt:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.Uint64Value = v
			return r, nil
		case fScalarVFloat:
			v, n := protowire.ConsumeFixed32(rest)
			if n < 0 {
				return nil, ErrTruncated
			}
			s.FloatValue = bitsFloat(v)
			return rest[n:], nil
		case fScalarVDouble:
			v, r, err := consumeFixed64(rest)
			if err != nil {
				return nil, err
			}
			s.DoubleValue = bitsDouble(v)
			return r, nil
		case fScalarVBool:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.BoolValue = v != 0
			return r, nil
		case fScalarVOctets:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				if n == fScalarVOctetsValue {
					v, r2, err := consumeBytes(rr)
					if err != nil {
						return nil, err
					}
					s.BytesValue = v
					return r2, nil
				}
				return skipField(t, rr)
			}); err != nil {
				return nil, err
			}
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: scalar: %w", err)
	}
	return s, nil
}

// AnyKind discriminates the three shapes an Any value can take.
type AnyKind uint8

const (
	AnyScalar AnyKind = iota + 1
	AnyObject
	AnyArray
)

// ObjectField is one key/value pair of an Any object.
type ObjectField struct {
	Key   string
	Value Any
}

// Any is a scalar, a document (object), or a list (array), per §6.5.
type Any struct {
	Kind   AnyKind
	Scalar *Scalar
	Object []ObjectField
	Array  []Any
}

const (
	fAnyKind       protowire.Number = 1
	fAnyScalar     protowire.Number = 2
	fAnyObject     protowire.Number = 3
	fAnyArray      protowire.Number = 4
	fObjFieldKey   protowire.Number = 1
	fObjFieldValue protowire.Number = 2
)

func (a *Any) Marshal(b []byte) []byte {
	b = appendVarintAlways(b, fAnyKind, uint64(a.Kind))
	switch a.Kind {
	case AnyScalar:
		if a.Scalar != nil {
			b = appendSubmessage(b, fAnyScalar, a.Scalar.Marshal(nil))
		}
	case AnyObject:
		for _, f := range a.Object {
			var sub []byte
			sub = appendString(sub, fObjFieldKey, f.Key)
			sub = appendSubmessage(sub, fObjFieldValue, f.Value.Marshal(nil))
			b = appendSubmessage(b, fAnyObject, sub)
		}
	case AnyArray:
		for i := range a.Array {
			b = appendSubmessage(b, fAnyArray, a.Array[i].Marshal(nil))
		}
	}
	return b
}

func UnmarshalAny(b []byte) (*Any, error) {
	a := &Any{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fAnyKind:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			a.Kind = AnyKind(v)
			return r, nil
		case fAnyScalar:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			s, err := UnmarshalScalar(sub)
			if err != nil {
				return nil, err
			}
			a.Scalar = s
			return r, nil
		case fAnyObject:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var f ObjectField
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case fObjFieldKey:
					v, r2, err := consumeString(rr)
					if err != nil {
						return nil, err
					}
					f.Key = v
					return r2, nil
				case fObjFieldValue:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					val, err := UnmarshalAny(v)
					if err != nil {
						return nil, err
					}
					f.Value = *val
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			a.Object = append(a.Object, f)
			return r, nil
		case fAnyArray:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			val, err := UnmarshalAny(sub)
			if err != nil {
				return nil, err
			}
			a.Array = append(a.Array, *val)
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: any: %w", err)
	}
	return a, nil
}
