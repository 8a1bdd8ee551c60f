// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire holds the payload types for every MySQL X Protocol message
// the engine's MessageRegistry knows how to decode/dispatch, plus their
// Marshal/Unmarshal pair.
//
// §6.2 allows any encoder that round-trips the schema's binary,
// length-delimited, field-tagged wire format bit-exactly; this package uses
// google.golang.org/protobuf/encoding/protowire directly (varint and
// length-delimited primitives, no generated descriptors) rather than full
// generated message code, since the engine only ever needs to
// marshal/unmarshal its own closed message set, not arbitrary schemas.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrTruncated reports that a payload ended before a required field/tag.
var ErrTruncated = errors.New("wire: truncated payload")

// fieldError wraps a protowire parse failure (negative consumed-length
// marker) with the field number being parsed, for a useful DecodeError.
func fieldError(field protowire.Number, b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("wire: field %d: %w", field, ErrTruncated)
	}
	return fmt.Errorf("wire: field %d: malformed", field)
}

// appendString appends a length-delimited UTF-8 string field.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendBytes appends a length-delimited bytes field.
func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendVarint appends a varint field, omitting it entirely when zero
// (proto3-style implicit presence for scalar fields we never need to
// distinguish from "absent").
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendVarintAlways(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendFixed64(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, v)
}

func appendSubmessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// forEachField walks b, calling fn(num, typ, rest) for each top-level field,
// where rest starts at the field's value. fn returns the remaining bytes after it has consumed the field's
// value (normally just `rest`), or an error to abort the walk.
func forEachField(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) ([]byte, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fieldError(num, b)
		}
		b = b[n:]
		rest, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = rest
	}
	return nil
}

// skipField consumes and discards one field's value of the given type,
// returning the bytes remaining after it. Used by Unmarshal implementations
// to tolerate unknown fields, matching proto3 forward-compatibility.
func skipField(typ protowire.Type, b []byte) ([]byte, error) {
	n := protowire.ConsumeFieldValue(0, typ, b)
	if n < 0 {
		return nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	return b[n:], nil
}

func consumeString(b []byte) (string, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return "", nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	return string(v), b[n:], nil
}

func consumeBytes(b []byte) ([]byte, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, b[n:], nil
}

func consumeVarint(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	return v, b[n:], nil
}

func consumeFixed64(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	return v, b[n:], nil
}

func consumeSubmessage(b []byte) ([]byte, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("wire: %w", ErrTruncated)
	}
	return v, b[n:], nil
}
