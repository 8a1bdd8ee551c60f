// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import (
	"errors"
	"fmt"
)

// Sentinel errors for argument-less conditions, following the teacher's
// convention of plain package-level errors.New values for conditions that
// carry no extra fields.
var (
	// ErrInvalidArgument reports an invalid configuration or nil stream.
	ErrInvalidArgument = errors.New("xprotocol: invalid argument")

	// ErrBusy reports that StartSend was called while a SendOp is already
	// in flight on this engine (§4.5).
	ErrBusy = errors.New("xprotocol: send already in flight")

	// ErrEos reports that the stream ended mid-frame.
	ErrEos = errors.New("xprotocol: stream ended mid-frame")

	// ErrFrame reports a malformed frame (size = 0, or a short/garbled header).
	ErrFrame = errors.New("xprotocol: malformed frame")

	// ErrOversize reports a frame whose declared size exceeds MaxFrame.
	ErrOversize = errors.New("xprotocol: frame exceeds MaxFrame")
)

// UnknownMessageError reports a type tag with no registry entry for the
// engine's direction (Kind UnknownMessage). The payload has already been
// drained from the stream by the time this is raised.
type UnknownMessageError struct {
	Type TypeTag
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("xprotocol: no decoder for message type %d", e.Type)
}

// UnexpectedMessageError reports a type tag that the active RecvVariant's
// Accepts rejected, even though a registry decoder exists for it
// (Kind UnexpectedMessage).
type UnexpectedMessageError struct {
	Type TypeTag
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("xprotocol: unexpected message type %d", e.Type)
}

// DecodeError reports that a payload failed to parse against its schema
// (Kind Decode).
type DecodeError struct {
	Type   TypeTag
	Reason error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("xprotocol: decode message type %d: %v", e.Type, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Reason }

// ServerError is handed to ErrorProcessor.Error when the Processor implements
// it, and is also returned from Cont/Wait as the error that ends the current
// RecvOp (invariant I5); the callback does not swallow it.
type ServerError struct {
	Code     uint32
	SQLState string
	Message  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("xprotocol: server error %d (%s): %s", e.Code, e.SQLState, e.Message)
}
