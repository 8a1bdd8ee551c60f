// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "github.com/mysqlx-proto/xprotocol/wire"

// Processor is the opaque handle a caller passes to RecvOp/Engine.Recv
// (§6.4). The engine never calls a method on Processor directly; dispatch.go
// type-asserts it against the capability interfaces below and calls whatever
// the concrete type implements, skipping anything it doesn't (tagged
// dispatch in place of virtual dispatch, §9). A type implementing none of
// the capabilities relevant to a given message simply does not observe that
// message.
type Processor interface{}

// MessageAction is the result of BaseProcessor.MessageEnd: whether the
// RecvOp should keep looping for further frames (subject to the active
// RecvVariant) or stop immediately.
type MessageAction uint8

const (
	ContinueMessage MessageAction = iota
	StopMessage
)

// BaseProcessor is the mandatory per-frame contract every decoded message
// passes through, in addition to whatever typed capability handles it:
// MessageBegin fires once the frame's type and declared size are known,
// before any typed callback; MessageEnd fires after, once per dispatched
// frame. MessageEnd's StopMessage return ends the RecvOp the same way a
// variant's terminal tag does (done, no error) — it is a caller-driven
// early exit, not a failure, and is distinct from a typed callback
// returning a non-nil error, which always aborts the RecvOp with that
// error. A Processor that does not implement BaseProcessor simply never
// sees message boundaries.
type BaseProcessor interface {
	MessageBegin(dir Direction, typ TypeTag, size uint32)
	MessageEnd() MessageAction
}

// ErrorProcessor receives TagError frames. The engine recognizes TagError
// for every RecvVariant (§4.3 step 1); a Processor that does not implement
// ErrorProcessor still has the RecvOp finish with the *ServerError as its
// Wait/Cont error.
type ErrorProcessor interface {
	Error(*ServerError)
}

// NoticeProcessor receives TagNotice frames, which the engine also
// recognizes regardless of RecvVariant.
type NoticeProcessor interface {
	Notice(*wire.Notice) error
}

// OkProcessor receives TagOk frames.
type OkProcessor interface {
	Ok() error
}

// CapabilitiesProcessor receives the server's response to a capabilities
// exchange.
type CapabilitiesProcessor interface {
	CapabilitiesGetResponse(*wire.CapabilitiesGetResponse) error
	CapabilitiesSetResponse(*wire.CapabilitiesSetResponse) error
}

// AuthProcessor receives the server's half of a SASL authentication
// exchange.
type AuthProcessor interface {
	AuthenticateContinue(*wire.AuthenticateContinue) error
	AuthenticateOk(*wire.AuthenticateOk) error
}

// MetadataProcessor receives one ColumnMetaData entry per column, in column
// order, before any Row callbacks for that resultset (§4.4 dispatch table).
type MetadataProcessor interface {
	Column(*wire.Column) error
}

// RowProcessor receives one Row per resultset row.
type RowProcessor interface {
	Row(*wire.Row) error
}

// FetchDoneProcessor receives resultset boundary markers.
type FetchDoneProcessor interface {
	FetchDone() error
	FetchDoneMoreResultsets() error
}

// StmtExecuteOkProcessor receives the terminal message of a StmtExecute,
// which follows any resultsets the statement produced.
type StmtExecuteOkProcessor interface {
	StmtExecuteOk() error
}

// The following capability interfaces are consulted only by a server-role
// Engine (Direction DirFromClient), such as a test harness that needs to
// observe or react to client-originated messages. The Relay (relay.go) never
// decodes payloads and does not consult them. A normal
// client-role Engine never dispatches against them.

// ConnectionProcessor receives the client's capability-negotiation requests.
type ConnectionProcessor interface {
	CapabilitiesGet(*wire.CapabilitiesGet) error
	CapabilitiesSet(*wire.CapabilitiesSet) error
}

// ClientAuthProcessor receives the client's half of a SASL authentication
// exchange.
type ClientAuthProcessor interface {
	AuthenticateStart(*wire.AuthenticateStart) error
	AuthenticateContinue(*wire.AuthenticateContinue) error
}

// SessionProcessor receives session lifecycle requests from the client.
type SessionProcessor interface {
	SessionReset(*wire.SessionReset) error
	SessionClose() error
}

// SqlProcessor receives the client's SQL statement execution requests.
type SqlProcessor interface {
	StmtExecute(*wire.StmtExecute) error
}

// CrudProcessor receives the client's document/table CRUD requests.
type CrudProcessor interface {
	CrudFind(*wire.CrudFind) error
	CrudInsert(*wire.CrudInsert) error
	CrudUpdate(*wire.CrudUpdate) error
	CrudDelete(*wire.CrudDelete) error
}

// ExpectProcessor receives the client's Expect block bracketing requests.
type ExpectProcessor interface {
	ExpectOpen(*wire.ExpectOpen) error
	ExpectClose() error
}

// RawPayloadProcessor is a fallback capability: if a Processor implements it,
// dispatch.go invokes it with the frame's undecoded payload alongside the
// typed callback (if any), letting a caller capture bytes the typed
// callbacks don't expose (e.g. for a relay or for wire-level logging).
type RawPayloadProcessor interface {
	Raw(Direction, TypeTag, []byte)
}
