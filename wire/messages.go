// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Ok is the empty Mysqlx.Ok payload: a frame carrying TagOk has a zero-length
// body, so there is nothing to marshal/unmarshal beyond its presence.
type Ok struct{}

func (Ok) Marshal(b []byte) []byte { return b }

func UnmarshalOk(b []byte) (*Ok, error) {
	if len(b) != 0 {
		return nil, fmt.Errorf("wire: ok: %d trailing bytes", len(b))
	}
	return &Ok{}, nil
}

// Error is the Mysqlx.Error payload delivered on TagError.
type Error struct {
	Severity uint32 // 0 = ERROR, 1 = FATAL
	Code     uint32
	SQLState string
	Msg      string
}

const (
	fErrSeverity protowire.Number = 1
	fErrCode     protowire.Number = 2
	fErrMsg      protowire.Number = 3
	fErrSQLState protowire.Number = 4
)

func (e *Error) Marshal(b []byte) []byte {
	b = appendVarint(b, fErrSeverity, uint64(e.Severity))
	b = appendVarintAlways(b, fErrCode, uint64(e.Code))
	b = appendString(b, fErrMsg, e.Msg)
	b = appendString(b, fErrSQLState, e.SQLState)
	return b
}

func UnmarshalError(b []byte) (*Error, error) {
	e := &Error{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fErrSeverity:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			e.Severity = uint32(v)
			return r, nil
		case fErrCode:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			e.Code = uint32(v)
			return r, nil
		case fErrMsg:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			e.Msg = v
			return r, nil
		case fErrSQLState:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			e.SQLState = v
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: error: %w", err)
	}
	return e, nil
}

// Notice is the Mysqlx.Notice.Frame payload delivered on TagNotice.
type Notice struct {
	Type    uint32
	Scope   uint32 // 1 = GLOBAL, 2 = LOCAL
	Payload []byte
}

const (
	fNoticeType    protowire.Number = 1
	fNoticeScope   protowire.Number = 2
	fNoticePayload protowire.Number = 3
)

func (n *Notice) Marshal(b []byte) []byte {
	b = appendVarintAlways(b, fNoticeType, uint64(n.Type))
	b = appendVarint(b, fNoticeScope, uint64(n.Scope))
	b = appendBytes(b, fNoticePayload, n.Payload)
	return b
}

func UnmarshalNotice(b []byte) (*Notice, error) {
	n := &Notice{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fNoticeType:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			n.Type = uint32(v)
			return r, nil
		case fNoticeScope:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			n.Scope = uint32(v)
			return r, nil
		case fNoticePayload:
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			n.Payload = v
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: notice: %w", err)
	}
	return n, nil
}

// Capability is one name/value pair inside a capabilities exchange.
type Capability struct {
	Name  string
	Value Any
}

func marshalCapabilities(b []byte, num protowire.Number, caps []Capability) []byte {
	for _, c := range caps {
		var sub []byte
		sub = appendString(sub, 1, c.Name)
		sub = appendSubmessage(sub, 2, c.Value.Marshal(nil))
		b = appendSubmessage(b, num, sub)
	}
	return b
}

func unmarshalCapability(b []byte) (Capability, error) {
	var c Capability
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case 1:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Name = v
			return r, nil
		case 2:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			v, err := UnmarshalAny(sub)
			if err != nil {
				return nil, err
			}
			c.Value = *v
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	return c, err
}

// CapabilitiesGet is the client's Mysqlx.Connection.CapabilitiesGet request
// (empty body).
type CapabilitiesGet struct{}

func (CapabilitiesGet) Marshal(b []byte) []byte { return b }

func UnmarshalCapabilitiesGet(b []byte) (*CapabilitiesGet, error) {
	return &CapabilitiesGet{}, nil
}

// CapabilitiesGetResponse carries the server's offered capability list.
type CapabilitiesGetResponse struct {
	Capabilities []Capability
}

func (r *CapabilitiesGetResponse) Marshal(b []byte) []byte {
	return marshalCapabilities(b, 1, r.Capabilities)
}

func UnmarshalCapabilitiesGetResponse(b []byte) (*CapabilitiesGetResponse, error) {
	r := &CapabilitiesGetResponse{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			sub, rr, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			c, err := unmarshalCapability(sub)
			if err != nil {
				return nil, err
			}
			r.Capabilities = append(r.Capabilities, c)
			return rr, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: capabilitiesGetResponse: %w", err)
	}
	return r, nil
}

// CapabilitiesSet is the client's request to set one or more capabilities.
type CapabilitiesSet struct {
	Capabilities []Capability
}

func (s *CapabilitiesSet) Marshal(b []byte) []byte {
	return marshalCapabilities(b, 1, s.Capabilities)
}

func UnmarshalCapabilitiesSet(b []byte) (*CapabilitiesSet, error) {
	s := &CapabilitiesSet{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			sub, rr, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			c, err := unmarshalCapability(sub)
			if err != nil {
				return nil, err
			}
			s.Capabilities = append(s.Capabilities, c)
			return rr, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: capabilitiesSet: %w", err)
	}
	return s, nil
}

// CapabilitiesSetResponse acknowledges a CapabilitiesSet (empty body; a
// rejected capability surfaces as TagError instead).
type CapabilitiesSetResponse struct{}

func (CapabilitiesSetResponse) Marshal(b []byte) []byte { return b }

func UnmarshalCapabilitiesSetResponse(b []byte) (*CapabilitiesSetResponse, error) {
	return &CapabilitiesSetResponse{}, nil
}

// AuthenticateStart begins a SASL authentication exchange.
type AuthenticateStart struct {
	MechName   string
	AuthData   []byte
	InitialResponse []byte
}

const (
	fAuthMechName protowire.Number = 1
	fAuthData     protowire.Number = 2
	fAuthInitial  protowire.Number = 3
)

func (a *AuthenticateStart) Marshal(b []byte) []byte {
	b = appendString(b, fAuthMechName, a.MechName)
	b = appendBytes(b, fAuthData, a.AuthData)
	b = appendBytes(b, fAuthInitial, a.InitialResponse)
	return b
}

func UnmarshalAuthenticateStart(b []byte) (*AuthenticateStart, error) {
	a := &AuthenticateStart{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fAuthMechName:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			a.MechName = v
			return r, nil
		case fAuthData:
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			a.AuthData = v
			return r, nil
		case fAuthInitial:
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			a.InitialResponse = v
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: authenticateStart: %w", err)
	}
	return a, nil
}

// AuthenticateContinue carries one round of challenge/response data.
type AuthenticateContinue struct {
	AuthData []byte
}

func (a *AuthenticateContinue) Marshal(b []byte) []byte {
	return appendBytes(b, 1, a.AuthData)
}

func UnmarshalAuthenticateContinue(b []byte) (*AuthenticateContinue, error) {
	a := &AuthenticateContinue{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			a.AuthData = v
			return r, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: authenticateContinue: %w", err)
	}
	return a, nil
}

// AuthenticateOk concludes a successful authentication exchange.
type AuthenticateOk struct {
	AuthData []byte
}

func (a *AuthenticateOk) Marshal(b []byte) []byte {
	return appendBytes(b, 1, a.AuthData)
}

func UnmarshalAuthenticateOk(b []byte) (*AuthenticateOk, error) {
	a := &AuthenticateOk{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			a.AuthData = v
			return r, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: authenticateOk: %w", err)
	}
	return a, nil
}

// SessionReset asks the server to reset (optionally keep open) the session.
type SessionReset struct {
	KeepOpen bool
}

func (s *SessionReset) Marshal(b []byte) []byte {
	if !s.KeepOpen {
		return b
	}
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func UnmarshalSessionReset(b []byte) (*SessionReset, error) {
	s := &SessionReset{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.KeepOpen = v != 0
			return r, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: sessionReset: %w", err)
	}
	return s, nil
}

// SessionClose asks the server to close the session (empty body).
type SessionClose struct{}

func (SessionClose) Marshal(b []byte) []byte { return b }

func UnmarshalSessionClose(b []byte) (*SessionClose, error) {
	return &SessionClose{}, nil
}

// Column is one Mysqlx.Resultset.ColumnMetaData entry.
type Column struct {
	Type         uint32
	Name         string
	OriginalName string
	Table        string
	OriginalTable string
	Schema       string
	Catalog      string
	Collation    uint64
	FractionalDigits uint32
	Length       uint32
	Flags        uint32
	ContentType  uint32
}

const (
	fColType          protowire.Number = 1
	fColName          protowire.Number = 2
	fColOrigName      protowire.Number = 3
	fColTable         protowire.Number = 4
	fColOrigTable     protowire.Number = 5
	fColSchema        protowire.Number = 6
	fColCatalog       protowire.Number = 7
	fColCollation     protowire.Number = 8
	fColFractional    protowire.Number = 9
	fColLength        protowire.Number = 10
	fColFlags         protowire.Number = 11
	fColContentType   protowire.Number = 12
)

func (c *Column) Marshal(b []byte) []byte {
	b = appendVarintAlways(b, fColType, uint64(c.Type))
	b = appendString(b, fColName, c.Name)
	b = appendString(b, fColOrigName, c.OriginalName)
	b = appendString(b, fColTable, c.Table)
	b = appendString(b, fColOrigTable, c.OriginalTable)
	b = appendString(b, fColSchema, c.Schema)
	b = appendString(b, fColCatalog, c.Catalog)
	b = appendVarint(b, fColCollation, c.Collation)
	b = appendVarint(b, fColFractional, uint64(c.FractionalDigits))
	b = appendVarint(b, fColLength, uint64(c.Length))
	b = appendVarint(b, fColFlags, uint64(c.Flags))
	b = appendVarint(b, fColContentType, uint64(c.ContentType))
	return b
}

func UnmarshalColumn(b []byte) (*Column, error) {
	c := &Column{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fColType:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.Type = uint32(v)
			return r, nil
		case fColName:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Name = v
			return r, nil
		case fColOrigName:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.OriginalName = v
			return r, nil
		case fColTable:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Table = v
			return r, nil
		case fColOrigTable:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.OriginalTable = v
			return r, nil
		case fColSchema:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Schema = v
			return r, nil
		case fColCatalog:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Catalog = v
			return r, nil
		case fColCollation:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.Collation = v
			return r, nil
		case fColFractional:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.FractionalDigits = uint32(v)
			return r, nil
		case fColLength:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.Length = uint32(v)
			return r, nil
		case fColFlags:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.Flags = uint32(v)
			return r, nil
		case fColContentType:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.ContentType = uint32(v)
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: column: %w", err)
	}
	return c, nil
}

// Row is one Mysqlx.Resultset.Row: a sequence of raw, per-column-type-encoded
// field byte strings whose interpretation depends on the preceding Column
// metadata. This layer does not decode individual field values — that is a
// higher-level concern outside the engine's scope (§6.5 note).
type Row struct {
	Fields [][]byte
}

func (r *Row) Marshal(b []byte) []byte {
	for _, f := range r.Fields {
		b = appendBytes(b, 1, f)
	}
	return b
}

func UnmarshalRow(b []byte) (*Row, error) {
	r := &Row{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == 1 {
			v, rr, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			r.Fields = append(r.Fields, v)
			return rr, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: row: %w", err)
	}
	return r, nil
}

// FetchDone marks the end of a resultset (empty body).
type FetchDone struct{}

func (FetchDone) Marshal(b []byte) []byte { return b }

func UnmarshalFetchDone(b []byte) (*FetchDone, error) { return &FetchDone{}, nil }

// FetchDoneMoreResultsets marks the end of a resultset with more to follow
// (empty body).
type FetchDoneMoreResultsets struct{}

func (FetchDoneMoreResultsets) Marshal(b []byte) []byte { return b }

func UnmarshalFetchDoneMoreResultsets(b []byte) (*FetchDoneMoreResultsets, error) {
	return &FetchDoneMoreResultsets{}, nil
}

// FetchDoneMoreOutParams marks the end of a resultset that is followed by
// stored-procedure OUT parameters (empty body).
type FetchDoneMoreOutParams struct{}

func (FetchDoneMoreOutParams) Marshal(b []byte) []byte { return b }

func UnmarshalFetchDoneMoreOutParams(b []byte) (*FetchDoneMoreOutParams, error) {
	return &FetchDoneMoreOutParams{}, nil
}

// FetchSuspended reports that the server paused fetching (empty body).
type FetchSuspended struct{}

func (FetchSuspended) Marshal(b []byte) []byte { return b }

func UnmarshalFetchSuspended(b []byte) (*FetchSuspended, error) { return &FetchSuspended{}, nil }

// StmtExecuteOk marks successful completion of a statement (empty body). A
// statement that produces resultsets streams ColumnMetaData/Row/FetchDone
// first and still concludes with StmtExecuteOk.
type StmtExecuteOk struct{}

func (StmtExecuteOk) Marshal(b []byte) []byte { return b }

func UnmarshalStmtExecuteOk(b []byte) (*StmtExecuteOk, error) { return &StmtExecuteOk{}, nil }

// StmtExecute is the client's Mysqlx.Sql.StmtExecute request.
type StmtExecute struct {
	Namespace string
	Stmt      []byte
	Args      []Any
	CompactMetadata bool
}

const (
	fStmtNamespace protowire.Number = 1
	fStmtStmt      protowire.Number = 2
	fStmtArgs      protowire.Number = 3
	fStmtCompact   protowire.Number = 4
)

func (s *StmtExecute) Marshal(b []byte) []byte {
	b = appendString(b, fStmtNamespace, s.Namespace)
	b = appendBytes(b, fStmtStmt, s.Stmt)
	for i := range s.Args {
		b = appendSubmessage(b, fStmtArgs, s.Args[i].Marshal(nil))
	}
	if s.CompactMetadata {
		b = protowire.AppendTag(b, fStmtCompact, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b
}

func UnmarshalStmtExecute(b []byte) (*StmtExecute, error) {
	s := &StmtExecute{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fStmtNamespace:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			s.Namespace = v
			return r, nil
		case fStmtStmt:
			v, r, err := consumeBytes(rest)
			if err != nil {
				return nil, err
			}
			s.Stmt = v
			return r, nil
		case fStmtArgs:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			a, err := UnmarshalAny(sub)
			if err != nil {
				return nil, err
			}
			s.Args = append(s.Args, *a)
			return r, nil
		case fStmtCompact:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			s.CompactMetadata = v != 0
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: stmtExecute: %w", err)
	}
	return s, nil
}

// Order is one ORDER BY clause term shared by the Crud messages.
type Order struct {
	Expr      Expression
	Direction uint32 // 1 = ASC, 2 = DESC
}

// Projection is one SELECT/RETURNING projection term.
type Projection struct {
	Source Expression
	Alias  string
}

// crudFilter is the WHERE/LIMIT/ORDER shape shared by Find/Update/Delete.
type crudFilter struct {
	Collection string
	Schema     string
	Criteria   *Expression
	Limit      uint64
	LimitSet   bool
	Offset     uint64
	Order      []Order
}

const (
	fCrudCollection protowire.Number = 1
	fCrudSchema     protowire.Number = 2
	fCrudCriteria   protowire.Number = 3
	fCrudLimit      protowire.Number = 4
	fCrudOffset     protowire.Number = 5
	fCrudOrder      protowire.Number = 6
)

func marshalOrder(b []byte, num protowire.Number, order []Order) []byte {
	for _, o := range order {
		var sub []byte
		sub = appendSubmessage(sub, 1, o.Expr.Marshal(nil))
		sub = appendVarint(sub, 2, uint64(o.Direction))
		b = appendSubmessage(b, num, sub)
	}
	return b
}

func unmarshalOrder(b []byte) (Order, error) {
	var o Order
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case 1:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			e, err := UnmarshalExpression(sub)
			if err != nil {
				return nil, err
			}
			o.Expr = *e
			return r, nil
		case 2:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			o.Direction = uint32(v)
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	return o, err
}

func (f *crudFilter) marshal(b []byte) []byte {
	b = appendString(b, fCrudCollection, f.Collection)
	b = appendString(b, fCrudSchema, f.Schema)
	if f.Criteria != nil {
		b = appendSubmessage(b, fCrudCriteria, f.Criteria.Marshal(nil))
	}
	if f.LimitSet {
		b = appendVarintAlways(b, fCrudLimit, f.Limit)
	}
	b = appendVarint(b, fCrudOffset, f.Offset)
	b = marshalOrder(b, fCrudOrder, f.Order)
	return b
}

func (f *crudFilter) unmarshalField(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
	switch num {
	case fCrudCollection:
		v, r, err := consumeString(rest)
		if err != nil {
			return nil, err
		}
		f.Collection = v
		return r, nil
	case fCrudSchema:
		v, r, err := consumeString(rest)
		if err != nil {
			return nil, err
		}
		f.Schema = v
		return r, nil
	case fCrudCriteria:
		sub, r, err := consumeSubmessage(rest)
		if err != nil {
			return nil, err
		}
		e, err := UnmarshalExpression(sub)
		if err != nil {
			return nil, err
		}
		f.Criteria = e
		return r, nil
	case fCrudLimit:
		v, r, err := consumeVarint(rest)
		if err != nil {
			return nil, err
		}
		f.Limit = v
		f.LimitSet = true
		return r, nil
	case fCrudOffset:
		v, r, err := consumeVarint(rest)
		if err != nil {
			return nil, err
		}
		f.Offset = v
		return r, nil
	case fCrudOrder:
		sub, r, err := consumeSubmessage(rest)
		if err != nil {
			return nil, err
		}
		o, err := unmarshalOrder(sub)
		if err != nil {
			return nil, err
		}
		f.Order = append(f.Order, o)
		return r, nil
	default:
		return skipField(typ, rest)
	}
}

// CrudFind is the client's Mysqlx.Crud.Find request.
type CrudFind struct {
	crudFilter
	Projection []Projection
}

const fFindProjection protowire.Number = 7

func (c *CrudFind) Marshal(b []byte) []byte {
	b = c.crudFilter.marshal(b)
	for _, p := range c.Projection {
		var sub []byte
		sub = appendSubmessage(sub, 1, p.Source.Marshal(nil))
		sub = appendString(sub, 2, p.Alias)
		b = appendSubmessage(b, fFindProjection, sub)
	}
	return b
}

func UnmarshalCrudFind(b []byte) (*CrudFind, error) {
	c := &CrudFind{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == fFindProjection {
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var p Projection
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case 1:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					e, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					p.Source = *e
					return r2, nil
				case 2:
					v, r2, err := consumeString(rr)
					if err != nil {
						return nil, err
					}
					p.Alias = v
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			c.Projection = append(c.Projection, p)
			return r, nil
		}
		return c.crudFilter.unmarshalField(num, typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: crudFind: %w", err)
	}
	return c, nil
}

// CrudUpdate is the client's Mysqlx.Crud.Update request.
type CrudUpdate struct {
	crudFilter
	Operation []UpdateOperation
}

// UpdateOperation is one SET-style mutation applied by CrudUpdate.
type UpdateOperation struct {
	Source Expression
	Op     uint32
	Value  *Expression
}

const fUpdateOperation protowire.Number = 7

func (c *CrudUpdate) Marshal(b []byte) []byte {
	b = c.crudFilter.marshal(b)
	for _, op := range c.Operation {
		var sub []byte
		sub = appendSubmessage(sub, 1, op.Source.Marshal(nil))
		sub = appendVarintAlways(sub, 2, uint64(op.Op))
		if op.Value != nil {
			sub = appendSubmessage(sub, 3, op.Value.Marshal(nil))
		}
		b = appendSubmessage(b, fUpdateOperation, sub)
	}
	return b
}

func UnmarshalCrudUpdate(b []byte) (*CrudUpdate, error) {
	c := &CrudUpdate{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == fUpdateOperation {
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var op UpdateOperation
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case 1:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					e, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					op.Source = *e
					return r2, nil
				case 2:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					op.Op = uint32(v)
					return r2, nil
				case 3:
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					e, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					op.Value = e
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			c.Operation = append(c.Operation, op)
			return r, nil
		}
		return c.crudFilter.unmarshalField(num, typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: crudUpdate: %w", err)
	}
	return c, nil
}

// CrudDelete is the client's Mysqlx.Crud.Delete request.
type CrudDelete struct {
	crudFilter
}

func (c *CrudDelete) Marshal(b []byte) []byte { return c.crudFilter.marshal(b) }

func UnmarshalCrudDelete(b []byte) (*CrudDelete, error) {
	c := &CrudDelete{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		return c.crudFilter.unmarshalField(num, typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: crudDelete: %w", err)
	}
	return c, nil
}

// CrudInsert is the client's Mysqlx.Crud.Insert request.
type CrudInsert struct {
	Collection string
	Schema     string
	Projection []Expression // optional column list for the typed-table form
	Row        []InsertRow
	Upsert     bool
}

// InsertRow is one row of values inserted by CrudInsert.
type InsertRow struct {
	Field []Expression
}

const (
	fInsCollection protowire.Number = 1
	fInsSchema     protowire.Number = 2
	fInsProjection protowire.Number = 3
	fInsRow        protowire.Number = 4
	fInsUpsert     protowire.Number = 5
)

func (c *CrudInsert) Marshal(b []byte) []byte {
	b = appendString(b, fInsCollection, c.Collection)
	b = appendString(b, fInsSchema, c.Schema)
	for i := range c.Projection {
		b = appendSubmessage(b, fInsProjection, c.Projection[i].Marshal(nil))
	}
	for _, row := range c.Row {
		var sub []byte
		for i := range row.Field {
			sub = appendSubmessage(sub, 1, row.Field[i].Marshal(nil))
		}
		b = appendSubmessage(b, fInsRow, sub)
	}
	if c.Upsert {
		b = protowire.AppendTag(b, fInsUpsert, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b
}

func UnmarshalCrudInsert(b []byte) (*CrudInsert, error) {
	c := &CrudInsert{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		switch num {
		case fInsCollection:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Collection = v
			return r, nil
		case fInsSchema:
			v, r, err := consumeString(rest)
			if err != nil {
				return nil, err
			}
			c.Schema = v
			return r, nil
		case fInsProjection:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			e, err := UnmarshalExpression(sub)
			if err != nil {
				return nil, err
			}
			c.Projection = append(c.Projection, *e)
			return r, nil
		case fInsRow:
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var row InsertRow
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				if n == 1 {
					v, r2, err := consumeSubmessage(rr)
					if err != nil {
						return nil, err
					}
					e, err := UnmarshalExpression(v)
					if err != nil {
						return nil, err
					}
					row.Field = append(row.Field, *e)
					return r2, nil
				}
				return skipField(t, rr)
			}); err != nil {
				return nil, err
			}
			c.Row = append(c.Row, row)
			return r, nil
		case fInsUpsert:
			v, r, err := consumeVarint(rest)
			if err != nil {
				return nil, err
			}
			c.Upsert = v != 0
			return r, nil
		default:
			return skipField(typ, rest)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("wire: crudInsert: %w", err)
	}
	return c, nil
}

// ExpectOpen pushes one or more expectation conditions that must hold for
// subsequent statements in the same Expect.Open/Close block.
type ExpectOpen struct {
	Condition []ExpectCondition
}

// ExpectCondition is one condition pushed by ExpectOpen.
type ExpectCondition struct {
	ConditionKey uint32
	ConditionValue []byte
	Op           uint32 // 0 = EXPECT_OP_SET, 1 = EXPECT_OP_UNSET
}

const fExpectCondition protowire.Number = 1

func (e *ExpectOpen) Marshal(b []byte) []byte {
	for _, c := range e.Condition {
		var sub []byte
		sub = appendVarintAlways(sub, 1, uint64(c.ConditionKey))
		sub = appendBytes(sub, 2, c.ConditionValue)
		sub = appendVarint(sub, 3, uint64(c.Op))
		b = appendSubmessage(b, fExpectCondition, sub)
	}
	return b
}

func UnmarshalExpectOpen(b []byte) (*ExpectOpen, error) {
	e := &ExpectOpen{}
	err := forEachField(b, func(num protowire.Number, typ protowire.Type, rest []byte) ([]byte, error) {
		if num == fExpectCondition {
			sub, r, err := consumeSubmessage(rest)
			if err != nil {
				return nil, err
			}
			var c ExpectCondition
			if err := forEachField(sub, func(n protowire.Number, t protowire.Type, rr []byte) ([]byte, error) {
				switch n {
				case 1:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					c.ConditionKey = uint32(v)
					return r2, nil
				case 2:
					v, r2, err := consumeBytes(rr)
					if err != nil {
						return nil, err
					}
					c.ConditionValue = v
					return r2, nil
				case 3:
					v, r2, err := consumeVarint(rr)
					if err != nil {
						return nil, err
					}
					c.Op = uint32(v)
					return r2, nil
				default:
					return skipField(t, rr)
				}
			}); err != nil {
				return nil, err
			}
			e.Condition = append(e.Condition, c)
			return r, nil
		}
		return skipField(typ, rest)
	})
	if err != nil {
		return nil, fmt.Errorf("wire: expectOpen: %w", err)
	}
	return e, nil
}

// ExpectClose closes the innermost open Expect block (empty body).
type ExpectClose struct{}

func (ExpectClose) Marshal(b []byte) []byte { return b }

func UnmarshalExpectClose(b []byte) (*ExpectClose, error) { return &ExpectClose{}, nil }
