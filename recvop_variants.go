// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

// RecvVariant resolves the §9 Open Question: process_next()'s default
// behavior cannot be guessed message-by-message, it has to be derived from
// what each request in the protocol schema actually terminates with. Rather
// than one generic RecvOp guessing when a reply sequence is complete, each
// kind of request gets its own RecvVariant binding the two facts a RecvOp
// needs at each LoopOrDone step (§4.3 step 4): whether a tag is legal at all
// for this exchange, and whether receiving it ends the operation or means
// "read one more frame".
//
// TagError and TagNotice are accepted by every variant implicitly; RecvOp
// checks for them before consulting Accepts (§3 TypeTag, §4.3 step 1).
type RecvVariant interface {
	// Accepts reports whether tag is a legal message for this exchange.
	// RecvOp raises UnexpectedMessageError for any other tag that does have
	// a registry decoder (§7 Kind UnexpectedMessage).
	Accepts(tag TypeTag) bool
	// Terminal reports whether dispatching tag ends the RecvOp (Done) as
	// opposed to looping for another frame (§4.3 step 4 LoopOrDone).
	Terminal(tag TypeTag) bool
}

// DefaultRecv expects exactly one specific reply tag and finishes as soon as
// it arrives. It covers every single-message acknowledgement in the
// protocol: Ok, CapabilitiesSetResponse, a bare Sql.StmtExecuteOk, and so on.
type DefaultRecv struct {
	Tag TypeTag
}

func (v DefaultRecv) Accepts(tag TypeTag) bool { return tag == v.Tag }
func (v DefaultRecv) Terminal(TypeTag) bool    { return true }

// ResultSetRecv drives a resultset-producing exchange: zero or more
// ColumnMetaData, then zero or more Row, then a FetchDone (optionally
// FetchDoneMoreResultsets or FetchDoneMoreOutParams to continue with another
// resultset, or FetchSuspended to pause a cursor), and the whole exchange
// concludes with Sql.StmtExecuteOk. Only StmtExecuteOk is Terminal: the
// engine keeps looping across resultset boundaries until the server signals
// overall completion, matching how the X Protocol schema itself scopes
// StmtExecuteOk to "no more messages follow" rather than per-resultset.
type ResultSetRecv struct{}

func (ResultSetRecv) Accepts(tag TypeTag) bool {
	switch tag {
	case TagColumnMetaData, TagRow, TagFetchDone, TagFetchDoneMoreResultsets,
		TagFetchDoneMoreOutParams, TagFetchSuspended, TagStmtExecuteOk:
		return true
	}
	return false
}

func (ResultSetRecv) Terminal(tag TypeTag) bool { return tag == TagStmtExecuteOk }

// StmtExecuteRecv is the variant bound to Sql.StmtExecute: the reply may be
// a bare StmtExecuteOk (no resultset) or a full ResultSetRecv sequence
// ending the same way, so it accepts exactly the same tags.
type StmtExecuteRecv struct {
	ResultSetRecv
}

// AuthenticateRecv drives a SASL exchange: any number of AuthenticateContinue
// round-trips, concluding with AuthenticateOk.
type AuthenticateRecv struct{}

func (AuthenticateRecv) Accepts(tag TypeTag) bool {
	return tag == TagAuthenticateContinue || tag == TagAuthenticateOk
}

func (AuthenticateRecv) Terminal(tag TypeTag) bool { return tag == TagAuthenticateOk }

// CapabilitiesRecv drives a single-message capabilities response, whichever
// of Get/Set was requested.
type CapabilitiesRecv struct {
	Tag TypeTag // TagCapabilitiesGetResponse or TagCapabilitiesSetResponse
}

func (v CapabilitiesRecv) Accepts(tag TypeTag) bool { return tag == v.Tag }
func (v CapabilitiesRecv) Terminal(TypeTag) bool    { return true }
