// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

// Server-to-client TypeTag values (Mysqlx.ServerMessages.Type), consulted by
// a client-role Engine (Direction DirFromServer). TagOk/TagError/TagNotice
// are declared in direction.go since the engine special-cases them.
const (
	TagColumnMetaData              TypeTag = 12
	TagRow                         TypeTag = 13
	TagFetchDone                   TypeTag = 14
	TagFetchSuspended               TypeTag = 15
	TagFetchDoneMoreResultsets     TypeTag = 16
	TagStmtExecuteOk               TypeTag = 17
	TagFetchDoneMoreOutParams      TypeTag = 18
	TagCapabilitiesGetResponse     TypeTag = 22 // Mysqlx.Connection.CapabilitiesGet response wrapper
	TagCapabilitiesSetResponse     TypeTag = 23
	TagAuthenticateContinue        TypeTag = 5
	TagAuthenticateOk              TypeTag = 6
)

// Client-to-server TypeTag values (Mysqlx.ClientMessages.Type), consulted by
// a server-role Engine (Direction DirFromClient) — used for test/proxy
// tooling, never by a normal client-role Engine.
const (
	TagCapabilitiesGet   TypeTag = 1
	TagCapabilitiesSet   TypeTag = 2
	TagAuthenticateStart TypeTag = 3
	TagAuthenticateCont  TypeTag = 4
	TagSessionReset      TypeTag = 6
	TagSessionClose      TypeTag = 7
	TagStmtExecute       TypeTag = 12
	TagCrudFind          TypeTag = 17
	TagCrudInsert        TypeTag = 18
	TagCrudUpdate        TypeTag = 19
	TagCrudDelete        TypeTag = 20
	TagExpectOpen        TypeTag = 24
	TagExpectClose       TypeTag = 25
)
