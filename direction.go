// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

// Direction fixes, at Engine construction, which half of the MessageRegistry
// an Engine's RecvOp consults (§3).
type Direction uint8

const (
	// DirFromServer is used by a client-role engine: it expects messages
	// originating at the MySQL X Plugin server.
	DirFromServer Direction = iota
	// DirFromClient is used by a server-role engine (testing/forwarding):
	// it expects messages originating at an X DevAPI client.
	DirFromClient
)

func (d Direction) String() string {
	switch d {
	case DirFromServer:
		return "FromServer"
	case DirFromClient:
		return "FromClient"
	default:
		return "Direction(?)"
	}
}

// TypeTag is the 1-byte numeric identifier distinguishing message kinds on
// the wire (§3). The concrete values are assigned in tags.go to
// match the MySQL X Protocol's ServerMessages/ClientMessages enumerations.
type TypeTag uint8

// TagOk, TagError and TagNotice are universal on the server→client
// direction: the engine itself handles Error/Notice regardless of what the
// active RecvVariant whitelists (§3 TypeTag, §4.3 step 1). TagOk is not
// special-cased by the engine, but its value is fixed here because §8
// scenario 1 depends on it (empty Ok is wire tag 0x00, matching the
// historical Mysqlx.ServerMessages.Type numbering).
const (
	TagOk     TypeTag = 0
	TagError  TypeTag = 1
	TagNotice TypeTag = 11
)
