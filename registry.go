// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

// registryEntry pairs a payload decoder with the dispatch thunk that invokes
// whichever Processor capability interface applies to the decoded message
// (§4.4). decode and dispatch are kept separate so RecvOp can surface a
// DecodeError without ever calling dispatch, and so that unit tests can
// exercise decode in isolation.
type registryEntry struct {
	decode   func([]byte) (interface{}, error)
	dispatch func(p Processor, dir Direction, tag TypeTag, msg interface{}) error
}

// serverRegistry holds every message type a client-role Engine (Direction
// DirFromServer) must be able to decode and dispatch; see decode_server.go
// and dispatch.go. TagOk is decoded and dispatched through this table like
// any other tag; TagError and TagNotice are not present here, since
// dispatchMessage handles them directly ahead of the registry (§4.3 step 1).
var serverRegistry map[TypeTag]registryEntry

// clientRegistry holds every message type a server-role Engine (Direction
// DirFromClient — test/proxy tooling) must decode and dispatch.
var clientRegistry map[TypeTag]registryEntry

func init() {
	serverRegistry = buildServerRegistry()
	clientRegistry = buildClientRegistry()
}

// lookupEntry returns the registry entry for (dir, tag), or ok=false if no
// decoder is registered — the caller raises UnknownMessageError in that case
// (§7 Kind UnknownMessage).
func lookupEntry(dir Direction, tag TypeTag) (registryEntry, bool) {
	var table map[TypeTag]registryEntry
	switch dir {
	case DirFromServer:
		table = serverRegistry
	case DirFromClient:
		table = clientRegistry
	default:
		return registryEntry{}, false
	}
	e, ok := table[tag]
	return e, ok
}
