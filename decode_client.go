// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "github.com/mysqlx-proto/xprotocol/wire"

// buildClientRegistry wires every client-to-server message type to its
// wire.Unmarshal* function and dispatch thunk (§4.4 server-side table).
func buildClientRegistry() map[TypeTag]registryEntry {
	return map[TypeTag]registryEntry{
		TagCapabilitiesGet: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCapabilitiesGet(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ConnectionProcessor); ok {
					return op.CapabilitiesGet(msg.(*wire.CapabilitiesGet))
				}
				return nil
			},
		},
		TagCapabilitiesSet: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCapabilitiesSet(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ConnectionProcessor); ok {
					return op.CapabilitiesSet(msg.(*wire.CapabilitiesSet))
				}
				return nil
			},
		},
		TagAuthenticateStart: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalAuthenticateStart(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ClientAuthProcessor); ok {
					return op.AuthenticateStart(msg.(*wire.AuthenticateStart))
				}
				return nil
			},
		},
		TagAuthenticateCont: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalAuthenticateContinue(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ClientAuthProcessor); ok {
					return op.AuthenticateContinue(msg.(*wire.AuthenticateContinue))
				}
				return nil
			},
		},
		TagSessionReset: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalSessionReset(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(SessionProcessor); ok {
					return op.SessionReset(msg.(*wire.SessionReset))
				}
				return nil
			},
		},
		TagSessionClose: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalSessionClose(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(SessionProcessor); ok {
					return op.SessionClose()
				}
				return nil
			},
		},
		TagStmtExecute: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalStmtExecute(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(SqlProcessor); ok {
					return op.StmtExecute(msg.(*wire.StmtExecute))
				}
				return nil
			},
		},
		TagCrudFind: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCrudFind(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CrudProcessor); ok {
					return op.CrudFind(msg.(*wire.CrudFind))
				}
				return nil
			},
		},
		TagCrudInsert: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCrudInsert(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CrudProcessor); ok {
					return op.CrudInsert(msg.(*wire.CrudInsert))
				}
				return nil
			},
		},
		TagCrudUpdate: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCrudUpdate(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CrudProcessor); ok {
					return op.CrudUpdate(msg.(*wire.CrudUpdate))
				}
				return nil
			},
		},
		TagCrudDelete: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCrudDelete(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CrudProcessor); ok {
					return op.CrudDelete(msg.(*wire.CrudDelete))
				}
				return nil
			},
		},
		TagExpectOpen: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalExpectOpen(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ExpectProcessor); ok {
					return op.ExpectOpen(msg.(*wire.ExpectOpen))
				}
				return nil
			},
		},
		TagExpectClose: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalExpectClose(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(ExpectProcessor); ok {
					return op.ExpectClose()
				}
				return nil
			},
		},
	}
}
