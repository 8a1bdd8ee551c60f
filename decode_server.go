// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "github.com/mysqlx-proto/xprotocol/wire"

// buildServerRegistry wires every server-to-client message type to its
// wire.Unmarshal* function and dispatch thunk (§4.4 client-side table).
func buildServerRegistry() map[TypeTag]registryEntry {
	return map[TypeTag]registryEntry{
		TagOk: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalOk(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(OkProcessor); ok {
					return op.Ok()
				}
				return nil
			},
		},
		TagCapabilitiesGetResponse: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCapabilitiesGetResponse(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CapabilitiesProcessor); ok {
					return op.CapabilitiesGetResponse(msg.(*wire.CapabilitiesGetResponse))
				}
				return nil
			},
		},
		TagCapabilitiesSetResponse: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalCapabilitiesSetResponse(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(CapabilitiesProcessor); ok {
					return op.CapabilitiesSetResponse(msg.(*wire.CapabilitiesSetResponse))
				}
				return nil
			},
		},
		TagAuthenticateContinue: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalAuthenticateContinue(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(AuthProcessor); ok {
					return op.AuthenticateContinue(msg.(*wire.AuthenticateContinue))
				}
				return nil
			},
		},
		TagAuthenticateOk: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalAuthenticateOk(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(AuthProcessor); ok {
					return op.AuthenticateOk(msg.(*wire.AuthenticateOk))
				}
				return nil
			},
		},
		TagColumnMetaData: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalColumn(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(MetadataProcessor); ok {
					return op.Column(msg.(*wire.Column))
				}
				return nil
			},
		},
		TagRow: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalRow(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(RowProcessor); ok {
					return op.Row(msg.(*wire.Row))
				}
				return nil
			},
		},
		TagFetchDone: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalFetchDone(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(FetchDoneProcessor); ok {
					return op.FetchDone()
				}
				return nil
			},
		},
		TagFetchDoneMoreResultsets: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalFetchDoneMoreResultsets(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(FetchDoneProcessor); ok {
					return op.FetchDoneMoreResultsets()
				}
				return nil
			},
		},
		TagFetchDoneMoreOutParams: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalFetchDoneMoreOutParams(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				return nil // no dedicated capability; observed only via RawPayloadProcessor
			},
		},
		TagFetchSuspended: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalFetchSuspended(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				return nil
			},
		},
		TagStmtExecuteOk: {
			decode: func(b []byte) (interface{}, error) { return wire.UnmarshalStmtExecuteOk(b) },
			dispatch: func(p Processor, dir Direction, tag TypeTag, msg interface{}) error {
				if op, ok := p.(StmtExecuteOkProcessor); ok {
					return op.StmtExecuteOk()
				}
				return nil
			},
		},
	}
}
