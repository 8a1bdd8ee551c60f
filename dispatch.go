// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package xprotocol

import "github.com/mysqlx-proto/xprotocol/wire"

// beginMessage fires BaseProcessor.MessageBegin if p implements it. Called
// once decode has succeeded, before any typed or raw callback (§4.3 step 3).
func beginMessage(p Processor, dir Direction, tag TypeTag, size uint32) {
	if b, ok := p.(BaseProcessor); ok {
		b.MessageBegin(dir, tag, size)
	}
}

// endMessage fires BaseProcessor.MessageEnd if p implements it and reports
// whether it asked the RecvOp to stop.
func endMessage(p Processor) bool {
	b, ok := p.(BaseProcessor)
	if !ok {
		return false
	}
	return b.MessageEnd() == StopMessage
}

// dispatchMessage decodes and dispatches one already-framed payload against
// p (§4.4, §4.3 steps 3-4). It is the single place RecvOp calls into the
// registry; RecvVariant.Accepts has already run by the time this is called,
// so an UnexpectedMessageError never originates here — only
// UnknownMessageError (no registry entry) and DecodeError (entry found, body
// malformed). size is the frame's declared size (header.Size), passed
// through to MessageBegin unchanged.
//
// It returns (stop, err): err is non-nil only on decode failure, an unknown
// tag, a typed callback's own error, or a server Error frame (which always
// reports stop=true alongside its error, per I5); stop is also true,
// independent of err, when a BaseProcessor's MessageEnd asks to stop.
//
// TagError and TagNotice are handled directly, ahead of the registry, since
// every RecvVariant accepts them regardless of its whitelist (§3 TypeTag).
// A ServerError is returned (not swallowed) so RecvOp can end the operation
// per I5, after first handing it to an ErrorProcessor if one is present.
func dispatchMessage(p Processor, dir Direction, tag TypeTag, size uint32, payload []byte) (stop bool, err error) {
	switch tag {
	case TagError:
		e, err := wire.UnmarshalError(payload)
		if err != nil {
			return false, &DecodeError{Type: tag, Reason: err}
		}
		beginMessage(p, dir, tag, size)
		if raw, ok := p.(RawPayloadProcessor); ok {
			raw.Raw(dir, tag, payload)
		}
		se := &ServerError{Code: e.Code, SQLState: e.SQLState, Message: e.Msg}
		if op, ok := p.(ErrorProcessor); ok {
			op.Error(se)
		}
		endMessage(p)
		return true, se
	case TagNotice:
		n, err := wire.UnmarshalNotice(payload)
		if err != nil {
			return false, &DecodeError{Type: tag, Reason: err}
		}
		beginMessage(p, dir, tag, size)
		if raw, ok := p.(RawPayloadProcessor); ok {
			raw.Raw(dir, tag, payload)
		}
		var nerr error
		if op, ok := p.(NoticeProcessor); ok {
			nerr = op.Notice(n)
		}
		return endMessage(p), nerr
	}

	entry, ok := lookupEntry(dir, tag)
	if !ok {
		return false, &UnknownMessageError{Type: tag}
	}
	msg, err := entry.decode(payload)
	if err != nil {
		return false, &DecodeError{Type: tag, Reason: err}
	}
	beginMessage(p, dir, tag, size)
	if raw, ok := p.(RawPayloadProcessor); ok {
		raw.Raw(dir, tag, payload)
	}
	derr := entry.dispatch(p, dir, tag, msg)
	return endMessage(p), derr
}
