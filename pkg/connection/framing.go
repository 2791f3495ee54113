package connection

import (
	"encoding/binary"

	wireerr "github.com/sessamekesh/waygate/pkg/errors"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/wire"
)

// requestHeaderSize is the payload type byte plus the u32 sequence.
const requestHeaderSize = 5

// ResponseContext remembers which request a response answers.
type ResponseContext struct {
	Sequence uint32
}

// ParseRequest splits a decrypted request envelope into its sequence and
// params.
func ParseRequest(b []byte) (ResponseContext, message.RequestParams, error) {
	if len(b) < 1 {
		return ResponseContext{}, nil, wireError(&wireerr.Underflow{MessageName: "Request", MsgSize: len(b), MinimumSize: requestHeaderSize})
	}
	if message.PayloadType(b[0]) != message.PayloadType_Request {
		return ResponseContext{}, nil, protocolError(ProtocolErrorKind_WrongPayloadType)
	}
	if len(b) < requestHeaderSize {
		return ResponseContext{}, nil, wireError(&wireerr.Underflow{MessageName: "Request", MsgSize: len(b), MinimumSize: requestHeaderSize})
	}

	rc := ResponseContext{Sequence: binary.LittleEndian.Uint32(b[1:5])}
	params, err := wire.Decode[message.RequestParams](b[requestHeaderSize:])
	if err != nil {
		return ResponseContext{}, nil, wireError(err)
	}
	return rc, params, nil
}

func wireError(err error) error {
	return &ClientError{Kind: ClientErrorKind_Wire, Err: err}
}

func (rc ResponseContext) header(status byte) []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, byte(message.PayloadType_Response))
	buf = binary.LittleEndian.AppendUint32(buf, rc.Sequence)
	return append(buf, status)
}

// SessionResponse frames the answer to a session request, which always
// succeeds once it is sent.
func (rc ResponseContext) SessionResponse(params message.ResponseParams) ([]byte, error) {
	buf, err := wire.Append(rc.header(message.ResponseStatus_Success), params)
	if err != nil {
		return nil, wireError(err)
	}
	return buf, nil
}

// Failure frames a failed request. The error code is always zero so no
// detail reaches the client.
func (rc ResponseContext) Failure() []byte {
	return binary.LittleEndian.AppendUint32(rc.header(message.ResponseStatus_Failure), 0)
}

// Response frames a handler result. A handler error, or params that cannot
// be encoded, produce a failure response; the returned error says why so
// the caller can log it.
func (rc ResponseContext) Response(params message.ResponseParams, handlerErr error) ([]byte, error) {
	if handlerErr != nil {
		return rc.Failure(), handlerErr
	}
	buf, err := wire.Append(rc.header(message.ResponseStatus_Success), params)
	if err != nil {
		return rc.Failure(), wireError(err)
	}
	return buf, nil
}
