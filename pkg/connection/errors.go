package connection

import (
	"errors"
	"fmt"
)

type ClientErrorKind uint8

const (
	ClientErrorKind_Credentials ClientErrorKind = iota
	ClientErrorKind_Transport
	ClientErrorKind_Protocol
	ClientErrorKind_Crypto
	ClientErrorKind_Wire
	ClientErrorKind_NoHandler
	ClientErrorKind_ClosedConnection
	ClientErrorKind_Banned
)

func (k ClientErrorKind) String() string {
	switch k {
	case ClientErrorKind_Credentials:
		return "credentials"
	case ClientErrorKind_Transport:
		return "transport"
	case ClientErrorKind_Protocol:
		return "protocol"
	case ClientErrorKind_Crypto:
		return "crypto"
	case ClientErrorKind_Wire:
		return "wire"
	case ClientErrorKind_NoHandler:
		return "no handler"
	case ClientErrorKind_ClosedConnection:
		return "connection closed"
	case ClientErrorKind_Banned:
		return "banned"
	}
	return fmt.Sprintf("client error %d", uint8(k))
}

// ClientError ends a connection, except for NoHandler which a request
// handler returns for operations it does not implement.
type ClientError struct {
	Kind   ClientErrorKind
	Err    error
	Detail string
}

func (e *ClientError) Error() string {
	msg := "client: " + e.Kind.String()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func NoHandler(operation string) error {
	return &ClientError{Kind: ClientErrorKind_NoHandler, Detail: operation}
}

// IsKind reports whether err is a ClientError of the given kind.
func IsKind(err error, kind ClientErrorKind) bool {
	var clientErr *ClientError
	return errors.As(err, &clientErr) && clientErr.Kind == kind
}

type ProtocolErrorKind uint8

const (
	ProtocolErrorKind_NonBinaryMessage ProtocolErrorKind = iota
	ProtocolErrorKind_TimeoutHello
	ProtocolErrorKind_MalformedHello
	ProtocolErrorKind_TimeoutPublicKey
	ProtocolErrorKind_MalformedPublicKey
	ProtocolErrorKind_TimeoutSessionCreation
	ProtocolErrorKind_ExpectedSessionMessage
	ProtocolErrorKind_WrongPayloadType
)

func (k ProtocolErrorKind) String() string {
	switch k {
	case ProtocolErrorKind_NonBinaryMessage:
		return "non-binary message"
	case ProtocolErrorKind_TimeoutHello:
		return "timed out waiting for hello"
	case ProtocolErrorKind_MalformedHello:
		return "malformed hello"
	case ProtocolErrorKind_TimeoutPublicKey:
		return "timed out waiting for public key"
	case ProtocolErrorKind_MalformedPublicKey:
		return "malformed public key"
	case ProtocolErrorKind_TimeoutSessionCreation:
		return "timed out waiting for session message"
	case ProtocolErrorKind_ExpectedSessionMessage:
		return "expected create or restore session"
	case ProtocolErrorKind_WrongPayloadType:
		return "wrong payload type"
	}
	return fmt.Sprintf("protocol error %d", uint8(k))
}

type ProtocolError struct {
	Kind ProtocolErrorKind
}

// Error is only the kind; the wrapping ClientError supplies the
// "client: protocol" prefix.
func (e *ProtocolError) Error() string {
	return e.Kind.String()
}

func protocolError(kind ProtocolErrorKind) error {
	return &ClientError{Kind: ClientErrorKind_Protocol, Err: &ProtocolError{Kind: kind}}
}

// IsProtocolKind reports whether err wraps a ProtocolError of kind.
func IsProtocolKind(err error, kind ProtocolErrorKind) bool {
	var protoErr *ProtocolError
	return errors.As(err, &protoErr) && protoErr.Kind == kind
}

// ErrPhaseConsumed is returned when a connection phase is used after it has
// already moved on to the next one.
var ErrPhaseConsumed = errors.New("connection phase already consumed")
