package transport

import "fmt"

type TransportErrorKind uint8

const (
	TransportErrorKind_AcceptFailed TransportErrorKind = iota
	TransportErrorKind_ReadFailed
	TransportErrorKind_WriteFailed
	TransportErrorKind_TransportClosed
)

func (k TransportErrorKind) String() string {
	switch k {
	case TransportErrorKind_AcceptFailed:
		return "accept failed"
	case TransportErrorKind_ReadFailed:
		return "read failed"
	case TransportErrorKind_WriteFailed:
		return "write failed"
	case TransportErrorKind_TransportClosed:
		return "transport closed"
	}
	return fmt.Sprintf("transport error %d", uint8(k))
}

type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport: " + e.Kind.String()
	}
	return fmt.Sprintf("transport: %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches on kind, so errors.Is(err, ErrTransportClosed) works for any
// wrapped cause.
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*TransportError)
	return ok && t.Kind == e.Kind && t.Err == nil
}

var ErrTransportClosed = &TransportError{Kind: TransportErrorKind_TransportClosed}
