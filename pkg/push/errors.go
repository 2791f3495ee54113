package push

import "fmt"

type PushErrorKind uint8

const (
	PushErrorKind_NotOnline PushErrorKind = iota
	PushErrorKind_SendFailed
	PushErrorKind_Wire
)

func (k PushErrorKind) String() string {
	switch k {
	case PushErrorKind_NotOnline:
		return "player not online"
	case PushErrorKind_SendFailed:
		return "send failed"
	case PushErrorKind_Wire:
		return "could not encode push"
	}
	return fmt.Sprintf("push error %d", uint8(k))
}

type PushError struct {
	Kind     PushErrorKind
	PlayerID int32
	Err      error
}

func (e *PushError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("push to player %d: %s: %v", e.PlayerID, e.Kind, e.Err)
	}
	return fmt.Sprintf("push to player %d: %s", e.PlayerID, e.Kind)
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// Is matches any PushError of the same kind, so callers can compare against
// ErrNotOnline and ErrSendFailed.
func (e *PushError) Is(target error) bool {
	t, ok := target.(*PushError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotOnline  = &PushError{Kind: PushErrorKind_NotOnline}
	ErrSendFailed = &PushError{Kind: PushErrorKind_SendFailed}
)
