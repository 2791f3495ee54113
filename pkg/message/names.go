package message

import (
	"reflect"
	"strings"
)

// RequestName is the operation name of a request, e.g. "CheckAlive".
func RequestName(p RequestParams) string {
	return operationName(p, "Request")
}

// ResponseName is the operation name of a response, e.g. "CheckAlive".
func ResponseName(p ResponseParams) string {
	return operationName(p, "Response")
}

func PushName(p PushParams) string {
	return operationName(p, "Push")
}

func operationName(v any, suffix string) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.TrimSuffix(t.Name(), suffix)
}

// IsSessionRequest reports whether p may open a session, which is the only
// kind of request accepted before authentication.
func IsSessionRequest(p RequestParams) bool {
	switch p.(type) {
	case CreateSessionRequest, *CreateSessionRequest, RestoreSessionRequest, *RestoreSessionRequest:
		return true
	}
	return false
}
