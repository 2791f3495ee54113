package message

import "fmt"

// PayloadType is the first byte of every message exchanged once a session
// is established.
type PayloadType uint8

const (
	PayloadType_Request   PayloadType = 0x4
	PayloadType_Response  PayloadType = 0x5
	PayloadType_Push      PayloadType = 0x6
	PayloadType_Heartbeat PayloadType = 0x7
)

func (p PayloadType) String() string {
	switch p {
	case PayloadType_Request:
		return "Request"
	case PayloadType_Response:
		return "Response"
	case PayloadType_Push:
		return "Push"
	case PayloadType_Heartbeat:
		return "Heartbeat"
	}

	return fmt.Sprintf("Unknown(%d)", uint8(p))
}

// HeartbeatAck is the fixed plaintext sent back for every heartbeat.
var HeartbeatAck = []byte{byte(PayloadType_Heartbeat), 0x64}

// Response status bytes. Failures carry no error taxonomy on the wire, only a
// zeroed u32 code.
const (
	ResponseStatus_Failure uint8 = 0x0
	ResponseStatus_Success uint8 = 0x1
)
