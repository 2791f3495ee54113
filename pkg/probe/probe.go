// Package probe is a minimal game client. It speaks the full handshake and
// request framing, which makes it useful for smoke testing a deployment.
package probe

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/sessamekesh/waygate/pkg/transport"
	"github.com/sessamekesh/waygate/pkg/wire"
	"go.uber.org/zap"
)

var hello = []byte{0x00, 0x00, 0x01, 0x00}

type Params struct {
	URL           string
	ExternalID    string
	SessionTicket string
	ClientVersion string

	Keys *sessioncrypto.ClientKeys

	// Timeout bounds each read when ctx has no deadline. Defaults to 10s.
	Timeout time.Duration
	// Dialer defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer

	Logger *zap.Logger
}

// FailedError is returned by Call when the server answers with status 0.
type FailedError struct {
	Operation string
	Sequence  uint32
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%s (sequence %d) failed on the server", e.Operation, e.Sequence)
}

var ErrNoSession = errors.New("probe: handshake not completed")

type Client struct {
	conn    *websocket.Conn
	keys    *sessioncrypto.ClientKeys
	timeout time.Duration
	log     *zap.Logger

	session  *sessioncrypto.PeerSession
	sequence uint32
	pushes   []message.PushParams
}

// Dial opens the WebSocket with the identity headers set.
func Dial(ctx context.Context, params Params) (*Client, error) {
	dialer := params.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	header := http.Header{}
	header.Set(transport.HeaderSteamId, params.ExternalID)
	header.Set(transport.HeaderSessionTicket, params.SessionTicket)
	if params.ClientVersion != "" {
		header.Set(transport.HeaderClientVersion, params.ClientVersion)
	}

	conn, resp, err := dialer.DialContext(ctx, params.URL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (HTTP %d)", params.URL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", params.URL, err)
	}

	return &Client{
		conn:    conn,
		keys:    params.Keys,
		timeout: timeout,
		log:     obs.DefaultLogger(params.Logger).With(zap.String("url", params.URL)),
	}, nil
}

func (c *Client) readBinary(ctx context.Context) ([]byte, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	kind, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	if kind != websocket.BinaryMessage {
		return nil, fmt.Errorf("unexpected websocket message type %d", kind)
	}
	return data, nil
}

func (c *Client) write(data []byte) error {
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Handshake sends the hello, answers the key advertisement and leaves the
// client ready for CreateSession.
func (c *Client) Handshake(ctx context.Context) error {
	if err := c.write(hello); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	peer := sessioncrypto.NewPeer(c.keys)
	boxed, err := c.readBinary(ctx)
	if err != nil {
		return fmt.Errorf("read advertisement: %w", err)
	}
	ad, err := peer.OpenAdvertisement(boxed)
	if err != nil {
		return fmt.Errorf("open advertisement: %w", err)
	}

	reply, s, err := peer.Respond(ad)
	if err != nil {
		return fmt.Errorf("derive session keys: %w", err)
	}
	if err := c.write(reply); err != nil {
		return fmt.Errorf("send public key: %w", err)
	}

	c.session = s
	c.log.Debug("Handshake complete")
	return nil
}

func (c *Client) sendEncrypted(plain []byte) error {
	if c.session == nil {
		return ErrNoSession
	}
	msg, err := c.session.SessionEncrypt(plain)
	if err != nil {
		return err
	}
	return c.write(msg)
}

func (c *Client) receiveDecrypted(ctx context.Context) ([]byte, error) {
	if c.session == nil {
		return nil, ErrNoSession
	}
	msg, err := c.readBinary(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := c.session.SessionDecrypt(msg)
	if err != nil {
		return nil, err
	}
	if len(plain) == 0 {
		return nil, errors.New("empty payload")
	}
	return plain, nil
}

// queuePush keeps a push that arrived while waiting for something else.
func (c *Client) queuePush(plain []byte) error {
	if len(plain) < 2 {
		return fmt.Errorf("short push frame of %d bytes", len(plain))
	}
	params, err := wire.Decode[message.PushParams](plain[2:])
	if err != nil {
		return fmt.Errorf("decode push: %w", err)
	}
	c.pushes = append(c.pushes, params)
	return nil
}

// Heartbeat sends a heartbeat and waits for the acknowledgement.
func (c *Client) Heartbeat(ctx context.Context) error {
	if err := c.sendEncrypted([]byte{byte(message.PayloadType_Heartbeat)}); err != nil {
		return err
	}
	for {
		plain, err := c.receiveDecrypted(ctx)
		if err != nil {
			return err
		}
		switch message.PayloadType(plain[0]) {
		case message.PayloadType_Heartbeat:
			return nil
		case message.PayloadType_Push:
			if err := c.queuePush(plain); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected %s while waiting for heartbeat", message.PayloadType(plain[0]))
		}
	}
}

// Call sends one request and waits for its response. Pushes received in
// the meantime are kept for ReadPush.
func (c *Client) Call(ctx context.Context, req message.RequestParams) (message.ResponseParams, error) {
	c.sequence++
	seq := c.sequence
	operation := message.RequestName(req)

	buf := []byte{byte(message.PayloadType_Request)}
	buf = binary.LittleEndian.AppendUint32(buf, seq)
	buf, err := wire.Append(buf, req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", operation, err)
	}
	if err := c.sendEncrypted(buf); err != nil {
		return nil, err
	}

	for {
		plain, err := c.receiveDecrypted(ctx)
		if err != nil {
			return nil, err
		}
		switch message.PayloadType(plain[0]) {
		case message.PayloadType_Push:
			if err := c.queuePush(plain); err != nil {
				return nil, err
			}
			continue
		case message.PayloadType_Response:
		default:
			return nil, fmt.Errorf("unexpected %s while waiting for %s", message.PayloadType(plain[0]), operation)
		}

		if len(plain) < 6 {
			return nil, fmt.Errorf("short response of %d bytes", len(plain))
		}
		if got := binary.LittleEndian.Uint32(plain[1:5]); got != seq {
			return nil, fmt.Errorf("response sequence %d, want %d", got, seq)
		}
		if plain[5] != message.ResponseStatus_Success {
			return nil, &FailedError{Operation: operation, Sequence: seq}
		}
		return wire.Decode[message.ResponseParams](plain[6:])
	}
}

// CreateSession opens a fresh session for the dialed identity.
func (c *Client) CreateSession(ctx context.Context, gameVersion uint32) (message.CreateSessionResponse, error) {
	resp, err := c.Call(ctx, message.CreateSessionRequest{GameVersion: gameVersion, SteamTicket: []byte{}})
	if err != nil {
		return message.CreateSessionResponse{}, err
	}
	created, ok := resp.(message.CreateSessionResponse)
	if !ok {
		return message.CreateSessionResponse{}, fmt.Errorf("unexpected %T answering CreateSession", resp)
	}
	return created, nil
}

// ReadPush returns the next push from the server.
func (c *Client) ReadPush(ctx context.Context) (message.PushParams, error) {
	for len(c.pushes) == 0 {
		plain, err := c.receiveDecrypted(ctx)
		if err != nil {
			return nil, err
		}
		if message.PayloadType(plain[0]) != message.PayloadType_Push {
			c.log.Warn("Dropping unexpected payload while waiting for push", zap.Stringer("payloadType", message.PayloadType(plain[0])))
			continue
		}
		if err := c.queuePush(plain); err != nil {
			return nil, err
		}
	}

	next := c.pushes[0]
	c.pushes = c.pushes[1:]
	return next, nil
}

// ReadClose waits for the server to close the socket and returns the close
// code.
func (c *Client) ReadClose(ctx context.Context) (int, error) {
	for {
		_, err := c.readBinary(ctx)
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) {
			return closeErr.Code, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}
