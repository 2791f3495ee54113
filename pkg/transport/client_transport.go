package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sessamekesh/waygate/internal/obs"
	"go.uber.org/zap"
)

type FrameKind uint8

const (
	FrameKind_Binary FrameKind = iota
	FrameKind_Text
	FrameKind_Close
)

func (k FrameKind) String() string {
	switch k {
	case FrameKind_Binary:
		return "binary"
	case FrameKind_Text:
		return "text"
	case FrameKind_Close:
		return "close"
	}
	return "unknown"
}

// Frame is one message read off the socket. Close frames carry the peer's
// close code and reason instead of data.
type Frame struct {
	Kind      FrameKind
	Data      []byte
	CloseCode int
	CloseText string
}

type Received struct {
	Frame Frame
	Err   error
}

var expectedCloseErrors = []int{websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived}

type ClientTransportParams struct {
	MaxReadMessageSize int64
	WriteTimeout       time.Duration

	Logger *zap.Logger
}

// ClientTransport owns one accepted WebSocket. A read pump goroutine feeds
// Incoming; writes are serialized by mut_write.
type ClientTransport struct {
	conn   *websocket.Conn
	params ClientTransportParams

	incoming chan Received
	closed   chan struct{}

	closeOnce sync.Once
	mut_write sync.Mutex

	log *zap.Logger
}

func NewClientTransport(conn *websocket.Conn, params ClientTransportParams) *ClientTransport {
	if params.WriteTimeout <= 0 {
		params.WriteTimeout = 10 * time.Second
	}
	if params.MaxReadMessageSize > 0 {
		conn.SetReadLimit(params.MaxReadMessageSize)
	}

	t := &ClientTransport{
		conn:     conn,
		params:   params,
		incoming: make(chan Received),
		closed:   make(chan struct{}),
		log:      obs.DefaultLogger(params.Logger),
	}

	go t.readPump()

	return t
}

func (t *ClientTransport) readPump() {
	defer close(t.incoming)

	for {
		msgType, payload, msgErr := t.conn.ReadMessage()

		var r Received
		stop := false
		switch {
		case msgErr != nil:
			stop = true
			var closeError *websocket.CloseError
			if errors.As(msgErr, &closeError) {
				if !websocket.IsCloseError(msgErr, expectedCloseErrors...) {
					t.log.Warn("Received unexpected close code from client", zap.Int("closeCode", closeError.Code), zap.String("closeMsg", closeError.Text))
				}
				r.Frame = Frame{Kind: FrameKind_Close, CloseCode: closeError.Code, CloseText: closeError.Text}
			} else if errors.Is(msgErr, net.ErrClosed) {
				// Close() was called locally.
				return
			} else {
				r.Err = &TransportError{Kind: TransportErrorKind_ReadFailed, Err: msgErr}
			}
		case msgType == websocket.BinaryMessage:
			r.Frame = Frame{Kind: FrameKind_Binary, Data: payload}
		default:
			r.Frame = Frame{Kind: FrameKind_Text, Data: payload}
		}

		select {
		case t.incoming <- r:
		case <-t.closed:
			return
		}

		if stop {
			return
		}
	}
}

// Incoming yields every frame read from the socket. It is closed once the
// read pump exits.
func (t *ClientTransport) Incoming() <-chan Received {
	return t.incoming
}

// ReceiveNext blocks for the next frame.
func (t *ClientTransport) ReceiveNext(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case r, ok := <-t.incoming:
		if !ok {
			return Frame{}, ErrTransportClosed
		}
		return r.Frame, r.Err
	}
}

// Send writes one binary frame.
func (t *ClientTransport) Send(data []byte) error {
	select {
	case <-t.closed:
		return ErrTransportClosed
	default:
	}

	t.mut_write.Lock()
	defer t.mut_write.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(t.params.WriteTimeout)); err != nil {
		return &TransportError{Kind: TransportErrorKind_WriteFailed, Err: err}
	}
	if err := t.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return &TransportError{Kind: TransportErrorKind_WriteFailed, Err: err}
	}
	return nil
}

// CloseGracefully sends a close frame before tearing down the socket.
func (t *ClientTransport) CloseGracefully(code int, text string) error {
	func() {
		t.mut_write.Lock()
		defer t.mut_write.Unlock()

		msg := websocket.FormatCloseMessage(code, text)
		deadline := time.Now().Add(t.params.WriteTimeout)
		if err := t.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
			t.log.Debug("Failed to write close frame", zap.Error(err))
		}
	}()

	return t.Close()
}

func (t *ClientTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)
		err = t.conn.Close()
	})
	return err
}

func (t *ClientTransport) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
