package transport

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sessamekesh/waygate/internal"
	"go.uber.org/zap"
)

func wsURL(t *testing.T, baseURL, path string) string {
	t.Helper()
	if !strings.HasPrefix(baseURL, "http") {
		t.Fatalf("unexpected base URL: %q", baseURL)
	}
	return "ws" + strings.TrimPrefix(baseURL, "http") + path
}

func dialWS(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial(%q) failed: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// startServer runs handler behind a WebsocketServer and returns its URL.
func startServer(t *testing.T, handler ConnectionHandlerFunc, params WebsocketServerParams) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	params.ListenEndpoint = "/ws"
	params.Logger = zap.NewNop()
	server := CreateWebsocketServer(handler, params)

	ts := httptest.NewServer(server.Handler(ctx))
	t.Cleanup(ts.Close)
	return wsURL(t, ts.URL, "/ws")
}

func TestEchoesBinaryFrames(t *testing.T) {
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		for {
			frame, err := accepted.Transport.ReceiveNext(ctx)
			if err != nil {
				return err
			}
			if frame.Kind == FrameKind_Close {
				return nil
			}
			if err := accepted.Transport.Send(frame.Data); err != nil {
				return err
			}
		}
	}, WebsocketServerParams{})

	conn := dialWS(t, url, nil)
	payload := []byte{0, 0, 1, 0}
	if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, got, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if msgType != websocket.BinaryMessage || !bytes.Equal(got, payload) {
		t.Fatalf("echo = (%d, %v), want binary %v", msgType, got, payload)
	}
}

func TestFrameKinds(t *testing.T) {
	frames := make(chan Frame, 4)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		for {
			frame, err := accepted.Transport.ReceiveNext(ctx)
			if err != nil {
				return nil
			}
			frames <- frame
			if frame.Kind == FrameKind_Close {
				return nil
			}
		}
	}, WebsocketServerParams{})

	conn := dialWS(t, url, nil)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		t.Fatalf("WriteMessage(close) error = %v", err)
	}

	want := []FrameKind{FrameKind_Text, FrameKind_Close}
	for _, kind := range want {
		select {
		case frame := <-frames:
			if frame.Kind != kind {
				t.Fatalf("frame kind = %s, want %s", frame.Kind, kind)
			}
			if kind == FrameKind_Close && (frame.CloseCode != websocket.CloseNormalClosure || frame.CloseText != "bye") {
				t.Fatalf("close frame = %+v", frame)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s frame", kind)
		}
	}
}

func TestReceiveNextHonoursContext(t *testing.T) {
	result := make(chan error, 1)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := accepted.Transport.ReceiveNext(waitCtx)
		result <- err
		return nil
	}, WebsocketServerParams{})

	dialWS(t, url, nil)

	select {
	case err := <-result:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("ReceiveNext() error = %v, want DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReceiveNext() never returned")
	}
}

func TestSendAfterClose(t *testing.T) {
	result := make(chan error, 1)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		_ = accepted.Transport.Close()
		result <- accepted.Transport.Send([]byte{7})
		return nil
	}, WebsocketServerParams{})

	dialWS(t, url, nil)

	select {
	case err := <-result:
		if !errors.Is(err, ErrTransportClosed) {
			t.Fatalf("Send() error = %v, want ErrTransportClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestLocalCloseEndsIncomingCleanly(t *testing.T) {
	result := make(chan error, 1)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		_ = accepted.Transport.Close()
		for r := range accepted.Transport.Incoming() {
			if r.Err != nil {
				result <- r.Err
				return nil
			}
		}
		_, err := accepted.Transport.ReceiveNext(ctx)
		result <- err
		return nil
	}, WebsocketServerParams{})

	dialWS(t, url, nil)

	select {
	case err := <-result:
		if !errors.Is(err, ErrTransportClosed) {
			t.Fatalf("after Close() got %v, want ErrTransportClosed and no read error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("read pump never stopped")
	}
}

func TestHeadersReachHandler(t *testing.T) {
	got := make(chan Accepted, 1)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		got <- accepted
		return nil
	}, WebsocketServerParams{})

	header := http.Header{}
	header.Set(HeaderSteamId, "76561197960287930")
	header.Set(HeaderSessionTicket, "deadbeef")
	header.Set(HeaderClientVersion, "1.10")
	dialWS(t, url, header)

	select {
	case accepted := <-got:
		if accepted.ExternalId != "76561197960287930" || accepted.SessionTicket != "deadbeef" || accepted.ClientVersion != "1.10" {
			t.Fatalf("accepted = %+v", accepted)
		}
		if accepted.ConnectionId == 0 {
			t.Fatal("connection id was not assigned")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestConnectionLimit(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	store := internal.CreateConnectionStore(1)
	url := startServer(t, func(ctx context.Context, accepted Accepted) error {
		<-release
		return nil
	}, WebsocketServerParams{Connections: store})

	dialWS(t, url, nil)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second Dial() succeeded past the connection limit")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("second Dial() response = %v, want 503", resp)
	}
}

func TestCheckOrigin(t *testing.T) {
	params := WebsocketServerParams{
		AllowlistedHosts: []string{"https://good.example"},
		DenylistedHosts:  []string{"https://bad.example"},
	}

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://good.example", true},
		{"https://bad.example", false},
		{"https://other.example", false},
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if c.origin != "" {
			r.Header.Set("Origin", c.origin)
		}
		if got := checkOrigin(r, params); got != c.want {
			t.Errorf("checkOrigin(%q) = %v, want %v", c.origin, got, c.want)
		}
	}

	params.AllowAllHosts = true
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "https://other.example")
	if !checkOrigin(r, params) {
		t.Fatal("AllowAllHosts did not allow an unknown origin")
	}
}
