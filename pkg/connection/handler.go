package connection

import (
	"context"
	"time"

	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/push"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/sessamekesh/waygate/pkg/transport"
	"go.uber.org/zap"
)

// Handler answers requests on an authenticated connection. Calls for one
// connection never overlap.
type Handler interface {
	Handle(ctx context.Context, s *session.ClientSession, req message.RequestParams) (message.ResponseParams, error)
}

type HandlerFunc func(ctx context.Context, s *session.ClientSession, req message.RequestParams) (message.ResponseParams, error)

func (f HandlerFunc) Handle(ctx context.Context, s *session.ClientSession, req message.RequestParams) (message.ResponseParams, error) {
	return f(ctx, s, req)
}

// SessionEstablisher turns the first request of a connection into a
// session. *session.Service implements it.
type SessionEstablisher interface {
	CreateSession(ctx context.Context, id identity.Identity, req message.CreateSessionRequest) (*session.ClientSession, message.ResponseParams, error)
	RestoreSession(ctx context.Context, id identity.Identity, req message.RestoreSessionRequest) (*session.ClientSession, message.ResponseParams, error)
}

// Transport is the part of *transport.ClientTransport a connection uses.
type Transport interface {
	ReceiveNext(ctx context.Context) (transport.Frame, error)
	Incoming() <-chan transport.Received
	Send(data []byte) error
	Close() error
}

// DefaultStageTimeout bounds each handshake stage.
const DefaultStageTimeout = 5 * time.Second

type Dependencies struct {
	Keys     *sessioncrypto.BootstrapKeys
	Registry *push.Registry
	Sessions SessionEstablisher

	// StageTimeout defaults to DefaultStageTimeout.
	StageTimeout time.Duration

	Logger *zap.Logger
}
