// Package gateway authenticates incoming game connections and drives each
// one through the handshake into its request loop.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sessamekesh/waygate/internal"
	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/connection"
	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/push"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/sessamekesh/waygate/pkg/transport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "waygate/gateway"

// BanList is the part of the store the gateway consults.
type BanList interface {
	IsBanned(ctx context.Context, externalID string) (bool, error)
}

type GatewayParams struct {
	Verifier identity.Verifier
	Bans     BanList

	Keys     *sessioncrypto.BootstrapKeys
	Registry *push.Registry
	Sessions connection.SessionEstablisher
	Handler  connection.Handler

	// Marked authenticated once a session is confirmed. Optional.
	Connections *internal.ConnectionStore

	StageTimeout time.Duration

	Logger *zap.Logger
}

type Gateway struct {
	params GatewayParams
	tracer trace.Tracer
	log    *zap.Logger
}

var _ transport.ConnectionHandler = (*Gateway)(nil)

func CreateGateway(params GatewayParams) *Gateway {
	return &Gateway{
		params: params,
		tracer: otel.Tracer(tracerName),
		log:    obs.DefaultLogger(params.Logger),
	}
}

func handshakeFailed(stage string, err error) error {
	obs.HandshakeFailuresTotal.WithLabelValues(stage).Inc()
	return err
}

func credentialsError(err error) error {
	return &connection.ClientError{Kind: connection.ClientErrorKind_Credentials, Err: err}
}

// HandleConnection serves one accepted socket until the client leaves or
// ctx ends. A client that disconnects is not an error.
func (g *Gateway) HandleConnection(ctx context.Context, accepted transport.Accepted) error {
	log := accepted.Log
	if log == nil {
		log = g.log
	}
	log.Info("Client connecting", zap.String("clientVersion", accepted.ClientVersion))

	if accepted.ExternalId == "" || accepted.SessionTicket == "" {
		return handshakeFailed("credentials", credentialsError(identity.ErrMissingCredentials))
	}

	id, err := g.params.Verifier.Authenticate(ctx, accepted.ExternalId, accepted.SessionTicket)
	if err != nil {
		log.Warn("Could not authenticate client", zap.String("externalId", accepted.ExternalId), zap.Error(err))
		return handshakeFailed("credentials", credentialsError(err))
	}
	log = log.With(zap.String("externalId", id.ExternalID))
	log.Info("Authenticated steam session")

	banned, err := g.params.Bans.IsBanned(ctx, id.ExternalID)
	if err != nil {
		return handshakeFailed("credentials", err)
	}
	if banned {
		log.Info("Player is banned")
		obs.BansRejectedTotal.Inc()
		_ = accepted.Transport.CloseGracefully(websocket.ClosePolicyViolation, "banned")
		return nil
	}

	conn, err := g.handshake(ctx, id, accepted, log)
	if err != nil {
		return g.ended(log, err)
	}
	defer conn.Close()

	if g.params.Connections != nil {
		if err := g.params.Connections.Authenticate(accepted.ConnectionId, conn.Session().PlayerID); err != nil {
			log.Warn("Connection missing from store", zap.Error(err))
		}
	}

	for {
		if err := conn.Serve(ctx); err != nil {
			return g.ended(log, err)
		}
	}
}

// handshake runs the chain from hello to a confirmed session under one
// span.
func (g *Gateway) handshake(ctx context.Context, id identity.Identity, accepted transport.Accepted, log *zap.Logger) (*connection.Authenticated, error) {
	ctx, span := g.tracer.Start(ctx, "handshake",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("waygate.external_id", id.ExternalID),
			attribute.String("net.peer.addr", accepted.PeerAddress),
		),
	)
	defer span.End()

	fail := func(stage string, err error) (*connection.Authenticated, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, stage)
		return nil, handshakeFailed(stage, err)
	}

	connected := connection.NewClient(id, accepted.PeerAddress, accepted.Transport, connection.Dependencies{
		Keys:         g.params.Keys,
		Registry:     g.params.Registry,
		Sessions:     g.params.Sessions,
		StageTimeout: g.params.StageTimeout,
		Logger:       log,
	})

	hello, err := connected.AwaitHello(ctx)
	if err != nil {
		return fail("hello", err)
	}
	awaitingKey, err := hello.AdvertiseCryptoSession(ctx)
	if err != nil {
		return fail("advertise", err)
	}
	awaitingSession, err := awaitingKey.AwaitPublicKey(ctx)
	if err != nil {
		return fail("public_key", err)
	}
	details, err := awaitingSession.AwaitSessionMessage(ctx)
	if err != nil {
		return fail("session", err)
	}
	conn, err := details.ConfirmSession(ctx, g.params.Handler)
	if err != nil {
		return fail("confirm", err)
	}

	span.SetAttributes(attribute.Int("waygate.player_id", int(conn.Session().PlayerID)))
	span.SetStatus(codes.Ok, "")
	return conn, nil
}

// ended decides whether the way a connection ended is worth an error.
func (g *Gateway) ended(log *zap.Logger, err error) error {
	switch {
	case connection.IsKind(err, connection.ClientErrorKind_ClosedConnection):
		log.Info("Client disconnected")
		return nil
	case errors.Is(err, context.Canceled):
		log.Info("Server shutting down connection")
		return nil
	}
	return err
}
