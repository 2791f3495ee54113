// Package connection drives one game client from the opening hello through
// key exchange and session setup into request serving.
//
// Every phase is its own type and each transition consumes the receiver:
// calling a phase method twice returns ErrPhaseConsumed.
package connection

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/sessamekesh/waygate/internal/obs"
	wireerr "github.com/sessamekesh/waygate/pkg/errors"
	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/push"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/sessamekesh/waygate/pkg/transport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Hello is the first message every client sends.
var Hello = []byte{0x00, 0x00, 0x01, 0x00}

const tracerName = "waygate/rpc"

// client is what every phase carries forward.
type client struct {
	identity  identity.Identity
	peer      string
	transport Transport
	deps      Dependencies

	log *zap.Logger
}

func (c *client) stageTimeout() time.Duration {
	if c.deps.StageTimeout > 0 {
		return c.deps.StageTimeout
	}
	return DefaultStageTimeout
}

// receiveBinary waits one stage timeout for the next binary frame.
func (c *client) receiveBinary(ctx context.Context, timeout ProtocolErrorKind) ([]byte, error) {
	stageCtx, cancel := context.WithTimeout(ctx, c.stageTimeout())
	defer cancel()

	frame, err := c.transport.ReceiveNext(stageCtx)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			return nil, protocolError(timeout)
		case errors.Is(err, transport.ErrTransportClosed):
			return nil, &ClientError{Kind: ClientErrorKind_ClosedConnection, Err: err}
		}
		return nil, &ClientError{Kind: ClientErrorKind_Transport, Err: err}
	}

	return frameData(frame)
}

func frameData(frame transport.Frame) ([]byte, error) {
	switch frame.Kind {
	case transport.FrameKind_Binary:
		return frame.Data, nil
	case transport.FrameKind_Close:
		return nil, &ClientError{Kind: ClientErrorKind_ClosedConnection}
	}
	return nil, protocolError(ProtocolErrorKind_NonBinaryMessage)
}

func (c *client) send(data []byte) error {
	if err := c.transport.Send(data); err != nil {
		return &ClientError{Kind: ClientErrorKind_Transport, Err: err}
	}
	return nil
}

func cryptoError(err error) error {
	return &ClientError{Kind: ClientErrorKind_Crypto, Err: err}
}

type Connected struct {
	c *client
}

func NewClient(id identity.Identity, peer string, t Transport, deps Dependencies) *Connected {
	log := obs.DefaultLogger(deps.Logger).With(zap.String("peer", peer), zap.String("externalId", id.ExternalID))
	return &Connected{c: &client{
		identity:  id,
		peer:      peer,
		transport: t,
		deps:      deps,
		log:       log,
	}}
}

func (p *Connected) AwaitHello(ctx context.Context) (*ReceivedHello, error) {
	c := p.c
	if c == nil {
		return nil, ErrPhaseConsumed
	}
	p.c = nil

	hello, err := c.receiveBinary(ctx, ProtocolErrorKind_TimeoutHello)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(hello, Hello) {
		return nil, protocolError(ProtocolErrorKind_MalformedHello)
	}

	c.log.Debug("Received hello")
	return &ReceivedHello{c: c}, nil
}

type ReceivedHello struct {
	c *client
}

// AdvertiseCryptoSession sends the boxed ephemeral public key and both
// session nonces.
func (p *ReceivedHello) AdvertiseCryptoSession(ctx context.Context) (*AwaitingPublicKey, error) {
	c := p.c
	if c == nil {
		return nil, ErrPhaseConsumed
	}
	p.c = nil

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := sessioncrypto.New(c.deps.Keys).Generate()
	if err != nil {
		return nil, cryptoError(err)
	}
	ad, err := params.Advertise()
	if err != nil {
		return nil, cryptoError(err)
	}
	boxed, err := params.KxEncrypt(ad)
	if err != nil {
		return nil, cryptoError(err)
	}
	if err := c.send(boxed); err != nil {
		return nil, err
	}

	return &AwaitingPublicKey{c: c, crypto: params}, nil
}

type AwaitingPublicKey struct {
	c      *client
	crypto *sessioncrypto.ParametersGenerated
}

func (p *AwaitingPublicKey) AwaitPublicKey(ctx context.Context) (*AwaitingSession, error) {
	c := p.c
	if c == nil {
		return nil, ErrPhaseConsumed
	}
	p.c = nil

	msg, err := c.receiveBinary(ctx, ProtocolErrorKind_TimeoutPublicKey)
	if err != nil {
		return nil, err
	}

	clientPK, err := p.crypto.KxDecrypt(msg)
	if err != nil {
		return nil, cryptoError(err)
	}
	if len(clientPK) != sessioncrypto.PublicKeyBytes {
		return nil, protocolError(ProtocolErrorKind_MalformedPublicKey)
	}

	active, err := p.crypto.DeriveSessionKeys([sessioncrypto.PublicKeyBytes]byte(clientPK))
	if err != nil {
		return nil, cryptoError(err)
	}

	c.log.Debug("Derived session keys")
	return &AwaitingSession{c: c, crypto: active}, nil
}

type AwaitingSession struct {
	c      *client
	crypto *sessioncrypto.ActiveSession
}

func (p *AwaitingSession) AwaitSessionMessage(ctx context.Context) (*ReceivedSessionDetails, error) {
	c := p.c
	if c == nil {
		return nil, ErrPhaseConsumed
	}
	p.c = nil

	msg, err := c.receiveBinary(ctx, ProtocolErrorKind_TimeoutSessionCreation)
	if err != nil {
		return nil, err
	}

	plain, err := p.crypto.SessionDecrypt(msg)
	if err != nil {
		return nil, cryptoError(err)
	}

	rc, req, err := ParseRequest(plain)
	if err != nil {
		return nil, err
	}
	if !message.IsSessionRequest(req) {
		return nil, protocolError(ProtocolErrorKind_ExpectedSessionMessage)
	}

	return &ReceivedSessionDetails{c: c, crypto: p.crypto, responder: rc, request: req}, nil
}

type ReceivedSessionDetails struct {
	c         *client
	crypto    *sessioncrypto.ActiveSession
	responder ResponseContext
	request   message.RequestParams
}

func (p *ReceivedSessionDetails) Request() message.RequestParams {
	return p.request
}

// ConfirmSession establishes the session, answers the client and registers
// the connection for pushes. handler serves every later request.
func (p *ReceivedSessionDetails) ConfirmSession(ctx context.Context, handler Handler) (*Authenticated, error) {
	c := p.c
	if c == nil {
		return nil, ErrPhaseConsumed
	}
	p.c = nil

	var (
		s        *session.ClientSession
		response message.ResponseParams
		err      error
	)
	switch req := p.request.(type) {
	case message.CreateSessionRequest:
		s, response, err = c.deps.Sessions.CreateSession(ctx, c.identity, req)
	case *message.CreateSessionRequest:
		s, response, err = c.deps.Sessions.CreateSession(ctx, c.identity, *req)
	case message.RestoreSessionRequest:
		s, response, err = c.deps.Sessions.RestoreSession(ctx, c.identity, req)
	case *message.RestoreSessionRequest:
		s, response, err = c.deps.Sessions.RestoreSession(ctx, c.identity, *req)
	default:
		return nil, protocolError(ProtocolErrorKind_ExpectedSessionMessage)
	}
	if err != nil {
		return nil, err
	}

	plain, err := p.responder.SessionResponse(response)
	if err != nil {
		return nil, err
	}
	encrypted, err := p.crypto.SessionEncrypt(plain)
	if err != nil {
		return nil, cryptoError(err)
	}
	if err := c.send(encrypted); err != nil {
		return nil, err
	}

	handle := push.NewHandle(push.DefaultCapacity)
	c.deps.Registry.Register(s.PlayerID, handle)

	c.log = c.log.With(zap.Int32("playerId", s.PlayerID))
	c.log.Info("Session confirmed", zap.String("operation", message.RequestName(p.request)))

	return &Authenticated{
		c:       c,
		crypto:  p.crypto,
		session: s,
		handler: handler,
		push:    handle,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// Authenticated is a connection serving requests.
type Authenticated struct {
	c       *client
	crypto  *sessioncrypto.ActiveSession
	session *session.ClientSession
	handler Handler
	push    *push.Handle
	tracer  trace.Tracer
}

func (a *Authenticated) Session() *session.ClientSession {
	return a.session
}

// Serve handles exactly one event: an incoming frame or a queued push.
func (a *Authenticated) Serve(ctx context.Context) error {
	if a.c == nil {
		return ErrPhaseConsumed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r, ok := <-a.c.transport.Incoming():
		if !ok {
			return &ClientError{Kind: ClientErrorKind_ClosedConnection, Err: transport.ErrTransportClosed}
		}
		if r.Err != nil {
			return &ClientError{Kind: ClientErrorKind_Transport, Err: r.Err}
		}
		data, err := frameData(r.Frame)
		if err != nil {
			return err
		}
		return a.handleMessage(ctx, data)
	case frame := <-a.push.Receive():
		return a.sendEncrypted(frame)
	}
}

func (a *Authenticated) sendEncrypted(plain []byte) error {
	encrypted, err := a.crypto.SessionEncrypt(plain)
	if err != nil {
		return cryptoError(err)
	}
	return a.c.send(encrypted)
}

func (a *Authenticated) handleMessage(ctx context.Context, msg []byte) error {
	plain, err := a.crypto.SessionDecrypt(msg)
	if err != nil {
		return cryptoError(err)
	}
	if len(plain) == 0 {
		return wireError(&wireerr.Underflow{MessageName: "PayloadType", MsgSize: 0, MinimumSize: 1})
	}

	switch payloadType := message.PayloadType(plain[0]); payloadType {
	case message.PayloadType_Heartbeat:
		return a.sendEncrypted(message.HeartbeatAck)
	case message.PayloadType_Request:
		return a.handleRequest(ctx, plain)
	case message.PayloadType_Push:
		a.c.log.Debug("Got push confirmation from client")
	default:
		a.c.log.Warn("Got unexpected payload type from client", zap.Stringer("payloadType", payloadType))
	}
	return nil
}

func (a *Authenticated) handleRequest(ctx context.Context, plain []byte) error {
	rc, req, err := ParseRequest(plain)
	if err != nil {
		return err
	}

	operation := message.RequestName(req)
	ctx, span := a.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.Int("waygate.player_id", int(a.session.PlayerID)),
			attribute.Int64("waygate.sequence", int64(rc.Sequence)),
		),
	)
	defer span.End()

	a.c.log.Debug("Dispatching request", zap.String("operation", operation), zap.Uint32("sequence", rc.Sequence))

	start := time.Now()
	params, handlerErr := a.handler.Handle(ctx, a.session, req)
	if handlerErr == nil && params == nil {
		handlerErr = &ClientError{Kind: ClientErrorKind_NoHandler, Detail: operation + " returned no response"}
	}
	obs.RequestDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	out, respErr := rc.Response(params, handlerErr)
	if respErr != nil {
		obs.RequestsTotal.WithLabelValues(operation, "error").Inc()
		span.RecordError(respErr)
		span.SetStatus(codes.Error, respErr.Error())
		a.c.log.Error("Could not handle request", zap.String("operation", operation), zap.Uint32("sequence", rc.Sequence), zap.Error(respErr))
	} else {
		obs.RequestsTotal.WithLabelValues(operation, "ok").Inc()
		span.SetStatus(codes.Ok, "")
	}

	return a.sendEncrypted(out)
}

// Close unregisters the push handle, if it still belongs to this
// connection, and closes the transport. Serve fails afterwards.
func (a *Authenticated) Close() error {
	c := a.c
	if c == nil {
		return nil
	}
	a.c = nil

	c.deps.Registry.Remove(a.session.PlayerID, a.push)
	a.push.Close()
	return c.transport.Close()
}
