package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/store"
	"go.uber.org/zap"
)

// Validity is how far either side of now a session's validity window
// reaches.
const Validity = 7 * time.Hour

type ServiceParams struct {
	Store store.Store
	// Now defaults to time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// Service creates and restores sessions against the store.
type Service struct {
	store store.Store
	now   func() time.Time
	log   *zap.Logger
}

func NewService(params ServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store: params.Store,
		now:   now,
		log:   obs.DefaultLogger(params.Logger).With(zap.String("component", "session")),
	}
}

func newCookie() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw[:]), nil
}

func (s *Service) CreateSession(ctx context.Context, id identity.Identity, _ message.CreateSessionRequest) (*ClientSession, message.ResponseParams, error) {
	playerID, err := s.store.AcquirePlayerID(ctx, id.ExternalID)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire player id: %w", err)
	}

	cookie, err := newCookie()
	if err != nil {
		return nil, nil, fmt.Errorf("generate session cookie: %w", err)
	}

	now := s.now()
	validFrom := now.Add(-Validity).Unix()
	validUntil := now.Add(Validity).Unix()

	sessionID, err := s.store.CreateSession(ctx, playerID, cookie, validUntil)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	cs := &ClientSession{
		Cookie:     cookie,
		ExternalID: id.ExternalID,
		PlayerID:   playerID,
		SessionID:  sessionID,
		ValidFrom:  validFrom,
		ValidUntil: validUntil,
	}
	s.log.Info("Created session", zap.String("externalId", id.ExternalID), zap.Int32("playerId", playerID), zap.Int32("sessionId", sessionID))

	return cs, message.CreateSessionResponse{
		PlayerID:    playerID,
		SteamID:     id.ExternalID,
		IPAddress:   "",
		SessionData: cs.SessionData(),
		RedirectURL: "",
	}, nil
}

func (s *Service) RestoreSession(ctx context.Context, id identity.Identity, req message.RestoreSessionRequest) (*ClientSession, message.ResponseParams, error) {
	sessionID := req.SessionData.Identifier.ObjectID
	record, err := s.store.GetSession(ctx, sessionID, req.SessionData.Cookie)
	if err != nil {
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}

	cs := &ClientSession{
		Cookie:     record.Cookie,
		ExternalID: id.ExternalID,
		PlayerID:   record.PlayerID,
		SessionID:  record.SessionID,
		ValidFrom:  s.now().Add(-Validity).Unix(),
		ValidUntil: record.ValidUntil,
	}
	s.log.Info("Restored session", zap.String("externalId", id.ExternalID), zap.Int32("playerId", record.PlayerID), zap.Int32("sessionId", record.SessionID))

	return cs, message.RestoreSessionResponse{
		SessionData: cs.SessionData(),
		UnkString:   "",
	}, nil
}
