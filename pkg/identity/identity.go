// Package identity verifies the first-party credentials a game client
// presents when it opens a connection.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Identity is a verified external account.
type Identity struct {
	ExternalID string
}

func (i Identity) String() string {
	return i.ExternalID
}

type Verifier interface {
	Authenticate(ctx context.Context, externalID, ticket string) (Identity, error)
}

type VerifierFunc func(ctx context.Context, externalID, ticket string) (Identity, error)

func (f VerifierFunc) Authenticate(ctx context.Context, externalID, ticket string) (Identity, error) {
	return f(ctx, externalID, ticket)
}

var ErrMissingCredentials = errors.New("missing external id or session ticket")

type RejectedError struct {
	ExternalID string
	Reason     string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("credentials for %s rejected: %s", e.ExternalID, e.Reason)
}

// TrustVerifier accepts any non-empty credentials. Only for development and
// tests.
type TrustVerifier struct{}

func (TrustVerifier) Authenticate(_ context.Context, externalID, ticket string) (Identity, error) {
	if externalID == "" || ticket == "" {
		return Identity{}, ErrMissingCredentials
	}
	return Identity{ExternalID: externalID}, nil
}

type Mode string

const (
	Mode_Steam Mode = "steam"
	Mode_Trust Mode = "trust"
)

type Config struct {
	Mode        Mode
	SteamAPIKey string
	SteamAppID  uint32

	Logger *zap.Logger
}

func New(cfg Config) (Verifier, error) {
	switch cfg.Mode {
	case Mode_Trust:
		if cfg.Logger != nil {
			cfg.Logger.Warn("Identity verification disabled: trusting client supplied credentials")
		}
		return TrustVerifier{}, nil
	case Mode_Steam, "":
		if cfg.SteamAPIKey == "" || cfg.SteamAppID == 0 {
			return nil, errors.New("steam identity mode needs a web api key and app id")
		}
		return NewSteamVerifier(SteamVerifierParams{
			APIKey: cfg.SteamAPIKey,
			AppID:  cfg.SteamAppID,
			Client: &http.Client{Timeout: 10 * time.Second},
		}), nil
	}
	return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
}
