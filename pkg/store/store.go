// Package store persists players, sessions, bans and player-authored world
// content. Memory and Redis backends are provided.
package store

import (
	"context"
	"fmt"

	"github.com/sessamekesh/waygate/pkg/message"
)

// List limits applied by the world content queries.
const (
	BloodMessageListLimit     = 64
	BloodstainListLimit       = 64
	GhostDataListLimit        = 64
	PlayerEquipmentsListLimit = 64
)

type SessionRecord struct {
	SessionID  int32
	PlayerID   int32
	Cookie     string
	ValidUntil int64
}

type BloodMessage struct {
	ID          int32
	PlayerID    int32
	CharacterID int32
	SessionID   int32
	RatingGood  int32
	RatingBad   int32
	Data        []byte
	Area        message.PlayRegionArea
}

func (m *BloodMessage) Identifier() message.ObjectIdentifier {
	return message.ObjectIdentifier{ObjectID: m.ID, SecondaryID: m.SessionID}
}

type Bloodstain struct {
	ID                int32
	PlayerID          int32
	SessionID         int32
	AdvertisementData []byte
	ReplayData        []byte
	Area              message.PlayRegionArea
}

func (b *Bloodstain) Identifier() message.ObjectIdentifier {
	return message.ObjectIdentifier{ObjectID: b.ID, SecondaryID: b.SessionID}
}

type GhostData struct {
	ID             int32
	PlayerID       int32
	SessionID      int32
	ReplayData     []byte
	Area           message.PlayRegionArea
	GroupPasswords []string
}

func (g *GhostData) Identifier() message.ObjectIdentifier {
	return message.ObjectIdentifier{ObjectID: g.ID, SecondaryID: g.SessionID}
}

// PlayerEquipments is one uploaded loadout snapshot in a matchmaking pool.
type PlayerEquipments struct {
	ID        int32
	PlayerID  int32
	SessionID int32
	PoolType  uint32
	Data      []byte
}

type Store interface {
	// AcquirePlayerID returns the player id bound to externalID, creating
	// the player on first sight.
	AcquirePlayerID(ctx context.Context, externalID string) (int32, error)
	CreateSession(ctx context.Context, playerID int32, cookie string, validUntil int64) (int32, error)
	// GetSession fails with *SessionNotFoundError unless both id and cookie
	// match.
	GetSession(ctx context.Context, sessionID int32, cookie string) (*SessionRecord, error)

	IsBanned(ctx context.Context, externalID string) (bool, error)
	CreateBan(ctx context.Context, externalID string) error
	ClearBans(ctx context.Context, externalID string) error

	CreateBloodMessage(ctx context.Context, msg BloodMessage) (int32, error)
	// GetBloodMessages returns up to limit messages from any of the given
	// play regions in no particular order.
	GetBloodMessages(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]BloodMessage, error)
	EvaluateBloodMessage(ctx context.Context, id int32, rating message.BloodMessageRating) error
	// RemoveBloodMessage deletes the message only if playerID authored it.
	RemoveBloodMessage(ctx context.Context, id int32, playerID int32) (bool, error)
	// BloodMessagesExist filters ids down to messages that still exist.
	BloodMessagesExist(ctx context.Context, ids []int32) ([]message.ObjectIdentifier, error)

	CreateBloodstain(ctx context.Context, stain Bloodstain) (int32, error)
	GetBloodstains(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]Bloodstain, error)
	// GetBloodstain fails with *NotFoundError for unknown ids.
	GetBloodstain(ctx context.Context, id int32) (*Bloodstain, error)

	CreateGhostData(ctx context.Context, ghost GhostData) (int32, error)
	GetGhostData(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]GhostData, error)

	CreatePlayerEquipments(ctx context.Context, equipments PlayerEquipments) (int32, error)
	// GetPlayerEquipments returns the latest upload of each player in the
	// pool, ordered by player id.
	GetPlayerEquipments(ctx context.Context, poolType uint32, limit int) ([]PlayerEquipments, error)

	Ping(ctx context.Context) error
	Close() error
}

type SessionNotFoundError struct {
	SessionID int32
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %d not found or cookie mismatch", e.SessionID)
}

type NotFoundError struct {
	Kind string
	ID   int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

type Backend string

const (
	Backend_Memory Backend = "memory"
	Backend_Redis  Backend = "redis"
)

type Config struct {
	Backend  Backend
	RedisURL string
	// Seeds the memory backend's ban list.
	Bans []string
}

// NewStore builds the configured backend.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case Backend_Memory, "":
		return NewMemoryStore(cfg.Bans), nil
	case Backend_Redis:
		s, err := NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		for _, ban := range cfg.Bans {
			if err := s.CreateBan(ctx, ban); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("seed ban %q: %w", ban, err)
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func playRegions(areas []message.PlayRegionArea) map[int32]struct{} {
	out := make(map[int32]struct{}, len(areas))
	for _, a := range areas {
		out[a.PlayRegion] = struct{}{}
	}
	return out
}
