// Package session holds the per-player session handle shared between the
// connection loop and request handlers.
package session

import (
	"sync"

	"github.com/sessamekesh/waygate/pkg/message"
)

// CharacterMatching is the slice of character state used to pair players.
type CharacterMatching struct {
	Level             uint32
	MaxReinforceLevel uint32
	PlayRegion        uint32
}

func MatchingFromStatus(status *message.UpdatePlayerStatusRequest) *CharacterMatching {
	return &CharacterMatching{
		Level:             status.Character.Level,
		MaxReinforceLevel: status.Character.MaxReinforceLevel,
		PlayRegion:        status.PlayRegion,
	}
}

// GameSession is mutable in-game state reported by the client.
type GameSession struct {
	Invadeable bool
	Matching   *CharacterMatching
}

type ClientSession struct {
	Cookie     string
	ExternalID string
	PlayerID   int32
	SessionID  int32
	ValidFrom  int64
	ValidUntil int64

	mut_game sync.RWMutex
	game     GameSession
}

// GameSession returns a copy of the current game state.
func (s *ClientSession) GameSession() GameSession {
	s.mut_game.RLock()
	defer s.mut_game.RUnlock()

	out := s.game
	if s.game.Matching != nil {
		m := *s.game.Matching
		out.Matching = &m
	}
	return out
}

// UpdateGameSession applies fn under the write lock.
func (s *ClientSession) UpdateGameSession(fn func(game *GameSession)) {
	s.mut_game.Lock()
	defer s.mut_game.Unlock()
	fn(&s.game)
}

func (s *ClientSession) SessionData() message.SessionData {
	return message.SessionData{
		Identifier: message.ObjectIdentifier{ObjectID: s.SessionID, SecondaryID: 0},
		ValidFrom:  s.ValidFrom,
		ValidUntil: s.ValidUntil,
		Cookie:     s.Cookie,
	}
}
