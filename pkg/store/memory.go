package store

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/sessamekesh/waygate/pkg/message"
)

type MemoryStore struct {
	mut sync.RWMutex

	nextPlayerID  int32
	nextSessionID int32
	nextMessageID int32
	nextStainID   int32
	nextGhostID   int32
	nextEquipID   int32

	players       map[string]int32
	sessions      map[int32]SessionRecord
	bans          map[string]struct{}
	bloodMessages map[int32]*BloodMessage
	bloodstains   map[int32]*Bloodstain
	ghosts        map[int32]*GhostData
	equipments    map[int32]*PlayerEquipments
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(bans []string) *MemoryStore {
	s := &MemoryStore{
		players:       make(map[string]int32),
		sessions:      make(map[int32]SessionRecord),
		bans:          make(map[string]struct{}),
		bloodMessages: make(map[int32]*BloodMessage),
		bloodstains:   make(map[int32]*Bloodstain),
		ghosts:        make(map[int32]*GhostData),
		equipments:    make(map[int32]*PlayerEquipments),
	}
	for _, b := range bans {
		s.bans[b] = struct{}{}
	}
	return s
}

func (s *MemoryStore) AcquirePlayerID(_ context.Context, externalID string) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if id, has := s.players[externalID]; has {
		return id, nil
	}
	s.nextPlayerID++
	s.players[externalID] = s.nextPlayerID
	return s.nextPlayerID, nil
}

func (s *MemoryStore) CreateSession(_ context.Context, playerID int32, cookie string, validUntil int64) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextSessionID++
	s.sessions[s.nextSessionID] = SessionRecord{
		SessionID:  s.nextSessionID,
		PlayerID:   playerID,
		Cookie:     cookie,
		ValidUntil: validUntil,
	}
	return s.nextSessionID, nil
}

func (s *MemoryStore) GetSession(_ context.Context, sessionID int32, cookie string) (*SessionRecord, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	record, has := s.sessions[sessionID]
	if !has || record.Cookie != cookie {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}
	return &record, nil
}

func (s *MemoryStore) IsBanned(_ context.Context, externalID string) (bool, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	_, banned := s.bans[externalID]
	return banned, nil
}

func (s *MemoryStore) CreateBan(_ context.Context, externalID string) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.bans[externalID] = struct{}{}
	return nil
}

func (s *MemoryStore) ClearBans(_ context.Context, externalID string) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	delete(s.bans, externalID)
	return nil
}

func (s *MemoryStore) CreateBloodMessage(_ context.Context, msg BloodMessage) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextMessageID++
	msg.ID = s.nextMessageID
	msg.RatingGood = 0
	msg.RatingBad = 0
	msg.Data = append([]byte(nil), msg.Data...)
	s.bloodMessages[msg.ID] = &msg
	return msg.ID, nil
}

func (s *MemoryStore) GetBloodMessages(_ context.Context, areas []message.PlayRegionArea, limit int) ([]BloodMessage, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	regions := playRegions(areas)
	out := []BloodMessage{}
	for _, msg := range s.bloodMessages {
		if _, has := regions[msg.Area.PlayRegion]; has {
			out = append(out, *msg)
		}
	}

	return sample(out, limit), nil
}

// sample shuffles items and keeps at most limit of them.
func sample[T any](items []T, limit int) []T {
	rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (s *MemoryStore) EvaluateBloodMessage(_ context.Context, id int32, rating message.BloodMessageRating) error {
	s.mut.Lock()
	defer s.mut.Unlock()

	msg, has := s.bloodMessages[id]
	if !has {
		return nil
	}
	if rating == message.BloodMessageRating_Good {
		msg.RatingGood++
	} else {
		msg.RatingBad++
	}
	return nil
}

func (s *MemoryStore) RemoveBloodMessage(_ context.Context, id int32, playerID int32) (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	msg, has := s.bloodMessages[id]
	if !has || msg.PlayerID != playerID {
		return false, nil
	}
	delete(s.bloodMessages, id)
	return true, nil
}

func (s *MemoryStore) BloodMessagesExist(_ context.Context, ids []int32) ([]message.ObjectIdentifier, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	out := []message.ObjectIdentifier{}
	for _, id := range ids {
		if msg, has := s.bloodMessages[id]; has {
			out = append(out, msg.Identifier())
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateBloodstain(_ context.Context, stain Bloodstain) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextStainID++
	stain.ID = s.nextStainID
	stain.AdvertisementData = append([]byte(nil), stain.AdvertisementData...)
	stain.ReplayData = append([]byte(nil), stain.ReplayData...)
	s.bloodstains[stain.ID] = &stain
	return stain.ID, nil
}

func (s *MemoryStore) GetBloodstains(_ context.Context, areas []message.PlayRegionArea, limit int) ([]Bloodstain, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	regions := playRegions(areas)
	out := []Bloodstain{}
	for _, stain := range s.bloodstains {
		if _, has := regions[stain.Area.PlayRegion]; has {
			out = append(out, *stain)
		}
	}
	return sample(out, limit), nil
}

func (s *MemoryStore) GetBloodstain(_ context.Context, id int32) (*Bloodstain, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	stain, has := s.bloodstains[id]
	if !has {
		return nil, &NotFoundError{Kind: "bloodstain", ID: id}
	}
	out := *stain
	return &out, nil
}

func (s *MemoryStore) CreateGhostData(_ context.Context, ghost GhostData) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextGhostID++
	ghost.ID = s.nextGhostID
	ghost.ReplayData = append([]byte(nil), ghost.ReplayData...)
	ghost.GroupPasswords = append([]string{}, ghost.GroupPasswords...)
	s.ghosts[ghost.ID] = &ghost
	return ghost.ID, nil
}

func (s *MemoryStore) GetGhostData(_ context.Context, areas []message.PlayRegionArea, limit int) ([]GhostData, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	regions := playRegions(areas)
	out := []GhostData{}
	for _, ghost := range s.ghosts {
		if _, has := regions[ghost.Area.PlayRegion]; has {
			out = append(out, *ghost)
		}
	}
	return sample(out, limit), nil
}

func (s *MemoryStore) CreatePlayerEquipments(_ context.Context, equipments PlayerEquipments) (int32, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.nextEquipID++
	equipments.ID = s.nextEquipID
	equipments.Data = append([]byte(nil), equipments.Data...)
	s.equipments[equipments.ID] = &equipments
	return equipments.ID, nil
}

func (s *MemoryStore) GetPlayerEquipments(_ context.Context, poolType uint32, limit int) ([]PlayerEquipments, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	latest := map[int32]*PlayerEquipments{}
	for _, e := range s.equipments {
		if e.PoolType != poolType {
			continue
		}
		if prev, has := latest[e.PlayerID]; !has || e.ID > prev.ID {
			latest[e.PlayerID] = e
		}
	}

	out := make([]PlayerEquipments, 0, len(latest))
	for _, e := range latest {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
func (s *MemoryStore) Close() error                { return nil }
