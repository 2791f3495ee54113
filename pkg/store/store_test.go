package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sessamekesh/waygate/pkg/message"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().Format("150405.000000000")

	alice, err := s.AcquirePlayerID(ctx, "alice-"+suffix)
	if err != nil {
		t.Fatalf("AcquirePlayerID() error = %v", err)
	}
	again, err := s.AcquirePlayerID(ctx, "alice-"+suffix)
	if err != nil || again != alice {
		t.Fatalf("AcquirePlayerID() again = (%d, %v), want %d", again, err, alice)
	}
	bob, err := s.AcquirePlayerID(ctx, "bob-"+suffix)
	if err != nil || bob == alice {
		t.Fatalf("AcquirePlayerID(bob) = (%d, %v)", bob, err)
	}

	validUntil := time.Now().Add(time.Hour).Unix()
	sessionID, err := s.CreateSession(ctx, alice, "cookie", validUntil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	record, err := s.GetSession(ctx, sessionID, "cookie")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if record.PlayerID != alice || record.ValidUntil != validUntil {
		t.Fatalf("GetSession() = %+v", record)
	}

	var notFound *SessionNotFoundError
	if _, err := s.GetSession(ctx, sessionID, "wrong"); !errors.As(err, &notFound) {
		t.Fatalf("GetSession(wrong cookie) error = %v, want SessionNotFoundError", err)
	}

	banned, err := s.IsBanned(ctx, "bob-"+suffix)
	if err != nil || banned {
		t.Fatalf("IsBanned() before ban = (%v, %v)", banned, err)
	}
	if err := s.CreateBan(ctx, "bob-"+suffix); err != nil {
		t.Fatalf("CreateBan() error = %v", err)
	}
	if banned, _ := s.IsBanned(ctx, "bob-"+suffix); !banned {
		t.Fatal("IsBanned() after CreateBan = false")
	}
	if err := s.ClearBans(ctx, "bob-"+suffix); err != nil {
		t.Fatalf("ClearBans() error = %v", err)
	}
	if banned, _ := s.IsBanned(ctx, "bob-"+suffix); banned {
		t.Fatal("IsBanned() after ClearBans = true")
	}

	region := int32(time.Now().UnixNano() % 1_000_000)
	id, err := s.CreateBloodMessage(ctx, BloodMessage{
		PlayerID:    alice,
		CharacterID: 3,
		SessionID:   sessionID,
		Data:        []byte{1, 2, 3},
		Area:        message.PlayRegionArea{PlayRegion: region, Area: 10},
	})
	if err != nil {
		t.Fatalf("CreateBloodMessage() error = %v", err)
	}

	if err := s.EvaluateBloodMessage(ctx, id, message.BloodMessageRating_Good); err != nil {
		t.Fatalf("EvaluateBloodMessage() error = %v", err)
	}
	if err := s.EvaluateBloodMessage(ctx, id, message.BloodMessageRating_Bad); err != nil {
		t.Fatalf("EvaluateBloodMessage() error = %v", err)
	}
	if err := s.EvaluateBloodMessage(ctx, id, message.BloodMessageRating_Bad); err != nil {
		t.Fatalf("EvaluateBloodMessage() error = %v", err)
	}

	list, err := s.GetBloodMessages(ctx, []message.PlayRegionArea{{PlayRegion: region}}, BloodMessageListLimit)
	if err != nil {
		t.Fatalf("GetBloodMessages() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("GetBloodMessages() returned %d messages, want 1", len(list))
	}
	got := list[0]
	if got.ID != id || got.RatingGood != 1 || got.RatingBad != 2 || string(got.Data) != "\x01\x02\x03" || got.Area.Area != 10 {
		t.Fatalf("GetBloodMessages()[0] = %+v", got)
	}

	other, err := s.GetBloodMessages(ctx, []message.PlayRegionArea{{PlayRegion: region + 1}}, BloodMessageListLimit)
	if err != nil || len(other) != 0 {
		t.Fatalf("GetBloodMessages(other region) = (%v, %v)", other, err)
	}

	exist, err := s.BloodMessagesExist(ctx, []int32{id, id + 100000})
	if err != nil {
		t.Fatalf("BloodMessagesExist() error = %v", err)
	}
	if len(exist) != 1 || exist[0] != (message.ObjectIdentifier{ObjectID: id, SecondaryID: sessionID}) {
		t.Fatalf("BloodMessagesExist() = %v", exist)
	}

	if removed, err := s.RemoveBloodMessage(ctx, id, bob); err != nil || removed {
		t.Fatalf("RemoveBloodMessage(not owner) = (%v, %v)", removed, err)
	}
	if removed, err := s.RemoveBloodMessage(ctx, id, alice); err != nil || !removed {
		t.Fatalf("RemoveBloodMessage(owner) = (%v, %v)", removed, err)
	}
	if exist, _ := s.BloodMessagesExist(ctx, []int32{id}); len(exist) != 0 {
		t.Fatalf("message still exists after removal: %v", exist)
	}
}

func exerciseWorldContent(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	region := int32(time.Now().UnixNano()%1_000_000) + 2_000_000
	area := message.PlayRegionArea{PlayRegion: region, Area: 7}

	stainID, err := s.CreateBloodstain(ctx, Bloodstain{
		PlayerID:          11,
		SessionID:         21,
		AdvertisementData: []byte("ad"),
		ReplayData:        []byte("replay"),
		Area:              area,
	})
	if err != nil {
		t.Fatalf("CreateBloodstain() error = %v", err)
	}
	stains, err := s.GetBloodstains(ctx, []message.PlayRegionArea{area}, BloodstainListLimit)
	if err != nil || len(stains) != 1 {
		t.Fatalf("GetBloodstains() = (%v, %v), want one entry", stains, err)
	}
	if stains[0].Identifier() != (message.ObjectIdentifier{ObjectID: stainID, SecondaryID: 21}) || string(stains[0].AdvertisementData) != "ad" {
		t.Fatalf("GetBloodstains()[0] = %+v", stains[0])
	}
	if other, err := s.GetBloodstains(ctx, []message.PlayRegionArea{{PlayRegion: region + 1}}, BloodstainListLimit); err != nil || len(other) != 0 {
		t.Fatalf("GetBloodstains(other region) = (%v, %v)", other, err)
	}

	stain, err := s.GetBloodstain(ctx, stainID)
	if err != nil {
		t.Fatalf("GetBloodstain() error = %v", err)
	}
	if string(stain.ReplayData) != "replay" || stain.Area != area {
		t.Fatalf("GetBloodstain() = %+v", stain)
	}
	var notFound *NotFoundError
	if _, err := s.GetBloodstain(ctx, stainID+100000); !errors.As(err, &notFound) {
		t.Fatalf("GetBloodstain(unknown) error = %v, want NotFoundError", err)
	}

	ghostID, err := s.CreateGhostData(ctx, GhostData{
		PlayerID:       11,
		SessionID:      21,
		ReplayData:     []byte("ghost"),
		Area:           area,
		GroupPasswords: []string{"pw1", "pw2"},
	})
	if err != nil {
		t.Fatalf("CreateGhostData() error = %v", err)
	}
	if _, err := s.CreateGhostData(ctx, GhostData{PlayerID: 12, Area: message.PlayRegionArea{PlayRegion: region + 1}}); err != nil {
		t.Fatalf("CreateGhostData() error = %v", err)
	}
	ghosts, err := s.GetGhostData(ctx, []message.PlayRegionArea{area}, GhostDataListLimit)
	if err != nil || len(ghosts) != 1 {
		t.Fatalf("GetGhostData() = (%v, %v), want one entry", ghosts, err)
	}
	g := ghosts[0]
	if g.ID != ghostID || string(g.ReplayData) != "ghost" || len(g.GroupPasswords) != 2 || g.GroupPasswords[1] != "pw2" {
		t.Fatalf("GetGhostData()[0] = %+v", g)
	}

	pool := uint32(time.Now().UnixNano()%1_000_000) + 10
	uploads := []PlayerEquipments{
		{PlayerID: 30, SessionID: 1, PoolType: pool, Data: []byte("old")},
		{PlayerID: 20, SessionID: 2, PoolType: pool, Data: []byte("twenty")},
		{PlayerID: 30, SessionID: 3, PoolType: pool, Data: []byte("new")},
		{PlayerID: 40, SessionID: 4, PoolType: pool + 1, Data: []byte("other pool")},
	}
	for _, u := range uploads {
		if _, err := s.CreatePlayerEquipments(ctx, u); err != nil {
			t.Fatalf("CreatePlayerEquipments() error = %v", err)
		}
	}
	equipments, err := s.GetPlayerEquipments(ctx, pool, PlayerEquipmentsListLimit)
	if err != nil {
		t.Fatalf("GetPlayerEquipments() error = %v", err)
	}
	if len(equipments) != 2 {
		t.Fatalf("GetPlayerEquipments() returned %d entries, want 2", len(equipments))
	}
	if equipments[0].PlayerID != 20 || equipments[1].PlayerID != 30 || string(equipments[1].Data) != "new" {
		t.Fatalf("GetPlayerEquipments() = %+v, want latest per player ordered by player", equipments)
	}
	if capped, _ := s.GetPlayerEquipments(ctx, pool, 1); len(capped) != 1 || capped[0].PlayerID != 20 {
		t.Fatalf("GetPlayerEquipments(limit 1) = %+v", capped)
	}
}

// exerciseRegionMix fills two regions past the list limit and expects a
// query over both to draw from each.
func exerciseRegionMix(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	first := int32(time.Now().UnixNano()%1_000_000) + 3_000_000
	areas := []message.PlayRegionArea{{PlayRegion: first}, {PlayRegion: first + 1}}

	for _, area := range areas {
		for i := 0; i < BloodMessageListLimit; i++ {
			if _, err := s.CreateBloodMessage(ctx, BloodMessage{PlayerID: 1, Area: area}); err != nil {
				t.Fatalf("CreateBloodMessage() error = %v", err)
			}
		}
	}

	list, err := s.GetBloodMessages(ctx, areas, BloodMessageListLimit)
	if err != nil {
		t.Fatalf("GetBloodMessages() error = %v", err)
	}
	if len(list) != BloodMessageListLimit {
		t.Fatalf("GetBloodMessages() returned %d, want %d", len(list), BloodMessageListLimit)
	}
	perRegion := map[int32]int{}
	for _, m := range list {
		perRegion[m.Area.PlayRegion]++
	}
	if perRegion[first] == 0 || perRegion[first+1] == 0 {
		t.Fatalf("GetBloodMessages() per region = %v, want both regions represented", perRegion)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(nil)
	exerciseStore(t, s)
	exerciseWorldContent(t, s)
	exerciseRegionMix(t, s)
}

func TestMemoryStoreSeededBans(t *testing.T) {
	s := NewMemoryStore([]string{"76561197960287930"})
	banned, err := s.IsBanned(context.Background(), "76561197960287930")
	if err != nil || !banned {
		t.Fatalf("IsBanned() = (%v, %v), want true", banned, err)
	}
}

func TestMemoryStoreListLimit(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()
	area := message.PlayRegionArea{PlayRegion: 6100000, Area: 1}
	for i := 0; i < BloodMessageListLimit+10; i++ {
		if _, err := s.CreateBloodMessage(ctx, BloodMessage{PlayerID: 1, Area: area}); err != nil {
			t.Fatalf("CreateBloodMessage() error = %v", err)
		}
	}

	list, err := s.GetBloodMessages(ctx, []message.PlayRegionArea{area}, BloodMessageListLimit)
	if err != nil {
		t.Fatalf("GetBloodMessages() error = %v", err)
	}
	if len(list) != BloodMessageListLimit {
		t.Fatalf("GetBloodMessages() returned %d, want %d", len(list), BloodMessageListLimit)
	}
}

// Set WAYGATE_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run
// against a live server.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("WAYGATE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("WAYGATE_TEST_REDIS_URL not set")
	}

	s, err := NewRedisStore(context.Background(), url)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
	exerciseWorldContent(t, s)
	exerciseRegionMix(t, s)
}

func TestNewStoreRejectsUnknownBackend(t *testing.T) {
	if _, err := NewStore(context.Background(), Config{Backend: "sqlite"}); err == nil {
		t.Fatal("NewStore(sqlite) succeeded")
	}
	s, err := NewStore(context.Background(), Config{Backend: Backend_Memory, Bans: []string{"x"}})
	if err != nil {
		t.Fatalf("NewStore(memory) error = %v", err)
	}
	if banned, _ := s.IsBanned(context.Background(), "x"); !banned {
		t.Fatal("NewStore did not seed bans")
	}
}
