package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sessamekesh/waygate/pkg/message"
)

const keyPrefix = "waygate:"

func key(parts ...string) string {
	k := keyPrefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func idKey(kind string, id int32) string {
	return key(kind, strconv.FormatInt(int64(id), 10))
}

var (
	playerSeqKey  = key("seq", "player")
	sessionSeqKey = key("seq", "session")
	messageSeqKey = key("seq", "bloodmessage")
	stainSeqKey   = key("seq", "bloodstain")
	ghostSeqKey   = key("seq", "ghostdata")
	equipSeqKey   = key("seq", "equipments")
	playersKey    = key("players")
	bansKey       = key("bans")
)

func regionKey(playRegion int32) string {
	return contentRegionKey("bloodmessages", playRegion)
}

func contentRegionKey(collection string, playRegion int32) string {
	return key(collection, "region", strconv.FormatInt(int64(playRegion), 10))
}

func poolKey(poolType uint32) string {
	return key("equipments", "pool", strconv.FormatUint(uint64(poolType), 10))
}

// RedisStore keeps every record in Redis so several server instances can
// share players and sessions.
type RedisStore struct {
	client redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return NewRedisStoreFromClient(rdb), nil
}

func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Client() redis.UniversalClient {
	return s.client
}

func (s *RedisStore) AcquirePlayerID(ctx context.Context, externalID string) (int32, error) {
	existing, err := s.client.HGet(ctx, playersKey, externalID).Int()
	if err == nil {
		return int32(existing), nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("lookup player: %w", err)
	}

	next, err := s.client.Incr(ctx, playerSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate player id: %w", err)
	}
	created, err := s.client.HSetNX(ctx, playersKey, externalID, next).Result()
	if err != nil {
		return 0, fmt.Errorf("create player: %w", err)
	}
	if created {
		return int32(next), nil
	}

	// Lost a race with another instance; use its id.
	existing, err = s.client.HGet(ctx, playersKey, externalID).Int()
	if err != nil {
		return 0, fmt.Errorf("lookup player: %w", err)
	}
	return int32(existing), nil
}

func (s *RedisStore) CreateSession(ctx context.Context, playerID int32, cookie string, validUntil int64) (int32, error) {
	next, err := s.client.Incr(ctx, sessionSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate session id: %w", err)
	}
	id := int32(next)
	k := idKey("session", id)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, map[string]interface{}{
		"player_id":   playerID,
		"cookie":      cookie,
		"valid_until": validUntil,
	})
	pipe.ExpireAt(ctx, k, time.Unix(validUntil, 0))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetSession(ctx context.Context, sessionID int32, cookie string) (*SessionRecord, error) {
	fields, err := s.client.HGetAll(ctx, idKey("session", sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 || fields["cookie"] != cookie {
		return nil, &SessionNotFoundError{SessionID: sessionID}
	}

	playerID, err := strconv.ParseInt(fields["player_id"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("session %d player_id: %w", sessionID, err)
	}
	validUntil, err := strconv.ParseInt(fields["valid_until"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session %d valid_until: %w", sessionID, err)
	}

	return &SessionRecord{
		SessionID:  sessionID,
		PlayerID:   int32(playerID),
		Cookie:     cookie,
		ValidUntil: validUntil,
	}, nil
}

func (s *RedisStore) IsBanned(ctx context.Context, externalID string) (bool, error) {
	banned, err := s.client.SIsMember(ctx, bansKey, externalID).Result()
	if err != nil {
		return false, fmt.Errorf("check ban: %w", err)
	}
	return banned, nil
}

func (s *RedisStore) CreateBan(ctx context.Context, externalID string) error {
	return s.client.SAdd(ctx, bansKey, externalID).Err()
}

func (s *RedisStore) ClearBans(ctx context.Context, externalID string) error {
	return s.client.SRem(ctx, bansKey, externalID).Err()
}

func (s *RedisStore) CreateBloodMessage(ctx context.Context, msg BloodMessage) (int32, error) {
	next, err := s.client.Incr(ctx, messageSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate blood message id: %w", err)
	}
	id := int32(next)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, idKey("bloodmessage", id), map[string]interface{}{
		"player_id":    msg.PlayerID,
		"character_id": msg.CharacterID,
		"session_id":   msg.SessionID,
		"rating_good":  0,
		"rating_bad":   0,
		"data":         msg.Data,
		"area":         msg.Area.Area,
		"play_region":  msg.Area.PlayRegion,
	})
	pipe.SAdd(ctx, regionKey(msg.Area.PlayRegion), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store blood message: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetBloodMessages(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]BloodMessage, error) {
	if limit <= 0 {
		limit = BloodMessageListLimit
	}
	ids, err := s.sampleRegions(ctx, "bloodmessages", areas, limit)
	if err != nil {
		return nil, fmt.Errorf("list blood messages: %w", err)
	}
	return s.loadBloodMessages(ctx, ids)
}

// sampleRegions draws up to limit random member ids across the region sets
// of a collection.
func (s *RedisStore) sampleRegions(ctx context.Context, collection string, areas []message.PlayRegionArea, limit int) ([]string, error) {
	pipe := s.client.Pipeline()
	cmds := []*redis.StringSliceCmd{}
	for region := range playRegions(areas) {
		cmds = append(cmds, pipe.SRandMemberN(ctx, contentRegionKey(collection, region), int64(limit)))
	}
	if len(cmds) == 0 {
		return []string{}, nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	ids := []string{}
	for _, cmd := range cmds {
		ids = append(ids, cmd.Val()...)
	}
	// Each region contributed up to limit ids; mix before cutting so no
	// region crowds out the rest.
	return sample(ids, limit), nil
}

// loadHashes fetches the hashes of a collection in one round trip. Missing
// records are skipped.
func (s *RedisStore) loadHashes(ctx context.Context, kind string, ids []string) ([]string, []map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, key(kind, id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", kind, err)
	}

	foundIDs := make([]string, 0, len(ids))
	found := make([]map[string]string, 0, len(ids))
	for i, cmd := range cmds {
		if fields := cmd.Val(); len(fields) > 0 {
			foundIDs = append(foundIDs, ids[i])
			found = append(found, fields)
		}
	}
	return foundIDs, found, nil
}

func parseInt32Fields(kind, id string, fields map[string]string, names ...string) (map[string]int32, error) {
	ints := make(map[string]int32, len(names)+1)
	for _, name := range names {
		v, err := strconv.ParseInt(fields[name], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s %s field %s: %w", kind, id, name, err)
		}
		ints[name] = int32(v)
	}
	parsedID, err := strconv.ParseInt(id, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%s id %q: %w", kind, id, err)
	}
	ints["id"] = int32(parsedID)
	return ints, nil
}

func (s *RedisStore) loadBloodMessages(ctx context.Context, ids []string) ([]BloodMessage, error) {
	found, records, err := s.loadHashes(ctx, "bloodmessage", ids)
	if err != nil {
		return nil, err
	}

	out := make([]BloodMessage, 0, len(records))
	for i, fields := range records {
		ints, err := parseInt32Fields("blood message", found[i], fields,
			"player_id", "character_id", "session_id", "rating_good", "rating_bad", "area", "play_region")
		if err != nil {
			return nil, err
		}
		out = append(out, BloodMessage{
			ID:          ints["id"],
			PlayerID:    ints["player_id"],
			CharacterID: ints["character_id"],
			SessionID:   ints["session_id"],
			RatingGood:  ints["rating_good"],
			RatingBad:   ints["rating_bad"],
			Data:        []byte(fields["data"]),
			Area:        message.PlayRegionArea{PlayRegion: ints["play_region"], Area: ints["area"]},
		})
	}
	return out, nil
}

func (s *RedisStore) EvaluateBloodMessage(ctx context.Context, id int32, rating message.BloodMessageRating) error {
	k := idKey("bloodmessage", id)
	exists, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("evaluate blood message: %w", err)
	}
	if exists == 0 {
		return nil
	}

	field := "rating_bad"
	if rating == message.BloodMessageRating_Good {
		field = "rating_good"
	}
	return s.client.HIncrBy(ctx, k, field, 1).Err()
}

func (s *RedisStore) RemoveBloodMessage(ctx context.Context, id int32, playerID int32) (bool, error) {
	k := idKey("bloodmessage", id)
	fields, err := s.client.HMGet(ctx, k, "player_id", "play_region").Result()
	if err != nil {
		return false, fmt.Errorf("load blood message: %w", err)
	}
	owner, _ := fields[0].(string)
	region, _ := fields[1].(string)
	if owner == "" || owner != strconv.FormatInt(int64(playerID), 10) {
		return false, nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, k)
	pipe.SRem(ctx, key("bloodmessages", "region", region), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("remove blood message: %w", err)
	}
	return true, nil
}

func (s *RedisStore) BloodMessagesExist(ctx context.Context, ids []int32) ([]message.ObjectIdentifier, error) {
	if len(ids) == 0 {
		return []message.ObjectIdentifier{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGet(ctx, idKey("bloodmessage", id), "session_id")
	}
	// Missing messages surface as redis.Nil on their own command.
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("check blood messages: %w", err)
	}

	out := []message.ObjectIdentifier{}
	for i, cmd := range cmds {
		sessionID, err := cmd.Int()
		if err != nil {
			continue
		}
		out = append(out, message.ObjectIdentifier{ObjectID: ids[i], SecondaryID: int32(sessionID)})
	}
	return out, nil
}

func (s *RedisStore) CreateBloodstain(ctx context.Context, stain Bloodstain) (int32, error) {
	next, err := s.client.Incr(ctx, stainSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate bloodstain id: %w", err)
	}
	id := int32(next)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, idKey("bloodstain", id), map[string]interface{}{
		"player_id":          stain.PlayerID,
		"session_id":         stain.SessionID,
		"advertisement_data": stain.AdvertisementData,
		"replay_data":        stain.ReplayData,
		"area":               stain.Area.Area,
		"play_region":        stain.Area.PlayRegion,
	})
	pipe.SAdd(ctx, contentRegionKey("bloodstains", stain.Area.PlayRegion), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store bloodstain: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetBloodstains(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]Bloodstain, error) {
	if limit <= 0 {
		limit = BloodstainListLimit
	}
	ids, err := s.sampleRegions(ctx, "bloodstains", areas, limit)
	if err != nil {
		return nil, fmt.Errorf("list bloodstains: %w", err)
	}
	return s.loadBloodstains(ctx, ids)
}

func (s *RedisStore) GetBloodstain(ctx context.Context, id int32) (*Bloodstain, error) {
	stains, err := s.loadBloodstains(ctx, []string{strconv.FormatInt(int64(id), 10)})
	if err != nil {
		return nil, err
	}
	if len(stains) == 0 {
		return nil, &NotFoundError{Kind: "bloodstain", ID: id}
	}
	return &stains[0], nil
}

func (s *RedisStore) loadBloodstains(ctx context.Context, ids []string) ([]Bloodstain, error) {
	found, records, err := s.loadHashes(ctx, "bloodstain", ids)
	if err != nil {
		return nil, err
	}

	out := make([]Bloodstain, 0, len(records))
	for i, fields := range records {
		ints, err := parseInt32Fields("bloodstain", found[i], fields, "player_id", "session_id", "area", "play_region")
		if err != nil {
			return nil, err
		}
		out = append(out, Bloodstain{
			ID:                ints["id"],
			PlayerID:          ints["player_id"],
			SessionID:         ints["session_id"],
			AdvertisementData: []byte(fields["advertisement_data"]),
			ReplayData:        []byte(fields["replay_data"]),
			Area:              message.PlayRegionArea{PlayRegion: ints["play_region"], Area: ints["area"]},
		})
	}
	return out, nil
}

func ghostPasswordsKey(id string) string {
	return key("ghostdata", id, "passwords")
}

func (s *RedisStore) CreateGhostData(ctx context.Context, ghost GhostData) (int32, error) {
	next, err := s.client.Incr(ctx, ghostSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate ghost data id: %w", err)
	}
	id := int32(next)
	idStr := strconv.FormatInt(next, 10)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key("ghostdata", idStr), map[string]interface{}{
		"player_id":   ghost.PlayerID,
		"session_id":  ghost.SessionID,
		"replay_data": ghost.ReplayData,
		"area":        ghost.Area.Area,
		"play_region": ghost.Area.PlayRegion,
	})
	if len(ghost.GroupPasswords) > 0 {
		passwords := make([]interface{}, len(ghost.GroupPasswords))
		for i, p := range ghost.GroupPasswords {
			passwords[i] = p
		}
		pipe.RPush(ctx, ghostPasswordsKey(idStr), passwords...)
	}
	pipe.SAdd(ctx, contentRegionKey("ghostdata", ghost.Area.PlayRegion), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store ghost data: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetGhostData(ctx context.Context, areas []message.PlayRegionArea, limit int) ([]GhostData, error) {
	if limit <= 0 {
		limit = GhostDataListLimit
	}
	ids, err := s.sampleRegions(ctx, "ghostdata", areas, limit)
	if err != nil {
		return nil, fmt.Errorf("list ghost data: %w", err)
	}

	found, records, err := s.loadHashes(ctx, "ghostdata", ids)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return []GhostData{}, nil
	}

	pipe := s.client.Pipeline()
	passwordCmds := make([]*redis.StringSliceCmd, len(found))
	for i, id := range found {
		passwordCmds[i] = pipe.LRange(ctx, ghostPasswordsKey(id), 0, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("load ghost data passwords: %w", err)
	}

	out := make([]GhostData, 0, len(records))
	for i, fields := range records {
		ints, err := parseInt32Fields("ghost data", found[i], fields, "player_id", "session_id", "area", "play_region")
		if err != nil {
			return nil, err
		}
		out = append(out, GhostData{
			ID:             ints["id"],
			PlayerID:       ints["player_id"],
			SessionID:      ints["session_id"],
			ReplayData:     []byte(fields["replay_data"]),
			Area:           message.PlayRegionArea{PlayRegion: ints["play_region"], Area: ints["area"]},
			GroupPasswords: append([]string{}, passwordCmds[i].Val()...),
		})
	}
	return out, nil
}

func (s *RedisStore) CreatePlayerEquipments(ctx context.Context, equipments PlayerEquipments) (int32, error) {
	next, err := s.client.Incr(ctx, equipSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate equipments id: %w", err)
	}
	id := int32(next)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, idKey("equipments", id), map[string]interface{}{
		"player_id":  equipments.PlayerID,
		"session_id": equipments.SessionID,
		"pool":       equipments.PoolType,
		"data":       equipments.Data,
	})
	// Ids only grow, so the pool index always points at the newest upload.
	pipe.HSet(ctx, poolKey(equipments.PoolType), strconv.FormatInt(int64(equipments.PlayerID), 10), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("store equipments: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetPlayerEquipments(ctx context.Context, poolType uint32, limit int) ([]PlayerEquipments, error) {
	if limit <= 0 {
		limit = PlayerEquipmentsListLimit
	}

	latest, err := s.client.HGetAll(ctx, poolKey(poolType)).Result()
	if err != nil {
		return nil, fmt.Errorf("list equipments: %w", err)
	}

	type entry struct {
		playerID int64
		id       string
	}
	entries := make([]entry, 0, len(latest))
	for player, id := range latest {
		playerID, err := strconv.ParseInt(player, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("equipments pool %d player %q: %w", poolType, player, err)
		}
		entries = append(entries, entry{playerID: playerID, id: id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].playerID < entries[j].playerID })
	if len(entries) > limit {
		entries = entries[:limit]
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	found, records, err := s.loadHashes(ctx, "equipments", ids)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerEquipments, 0, len(records))
	for i, fields := range records {
		ints, err := parseInt32Fields("equipments", found[i], fields, "player_id", "session_id")
		if err != nil {
			return nil, err
		}
		out = append(out, PlayerEquipments{
			ID:        ints["id"],
			PlayerID:  ints["player_id"],
			SessionID: ints["session_id"],
			PoolType:  poolType,
			Data:      []byte(fields["data"]),
		})
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
