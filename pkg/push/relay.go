package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/message"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RelayChannel is the Redis pub/sub channel shared by every instance.
const RelayChannel = "waygate:push"

type envelope struct {
	Origin    string `json:"origin"`
	PlayerID  int32  `json:"player_id"`
	Broadcast bool   `json:"broadcast"`
	Payload   []byte `json:"payload"`
}

type RelayParams struct {
	Logger *zap.Logger
}

// Relay extends a Registry across instances. Pushes for players that are not
// online here are published to Redis so the instance holding the player can
// deliver them.
type Relay struct {
	registry *Registry
	client   redis.UniversalClient
	origin   string

	log *zap.Logger
}

func NewRelay(registry *Registry, client redis.UniversalClient, params RelayParams) *Relay {
	origin := uuid.NewString()
	return &Relay{
		registry: registry,
		client:   client,
		origin:   origin,
		log:      obs.DefaultLogger(params.Logger).With(zap.String("component", "push-relay"), zap.String("origin", origin)),
	}
}

func (r *Relay) publish(ctx context.Context, env envelope) error {
	env.Origin = r.origin
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal push envelope: %w", err)
	}
	if err := r.client.Publish(ctx, RelayChannel, data).Err(); err != nil {
		return fmt.Errorf("publish push envelope: %w", err)
	}
	return nil
}

// SendTo delivers locally when the player is connected here and publishes
// otherwise.
func (r *Relay) SendTo(ctx context.Context, playerID int32, frame []byte) error {
	err := r.registry.SendTo(ctx, playerID, frame)
	if !errors.Is(err, ErrNotOnline) {
		return err
	}

	if pubErr := r.publish(ctx, envelope{PlayerID: playerID, Payload: frame}); pubErr != nil {
		return &PushError{Kind: PushErrorKind_SendFailed, PlayerID: playerID, Err: pubErr}
	}
	return nil
}

func (r *Relay) Broadcast(ctx context.Context, frame []byte) error {
	err := r.registry.Broadcast(ctx, frame)
	if pubErr := r.publish(ctx, envelope{Broadcast: true, Payload: frame}); pubErr != nil {
		return multierr.Append(err, &PushError{Kind: PushErrorKind_SendFailed, Err: pubErr})
	}
	return err
}

func (r *Relay) Push(ctx context.Context, playerID int32, params message.PushParams) error {
	frame, err := Frame(params)
	if err != nil {
		return err
	}
	return r.SendTo(ctx, playerID, frame)
}

func (r *Relay) BroadcastPush(ctx context.Context, params message.PushParams) error {
	frame, err := Frame(params)
	if err != nil {
		return err
	}
	return r.Broadcast(ctx, frame)
}

// Run delivers envelopes published by other instances until ctx ends.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, RelayChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", RelayChannel, err)
	}
	r.log.Info("Push relay subscribed")

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			r.deliver(ctx, msg.Payload)
		}
	}
}

func (r *Relay) deliver(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.Warn("Dropping malformed push envelope", zap.Error(err))
		return
	}
	if env.Origin == r.origin {
		return
	}

	if env.Broadcast {
		if err := r.registry.Broadcast(ctx, env.Payload); err != nil {
			r.log.Debug("Relayed broadcast partially failed", zap.Error(err))
		}
		return
	}

	err := r.registry.SendTo(ctx, env.PlayerID, env.Payload)
	switch {
	case err == nil:
		r.log.Debug("Delivered relayed push", zap.Int32("playerId", env.PlayerID))
	case errors.Is(err, ErrNotOnline):
		// Another instance, or nobody, holds this player.
	default:
		r.log.Warn("Failed to deliver relayed push", zap.Int32("playerId", env.PlayerID), zap.Error(err))
	}
}

// PublishBroadcast sends a broadcast push to every instance listening on
// client without needing a local registry.
func PublishBroadcast(ctx context.Context, client redis.UniversalClient, params message.PushParams) error {
	frame, err := Frame(params)
	if err != nil {
		return err
	}
	data, err := json.Marshal(envelope{Origin: "cli-" + uuid.NewString(), Broadcast: true, Payload: frame})
	if err != nil {
		return fmt.Errorf("marshal push envelope: %w", err)
	}
	return client.Publish(ctx, RelayChannel, data).Err()
}
