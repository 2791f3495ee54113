// Package push routes server initiated messages to the connections of
// online players.
package push

import (
	"context"
	"sync"

	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/wire"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Frame builds the plaintext push envelope: payload type, a reserved zero
// byte, then the encoded params.
func Frame(params message.PushParams) ([]byte, error) {
	buf := []byte{byte(message.PayloadType_Push), 0x00}
	buf, err := wire.Append(buf, params)
	if err != nil {
		return nil, &PushError{Kind: PushErrorKind_Wire, Err: err}
	}
	return buf, nil
}

type RegistryParams struct {
	Logger *zap.Logger
}

// Registry maps player ids to the push handle of their live connection.
type Registry struct {
	mut_handles sync.RWMutex
	handles     map[int32]*Handle

	log *zap.Logger
}

func NewRegistry(params RegistryParams) *Registry {
	return &Registry{
		handles: make(map[int32]*Handle),
		log:     obs.DefaultLogger(params.Logger).With(zap.String("component", "push")),
	}
}

// Register makes handle the delivery target for playerID, replacing any
// previous connection of the same player.
func (r *Registry) Register(playerID int32, handle *Handle) {
	r.mut_handles.Lock()
	defer r.mut_handles.Unlock()

	if r.handles == nil {
		r.handles = make(map[int32]*Handle)
	}
	r.handles[playerID] = handle
}

// Remove drops playerID only while handle is still the registered one, so
// a stale connection closing cannot unregister its replacement.
func (r *Registry) Remove(playerID int32, handle *Handle) {
	r.mut_handles.Lock()
	defer r.mut_handles.Unlock()

	if current, has := r.handles[playerID]; has && current == handle {
		delete(r.handles, playerID)
	}
}

func (r *Registry) lookup(playerID int32) (*Handle, bool) {
	r.mut_handles.RLock()
	defer r.mut_handles.RUnlock()

	handle, has := r.handles[playerID]
	return handle, has
}

func (r *Registry) snapshot() map[int32]*Handle {
	r.mut_handles.RLock()
	defer r.mut_handles.RUnlock()

	out := make(map[int32]*Handle, len(r.handles))
	for playerID, handle := range r.handles {
		out[playerID] = handle
	}
	return out
}

func (r *Registry) Online() int {
	r.mut_handles.RLock()
	defer r.mut_handles.RUnlock()
	return len(r.handles)
}

// SendTo queues a pre-framed push for one player. It blocks while that
// player's queue is full.
func (r *Registry) SendTo(ctx context.Context, playerID int32, frame []byte) error {
	handle, has := r.lookup(playerID)
	if !has {
		obs.PushesTotal.WithLabelValues("not_online").Inc()
		return &PushError{Kind: PushErrorKind_NotOnline, PlayerID: playerID}
	}

	if err := handle.send(ctx, frame); err != nil {
		obs.PushesTotal.WithLabelValues("failed").Inc()
		return &PushError{Kind: PushErrorKind_SendFailed, PlayerID: playerID, Err: err}
	}

	obs.PushesTotal.WithLabelValues("delivered").Inc()
	return nil
}

// Broadcast queues frame for every online player. Every player is
// attempted; failures are combined.
func (r *Registry) Broadcast(ctx context.Context, frame []byte) error {
	var errs error
	for playerID, handle := range r.snapshot() {
		if err := handle.send(ctx, frame); err != nil {
			obs.PushesTotal.WithLabelValues("failed").Inc()
			errs = multierr.Append(errs, &PushError{Kind: PushErrorKind_SendFailed, PlayerID: playerID, Err: err})
			continue
		}
		obs.PushesTotal.WithLabelValues("delivered").Inc()
	}

	if errs != nil {
		r.log.Warn("Broadcast partially failed", zap.Int("failures", len(multierr.Errors(errs))), zap.Error(errs))
	}
	return errs
}

func (r *Registry) Push(ctx context.Context, playerID int32, params message.PushParams) error {
	frame, err := Frame(params)
	if err != nil {
		return err
	}
	return r.SendTo(ctx, playerID, frame)
}

func (r *Registry) BroadcastPush(ctx context.Context, params message.PushParams) error {
	frame, err := Frame(params)
	if err != nil {
		return err
	}
	return r.Broadcast(ctx, frame)
}
