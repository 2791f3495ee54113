package internal

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type MissingConnectionIdError struct {
	Id uint32
}

func (e *MissingConnectionIdError) Error() string {
	return fmt.Sprintf("Missing connection with id=%d", e.Id)
}

type TooManyConnectionsError struct {
	Max int
}

func (e *TooManyConnectionsError) Error() string {
	return fmt.Sprintf("Too many clients are connected (max %d) - cannot accept new connection", e.Max)
}

type ConnectionMetadata struct {
	Id            uint32
	PeerAddress   string
	ExternalId    string
	PlayerId      int32
	Authenticated bool
	OpenedAt      time.Time
}

// ConnectionStore tracks live game connections so the server can enforce a
// connection limit and report who is online.
type ConnectionStore struct {
	MaxConnections int

	nextConnectionId atomic.Uint32

	mut_connections sync.RWMutex
	connections     map[uint32]*ConnectionMetadata
}

// A maxConnections of zero or less means unlimited.
func CreateConnectionStore(maxConnections int) *ConnectionStore {
	return &ConnectionStore{
		MaxConnections:  maxConnections,
		mut_connections: sync.RWMutex{},
		connections:     make(map[uint32]*ConnectionMetadata),
	}
}

func (store *ConnectionStore) Open(peerAddress string, now time.Time) (uint32, error) {
	store.mut_connections.Lock()
	defer store.mut_connections.Unlock()

	if store.MaxConnections > 0 && len(store.connections) >= store.MaxConnections {
		return 0, &TooManyConnectionsError{Max: store.MaxConnections}
	}

	id := store.nextConnectionId.Add(1)
	store.connections[id] = &ConnectionMetadata{
		Id:          id,
		PeerAddress: peerAddress,
		OpenedAt:    now,
	}
	return id, nil
}

func (store *ConnectionStore) Remove(id uint32) {
	store.mut_connections.Lock()
	defer store.mut_connections.Unlock()
	delete(store.connections, id)
}

func (store *ConnectionStore) SetExternalId(id uint32, externalId string) error {
	store.mut_connections.Lock()
	defer store.mut_connections.Unlock()

	connection, has := store.connections[id]
	if !has {
		return &MissingConnectionIdError{Id: id}
	}

	connection.ExternalId = externalId
	return nil
}

func (store *ConnectionStore) Authenticate(id uint32, playerId int32) error {
	store.mut_connections.Lock()
	defer store.mut_connections.Unlock()

	connection, has := store.connections[id]
	if !has {
		return &MissingConnectionIdError{Id: id}
	}

	connection.PlayerId = playerId
	connection.Authenticated = true
	return nil
}

func (store *ConnectionStore) Count() int {
	store.mut_connections.RLock()
	defer store.mut_connections.RUnlock()
	return len(store.connections)
}

// Snapshot copies the metadata of every live connection.
func (store *ConnectionStore) Snapshot() []ConnectionMetadata {
	store.mut_connections.RLock()
	defer store.mut_connections.RUnlock()

	out := make([]ConnectionMetadata, 0, len(store.connections))
	for _, connection := range store.connections {
		out = append(out, *connection)
	}
	return out
}

// GetHandshakeTimeoutList lists connections opened before deadline that never
// authenticated.
func (store *ConnectionStore) GetHandshakeTimeoutList(deadline time.Time) []uint32 {
	store.mut_connections.RLock()
	defer store.mut_connections.RUnlock()

	stale := []uint32{}
	for id, connection := range store.connections {
		if !connection.Authenticated && connection.OpenedAt.Before(deadline) {
			stale = append(stale, id)
		}
	}
	return stale
}
