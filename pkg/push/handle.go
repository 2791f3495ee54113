package push

import (
	"context"
	"errors"
	"sync"
)

// DefaultCapacity is how many pushes may queue for one connection before
// senders block.
const DefaultCapacity = 25

var errHandleClosed = errors.New("push handle closed")

// Handle is the delivery half of one connection's push queue. The owning
// connection drains Receive; everyone else goes through the Registry.
type Handle struct {
	queue chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func NewHandle(capacity int) *Handle {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Handle{
		queue: make(chan []byte, capacity),
		done:  make(chan struct{}),
	}
}

// Receive yields pre-framed push messages.
func (h *Handle) Receive() <-chan []byte {
	return h.queue
}

// Done is closed once the owning connection stops draining the queue.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

func (h *Handle) send(ctx context.Context, frame []byte) error {
	select {
	case <-h.done:
		return errHandleClosed
	default:
	}

	select {
	case h.queue <- frame:
		return nil
	case <-h.done:
		return errHandleClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
