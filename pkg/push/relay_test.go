package push

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// unreachableRelay wraps r with a Redis client that can never connect.
func unreachableRelay(t *testing.T, r *Registry) *Relay {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return NewRelay(r, client, RelayParams{Logger: zap.NewNop()})
}

func TestRelayBroadcastAggregatesPublishFailure(t *testing.T) {
	r := newRegistry()
	dead1 := NewHandle(4)
	dead2 := NewHandle(4)
	dead1.Close()
	dead2.Close()
	r.Register(1, dead1)
	r.Register(2, dead2)

	err := unreachableRelay(t, r).Broadcast(context.Background(), []byte{6, 0})
	if got := len(multierr.Errors(err)); got != 3 {
		t.Fatalf("Broadcast() returned %d errors, want 2 local and 1 publish: %v", got, err)
	}
}

func TestRelaySendToPrefersLocalHandle(t *testing.T) {
	r := newRegistry()
	h := NewHandle(4)
	r.Register(5, h)

	if err := unreachableRelay(t, r).SendTo(context.Background(), 5, []byte{6, 0, 1}); err != nil {
		t.Fatalf("SendTo() error = %v, want local delivery", err)
	}
	select {
	case got := <-h.Receive():
		if len(got) != 3 {
			t.Fatalf("received %v", got)
		}
	default:
		t.Fatal("local handle received nothing")
	}
}

func TestRelayDeliverSkipsOwnOrigin(t *testing.T) {
	r := newRegistry()
	h := NewHandle(4)
	r.Register(5, h)
	relay := unreachableRelay(t, r)

	envelopeFrom := func(origin string) string {
		data, err := json.Marshal(envelope{Origin: origin, PlayerID: 5, Payload: []byte{6, 0}})
		if err != nil {
			t.Fatalf("marshal envelope: %v", err)
		}
		return string(data)
	}

	relay.deliver(context.Background(), envelopeFrom(relay.origin))
	select {
	case got := <-h.Receive():
		t.Fatalf("own envelope delivered: %v", got)
	default:
	}

	relay.deliver(context.Background(), envelopeFrom("other-instance"))
	select {
	case <-h.Receive():
	default:
		t.Fatal("envelope from another instance was not delivered")
	}
}
