package bus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuca/portal/internal/logger"
)

func newBridgePair(t *testing.T) (*RedisBridge, *Bus, *RedisBridge, *Bus) {
	t.Helper()

	srv := miniredis.RunT(t)
	clientA := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	clientB := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		_ = clientA.Close()
		_ = clientB.Close()
	})

	localA, localB := New(), New()
	a := NewRedisBridge(clientA, "test:sync", localA, logger.Discard())
	b := NewRedisBridge(clientB, "test:sync", localB, logger.Discard())
	return a, localA, b, localB
}

func startBridge(t *testing.T, bridge *RedisBridge) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-bridge.Ready():
	case err := <-done:
		t.Fatalf("bridge stopped: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not subscribe")
	}
}

func TestRedisBridge_RelaysToOtherProcess(t *testing.T) {
	a, localA, b, localB := newBridgePair(t)
	startBridge(t, b)

	subA := localA.Subscribe(context.Background())
	defer subA.Close()
	subB := localB.Subscribe(context.Background())
	defer subB.Close()

	a.Notify(context.Background(), "petitions")

	waitSignal(t, subA)
	assert.Equal(t, []string{"petitions"}, subA.Changed())

	waitSignal(t, subB)
	assert.Equal(t, []string{"petitions"}, subB.Changed())
}

func TestRedisBridge_IgnoresOwnMessages(t *testing.T) {
	a, localA, _, _ := newBridgePair(t)
	startBridge(t, a)

	sub := localA.Subscribe(context.Background())
	defer sub.Close()

	a.Notify(context.Background(), "users")
	waitSignal(t, sub)
	require.Equal(t, []string{"users"}, sub.Changed())

	select {
	case <-sub.C():
		t.Fatal("own publication must not be re-raised locally")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRedisBridge_MalformedMessageIsDropped(t *testing.T) {
	a, _, b, localB := newBridgePair(t)
	startBridge(t, b)

	sub := localB.Subscribe(context.Background())
	defer sub.Close()

	require.NoError(t, a.client.Publish(context.Background(), "test:sync", "not json").Err())
	a.Notify(context.Background(), "updates")

	waitSignal(t, sub)
	assert.Equal(t, []string{"updates"}, sub.Changed())
}
