package utils

import (
	"context"
	"testing"
	"time"
)

func waitTick(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestLocalSubscriberReceivesPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := subscribeLocal(ctx, "scope-a")
	publishLocal("scope-a")
	waitTick(t, ch)
}

func TestLocalPublishIsScoped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := subscribeLocal(ctx, "scope-a")
	publishLocal("scope-b")

	select {
	case <-ch:
		t.Fatal("received event for a different scope")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalPublishCoalesces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := subscribeLocal(ctx, "scope-a")
	// A subscriber that has not drained yet holds at most one pending tick;
	// extra publishes must not block.
	for i := 0; i < 10; i++ {
		publishLocal("scope-a")
	}
	waitTick(t, ch)
}

func TestLocalUnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := subscribeLocal(ctx, "scope-gone")
	cancel()

	// The channel closes once the cancellation is observed.
	select {
	case _, open := <-ch:
		if open {
			// a tick raced the shutdown; the close must still follow
			if _, open := <-ch; open {
				t.Fatal("channel still open after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}

	localSubsMu.Lock()
	_, exists := localSubs["scope-gone"]
	localSubsMu.Unlock()
	if exists {
		t.Fatal("scope entry not removed after last subscriber left")
	}
}
