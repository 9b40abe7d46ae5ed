package utils

import (
	"context"
	"sync"
	"time"
)

// Challenge change fan-out. Mutations publish a notification for their scope;
// streaming consumers re-read a full snapshot on every notification and
// replace their state wholesale. Prefers Redis pub/sub so notifications cross
// instances; falls back to an in-process broadcaster when the subscription
// cannot be established.

const challengeChannelPrefix = "events:challenges:"

var (
	localSubs   = map[string]map[chan struct{}]struct{}{}
	localSubsMu sync.Mutex
)

// PublishChallengeEvent signals that the challenge set under scope changed.
// Called after the owning transaction commits, never inside it.
func PublishChallengeEvent(scope string) {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Publish(ctx, challengeChannelPrefix+scope, "1").Err(); err == nil {
			publishLocal(scope)
			return
		}
	}
	publishLocal(scope)
}

// SubscribeChallengeEvents returns a channel that receives a tick whenever the
// challenge set under scope changes. The subscription is torn down when ctx is
// cancelled.
func SubscribeChallengeEvents(ctx context.Context, scope string) <-chan struct{} {
	if rc := GetRedis(); rc != nil {
		sub := rc.Subscribe(ctx, challengeChannelPrefix+scope)
		// Receive waits for the server's subscription confirmation; without it
		// an unreachable Redis yields a subscriber that never ticks.
		rctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := sub.Receive(rctx)
		cancel()
		if err == nil {
			ch := make(chan struct{}, 1)
			go func() {
				defer sub.Close()
				defer close(ch)
				msgs := sub.Channel()
				for {
					select {
					case <-ctx.Done():
						return
					case _, ok := <-msgs:
						if !ok {
							return
						}
						select {
						case ch <- struct{}{}:
						default:
						}
					}
				}
			}()
			return ch
		}
		_ = sub.Close()
	}
	return subscribeLocal(ctx, scope)
}

// publishLocal notifies in-process subscribers of scope. Sends never block: a
// subscriber with a pending notification does not need another.
func publishLocal(scope string) {
	localSubsMu.Lock()
	for ch := range localSubs[scope] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	localSubsMu.Unlock()
}

// subscribeLocal registers an in-process subscriber for scope, removed when
// ctx is cancelled.
func subscribeLocal(ctx context.Context, scope string) <-chan struct{} {
	ch := make(chan struct{}, 1)

	localSubsMu.Lock()
	if localSubs[scope] == nil {
		localSubs[scope] = map[chan struct{}]struct{}{}
	}
	localSubs[scope][ch] = struct{}{}
	localSubsMu.Unlock()

	go func() {
		<-ctx.Done()
		localSubsMu.Lock()
		delete(localSubs[scope], ch)
		if len(localSubs[scope]) == 0 {
			delete(localSubs, scope)
		}
		localSubsMu.Unlock()
		close(ch)
	}()
	return ch
}
