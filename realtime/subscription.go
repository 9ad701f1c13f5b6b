package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ConnState string

const (
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
	StateDisconnected ConnState = "disconnected"
)

const (
	initialReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay     = 30 * time.Second
)

// Subscription owns at most one live feed subscription for a store. On
// failure it surfaces disconnected and reconnects with exponential backoff;
// the previous subscription is always torn down before a new one is
// established.
type Subscription struct {
	feed    Feed
	storeId uuid.UUID
	onEvent func(ChangeEvent)
	onState func(ConnState)

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

func NewSubscription(feed Feed, storeId uuid.UUID, onEvent func(ChangeEvent), onState func(ConnState)) *Subscription {
	return &Subscription{
		feed:    feed,
		storeId: storeId,
		onEvent: onEvent,
		onState: onState,
	}
}

// Start launches the subscription loop. Calling Start on a running
// subscription is a no-op.
func (s *Subscription) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	go s.run(ctx)
}

// Stop tears down the live subscription, if any.
func (s *Subscription) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
}

func (s *Subscription) setState(state ConnState) {
	if s.onState != nil {
		s.onState(state)
	}
}

func (s *Subscription) run(ctx context.Context) {
	delay := initialReconnectDelay

	for {
		s.setState(StateConnecting)

		events, stop, err := s.feed.Subscribe(ctx, s.storeId)
		if err != nil {
			s.setState(StateDisconnected)
			if !s.sleep(ctx, delay) {
				return
			}
			delay = nextDelay(delay)
			continue
		}

		s.setState(StateConnected)
		delay = initialReconnectDelay

		if !s.consume(ctx, events, stop) {
			return
		}

		s.setState(StateDisconnected)
		if !s.sleep(ctx, delay) {
			return
		}
		delay = nextDelay(delay)
	}
}

// consume drains the event channel until it closes or the context ends. It
// returns false when the loop should terminate for good.
func (s *Subscription) consume(ctx context.Context, events <-chan ChangeEvent, stop func()) bool {
	defer stop()

	for {
		select {
		case <-ctx.Done():
			s.setState(StateDisconnected)
			return false
		case ev, ok := <-events:
			if !ok {
				return true
			}
			s.onEvent(ev)
		}
	}
}

func (s *Subscription) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxReconnectDelay {
		d = maxReconnectDelay
	}
	return d
}
