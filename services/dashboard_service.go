package services

import (
	"context"
	"sync"
	"time"
	"vendora_server/realtime"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// OrderSource is what the dashboard needs from the order store: hydration of
// single orders for insert events and full store collections for seeding.
type OrderSource interface {
	realtime.Hydrator
	OrdersByStore(ctx context.Context, storeId uuid.UUID) ([]*tables.Order, error)
}

// DashboardService maintains one live order view per store for the vendor
// dashboard. A view is seeded with a full fetch on first use, then kept
// current by merging change-feed events; subsequent reads are served from
// memory. At most one feed subscription exists per store.
type DashboardService struct {
	logger *gecho.Logger
	orders OrderSource
	feed   realtime.Feed

	mu    sync.Mutex
	views map[uuid.UUID]*storeView
}

type storeView struct {
	view *realtime.View
	sub  *realtime.Subscription

	mu    sync.RWMutex
	state realtime.ConnState
	// stale marks that events may have been missed while disconnected. The
	// feed replays nothing, so the view must be reseeded on reconnect.
	stale bool
}

func (sv *storeView) connState() realtime.ConnState {
	sv.mu.RLock()
	defer sv.mu.RUnlock()
	return sv.state
}

func NewDashboardService(logger *gecho.Logger, orders OrderSource, feed realtime.Feed) *DashboardService {
	return &DashboardService{
		logger: logger,
		orders: orders,
		feed:   feed,
		views:  make(map[uuid.UUID]*storeView),
	}
}

// Buckets returns the four-way partition of the store's orders together
// with the feed connection state.
func (ds *DashboardService) Buckets(ctx context.Context, storeId uuid.UUID) (realtime.Buckets, realtime.ConnState, error) {
	sv, err := ds.viewFor(ctx, storeId)
	if err != nil {
		return realtime.Buckets{}, realtime.StateDisconnected, err
	}
	return sv.view.Buckets(), sv.connState(), nil
}

// ApplyOptimistic mutates the local view ahead of the persisted status
// update so the dashboard reflects a vendor action immediately. A store
// without a live view has nothing to patch.
func (ds *DashboardService) ApplyOptimistic(storeId uuid.UUID, orderNumber string, target tables.OrderStatus) {
	ds.mu.Lock()
	sv, ok := ds.views[storeId]
	ds.mu.Unlock()
	if !ok {
		return
	}
	sv.view.ApplyOptimistic(orderNumber, target)
}

// Compensate discards local state after a failed mutation by re-fetching the
// full collection, rather than attempting a fine-grained rollback.
func (ds *DashboardService) Compensate(ctx context.Context, storeId uuid.UUID) error {
	ds.mu.Lock()
	sv, ok := ds.views[storeId]
	ds.mu.Unlock()
	if !ok {
		return nil
	}

	orders, err := ds.orders.OrdersByStore(ctx, storeId)
	if err != nil {
		return err
	}
	sv.view.Reset(orders)
	return nil
}

// viewFor returns the store's live view, creating and seeding it on first
// use. The seed fetch happens before the subscription starts; an event
// racing the seed is either a duplicate insert (no-op) or an update that
// re-delivers state the seed already contains.
func (ds *DashboardService) viewFor(ctx context.Context, storeId uuid.UUID) (*storeView, error) {
	ds.mu.Lock()
	if sv, ok := ds.views[storeId]; ok {
		ds.mu.Unlock()
		return sv, nil
	}
	ds.mu.Unlock()

	orders, err := ds.orders.OrdersByStore(ctx, storeId)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if sv, ok := ds.views[storeId]; ok {
		return sv, nil
	}

	sv := &storeView{
		view:  realtime.NewView(),
		state: realtime.StateConnecting,
	}
	sv.view.Reset(orders)

	sv.sub = realtime.NewSubscription(ds.feed, storeId,
		func(event realtime.ChangeEvent) {
			ds.applyEvent(sv, event)
		},
		func(state realtime.ConnState) {
			ds.onStateChange(sv, storeId, state)
		},
	)
	// The subscription outlives the seeding request.
	sv.sub.Start(context.Background())

	ds.views[storeId] = sv
	return sv, nil
}

// onStateChange tracks the connection state and reseeds the view when the
// subscription comes back after a gap. Pub/sub replays nothing, so an order
// created while disconnected has no insert event and its later updates would
// be dropped as unknown ids; only a full re-fetch recovers it. The reseed
// runs before event consumption starts, so anything it races with is a
// duplicate insert or a stale update, both no-ops.
func (ds *DashboardService) onStateChange(sv *storeView, storeId uuid.UUID, state realtime.ConnState) {
	sv.mu.Lock()
	reseed := state == realtime.StateConnected && sv.stale
	if reseed {
		sv.stale = false
	}
	if state == realtime.StateDisconnected {
		sv.stale = true
	}
	sv.state = state
	sv.mu.Unlock()

	if !reseed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := ds.orders.OrdersByStore(ctx, storeId)
	if err != nil {
		// Mark stale again so the next reconnect retries the reseed.
		sv.mu.Lock()
		sv.stale = true
		sv.mu.Unlock()
		ds.logger.Error("Failed to reseed store view after reconnect",
			gecho.Field("error", err),
			gecho.Field("store_id", storeId))
		return
	}

	sv.view.Reset(orders)

	ds.logger.Info("Store view reseeded after reconnect",
		gecho.Field("store_id", storeId),
		gecho.Field("orders", len(orders)))
}

func (ds *DashboardService) applyEvent(sv *storeView, event realtime.ChangeEvent) {
	switch event.EventType {
	case realtime.EventInsert:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sv.view.ApplyInsert(ctx, event.OrderId, ds.orders); err != nil {
			ds.logger.Warn("Failed to hydrate inserted order",
				gecho.Field("error", err),
				gecho.Field("order_id", event.OrderId))
		}
	case realtime.EventUpdate:
		sv.view.ApplyUpdate(event.New)
	default:
		ds.logger.Warn("Dropping change event of unknown type",
			gecho.Field("event_type", event.EventType))
	}
}
