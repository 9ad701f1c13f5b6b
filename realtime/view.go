package realtime

import (
	"context"
	"sync"
	"vendora_server/structs/tables"

	"github.com/google/uuid"
)

// Buckets is the four-way projection of a store's orders served to the
// vendor dashboard. Orders still in PENDING_PAYMENT appear in All only:
// unpaid orders are not actionable by the vendor.
type Buckets struct {
	All       []*tables.Order `json:"all"`
	Pending   []*tables.Order `json:"pending"`
	Confirmed []*tables.Order `json:"confirmed"`
	Completed []*tables.Order `json:"completed"`
}

// Partition derives the three named buckets from the full collection. It is
// a pure function of its input and is re-derived on every mutation rather
// than patched incrementally, so the buckets and All can never diverge.
func Partition(all []*tables.Order) Buckets {
	b := Buckets{All: all}
	for _, order := range all {
		switch order.Status {
		case tables.OrderStatusPaymentCompleted:
			b.Pending = append(b.Pending, order)
		case tables.OrderStatusConfirmed:
			b.Confirmed = append(b.Confirmed, order)
		case tables.OrderStatusCompleted, tables.OrderStatusRejected, tables.OrderStatusCancelled:
			b.Completed = append(b.Completed, order)
		}
	}
	return b
}

// View holds a store's order collection and reconciles change events into
// it. Events may arrive out of order or be duplicated; merges are keyed by
// id and guarded by the order version so stale events are dropped. All
// mutations are serialized by the internal mutex.
type View struct {
	mu  sync.RWMutex
	all []*tables.Order
}

func NewView() *View {
	return &View{}
}

// Reset replaces the full collection, e.g. the initial seed fetch or the
// compensating re-fetch after a failed optimistic update.
func (v *View) Reset(orders []*tables.Order) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.all = make([]*tables.Order, len(orders))
	copy(v.all, orders)
}

// Contains reports whether an order with the given id is held.
func (v *View) Contains(id uuid.UUID) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.indexOf(id) >= 0
}

func (v *View) indexOf(id uuid.UUID) int {
	for i, order := range v.all {
		if order.Id == id {
			return i
		}
	}
	return -1
}

// ApplyInsert merges an insert event. The event payload is minimal, so the
// full order is fetched through the hydrator and prepended. A duplicate
// insert for an id already held is a no-op; the existence check runs again
// after hydration because a concurrent event may have won the race while the
// fetch was in flight.
func (v *View) ApplyInsert(ctx context.Context, id uuid.UUID, hydrator Hydrator) error {
	if v.Contains(id) {
		return nil
	}

	order, err := hydrator.OrderById(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.indexOf(id) >= 0 {
		return nil
	}
	v.all = append([]*tables.Order{order}, v.all...)
	return nil
}

// ApplyUpdate merges an update event by replacing the held order with the
// event's representation. Events for unknown ids are dropped silently (the
// insert event is the recovery path), as are events older than the version
// already held.
func (v *View) ApplyUpdate(order *tables.Order) bool {
	if order == nil {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOf(order.Id)
	if i < 0 {
		return false
	}
	if order.Version < v.all[i].Version {
		return false
	}
	v.all[i] = order
	return true
}

// ApplyOptimistic applies a vendor-initiated status change locally, before
// the network round-trip resolves, keyed by order number. The caller
// compensates a failed round-trip with Reset, not a fine-grained rollback.
func (v *View) ApplyOptimistic(orderNumber string, target tables.OrderStatus) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, order := range v.all {
		if order.OrderNumber != orderNumber {
			continue
		}
		updated := *order
		if err := updated.ApplyTransition(target); err != nil {
			return false
		}
		v.all[i] = &updated
		return true
	}
	return false
}

// Buckets returns the current four-way partition. The All slice is copied so
// callers never observe a concurrent merge mid-flight.
func (v *View) Buckets() Buckets {
	v.mu.RLock()
	all := make([]*tables.Order, len(v.all))
	copy(all, v.all)
	v.mu.RUnlock()

	return Partition(all)
}

// Len returns the number of held orders.
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.all)
}
