package realtime

import (
	"context"
	"errors"
	"testing"
	"vendora_server/structs/tables"

	"github.com/google/uuid"
)

func makeOrder(number string, status tables.OrderStatus, version int64) *tables.Order {
	return &tables.Order{
		Id:          uuid.New(),
		OrderNumber: number,
		StoreId:     uuid.New(),
		Status:      status,
		TotalAmount: 15000,
		Version:     version,
	}
}

type fakeHydrator struct {
	orders map[uuid.UUID]*tables.Order
	calls  int
	err    error
}

func (f *fakeHydrator) OrderById(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.orders[id], nil
}

func TestPartition(t *testing.T) {
	unpaid := makeOrder("ORD000000001", tables.OrderStatusPendingPayment, 1)
	paid := makeOrder("ORD000000002", tables.OrderStatusPaymentCompleted, 2)
	confirmed := makeOrder("ORD000000003", tables.OrderStatusConfirmed, 3)
	completed := makeOrder("ORD000000004", tables.OrderStatusCompleted, 4)
	rejected := makeOrder("ORD000000005", tables.OrderStatusRejected, 2)
	cancelled := makeOrder("ORD000000006", tables.OrderStatusCancelled, 2)

	all := []*tables.Order{unpaid, paid, confirmed, completed, rejected, cancelled}
	buckets := Partition(all)

	if len(buckets.All) != 6 {
		t.Errorf("All has %d orders, want 6", len(buckets.All))
	}
	if len(buckets.Pending) != 1 || buckets.Pending[0] != paid {
		t.Errorf("Pending = %v, want exactly the paid order", buckets.Pending)
	}
	if len(buckets.Confirmed) != 1 || buckets.Confirmed[0] != confirmed {
		t.Errorf("Confirmed = %v, want exactly the confirmed order", buckets.Confirmed)
	}
	if len(buckets.Completed) != 3 {
		t.Errorf("Completed has %d orders, want 3 (completed, rejected, cancelled)", len(buckets.Completed))
	}

	// unpaid orders are visible in All but not actionable
	for _, bucket := range [][]*tables.Order{buckets.Pending, buckets.Confirmed, buckets.Completed} {
		for _, order := range bucket {
			if order == unpaid {
				t.Error("PENDING_PAYMENT order leaked into an action bucket")
			}
		}
	}
}

func TestPartitionBucketsAreDisjointSubsetsOfAll(t *testing.T) {
	var all []*tables.Order
	statuses := []tables.OrderStatus{
		tables.OrderStatusPendingPayment, tables.OrderStatusPaymentCompleted,
		tables.OrderStatusConfirmed, tables.OrderStatusCompleted,
		tables.OrderStatusRejected, tables.OrderStatusCancelled,
	}
	for i := 0; i < 30; i++ {
		all = append(all, makeOrder(uuid.NewString(), statuses[i%len(statuses)], int64(i+1)))
	}

	buckets := Partition(all)

	held := map[uuid.UUID]bool{}
	for _, order := range buckets.All {
		held[order.Id] = true
	}

	seen := map[uuid.UUID]int{}
	for _, bucket := range [][]*tables.Order{buckets.Pending, buckets.Confirmed, buckets.Completed} {
		for _, order := range bucket {
			if !held[order.Id] {
				t.Errorf("order %s in a bucket but not in All", order.OrderNumber)
			}
			seen[order.Id]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("order %s appears in %d buckets", id, count)
		}
	}
}

func TestApplyInsertHydratesAndPrepends(t *testing.T) {
	existing := makeOrder("ORD000000010", tables.OrderStatusConfirmed, 2)
	incoming := makeOrder("ORD000000011", tables.OrderStatusPendingPayment, 1)

	view := NewView()
	view.Reset([]*tables.Order{existing})

	hydrator := &fakeHydrator{orders: map[uuid.UUID]*tables.Order{incoming.Id: incoming}}
	if err := view.ApplyInsert(context.Background(), incoming.Id, hydrator); err != nil {
		t.Fatalf("ApplyInsert returned error: %v", err)
	}

	buckets := view.Buckets()
	if len(buckets.All) != 2 {
		t.Fatalf("view holds %d orders, want 2", len(buckets.All))
	}
	if buckets.All[0] != incoming {
		t.Error("new order was not prepended")
	}
}

func TestApplyInsertDuplicateIsNoOp(t *testing.T) {
	order := makeOrder("ORD000000012", tables.OrderStatusPendingPayment, 1)

	view := NewView()
	view.Reset([]*tables.Order{order})

	hydrator := &fakeHydrator{orders: map[uuid.UUID]*tables.Order{order.Id: order}}
	if err := view.ApplyInsert(context.Background(), order.Id, hydrator); err != nil {
		t.Fatalf("ApplyInsert returned error: %v", err)
	}

	if hydrator.calls != 0 {
		t.Errorf("duplicate insert hydrated anyway (%d calls)", hydrator.calls)
	}
	if view.Len() != 1 {
		t.Errorf("view holds %d orders after duplicate insert, want 1", view.Len())
	}
}

func TestApplyInsertHydrationFailure(t *testing.T) {
	view := NewView()
	hydrator := &fakeHydrator{err: errors.New("db down")}

	if err := view.ApplyInsert(context.Background(), uuid.New(), hydrator); err == nil {
		t.Error("ApplyInsert swallowed the hydration error")
	}
	if view.Len() != 0 {
		t.Error("failed hydration still mutated the view")
	}
}

func TestApplyInsertUnknownOrderIsDropped(t *testing.T) {
	view := NewView()
	hydrator := &fakeHydrator{orders: map[uuid.UUID]*tables.Order{}}

	if err := view.ApplyInsert(context.Background(), uuid.New(), hydrator); err != nil {
		t.Fatalf("ApplyInsert returned error: %v", err)
	}
	if view.Len() != 0 {
		t.Error("insert for a nonexistent order mutated the view")
	}
}

func TestApplyUpdateReplacesHeldOrder(t *testing.T) {
	order := makeOrder("ORD000000020", tables.OrderStatusPaymentCompleted, 2)

	view := NewView()
	view.Reset([]*tables.Order{order})

	updated := *order
	updated.Status = tables.OrderStatusConfirmed
	updated.Version = 3

	if !view.ApplyUpdate(&updated) {
		t.Fatal("ApplyUpdate rejected a newer version")
	}

	buckets := view.Buckets()
	if len(buckets.Confirmed) != 1 || len(buckets.Pending) != 0 {
		t.Error("order did not move from Pending to Confirmed")
	}
}

func TestApplyUpdateDropsUnknownId(t *testing.T) {
	view := NewView()
	view.Reset([]*tables.Order{makeOrder("ORD000000021", tables.OrderStatusConfirmed, 2)})

	stranger := makeOrder("ORD000000099", tables.OrderStatusCompleted, 5)
	if view.ApplyUpdate(stranger) {
		t.Error("update for an unknown id was applied")
	}
	if view.Len() != 1 {
		t.Errorf("view holds %d orders, want 1", view.Len())
	}
}

func TestApplyUpdateDropsStaleVersion(t *testing.T) {
	order := makeOrder("ORD000000022", tables.OrderStatusConfirmed, 3)

	view := NewView()
	view.Reset([]*tables.Order{order})

	stale := *order
	stale.Status = tables.OrderStatusPaymentCompleted
	stale.Version = 2

	if view.ApplyUpdate(&stale) {
		t.Error("stale update was applied")
	}

	buckets := view.Buckets()
	if len(buckets.Confirmed) != 1 {
		t.Error("stale update moved the order out of Confirmed")
	}
}

func TestApplyOptimisticAndReset(t *testing.T) {
	order := makeOrder("ORD000000030", tables.OrderStatusPaymentCompleted, 2)

	view := NewView()
	view.Reset([]*tables.Order{order})

	if !view.ApplyOptimistic(order.OrderNumber, tables.OrderStatusConfirmed) {
		t.Fatal("ApplyOptimistic rejected a legal transition")
	}

	buckets := view.Buckets()
	if len(buckets.Confirmed) != 1 {
		t.Fatal("optimistic update did not move the order to Confirmed")
	}
	if order.Status != tables.OrderStatusPaymentCompleted {
		t.Error("optimistic update mutated the caller's order instead of a copy")
	}

	// the round-trip failed: compensate by resetting from storage
	view.Reset([]*tables.Order{order})
	buckets = view.Buckets()
	if len(buckets.Pending) != 1 || len(buckets.Confirmed) != 0 {
		t.Error("reset did not restore the pre-optimistic state")
	}
}

func TestApplyOptimisticRejectsIllegalTransition(t *testing.T) {
	order := makeOrder("ORD000000031", tables.OrderStatusCompleted, 4)

	view := NewView()
	view.Reset([]*tables.Order{order})

	if view.ApplyOptimistic(order.OrderNumber, tables.OrderStatusConfirmed) {
		t.Error("optimistic update applied an illegal transition")
	}
	if view.ApplyOptimistic("ORD999999999", tables.OrderStatusConfirmed) {
		t.Error("optimistic update matched a nonexistent order number")
	}
}

func TestViewLifecycle(t *testing.T) {
	ctx := context.Background()
	view := NewView()
	view.Reset(nil)

	order := makeOrder("ORD000000040", tables.OrderStatusPendingPayment, 1)
	hydrator := &fakeHydrator{orders: map[uuid.UUID]*tables.Order{order.Id: order}}

	// customer places the order
	if err := view.ApplyInsert(ctx, order.Id, hydrator); err != nil {
		t.Fatalf("ApplyInsert returned error: %v", err)
	}
	buckets := view.Buckets()
	if len(buckets.All) != 1 || len(buckets.Pending) != 0 {
		t.Fatal("fresh order should be in All only")
	}

	// customer confirms payment
	paid := *order
	paid.Status = tables.OrderStatusPaymentCompleted
	paid.Version = 2
	view.ApplyUpdate(&paid)
	if buckets = view.Buckets(); len(buckets.Pending) != 1 {
		t.Fatal("paid order should be in Pending")
	}

	// vendor confirms, then completes
	confirmed := paid
	confirmed.Status = tables.OrderStatusConfirmed
	confirmed.Version = 3
	view.ApplyUpdate(&confirmed)

	completed := confirmed
	completed.Status = tables.OrderStatusCompleted
	completed.Version = 4
	view.ApplyUpdate(&completed)

	buckets = view.Buckets()
	if len(buckets.Pending) != 0 || len(buckets.Confirmed) != 0 || len(buckets.Completed) != 1 {
		t.Errorf("final buckets pending=%d confirmed=%d completed=%d, want 0/0/1",
			len(buckets.Pending), len(buckets.Confirmed), len(buckets.Completed))
	}

	// a delayed duplicate of the confirm event arrives after completion
	late := confirmed
	if view.ApplyUpdate(&late) {
		t.Error("out-of-order stale event was applied")
	}
	if buckets = view.Buckets(); len(buckets.Completed) != 1 {
		t.Error("stale event corrupted the buckets")
	}
}
