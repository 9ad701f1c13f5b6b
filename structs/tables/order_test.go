package tables

import (
	"errors"
	"testing"
	"time"
	"vendora_server/lib"
)

func TestParseOrderStatus(t *testing.T) {
	valid := []string{
		"PENDING_PAYMENT", "PAYMENT_COMPLETED", "CONFIRMED",
		"REJECTED", "COMPLETED", "CANCELLED",
	}
	for _, raw := range valid {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Errorf("ParseOrderStatus(%q) returned error: %v", raw, err)
		}
		if string(status) != raw {
			t.Errorf("ParseOrderStatus(%q) = %q", raw, status)
		}
	}

	for _, raw := range []string{"", "pending_payment", "PAID", "DONE"} {
		if _, err := ParseOrderStatus(raw); !errors.Is(err, lib.ErrInvalidStatus) {
			t.Errorf("ParseOrderStatus(%q) error = %v, want ErrInvalidStatus", raw, err)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPendingPayment:   {OrderStatusPaymentCompleted, OrderStatusRejected, OrderStatusCancelled},
		OrderStatusPaymentCompleted: {OrderStatusConfirmed, OrderStatusRejected, OrderStatusCancelled},
		OrderStatusConfirmed:        {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusRejected:         {},
		OrderStatusCompleted:        {},
		OrderStatusCancelled:        {},
	}

	all := []OrderStatus{
		OrderStatusPendingPayment, OrderStatusPaymentCompleted, OrderStatusConfirmed,
		OrderStatusRejected, OrderStatusCompleted, OrderStatusCancelled,
	}

	for from, targets := range allowed {
		want := map[OrderStatus]bool{}
		for _, target := range targets {
			want[target] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != want[to] {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want[to])
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPendingPayment:   false,
		OrderStatusPaymentCompleted: false,
		OrderStatusConfirmed:        false,
		OrderStatusRejected:         true,
		OrderStatusCompleted:        true,
		OrderStatusCancelled:        true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestApplyTransitionStampsExactlyOneTimestamp(t *testing.T) {
	cases := []struct {
		target OrderStatus
		pick   func(*Order) *time.Time
	}{
		{OrderStatusPaymentCompleted, func(o *Order) *time.Time { return o.PaymentCompletedAt }},
		{OrderStatusRejected, func(o *Order) *time.Time { return o.RejectedAt }},
		{OrderStatusCancelled, func(o *Order) *time.Time { return nil }},
	}

	for _, tc := range cases {
		order := &Order{Status: OrderStatusPendingPayment, Version: 1}

		if err := order.ApplyTransition(tc.target); err != nil {
			t.Fatalf("ApplyTransition(%s) returned error: %v", tc.target, err)
		}
		if order.Status != tc.target {
			t.Errorf("status after transition = %s, want %s", order.Status, tc.target)
		}
		if order.Version != 2 {
			t.Errorf("version after transition = %d, want 2", order.Version)
		}

		stamped := 0
		for _, ts := range []*time.Time{order.PaymentCompletedAt, order.ConfirmedAt, order.RejectedAt, order.CompletedAt} {
			if ts != nil {
				stamped++
			}
		}
		if tc.pick(order) == nil && tc.target != OrderStatusCancelled {
			t.Errorf("transition to %s did not stamp its timestamp", tc.target)
		}
		wantStamped := 1
		if tc.target == OrderStatusCancelled {
			wantStamped = 0
		}
		if stamped != wantStamped {
			t.Errorf("transition to %s stamped %d timestamps, want %d", tc.target, stamped, wantStamped)
		}
	}
}

func TestApplyTransitionPreservesEarlierTimestamps(t *testing.T) {
	order := &Order{Status: OrderStatusPendingPayment, Version: 1}

	chain := []OrderStatus{OrderStatusPaymentCompleted, OrderStatusConfirmed, OrderStatusCompleted}
	for _, target := range chain {
		if err := order.ApplyTransition(target); err != nil {
			t.Fatalf("ApplyTransition(%s) returned error: %v", target, err)
		}
	}

	if order.PaymentCompletedAt == nil || order.ConfirmedAt == nil || order.CompletedAt == nil {
		t.Fatal("full lifecycle should leave all three transition timestamps set")
	}
	if order.PaymentCompletedAt.After(*order.ConfirmedAt) || order.ConfirmedAt.After(*order.CompletedAt) {
		t.Error("transition timestamps are not monotonic")
	}
	if order.Version != 4 {
		t.Errorf("version after three transitions = %d, want 4", order.Version)
	}
}

func TestApplyTransitionSameStatusIsNoOp(t *testing.T) {
	order := &Order{Status: OrderStatusConfirmed, Version: 3}

	if err := order.ApplyTransition(OrderStatusConfirmed); err != nil {
		t.Fatalf("re-applying current status returned error: %v", err)
	}
	if order.Version != 3 {
		t.Errorf("version changed on no-op: %d", order.Version)
	}
	if order.ConfirmedAt != nil {
		t.Error("no-op must not stamp a timestamp")
	}
}

func TestApplyTransitionRejectsIllegalMoves(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPendingPayment, OrderStatusConfirmed},
		{OrderStatusPendingPayment, OrderStatusCompleted},
		{OrderStatusConfirmed, OrderStatusPaymentCompleted},
		{OrderStatusConfirmed, OrderStatusRejected},
		{OrderStatusCompleted, OrderStatusCancelled},
		{OrderStatusRejected, OrderStatusConfirmed},
		{OrderStatusCancelled, OrderStatusPaymentCompleted},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.from, Version: 1}
		err := order.ApplyTransition(tc.to)
		if !errors.Is(err, lib.ErrInvalidTransition) {
			t.Errorf("ApplyTransition(%s -> %s) error = %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
		if order.Status != tc.from || order.Version != 1 {
			t.Errorf("failed transition mutated the order: status=%s version=%d", order.Status, order.Version)
		}
	}

	order := &Order{Status: OrderStatusPendingPayment, Version: 1}
	if err := order.ApplyTransition(OrderStatus("PAID")); !errors.Is(err, lib.ErrInvalidStatus) {
		t.Errorf("unknown target status error = %v, want ErrInvalidStatus", err)
	}
}
