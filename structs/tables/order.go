package tables

import (
	"slices"
	"time"
	"vendora_server/lib"

	"github.com/google/uuid"
)

type Order struct {
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number" validate:"omitempty,min=8,max=50"`

	StoreId    uuid.UUID  `bun:"store_id,notnull,type:uuid" json:"store_id" validate:"required"`
	CustomerId *uuid.UUID `bun:"customer_id,type:uuid" json:"customer_id,omitempty"`

	Status        OrderStatus `bun:"status,notnull,default:'PENDING_PAYMENT'" json:"status"`
	TotalAmount   int64       `bun:"total_amount,notnull" json:"total_amount" validate:"gte=0"`
	PaymentMethod string      `bun:"payment_method,notnull,default:'UPI'" json:"payment_method"`

	// Version is bumped on every status mutation. The change feed carries it
	// so consumers can drop events older than what they already hold.
	Version int64 `bun:"version,notnull,default:1" json:"version"`

	CreatedAt          time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	PaymentCompletedAt *time.Time `bun:"payment_completed_at,nullzero" json:"payment_completed_at,omitempty"`
	ConfirmedAt        *time.Time `bun:"confirmed_at,nullzero" json:"confirmed_at,omitempty"`
	RejectedAt         *time.Time `bun:"rejected_at,nullzero" json:"rejected_at,omitempty"`
	CompletedAt        *time.Time `bun:"completed_at,nullzero" json:"completed_at,omitempty"`

	Items    []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
	Customer *Customer    `bun:"rel:belongs-to,join:customer_id=id" json:"customer,omitempty"`
	Store    *Store       `bun:"rel:belongs-to,join:store_id=id" json:"store,omitempty"`
}

// OrderItem is a line item snapshot. Name and price are copied from the menu
// item at order time so later menu edits never rewrite order history.
type OrderItem struct {
	tableName  struct{}  `bun:"table:order_items,alias:oi"`
	Id         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderId    uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id"`
	MenuItemId uuid.UUID `bun:"menu_item_id,notnull,type:uuid" json:"menu_item_id"`
	Quantity   int       `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`
	UnitPrice  int64     `bun:"unit_price,notnull" json:"unit_price" validate:"gte=0"`
	LineTotal  int64     `bun:"line_total,notnull" json:"line_total" validate:"gte=0"`
	ItemName   string    `bun:"item_name,notnull" json:"item_name"`
}

type OrderStatus string

const (
	OrderStatusPendingPayment   OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaymentCompleted OrderStatus = "PAYMENT_COMPLETED"
	OrderStatusConfirmed        OrderStatus = "CONFIRMED"
	OrderStatusRejected         OrderStatus = "REJECTED"
	OrderStatusCompleted        OrderStatus = "COMPLETED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// orderTransitions is the authoritative transition graph. CANCELLED is
// reachable from any non-terminal state; terminal states allow nothing.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {
		OrderStatusPaymentCompleted,
		OrderStatusRejected,
		OrderStatusCancelled,
	},
	OrderStatusPaymentCompleted: {
		OrderStatusConfirmed,
		OrderStatusRejected,
		OrderStatusCancelled,
	},
	OrderStatusConfirmed: {
		OrderStatusCompleted,
		OrderStatusCancelled,
	},
	OrderStatusRejected:  {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus validates a raw status value against the enum.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := orderTransitions[status]; !ok {
		return "", lib.ErrInvalidStatus
	}
	return status, nil
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := orderTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether target is in the allowed-next set.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return slices.Contains(orderTransitions[s], target)
}

// ApplyTransition moves the order to target, stamping the matching timestamp
// and bumping the version. Re-applying the current status is a no-op; a
// target outside the allowed-next set fails with ErrInvalidTransition.
// Persistence is the caller's job.
func (o *Order) ApplyTransition(target OrderStatus) error {
	if _, ok := orderTransitions[target]; !ok {
		return lib.ErrInvalidStatus
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return lib.ErrInvalidTransition
	}

	now := time.Now()
	switch target {
	case OrderStatusPaymentCompleted:
		o.PaymentCompletedAt = &now
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusRejected:
		o.RejectedAt = &now
	case OrderStatusCompleted:
		o.CompletedAt = &now
	}
	// CANCELLED and PENDING_PAYMENT stamp nothing.

	o.Status = target
	o.Version++
	return nil
}

// TransitionTimestamp returns the timestamp field stamped for the order's
// current status, if any.
func (o *Order) TransitionTimestamp() *time.Time {
	switch o.Status {
	case OrderStatusPaymentCompleted:
		return o.PaymentCompletedAt
	case OrderStatusConfirmed:
		return o.ConfirmedAt
	case OrderStatusRejected:
		return o.RejectedAt
	case OrderStatusCompleted:
		return o.CompletedAt
	}
	return nil
}
