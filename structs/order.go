package structs

import (
	"time"

	"github.com/google/uuid"
)

// CreateOrderRequest is the customer-facing order placement payload.
// Every item references a menu item of the target store; prices are
// snapshotted server-side from the live menu at order time.
type CreateOrderRequest struct {
	StoreId       uuid.UUID          `json:"store_id" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64              `json:"total_amount" validate:"required,gte=0"`
	CustomerPhone string             `json:"customer_phone,omitempty" validate:"omitempty,min=10,max=20"`
	CustomerName  string             `json:"customer_name,omitempty" validate:"omitempty,min=2,max=100"`
}

type OrderItemRequest struct {
	MenuItemId uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
	// Price is the unit price the client saw; it must still match the live
	// menu or the order is rejected.
	Price int64 `json:"price" validate:"gte=0"`
}

// StatusUpdateRequest transitions an order, addressed by its business key.
type StatusUpdateRequest struct {
	OrderNumber string `json:"order_number" validate:"required,min=8,max=50"`
	Status      string `json:"status" validate:"required"`
}

// VendorInfo is returned alongside a freshly created order so the client can
// construct the UPI payment handoff.
type VendorInfo struct {
	StoreId    uuid.UUID `json:"store_id"`
	UpiId      string    `json:"upi_id"`
	UpiName    string    `json:"upi_name"`
	PaymentURI string    `json:"payment_uri"`
}

type AuthClaims struct {
	Sub   uuid.UUID
	Email string
	Iat   time.Time
	Exp   time.Time
}
