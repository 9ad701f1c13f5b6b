package structs

import "github.com/google/uuid"

// CreateStoreRequest onboards a vendor's store. Duplicate email or slug is a
// conflict, not an update.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Slug    string `json:"slug" validate:"required,min=2,max=60"`
	Email   string `json:"email" validate:"required,email"`
	UpiId   string `json:"upi_id" validate:"required,min=3,max=100"`
	UpiName string `json:"upi_name" validate:"required,min=2,max=100"`
}

type CreateMenuItemRequest struct {
	StoreId uuid.UUID `json:"store_id" validate:"required"`
	Name    string    `json:"name" validate:"required,min=2,max=120"`
	Price   int64     `json:"price" validate:"required,gte=0"`
}

type MenuAvailabilityRequest struct {
	MenuItemId  uuid.UUID `json:"menu_item_id" validate:"required"`
	IsAvailable bool      `json:"is_available"`
}
