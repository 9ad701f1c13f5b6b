package tables

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	tableName struct{}  `bun:"table:stores,alias:s"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name" validate:"required,min=2,max=100"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug" validate:"required,min=2,max=60"`
	Email     string    `bun:"email,notnull,unique" json:"email" validate:"required,email"`

	// UPI payment handle of the vendor, used to build the payment handoff URI.
	UpiId   string `bun:"upi_id,notnull" json:"upi_id" validate:"required,min=3,max=100"`
	UpiName string `bun:"upi_name,notnull" json:"upi_name" validate:"required,min=2,max=100"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type MenuItem struct {
	tableName   struct{}  `bun:"table:menu_items,alias:mi"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	StoreId     uuid.UUID `bun:"store_id,notnull,type:uuid" json:"store_id" validate:"required"`
	Name        string    `bun:"name,notnull" json:"name" validate:"required,min=2,max=120"`
	Price       int64     `bun:"price,notnull" json:"price" validate:"gte=0"`
	IsAvailable bool      `bun:"is_available,notnull,default:true" json:"is_available"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
