package tables

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a contact-info record keyed softly by phone number; the first
// match wins on reuse. Customers are never authenticated.
type Customer struct {
	tableName struct{}  `bun:"table:customers,alias:c"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Phone     string    `bun:"phone,notnull" json:"phone" validate:"required,min=10,max=20"`
	Name      string    `bun:"name" json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
