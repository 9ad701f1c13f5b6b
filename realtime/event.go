package realtime

import (
	"context"
	"vendora_server/structs/tables"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
)

// ChangeEvent is one notification on a store's order feed. Insert events
// carry only the order id and version; the payload is too minimal to render,
// so consumers hydrate by id. Update events carry the full new representation.
type ChangeEvent struct {
	EventType EventType     `json:"event_type"`
	StoreId   uuid.UUID     `json:"store_id"`
	OrderId   uuid.UUID     `json:"order_id"`
	Version   int64         `json:"version"`
	New       *tables.Order `json:"new,omitempty"`
}

// Feed is the capability interface over the push transport. The returned
// cancel func tears the subscription down; the channel closes when the
// subscription ends for any reason.
type Feed interface {
	Subscribe(ctx context.Context, storeId uuid.UUID) (<-chan ChangeEvent, func(), error)
}

// Hydrator fetches a full order (with relations) by primary key. Insert
// events are resolved through it because their payload cannot be rendered
// directly.
type Hydrator interface {
	OrderById(ctx context.Context, id uuid.UUID) (*tables.Order, error)
}
