package services

import (
	"context"
	"time"
	"vendora_server/database"
	"vendora_server/lib"
	"vendora_server/realtime"
	"vendora_server/structs"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// StatusService owns every order status mutation. Transitions are validated
// against the authoritative graph, persisted with a version compare-and-swap,
// and announced on the store's change feed.
type StatusService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	orders *OrderService
	feed   *FeedService
	email  *EmailService
}

func NewStatusService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	orders *OrderService,
	feed *FeedService,
	email *EmailService,
) *StatusService {
	return &StatusService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		orders: orders,
		feed:   feed,
		email:  email,
	}
}

// UpdateStatus transitions the order identified by its business key to the
// target status and returns the updated order with relations populated.
// Re-applying the current status is a no-op. Two concurrent updates with
// different targets are detected by the version check; the loser reloads
// once and revalidates before giving up with a conflict.
func (ss *StatusService) UpdateStatus(ctx context.Context, orderNumber string, rawStatus string) (*tables.Order, error) {
	target, err := tables.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		order, err := ss.orders.GetOrderByNumber(ctx, orderNumber)
		if err != nil {
			return nil, err
		}

		prevVersion := order.Version
		if err := order.ApplyTransition(target); err != nil {
			return nil, err
		}

		// Same-status re-apply: nothing to persist, nothing to re-stamp.
		if order.Version == prevVersion {
			return order, nil
		}

		columns := map[string]any{
			"status":  order.Status,
			"version": order.Version,
		}
		if column := statusTimestampColumn(target); column != "" {
			columns[column] = order.TransitionTimestamp()
		}

		rows, err := database.Query[tables.Order](ss.db).
			Where("id", order.Id).
			Where("version", prevVersion).
			Update(ctx, columns)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if rows == 0 {
			// Lost a concurrent update; reload and revalidate the transition
			// against the new state.
			ss.logger.Warn("Order status update lost version race, retrying",
				gecho.Field("order_number", orderNumber),
				gecho.Field("target", target))
			continue
		}

		updated, err := ss.orders.GetOrderById(ctx, order.Id)
		if err != nil {
			return nil, err
		}

		ss.publishUpdate(updated)

		if target == tables.OrderStatusPaymentCompleted {
			ss.notifyVendor(updated)
		}

		ss.logger.Info("Order status updated",
			gecho.Field("order_number", orderNumber),
			gecho.Field("new_status", target),
			gecho.Field("version", updated.Version))
		return updated, nil
	}

	return nil, lib.ErrConflict
}

// statusTimestampColumn maps a target status to the timestamp column it
// stamps. CANCELLED and PENDING_PAYMENT stamp nothing.
func statusTimestampColumn(target tables.OrderStatus) string {
	switch target {
	case tables.OrderStatusPaymentCompleted:
		return "payment_completed_at"
	case tables.OrderStatusConfirmed:
		return "confirmed_at"
	case tables.OrderStatusRejected:
		return "rejected_at"
	case tables.OrderStatusCompleted:
		return "completed_at"
	}
	return ""
}

func (ss *StatusService) publishUpdate(order *tables.Order) {
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := ss.feed.Publish(pubCtx, order.StoreId, realtime.ChangeEvent{
			EventType: realtime.EventUpdate,
			StoreId:   order.StoreId,
			OrderId:   order.Id,
			Version:   order.Version,
			New:       order,
		}); err != nil {
			ss.logger.Error("Failed to publish order update event",
				gecho.Field("error", err),
				gecho.Field("order_id", order.Id))
		}
	}()
}

func (ss *StatusService) notifyVendor(order *tables.Order) {
	if order.Store == nil {
		return
	}

	go func() {
		if err := ss.email.SendOrderPaidEmail(order.Store, order); err != nil {
			ss.logger.Error("Failed to send order paid email",
				gecho.Field("error", err),
				gecho.Field("order_number", order.OrderNumber),
				gecho.Field("store_id", order.StoreId))
		}
	}()
}
