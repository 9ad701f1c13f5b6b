package orders

import (
	"errors"
	"net/http"
	"vendora_server/handling"
	"vendora_server/lib"
	"vendora_server/structs"
	"vendora_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// UpdateOrderStatus transitions an order addressed by its order number.
// Customers use it to confirm payment; vendors use it from the dashboard.
// When the caller is an authenticated vendor the dashboard view is updated
// optimistically before the write, and rolled back from storage if the write
// fails.
func (om *OrderRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.StatusUpdateRequest](r)
	if err != nil {
		var validationErr *lib.ValidationError
		if errors.As(err, &validationErr) {
			gecho.BadRequest(w,
				gecho.WithMessage("Invalid status payload"),
				gecho.WithData(validationErr.Errors),
				gecho.Send(),
			)
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
		return
	}

	var optimisticStore *uuid.UUID
	if target, parseErr := tables.ParseOrderStatus(body.Status); parseErr == nil {
		if storeId, ok := om.vendorStoreId(r); ok {
			om.services.DashboardService.ApplyOptimistic(storeId, body.OrderNumber, target)
			optimisticStore = &storeId
		}
	}

	order, err := om.services.StatusService.UpdateStatus(r.Context(), body.OrderNumber, body.Status)
	if err != nil {
		if optimisticStore != nil {
			if compErr := om.services.DashboardService.Compensate(r.Context(), *optimisticStore); compErr != nil {
				om.logger.Error("Failed to roll back dashboard view",
					gecho.Field("store_id", *optimisticStore),
					gecho.Field("error", compErr),
				)
			}
		}
		handling.RespondDomainError(w, err, "Failed to update order status", om.logger)
		return
	}

	om.logger.Info("Order status updated",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("status", order.Status),
		gecho.Field("version", order.Version),
	)

	gecho.Success(w,
		gecho.WithMessage("Order status updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

// vendorStoreId resolves the caller's store when a valid vendor token is
// attached. Unauthenticated callers simply skip the optimistic path.
func (om *OrderRoutesManager) vendorStoreId(r *http.Request) (uuid.UUID, bool) {
	claims, err := lib.ExtractClaims(r, om.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return uuid.Nil, false
	}

	store, err := om.services.StoreService.GetStoreByEmail(r.Context(), claims.Email)
	if err != nil {
		return uuid.Nil, false
	}

	return store.Id, true
}
