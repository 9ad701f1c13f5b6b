package orders

import (
	"net/http"
	"vendora_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// GetSingleOrder fetches one order by id, items and relations included.
func (om *OrderRoutesManager) GetSingleOrder(w http.ResponseWriter, r *http.Request) {
	rawId := r.URL.Query().Get("id")
	orderId, err := uuid.Parse(rawId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	order, err := om.services.OrderService.GetOrderById(r.Context(), orderId)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to fetch order", om.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order fetched"),
		gecho.WithData(order),
		gecho.Send(),
	)
}
