package orders

import (
	"net/http"
	"vendora_server/handling"
	"vendora_server/lib"

	"github.com/MonkyMars/gecho"
)

// TrackOrder returns the current state of an order for the customer-facing
// tracking page, addressed by order number. The response includes the short
// pickup token the customer shows at the counter.
func (om *OrderRoutesManager) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := r.URL.Query().Get("order_number")
	if orderNumber == "" {
		gecho.BadRequest(w, gecho.WithMessage("Missing order_number query parameter"), gecho.Send())
		return
	}

	order, err := om.services.OrderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to fetch order", om.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order fetched"),
		gecho.WithData(map[string]any{
			"order": order,
			"token": lib.Token(order.OrderNumber),
		}),
		gecho.Send(),
	)
}
