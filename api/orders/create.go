package orders

import (
	"errors"
	"net/http"
	"vendora_server/handling"
	"vendora_server/lib"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder places a new order. Item prices are snapshotted from the live
// menu and the client total is verified server-side before anything persists.
// The response carries the vendor's UPI details so the client can hand off to
// a payment app immediately.
func (om *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateOrderRequest](r)
	if err != nil {
		var validationErr *lib.ValidationError
		if errors.As(err, &validationErr) {
			gecho.BadRequest(w,
				gecho.WithMessage("Invalid order payload"),
				gecho.WithData(validationErr.Errors),
				gecho.Send(),
			)
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
		return
	}

	order, store, err := om.services.OrderService.CreateOrderFromRequest(r.Context(), body)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to create order", om.logger)
		return
	}

	vendor := structs.VendorInfo{
		StoreId: store.Id,
		UpiId:   store.UpiId,
		UpiName: store.UpiName,
		PaymentURI: lib.PaymentURI(
			store.UpiId,
			store.UpiName,
			order.TotalAmount,
			om.cfg.Payment.Currency,
			order.OrderNumber,
		),
	}

	om.logger.Info("Order created",
		gecho.Field("order_number", order.OrderNumber),
		gecho.Field("store_id", store.Id),
	)

	gecho.Success(w,
		gecho.WithMessage("Order created"),
		gecho.WithData(map[string]any{
			"order":  order,
			"vendor": vendor,
		}),
		gecho.Send(),
	)
}
