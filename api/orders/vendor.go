package orders

import (
	"net/http"
	"vendora_server/api/middleware"
	"vendora_server/handling"

	"github.com/MonkyMars/gecho"
)

// GetVendorOrders serves the vendor dashboard. Orders come from the in-memory
// store view, which is seeded from storage and kept current by the change
// feed, pre-partitioned into the dashboard's action buckets. The connection
// state tells the client how fresh the view is.
func (om *OrderRoutesManager) GetVendorOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Missing authentication"), gecho.Send())
		return
	}

	store, err := om.services.StoreService.GetStoreByEmail(r.Context(), claims.Email)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to resolve vendor store", om.logger)
		return
	}

	buckets, connState, err := om.services.DashboardService.Buckets(r.Context(), store.Id)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to load vendor orders", om.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Vendor orders fetched"),
		gecho.WithData(map[string]any{
			"store_id":         store.Id,
			"orders":           buckets,
			"connection_state": connState,
		}),
		gecho.Send(),
	)
}
