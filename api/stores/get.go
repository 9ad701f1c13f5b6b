package stores

import (
	"net/http"
	"vendora_server/handling"

	"github.com/MonkyMars/gecho"
)

// GetStore resolves a storefront by its public slug, as used in store URLs.
func (sm *StoreRoutesManager) GetStore(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		gecho.BadRequest(w, gecho.WithMessage("Missing slug query parameter"), gecho.Send())
		return
	}

	store, err := sm.services.StoreService.GetStoreBySlug(r.Context(), slug)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to fetch store", sm.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Store fetched"),
		gecho.WithData(store),
		gecho.Send(),
	)
}
