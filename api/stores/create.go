package stores

import (
	"errors"
	"net/http"
	"vendora_server/handling"
	"vendora_server/lib"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateStore onboards a vendor storefront. Slug and email must be unique.
func (sm *StoreRoutesManager) CreateStore(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateStoreRequest](r)
	if err != nil {
		var validationErr *lib.ValidationError
		if errors.As(err, &validationErr) {
			gecho.BadRequest(w,
				gecho.WithMessage("Invalid store payload"),
				gecho.WithData(validationErr.Errors),
				gecho.Send(),
			)
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
		return
	}

	store, err := sm.services.StoreService.CreateStore(r.Context(), body)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to create store", sm.logger)
		return
	}

	sm.logger.Info("Store created",
		gecho.Field("store_id", store.Id),
		gecho.Field("slug", store.Slug),
	)

	gecho.Success(w,
		gecho.WithMessage("Store created"),
		gecho.WithData(store),
		gecho.Send(),
	)
}
