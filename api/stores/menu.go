package stores

import (
	"errors"
	"net/http"
	"vendora_server/handling"
	"vendora_server/lib"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// GetMenu lists a store's menu, unavailable items included so storefronts can
// render them greyed out.
func (sm *StoreRoutesManager) GetMenu(w http.ResponseWriter, r *http.Request) {
	rawId := r.URL.Query().Get("store_id")
	storeId, err := uuid.Parse(rawId)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid store id"), gecho.Send())
		return
	}

	menu, err := sm.services.StoreService.GetMenuByStore(r.Context(), storeId)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to fetch menu", sm.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Menu fetched"),
		gecho.WithData(menu),
		gecho.Send(),
	)
}

func (sm *StoreRoutesManager) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateMenuItemRequest](r)
	if err != nil {
		var validationErr *lib.ValidationError
		if errors.As(err, &validationErr) {
			gecho.BadRequest(w,
				gecho.WithMessage("Invalid menu item payload"),
				gecho.WithData(validationErr.Errors),
				gecho.Send(),
			)
			return
		}
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
		return
	}

	item, err := sm.services.StoreService.CreateMenuItem(r.Context(), body)
	if err != nil {
		handling.RespondDomainError(w, err, "Failed to create menu item", sm.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Menu item created"),
		gecho.WithData(item),
		gecho.Send(),
	)
}

// SetMenuAvailability toggles an item on or off the live menu. Sold-out items
// stay on past orders because item rows snapshot name and price.
func (sm *StoreRoutesManager) SetMenuAvailability(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MenuAvailabilityRequest](r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
		return
	}

	if err := sm.services.StoreService.SetMenuItemAvailability(r.Context(), body.MenuItemId, body.IsAvailable); err != nil {
		handling.RespondDomainError(w, err, "Failed to update menu item", sm.logger)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Menu item updated"),
		gecho.Send(),
	)
}
