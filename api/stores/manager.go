package stores

import (
	"vendora_server/api/middleware"
	"vendora_server/services"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type StoreRoutesManager struct {
	cfg      *structs.Config
	logger   *gecho.Logger
	mw       *middleware.Middleware
	services *services.ServiceManager
}

func NewStoreRoutesManager(cfg *structs.Config, logger *gecho.Logger, mw *middleware.Middleware, sm *services.ServiceManager) *StoreRoutesManager {
	return &StoreRoutesManager{
		cfg:      cfg,
		logger:   logger,
		mw:       mw,
		services: sm,
	}
}

func (sm *StoreRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/stores", func(r chi.Router) {
		r.Get("/get", sm.GetStore)
		r.Get("/menu", sm.GetMenu)

		r.Group(func(r chi.Router) {
			r.Use(sm.mw.VendorAuth)
			r.Post("/create", sm.CreateStore)
			r.Post("/menu/create", sm.CreateMenuItem)
			r.Patch("/menu/availability", sm.SetMenuAvailability)
		})
	})
}
