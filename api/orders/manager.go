package orders

import (
	"vendora_server/api/middleware"
	"vendora_server/services"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	cfg      *structs.Config
	logger   *gecho.Logger
	mw       *middleware.Middleware
	services *services.ServiceManager
}

func NewOrderRoutesManager(cfg *structs.Config, logger *gecho.Logger, mw *middleware.Middleware, sm *services.ServiceManager) *OrderRoutesManager {
	return &OrderRoutesManager{
		cfg:      cfg,
		logger:   logger,
		mw:       mw,
		services: sm,
	}
}

func (om *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/create", om.CreateOrder)
		r.Patch("/status", om.UpdateOrderStatus)
		r.Get("/track", om.TrackOrder)
		r.Get("/get-single", om.GetSingleOrder)
		r.Get("/subscribe", om.SubscribeOrders)

		r.Group(func(r chi.Router) {
			r.Use(om.mw.VendorAuth)
			r.Get("/vendor", om.GetVendorOrders)
		})
	})
}
