package api

import (
	"vendora_server/api/health"
	"vendora_server/api/middleware"
	"vendora_server/api/orders"
	"vendora_server/api/stores"
	"vendora_server/services"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	orderRoutes  *orders.OrderRoutesManager
	storeRoutes  *stores.StoreRoutesManager
	healthRoutes *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, mw *middleware.Middleware, sm *services.ServiceManager) *routerManager {
	return &routerManager{
		orderRoutes:  orders.NewOrderRoutesManager(cfg, logger, mw, sm),
		storeRoutes:  stores.NewStoreRoutesManager(cfg, logger, mw, sm),
		healthRoutes: health.NewHealthRoutesManager(cfg, logger, sm),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.orderRoutes.RegisterRoutes(r)
	rm.storeRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
