package health

import (
	"vendora_server/services"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutesManager struct {
	cfg      *structs.Config
	logger   *gecho.Logger
	services *services.ServiceManager
}

func NewHealthRoutesManager(cfg *structs.Config, logger *gecho.Logger, sm *services.ServiceManager) *HealthRoutesManager {
	return &HealthRoutesManager{
		cfg:      cfg,
		logger:   logger,
		services: sm,
	}
}

func (hm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/health", func(r chi.Router) {
		r.Get("/", hm.GetServerHealth)
		r.Get("/dependencies", hm.GetDependencyHealth)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	prometheus.MustRegister(HttpDuration, HttpRequests)
}
