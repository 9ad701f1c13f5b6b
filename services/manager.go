package services

import (
	"vendora_server/database"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	FeedService      *FeedService
	EmailService     *EmailService
	HealthService    *HealthService
	StoreService     *StoreService
	OrderService     *OrderService
	StatusService    *StatusService
	DashboardService *DashboardService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	feedService := NewFeedService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, feedService)
	storeService := NewStoreService(logger, db)
	orderService := NewOrderService(logger, cfg, db, feedService)
	statusService := NewStatusService(logger, cfg, db, orderService, feedService, emailService)
	dashboardService := NewDashboardService(logger, orderService, feedService)

	return &ServiceManager{
		FeedService:      feedService,
		EmailService:     emailService,
		HealthService:    healthService,
		StoreService:     storeService,
		OrderService:     orderService,
		StatusService:    statusService,
		DashboardService: dashboardService,
	}
}
