package services

import (
	"runtime"
	"time"
	"vendora_server/database"

	"github.com/MonkyMars/gecho"
)

var uptimeStart time.Time

func init() {
	uptimeStart = time.Now()
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"` // in seconds
	CurrentTime  time.Time `json:"current_time"`
	ServiceAlive bool      `json:"service_alive"`
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type dependencyHealthStatus struct {
	DatabaseConnected bool      `json:"database_connected"`
	FeedConnected     bool      `json:"feed_connected"`
	LastChecked       time.Time `json:"last_checked"`
	ResponseTimeMs    int64     `json:"response_time_ms"`
}

type HealthService struct {
	logger *gecho.Logger
	db     *database.DB
	feed   *FeedService
	status serverHealthStatus
}

func NewHealthService(logger *gecho.Logger, db *database.DB, feed *FeedService) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		feed:   feed,
		status: serverHealthStatus{
			Uptime:       0,
			CurrentTime:  time.Now(),
			ServiceAlive: true,
			RamStats:     getRamStats(),
		},
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	freeMB := totalMB - usedMB
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	hs.status.Uptime = time.Since(uptimeStart).Seconds()
	hs.status.CurrentTime = time.Now()
	hs.status.RamStats = getRamStats()
	return hs.status
}

// GetDependencyHealthStatus pings the database and the feed's redis.
func (hs *HealthService) GetDependencyHealthStatus() (dependencyHealthStatus, error) {
	start := time.Now()
	dbErr := hs.db.Health()
	feedErr := hs.feed.Health()
	elapsed := time.Since(start).Milliseconds()

	status := dependencyHealthStatus{
		DatabaseConnected: dbErr == nil,
		FeedConnected:     feedErr == nil,
		LastChecked:       time.Now(),
		ResponseTimeMs:    elapsed,
	}

	if dbErr != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", dbErr))
		return status, dbErr
	}
	if feedErr != nil {
		hs.logger.Error("Feed health check failed", gecho.Field("error", feedErr))
		return status, feedErr
	}

	return status, nil
}
