package config

import (
	"sync"
	"time"
	"vendora_server/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "Vendora"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8080"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIMEOUT", 15*time.Second),
				// zero write timeout: /orders/subscribe holds SSE streams open
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIMEOUT", 0),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
			},
			Database: &structs.DatabaseConfig{
				Host:        getEnvAsString("DB_HOST", "localhost"),
				Port:        getEnvAsInt("DB_PORT", 5432),
				User:        getEnvAsString("DB_USER", "postgres"),
				Password:    getEnvAsString("DB_PASSWORD", "password"),
				Name:        getEnvAsString("DB_NAME", "vendora_db"),
				SSLMode:     getEnvAsString("DB_SSL_MODE", "disable"),
				MaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:    getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime: getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime: getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
			},
			Feed: &structs.FeedConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 2*time.Second),
				ChannelPrefix:   getEnvAsString("FEED_CHANNEL_PREFIX", "vendora:orders:"),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
			},
			Email: &structs.EmailConfig{
				ApiKey:  getEnvAsString("RESEND_API_KEY", ""),
				From:    getEnvAsString("EMAIL_FROM", "orders@vendora.app"),
				Enabled: getEnvAsBool("EMAIL_ENABLED", false),
			},
			Payment: &structs.PaymentConfig{
				Currency: getEnvAsString("PAYMENT_CURRENCY", "INR"),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:       getEnvAsBool("RATE_LIMIT_ENABLED", true),
				OrderLimit:    getEnvAsInt("RATE_LIMIT_ORDER_LIMIT", 15),
				OrderWindow:   getEnvAsTimeDuration("RATE_LIMIT_ORDER_WINDOW", time.Minute),
				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL_LIMIT", 120),
				GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
