package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Feed      *FeedConfig
	Auth      *AuthConfig
	Email     *EmailConfig
	Payment   *PaymentConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string
	Environment    string // development, production
	Port           string // :8080
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// FeedConfig configures the redis connection backing the order change feed.
type FeedConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
	ChannelPrefix   string
}

// AuthConfig holds the shared secret used to verify access tokens issued by
// the external auth provider. Token issuance is not this service's job.
type AuthConfig struct {
	AccessTokenSecret string
}

type EmailConfig struct {
	ApiKey  string
	From    string
	Enabled bool
}

type PaymentConfig struct {
	Currency string
}

// RateLimitConfig holds sliding-window limits keyed by client IP. Order
// mutations get a stricter budget than reads.
type RateLimitConfig struct {
	Enabled       bool
	OrderLimit    int
	OrderWindow   time.Duration
	GeneralLimit  int
	GeneralWindow time.Duration
}
