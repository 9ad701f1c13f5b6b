package middleware

import (
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg     *structs.Config
	logger  *gecho.Logger
	limiter RateLimiter
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, limiter RateLimiter) *Middleware {
	return &Middleware{
		cfg:     cfg,
		logger:  logger,
		limiter: limiter,
	}
}
