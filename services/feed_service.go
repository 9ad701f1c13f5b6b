package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"vendora_server/config"
	"vendora_server/realtime"
	"vendora_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// FeedService is the redis pub/sub transport behind the order change feed.
// Every store has its own channel; events are JSON-encoded ChangeEvents.
// It implements realtime.Feed.
type FeedService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *redis.Client
}

func NewFeedService(logger *gecho.Logger, cfg *structs.Config) *FeedService {
	return &FeedService{
		logger: logger,
		cfg:    cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton redis client with connection pooling.
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Feed.Address,
			Username: cfg.Feed.Username,
			Password: cfg.Feed.Password,
			DB:       cfg.Feed.DB,

			PoolSize:     cfg.Feed.PoolSize,
			MinIdleConns: cfg.Feed.MinIdleConns,

			DialTimeout:  cfg.Feed.DialTimeout,
			ReadTimeout:  cfg.Feed.ReadTimeout,
			WriteTimeout: cfg.Feed.WriteTimeout,

			MaxRetries:      cfg.Feed.MaxRetries,
			MinRetryBackoff: cfg.Feed.MinRetryBackoff,
			MaxRetryBackoff: cfg.Feed.MaxRetryBackoff,
		})
	})
	return redisClient
}

func (fs *FeedService) channel(storeId uuid.UUID) string {
	return fs.cfg.Feed.ChannelPrefix + storeId.String()
}

// Publish announces a change event on the store's channel with retry.
// Delivery is best effort: pub/sub holds nothing back for absent
// subscribers, which is why consumers reconcile via hydration and reset.
func (fs *FeedService) Publish(ctx context.Context, storeId uuid.UUID, event realtime.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}

	return fs.withRetry(func() error {
		return fs.client.Publish(ctx, fs.channel(storeId), payload).Err()
	}, fs.cfg.Feed.MaxRetries)
}

// Subscribe opens a change-event stream scoped to one store. The returned
// cancel func closes the underlying pub/sub; the channel closes once the
// subscription ends.
func (fs *FeedService) Subscribe(ctx context.Context, storeId uuid.UUID) (<-chan realtime.ChangeEvent, func(), error) {
	pubsub := fs.client.Subscribe(ctx, fs.channel(storeId))

	// Confirm the subscription before handing the stream out.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to order feed: %w", err)
	}

	out := make(chan realtime.ChangeEvent, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event realtime.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				fs.logger.Warn("Dropping malformed change event",
					gecho.Field("error", err),
					gecho.Field("channel", msg.Channel))
				continue
			}
			out <- event
		}
	}()

	return out, func() { pubsub.Close() }, nil
}

// IncrementRateLimit atomically bumps the request counter for one client and
// endpoint. The window expiry is set on the first increment only, giving a
// fixed window per key.
func (fs *FeedService) IncrementRateLimit(ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := fs.withRetry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		val, err := fs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return fs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, fs.cfg.Feed.MaxRetries)

	return int(result), err
}

// Health pings the redis backing the feed.
func (fs *FeedService) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return fs.client.Ping(ctx).Err()
}

func (fs *FeedService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a redis operation with exponential backoff.
func (fs *FeedService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		if !isRetryableRedisError(err) {
			return err
		}

		backoff := 100 * (1 << attempt) // ms, exponential
		backoff = min(backoff, 2000)
		time.Sleep(time.Duration(backoff) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

func isRetryableRedisError(err error) bool {
	if err == nil || err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}
