package state

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "oauth_state:"

var (
	// ErrEmptyConnectionURL is returned by Open for an empty URL.
	ErrEmptyConnectionURL = errors.New("state: empty redis connection URL")

	// ErrFailedToParseURL is returned by Open for a malformed or non-redis URL.
	ErrFailedToParseURL = errors.New("state: failed to parse redis connection URL")

	// ErrConnectionFailed is returned by Open when no ping succeeded.
	ErrConnectionFailed = errors.New("state: failed to establish redis connection")

	// ErrHealthcheckFailed is returned by Healthcheck when redis is unreachable.
	ErrHealthcheckFailed = errors.New("state: redis healthcheck failed")

	// ErrStateTaken is returned by Redis.Save when the value is already pending.
	ErrStateTaken = errors.New("state: value already pending")
)

// Redis is a Store backed by Redis, suitable when several instances serve
// the same login flow.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis store. An empty prefix uses "oauth_state:".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Save implements Store with SET NX, so an already pending value is never
// overwritten.
func (r *Redis) Save(ctx context.Context, state string, ttl time.Duration) error {
	if state == "" {
		return ErrEmptyState
	}
	ok, err := r.client.SetNX(ctx, r.prefix+state, 1, resolveTTL(ttl)).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrStateTaken
	}
	return nil
}

// Consume implements Store with GETDEL, which is atomic across instances.
func (r *Redis) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}
	err := r.client.GetDel(ctx, r.prefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RedisOption configures a connection made by Open.
type RedisOption func(*redisOptions)

type redisOptions struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
	ioTimeout     time.Duration
}

// WithPoolSize sets the maximum number of pooled connections.
// Default: 10
func WithPoolSize(n int) RedisOption {
	return func(o *redisOptions) {
		o.poolSize = n
	}
}

// WithRetry configures startup ping retries.
// Default: 3 attempts, 2 second base interval growing linearly.
func WithRetry(attempts int, interval time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// Open connects to the redis:// or rediss:// URL and pings it, retrying on
// failure until attempts run out or ctx is done.
func Open(ctx context.Context, url string, opts ...RedisOption) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := &redisOptions{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		dialTimeout:   5 * time.Second,
		ioTimeout:     3 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	redisOpts.PoolSize = o.poolSize
	redisOpts.DialTimeout = o.dialTimeout
	redisOpts.ReadTimeout = o.ioTimeout
	redisOpts.WriteTimeout = o.ioTimeout

	attempts := max(o.retryAttempts, 1)
	var lastErr error
	for i := range attempts {
		client := redis.NewClient(redisOpts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a readiness check pinging client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
