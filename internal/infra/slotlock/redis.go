package slotlock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/turnos-scheduler/internal/domain/turno"
	"github.com/BruksfildServices01/turnos-scheduler/internal/httperr"
)

const (
	keyPrefix = "turnos:slot:"

	defaultTTL       = 30 * time.Second
	defaultWait      = 5 * time.Second
	defaultRetryStep = 50 * time.Millisecond
)

// releases the lock only if it is still held by the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a SET NX PX lock shared by every instance using the same server.
type Redis struct {
	client *redis.Client

	ttl       time.Duration
	wait      time.Duration
	retryStep time.Duration
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client:    client,
		ttl:       defaultTTL,
		wait:      defaultWait,
		retryStep: defaultRetryStep,
	}
}

// NewRedisFromURL parses url and checks the server is reachable.
func NewRedisFromURL(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing REDIS_URL")
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}

	return NewRedis(client), nil
}

// Acquire retries until the lock is free, the wait budget is spent
// (slot_unavailable) or ctx ends.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key
	deadline := time.Now().Add(r.wait)

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "acquiring slot lock")
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, httperr.ErrBusiness(domain.CodeSlotUnavailable)
		}

		select {
		case <-time.After(r.retryStep):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, r.client, []string{redisKey}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", redisKey).Msg("releasing slot lock")
		}
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ domain.SlotLocker = (*Redis)(nil)
