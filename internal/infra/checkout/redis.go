package checkout

import (
	"context"
	"errors"
	"time"

	"localscout-booking/internal/infra"
	"localscout-booking/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisLookup keeps tranID -> bookingID for the lifetime of a checkout.
type RedisLookup struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, infra.WrapRepoErr(infra.KindCacheFailure, "failed to ping redis", err)
	}
	return client, nil
}

func NewRedisLookup(client *redis.Client, prefix string) *RedisLookup {
	return &RedisLookup{client: client, prefix: prefix}
}

func (l *RedisLookup) Remember(ctx context.Context, tranID string, bookingID uuid.UUID, ttl time.Duration) error {
	if err := l.client.Set(ctx, l.prefix+tranID, bookingID.String(), ttl).Err(); err != nil {
		return infra.WrapRepoErr(infra.KindCacheFailure, "failed to store checkout transaction", err)
	}
	return nil
}

func (l *RedisLookup) Resolve(ctx context.Context, tranID string) (uuid.UUID, bool, error) {
	val, err := l.client.Get(ctx, l.prefix+tranID).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, infra.WrapRepoErr(infra.KindCacheFailure, "failed to read checkout transaction", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, infra.WrapRepoErr(infra.KindCacheFailure, "corrupt checkout transaction entry", err)
	}
	return id, true, nil
}

// NoopLookup is used when no Redis is configured. Resolve always misses, so
// webhooks fall back to parsing the transaction id.
type NoopLookup struct{}

func (NoopLookup) Remember(context.Context, string, uuid.UUID, time.Duration) error {
	return nil
}

func (NoopLookup) Resolve(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}
