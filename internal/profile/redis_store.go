package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/nutriflow/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/codes"
)

type RedisStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		key:         StoreKey,
	}
}

func (s *RedisStore) Load(ctx context.Context) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.profile.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cmd := s.redisClient.Get(ctx, s.key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get profile: %w", err)
	}

	return unmarshal([]byte(cmd.Val()))
}

func (s *RedisStore) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.profile.save")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	profileBytes, err := marshal(p)
	if err != nil {
		return err
	}

	if err := s.redisClient.Set(ctx, s.key, profileBytes, 0).Err(); err != nil {
		return fmt.Errorf("redis set profile: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.profile.clear")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.redisClient.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del profile: %w", err)
	}
	return nil
}
