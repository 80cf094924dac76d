package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "stationhub:session:"

// RedisStore keeps sessions in Redis with a TTL, so they survive restarts and
// are shared between instances.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, ttl: ttl}
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisStore) Create(ctx context.Context, user *models.User) (*Session, error) {
	s := newSession(user, time.Now().UTC(), r.ttl)

	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.NewInternalError("failed to marshal session", err)
	}
	if err := r.redis.Set(ctx, redisKey(s.Token), data, r.ttl).Err(); err != nil {
		return nil, errors.NewInternalError("failed to store session", fmt.Errorf("redis set: %w", err))
	}
	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.redis.Get(ctx, redisKey(token)).Result()
	if err == redis.Nil {
		return nil, errInvalidSession()
	}
	if err != nil {
		return nil, errors.NewInternalError("failed to load session", fmt.Errorf("redis get: %w", err))
	}

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, errors.NewInternalError("failed to unmarshal session", err)
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.redis.Del(ctx, redisKey(token)).Err(); err != nil {
		return errors.NewInternalError("failed to delete session", fmt.Errorf("redis del: %w", err))
	}
	return nil
}
