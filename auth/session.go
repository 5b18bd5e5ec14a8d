package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"

	// DefaultTTL is how long a login survives without re-authentication.
	DefaultTTL = 24 * time.Hour
)

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("session not found")

// SessionStore binds opaque session ids to account ids.
type SessionStore interface {
	Create(ctx context.Context, accountID uint) (string, error)
	Get(ctx context.Context, id string) (uint, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a Redis-backed session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, accountID uint) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, uint64(accountID), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (uint, error) {
	key := sessionKeyPrefix + id
	n, err := s.rdb.Get(ctx, key).Uint64()
	if err == redis.Nil {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	// Refresh the TTL on use so active sessions don't expire mid-day.
	s.rdb.Expire(ctx, key, s.ttl)
	return uint(n), nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}
