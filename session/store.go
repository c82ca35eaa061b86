package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport-level failures talking to Redis.
var ErrRedisUnavailable = errors.New("redis unavailable")

const minTTL = time.Second

// Store tracks session presence in Redis. A session is a single key whose
// value is the creation time in unix seconds; expiry is enforced by Redis
// TTLs.
//
// Store instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Store struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	sliding bool
}

// NewStore builds a presence store. prefix namespaces the keys, ttl bounds
// session lifetime (clamped to at least one second), and sliding refreshes
// the TTL on every successful Active check.
func NewStore(client *redis.Client, prefix string, ttl time.Duration, sliding bool) *Store {
	if ttl < minTTL {
		ttl = minTTL
	}
	return &Store{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		sliding: sliding,
	}
}

// Create registers a session id. An existing id is overwritten and its TTL
// reset.
func (s *Store) Create(ctx context.Context, id string) error {
	value := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.Set(ctx, s.key(id), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Active reports whether the session id currently exists. With sliding
// expiration enabled, a hit also pushes the TTL forward.
func (s *Store) Active(ctx context.Context, id string) (bool, error) {
	err := s.client.Get(ctx, s.key(id)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if s.sliding {
		if err := s.client.Expire(ctx, s.key(id), s.ttl).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return true, nil
}

// Revoke removes a session id. Revoking an absent id is not an error.
func (s *Store) Revoke(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}
