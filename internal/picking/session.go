package picking

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers per-session barcode disambiguation defaults. The
// mapping is barcode -> chosen product id, scoped to one picking session and
// never shared across pickers.
type SessionStore interface {
	DefaultProduct(ctx context.Context, sessionID, barcode string) (int64, bool, error)
	RememberDefault(ctx context.Context, sessionID, barcode string, productID int64) error
}

// RedisSessionStore keeps session defaults in a per-session Redis hash with a
// TTL, so abandoned sessions expire on their own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore constructs a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return "picksession:" + sessionID + ":defaults"
}

func (s *RedisSessionStore) DefaultProduct(ctx context.Context, sessionID, barcode string) (int64, bool, error) {
	val, err := s.client.HGet(ctx, s.key(sessionID), barcode).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	productID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return productID, true, nil
}

func (s *RedisSessionStore) RememberDefault(ctx context.Context, sessionID, barcode string, productID int64) error {
	key := s.key(sessionID)
	if err := s.client.HSet(ctx, key, barcode, strconv.FormatInt(productID, 10)).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

// MemorySessionStore is the in-process equivalent, used in tests and demo mode.
type MemorySessionStore struct {
	mu       sync.RWMutex
	defaults map[string]map[string]int64
}

// NewMemorySessionStore constructs an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{defaults: make(map[string]map[string]int64)}
}

func (s *MemorySessionStore) DefaultProduct(ctx context.Context, sessionID, barcode string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.defaults[sessionID]
	if !ok {
		return 0, false, nil
	}
	productID, ok := session[barcode]
	return productID, ok, nil
}

func (s *MemorySessionStore) RememberDefault(ctx context.Context, sessionID, barcode string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.defaults[sessionID]
	if !ok {
		session = make(map[string]int64)
		s.defaults[sessionID] = session
	}
	session[barcode] = productID
	return nil
}
