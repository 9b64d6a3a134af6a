package utils

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps server-side admin sessions keyed by a random session id.
// It is injected into the router and middleware rather than accessed as
// ambient global state.
type SessionStore interface {
	// Get returns the admin id bound to sid. The bool reports whether a live
	// session exists.
	Get(ctx context.Context, sid string) (uint, bool, error)
	// Set binds sid to adminID with the given TTL.
	Set(ctx context.Context, sid string, adminID uint, ttl time.Duration) error
	// Refresh extends the TTL of an existing session (sliding expiry).
	Refresh(ctx context.Context, sid string, ttl time.Duration) error
	// Destroy removes the session. Destroying an absent session is not an error.
	Destroy(ctx context.Context, sid string) error
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

const sessionKeyPrefix = "session:admin:"

// RedisSessionStore stores sessions in Redis with per-key TTL.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (uint, bool, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sid).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, nil
	}
	return uint(id), true, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sid string, adminID uint, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKeyPrefix+sid, strconv.FormatUint(uint64(adminID), 10), ttl).Err()
}

func (s *RedisSessionStore) Refresh(ctx context.Context, sid string, ttl time.Duration) error {
	return s.client.Expire(ctx, sessionKeyPrefix+sid, ttl).Err()
}

func (s *RedisSessionStore) Destroy(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sid).Err()
}

type memorySession struct {
	adminID   uint
	expiresAt time.Time
}

// MemorySessionStore is an in-process session store for tests and
// single-instance deployments without Redis.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]memorySession{}}
}

func (s *MemorySessionStore) Get(ctx context.Context, sid string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sid]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, sid)
		return 0, false, nil
	}
	return entry.adminID, true, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, sid string, adminID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{adminID: adminID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Refresh(ctx context.Context, sid string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions[sid]; ok {
		entry.expiresAt = time.Now().Add(ttl)
		s.sessions[sid] = entry
	}
	return nil
}

func (s *MemorySessionStore) Destroy(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
