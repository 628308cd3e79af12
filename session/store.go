package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

// Store persists session state between requests.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
}

func sessionKey(id string) string { return fmt.Sprintf("session:%s", id) }

func decode(b []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Translations == nil {
		s.Translations = map[string]string{}
	}
	return &s, nil
}

// RedisStore keeps each session as a JSON value under session:<id>. Keys have no TTL and
// live until the session is ended.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*State, error) {
	b, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return decode(b)
}

func (r *RedisStore) Save(ctx context.Context, s *State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(s.ID), string(b), 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

// MemoryStore keeps encoded sessions in process memory, for single-instance deployments.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*State, error) {
	v, ok := m.c.Get(sessionKey(id))
	if !ok {
		return nil, ErrNotFound
	}
	return decode(v.([]byte))
}

func (m *MemoryStore) Save(_ context.Context, s *State) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.c.Set(sessionKey(s.ID), b, cache.NoExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.c.Delete(sessionKey(id))
	return nil
}
