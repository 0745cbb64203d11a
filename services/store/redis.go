package store

import (
	"context"
	"encoding/json"

	"mblythe/rentwatcher/logger"
	apperr "mblythe/rentwatcher/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store as a single Redis key holding the same
// JSON array the file backend uses. Replace semantics are identical.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	key    string
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(ctx context.Context, addr string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		client: client,
		ctx:    ctx,
		key:    key,
	}
}

// Load reads the persisted link set. A missing key, connection failure
// or malformed value yields an empty set.
func (s *RedisStore) Load() map[string]bool {
	links := make(map[string]bool)

	data, err := s.client.Get(s.ctx, s.key).Bytes()
	if err != nil || len(data) == 0 {
		return links
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		logger.ForStore().Debug().
			Err(err).
			Str("key", s.key).
			Msg("State key is not valid JSON; starting from an empty set")
		return links
	}

	for _, link := range list {
		links[link] = true
	}
	return links
}

// Save overwrites the state key with the given link set
func (s *RedisStore) Save(links map[string]bool) error {
	list := make([]string, 0, len(links))
	for link := range links {
		list = append(list, link)
	}

	data, err := json.Marshal(list)
	if err != nil {
		return apperr.NewState("failed to encode state", err)
	}

	if err := s.client.Set(s.ctx, s.key, data, 0).Err(); err != nil {
		return apperr.NewState("failed to write state key", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
