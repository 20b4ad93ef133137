package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore keeps snapshots in Redis so live games survive a server
// restart. Expiry rides on the Redis TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore dials addr and verifies the connection. When Redis is
// unreachable it logs a warning and reports ok=false so the caller can
// fall back to the in-memory store instead of failing startup.
func NewRedisStore(addr, password string, ttl time.Duration) (*RedisStore, bool) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).
			Msg("could not connect to redis, falling back to in-memory store")
		client.Close()
		return nil, false
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return &RedisStore{client: client, ttl: ttl}, true
}

func (s *RedisStore) Save(ctx context.Context, state SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(state.GameID), data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, gameID string) (SessionState, error) {
	data, err := s.client.Get(ctx, sessionKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return SessionState{}, ErrNotFound
	}
	if err != nil {
		return SessionState{}, err
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return SessionState{}, err
	}
	return state, nil
}

func (s *RedisStore) Delete(ctx context.Context, gameID string) error {
	return s.client.Del(ctx, sessionKey(gameID)).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(gameID string) string {
	return "connect4:session:" + gameID
}
