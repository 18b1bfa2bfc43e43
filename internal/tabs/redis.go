package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harnesslab/wiremes/internal/common/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore implements Store using Redis, for deployments where several
// API server instances share session state.
type RedisStore struct {
	logger *zap.Logger
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis-backed tab store.
func NewRedisStore(logger *zap.Logger, cfg config.SessionRedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "tabs"
	}
	return &RedisStore{
		logger: logger.Named("tabs.store.redis"),
		client: client,
		prefix: prefix + ":",
		ttl:    cfg.TTL.Std(),
	}, nil
}

func (s *RedisStore) key(user string) string {
	return s.prefix + user
}

func (s *RedisStore) Load(ctx context.Context, user string) (*State, error) {
	data, err := s.client.Get(ctx, s.key(user)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &State{}, nil
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("discarding corrupt tab state",
			zap.String("user", user),
			zap.Error(err))
		return &State{}, nil
	}
	return &st, nil
}

func (s *RedisStore) Save(ctx context.Context, user string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(user), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, user string) error {
	return s.client.Del(ctx, s.key(user)).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
