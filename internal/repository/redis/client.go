package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
)

const gameKeyPrefix = "game_session:"

// InitRedis connects to addr, either host:port or a redis:// URL, and pings
// it. A nil client and an error mean the caller should fall back to
// in-process storage.
func InitRedis(ctx context.Context, addr, password string, logger *zap.SugaredLogger) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr, DB: 0}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	}
	if password != "" {
		opts.Password = password
	}
	client := redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctxPing).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Infof("[REDIS] Connected to %s", opts.Addr)
	return client, nil
}

// Cache is the part of a Redis client the game store needs.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisCache acts as a wrapper around redis.Client to implement Cache
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// GameStore keeps game sessions as JSON under game_session:<id>. Every save
// restarts the key's TTL.
type GameStore struct {
	cache Cache
	ttl   time.Duration
}

func NewGameStore(cache Cache, ttl time.Duration) *GameStore {
	return &GameStore{cache: cache, ttl: ttl}
}

func (s *GameStore) Save(ctx context.Context, game *domain.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", game.ID, err)
	}
	if err := s.cache.Set(ctx, gameKeyPrefix+game.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to store game %s: %w", game.ID, err)
	}
	return nil
}

func (s *GameStore) Load(ctx context.Context, id string) (*domain.Game, error) {
	data, err := s.cache.Get(ctx, gameKeyPrefix+id)
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", id, err)
	}
	return &game, nil
}

func (s *GameStore) Delete(ctx context.Context, id string) error {
	return s.cache.Del(ctx, gameKeyPrefix+id)
}
