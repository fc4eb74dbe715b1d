package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache caches airport suggestions. Airports are immutable reference
// data, so entries only age out by TTL.
type RedisCache struct {
	client        *redis.Client
	suggestionTTL time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client *redis.Client, suggestionTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:        client,
		suggestionTTL: suggestionTTL,
	}
}

// GetSuggestions returns nil, nil on a miss.
func (c *RedisCache) GetSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	data, err := c.client.Get(ctx, suggestionsKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var suggestions []domain.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (c *RedisCache) SetSuggestions(ctx context.Context, query string, suggestions []domain.Suggestion) error {
	payload, err := json.Marshal(suggestions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, suggestionsKey(query), payload, c.suggestionTTL).Err()
}

func suggestionsKey(query string) string {
	return "cache:suggest:" + strings.ToLower(strings.TrimSpace(query))
}
