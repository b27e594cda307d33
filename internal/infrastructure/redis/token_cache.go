package redis

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// TokenCache keeps Daraja access tokens in Redis so replicas share one token.
type TokenCache struct {
	rdb *goredis.Client
}

func NewTokenCache(rdb *goredis.Client) *TokenCache {
	return &TokenCache{rdb: rdb}
}

// NewClient returns nil when no address is configured.
func NewClient(cfg config.RedisService) *goredis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (c *TokenCache) GetToken(ctx context.Context, key string) (string, bool, error) {
	token, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (c *TokenCache) SetToken(ctx context.Context, key, token string, ttlSeconds int64) error {
	return c.rdb.Set(ctx, key, token, time.Duration(ttlSeconds)*time.Second).Err()
}
