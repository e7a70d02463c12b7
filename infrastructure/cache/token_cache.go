package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"meetfood/domain/repository"
	"meetfood/infrastructure/logger"
)

const subjectKeyPrefix = "auth:subject:"

// NewCache connects a Redis client. Callers treat a nil client as "no cache".
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without auth cache")
		return nil, err
	}
	return client, nil
}

// TokenCache caches subject to local-user-id resolutions for the auth
// middleware. It is nil-safe: with no backing client every lookup misses.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenCache(client *redis.Client) repository.ITokenCache {
	return &TokenCache{client: client, ttl: 15 * time.Minute}
}

func (c *TokenCache) GetUserID(ctx context.Context, subject string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, subjectKeyPrefix+subject).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *TokenCache) SetUserID(ctx context.Context, subject, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, subjectKeyPrefix+subject, userID, c.ttl).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Debug("Failed to cache subject resolution")
	}
}

func (c *TokenCache) Invalidate(ctx context.Context, subject string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, subjectKeyPrefix+subject).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Debug("Failed to invalidate cached subject")
	}
}
