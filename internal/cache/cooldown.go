package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "towercard:cooldown:"

// cooldownClient is the part of redis.UniversalClient a Cooldown uses.
type cooldownClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cooldown hands out at most one slot per key within a ttl window.
type Cooldown struct {
	client cooldownClient
}

func NewCooldown(client redis.UniversalClient) *Cooldown {
	return &Cooldown{client: client}
}

// Acquire reports whether key was free and reserves it for ttl.
func (c *Cooldown) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	const op = "cache.Cooldown.Acquire"

	ok, err := c.client.SetNX(ctx, cooldownKeyPrefix+key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: setnx failed: %w", op, err)
	}

	return ok, nil
}

// Remaining returns how long key stays reserved, zero when it is free.
func (c *Cooldown) Remaining(ctx context.Context, key string) (time.Duration, error) {
	const op = "cache.Cooldown.Remaining"

	ttl, err := c.client.PTTL(ctx, cooldownKeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: pttl failed: %w", op, err)
	}
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}

// Release frees key before its ttl runs out.
func (c *Cooldown) Release(ctx context.Context, key string) error {
	const op = "cache.Cooldown.Release"

	if err := c.client.Del(ctx, cooldownKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%s: del failed: %w", op, err)
	}

	return nil
}
