package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	dom "Reminder/internal/domain"
)

const keyUserList = "todo:user:"

// TodoCache caches per-user todo lists in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

func listKey(userID string) string {
	return keyUserList + userID + ":list"
}

// GetUserList returns the cached list for the user, or nil on miss.
func (c *TodoCache) GetUserList(ctx context.Context, userID string) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, listKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetUserList stores the user's list in cache.
func (c *TodoCache) SetUserList(ctx context.Context, userID string, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(userID), b, c.ttl).Err()
}

// InvalidateUser removes the user's cached list (cache invalidation on write).
func (c *TodoCache) InvalidateUser(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, listKey(userID)).Err()
}
