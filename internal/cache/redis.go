package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	unreadBadgeTTL = 5 * time.Minute
	presenceTTL    = 60 * time.Second
)

// Cache wraps redis for the two hot paths: the inbox unread badge and
// member presence. Every method tolerates a nil client so the server can
// run without redis in development.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Cache{client: client}, nil
}

// NewWithClient is used by tests with a miniredis-backed client.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func unreadKey(userID uint) string  { return fmt.Sprintf("unread:%d", userID) }
func presenceKey(userID uint) string { return fmt.Sprintf("presence:%d", userID) }

// GetUnreadBadge returns the cached total unread count for a user.
// ok is false on miss or when the cache is unavailable.
func (c *Cache) GetUnreadBadge(ctx context.Context, userID uint) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Cache) SetUnreadBadge(ctx context.Context, userID uint, count int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, unreadKey(userID), count, unreadBadgeTTL)
}

// InvalidateUnreadBadge drops the cached badge after a send or mark-read so
// the next fetch recomputes from the database.
func (c *Cache) InvalidateUnreadBadge(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, unreadKey(userID))
}

// Heartbeat marks a user online for the presence window.
func (c *Cache) Heartbeat(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, presenceKey(userID), time.Now().Unix(), presenceTTL)
}

func (c *Cache) SetOffline(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, presenceKey(userID))
}

// IsOnline reports whether a user has a live presence key. Errors are
// treated as offline.
func (c *Cache) IsOnline(ctx context.Context, userID uint) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, presenceKey(userID)).Result()
	return err == nil && n > 0
}
