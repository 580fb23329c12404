package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb     *redis.Client
	cartTTL time.Duration
	idemTTL time.Duration
}

func Initialize(redisURL string, cartTTL, idemTTL time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, cartTTL: cartTTL, idemTTL: idemTTL}, nil
}

// Cart storage: one hash per user, field = menu item id, value = quantity.
// The TTL is refreshed on every mutation so an abandoned cart expires on
// its own.

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:%d", userID)
}

func (c *Client) SetCartItem(userID, itemID uint, quantity int) error {
	ctx := context.Background()
	key := cartKey(userID)
	if quantity == 0 {
		if err := c.rdb.HDel(ctx, key, strconv.FormatUint(uint64(itemID), 10)).Err(); err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil
	}
	if err := c.rdb.HSet(ctx, key, strconv.FormatUint(uint64(itemID), 10), quantity).Err(); err != nil {
		return fmt.Errorf("failed to set cart item: %w", err)
	}
	return c.rdb.Expire(ctx, key, c.cartTTL).Err()
}

func (c *Client) GetCart(userID uint) (map[uint]int, error) {
	ctx := context.Background()
	fields, err := c.rdb.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	cart := make(map[uint]int, len(fields))
	for field, value := range fields {
		itemID, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(value)
		if err != nil || quantity <= 0 {
			continue
		}
		cart[uint(itemID)] = quantity
	}
	return cart, nil
}

func (c *Client) ClearCart(userID uint) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, cartKey(userID)).Err()
}

// Checkout idempotency: a client-generated key is reserved once; the order
// id created under it is recorded so a retried submission returns the
// original order instead of creating a duplicate.

func idemKey(key string) string {
	return "checkout:" + key
}

func (c *Client) ReserveCheckout(key string) (bool, error) {
	ctx := context.Background()
	ok, err := c.rdb.SetNX(ctx, idemKey(key), 0, c.idemTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve checkout key: %w", err)
	}
	return ok, nil
}

func (c *Client) RecordCheckoutOrder(key string, orderID uint) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, idemKey(key), orderID, c.idemTTL).Err()
}

func (c *Client) GetCheckoutOrder(key string) (uint, bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, idemKey(key)).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get checkout key: %w", err)
	}
	return uint(val), val != 0, nil
}

// ReleaseCheckout frees a reserved key after a failed checkout so the
// client can retry with the same key.
func (c *Client) ReleaseCheckout(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, idemKey(key)).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
