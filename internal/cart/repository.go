package cart

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// cartTTL keeps abandoned carts around long enough to come back to.
const cartTTL = 72 * time.Hour

// Repository stores the session-scoped product_id -> quantity mapping.
type Repository interface {
	GetAll(ctx context.Context, sessionKey string) (map[uint]int, error)
	GetQuantity(ctx context.Context, sessionKey string, productID uint) (int, error)
	SetQuantity(ctx context.Context, sessionKey string, productID uint, quantity int) error
	Remove(ctx context.Context, sessionKey string, productIDs ...uint) error
	Clear(ctx context.Context, sessionKey string) error
}

type repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &repository{rdb: rdb}
}

func cartKey(sessionKey string) string {
	return "cart:" + sessionKey
}

func (r *repository) GetAll(ctx context.Context, sessionKey string) (map[uint]int, error) {
	fields, err := r.rdb.HGetAll(ctx, cartKey(sessionKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	entries := make(map[uint]int, len(fields))
	for field, value := range fields {
		pid, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		entries[uint(pid)] = qty
	}

	return entries, nil
}

func (r *repository) GetQuantity(ctx context.Context, sessionKey string, productID uint) (int, error) {
	value, err := r.rdb.HGet(ctx, cartKey(sessionKey), strconv.FormatUint(uint64(productID), 10)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cart entry: %w", err)
	}

	qty, err := strconv.Atoi(value)
	if err != nil {
		return 0, nil
	}
	return qty, nil
}

func (r *repository) SetQuantity(ctx context.Context, sessionKey string, productID uint, quantity int) error {
	key := cartKey(sessionKey)

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, strconv.FormatUint(uint64(productID), 10), quantity)
	pipe.Expire(ctx, key, cartTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write cart entry: %w", err)
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, sessionKey string, productIDs ...uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	fields := make([]string, 0, len(productIDs))
	for _, pid := range productIDs {
		fields = append(fields, strconv.FormatUint(uint64(pid), 10))
	}

	if err := r.rdb.HDel(ctx, cartKey(sessionKey), fields...).Err(); err != nil {
		return fmt.Errorf("failed to remove cart entries: %w", err)
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, sessionKey string) error {
	if err := r.rdb.Del(ctx, cartKey(sessionKey)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
