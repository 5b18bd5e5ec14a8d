package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulizieapp/cleaning-planner/models"
)

const keyMonth = "orders:%d:%s" // account id, YYYY-MM

// MonthCache caches the order list behind the month calendar view per
// account. Mutations invalidate the months they touch.
type MonthCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMonthCache returns a new MonthCache.
func NewMonthCache(rdb *redis.Client, ttl time.Duration) *MonthCache {
	return &MonthCache{rdb: rdb, ttl: ttl}
}

// GetMonth returns the cached orders for an account's month, or nil on miss.
func (c *MonthCache) GetMonth(ctx context.Context, accountID uint, month string) ([]models.Order, error) {
	b, err := c.rdb.Get(ctx, fmt.Sprintf(keyMonth, accountID, month)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetMonth stores the orders for an account's month.
func (c *MonthCache) SetMonth(ctx context.Context, accountID uint, month string, orders []models.Order) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(keyMonth, accountID, month), b, c.ttl).Err()
}

// InvalidateMonths drops the cached months touched by a mutation. The month
// key is the YYYY-MM prefix of a cleaning date; duplicates are fine.
func (c *MonthCache) InvalidateMonths(ctx context.Context, accountID uint, months ...string) error {
	keys := make([]string, 0, len(months))
	for _, m := range months {
		if m == "" {
			continue
		}
		keys = append(keys, fmt.Sprintf(keyMonth, accountID, m))
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// MonthKey extracts the YYYY-MM cache key from a YYYY-MM-DD cleaning date.
func MonthKey(cleaningDate string) string {
	if len(cleaningDate) < 7 {
		return cleaningDate
	}
	return cleaningDate[:7]
}

// GridMonths lists every month view a cleaning date can appear on. The grid
// pads its first and last weeks with adjacent-month days, so a date shows up
// on its own month's view and possibly on the previous or next month's.
func GridMonths(cleaningDate string) []string {
	d, err := time.Parse("2006-01-02", cleaningDate)
	if err != nil {
		return []string{MonthKey(cleaningDate)}
	}
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return []string{
		first.AddDate(0, -1, 0).Format("2006-01"),
		first.Format("2006-01"),
		first.AddDate(0, 1, 0).Format("2006-01"),
	}
}
