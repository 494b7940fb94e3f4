// Package cache кеш отчетов поверх Redis
// Отчетность допускает snapshot consistency, поэтому агрегаты
// кешируются с небольшим TTL и отдаются без обращения к БД
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client обертка над redis.Client для кеширования JSON значений
// При disabled все операции превращаются в cache miss / no-op
type Client struct {
	rdb     *redis.Client
	ttl     time.Duration
	enabled bool
}

// New создает новый клиент кеша
func New(addr, password string, db int, ttl time.Duration, enabled bool) *Client {
	if !enabled {
		return &Client{enabled: false}
	}

	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:     ttl,
		enabled: true,
	}
}

// GetJSON читает значение из кеша и десериализует в dest
// Возвращает false при cache miss или выключенном кеше
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled {
		return false, nil
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}

	return true, nil
}

// SetJSON сериализует значение и кладет в кеш с настроенным TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	if !c.enabled {
		return nil
	}
	return c.rdb.Close()
}
