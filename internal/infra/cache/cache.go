// Package cache read-through кэш поверх интеграционных клиентов
//
// Записи пользователей и вещей меняются редко по сравнению с частотой
// чтения при создании бронирований, поэтому короткий TTL снимает
// большую часть нагрузки с внешних сервисов. Ошибки Redis не фатальны:
// кэш деградирует до прямых вызовов клиента.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
)

// NewClient создает новый клиент Redis
func NewClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache: failed to ping redis: %w", err)
	}
	return nil
}

// LookupCache TTL-кэш JSON-записей внешних сервисов
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewLookupCache создает новый кэш
func NewLookupCache(client *redis.Client, ttl time.Duration, log Logger) *LookupCache {
	return &LookupCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// get читает запись из кэша; false означает промах или ошибку Redis
func (c *LookupCache) get(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache: failed to get key=%s: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.log.Warn("cache: failed to unmarshal key=%s: %v", key, err)
		return false
	}

	return true
}

// set пишет запись в кэш; ошибки логируются и игнорируются
func (c *LookupCache) set(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache: failed to marshal key=%s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache: failed to set key=%s: %v", key, err)
	}
}

// CachedUserClient read-through декоратор клиента UserService
type CachedUserClient struct {
	inner UserClient
	cache *LookupCache
}

// NewCachedUserClient создает кэширующий декоратор клиента UserService
func NewCachedUserClient(inner UserClient, cache *LookupCache) *CachedUserClient {
	return &CachedUserClient{inner: inner, cache: cache}
}

// GetUser получает пользователя, сначала проверяя кэш
// Отрицательные результаты (not found) не кэшируются
func (c *CachedUserClient) GetUser(ctx context.Context, userID int64) (*userservice.User, error) {
	key := fmt.Sprintf("user:%d", userID)

	var cached userservice.User
	if c.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	user, err := c.inner.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.cache.set(ctx, key, user)
	return user, nil
}

// CachedItemClient read-through декоратор клиента ItemService
type CachedItemClient struct {
	inner ItemClient
	cache *LookupCache
}

// NewCachedItemClient создает кэширующий декоратор клиента ItemService
func NewCachedItemClient(inner ItemClient, cache *LookupCache) *CachedItemClient {
	return &CachedItemClient{inner: inner, cache: cache}
}

// GetItem получает вещь, сначала проверяя кэш
// Ключ не зависит от requesterID: основные поля вещи одинаковы для всех
func (c *CachedItemClient) GetItem(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error) {
	key := fmt.Sprintf("item:%d", itemID)

	var cached itemservice.Item
	if c.cache.get(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := c.inner.GetItem(ctx, itemID, requesterID)
	if err != nil {
		return nil, err
	}

	c.cache.set(ctx, key, item)
	return item, nil
}
