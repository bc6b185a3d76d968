package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/logger"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	prefix string
)

// InitRedis 初始化 Redis 连接；未启用或连接失败时降级为无缓存运行
func InitRedis(cfg config.RedisConfig) {
	if !cfg.Enabled {
		logger.Infow("redis_disabled")
		return
	}
	c := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		logger.Warnw("redis_connect_failed", "error", err, "fallback", "no_cache")
		return
	}
	client = c
	prefix = strings.TrimSpace(cfg.Prefix)
	logger.Infow("redis_connected", "addr", c.Options().Addr)
}

// Client 返回底层 Redis 客户端（未启用时为 nil）
func Client() *redis.Client {
	return client
}

// Enabled 缓存是否可用
func Enabled() bool {
	return client != nil
}

func buildKey(parts ...string) string {
	if prefix == "" {
		return strings.Join(parts, ":")
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// GetJSON 读取 JSON 缓存；未命中或缓存不可用时返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, buildKey(key)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnw("cache_unmarshal_failed", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON 写入 JSON 缓存（best effort）
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warnw("cache_marshal_failed", "key", key, "error", err)
		return
	}
	if err := client.Set(ctx, buildKey(key), raw, ttl).Err(); err != nil {
		logger.Warnw("cache_set_failed", "key", key, "error", err)
	}
}

// Del 删除缓存键（best effort）
func Del(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, buildKey(k))
	}
	if err := client.Del(ctx, full...).Err(); err != nil {
		logger.Warnw("cache_del_failed", "keys", keys, "error", err)
	}
}
