package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront-next/internal/config"

	"github.com/redis/go-redis/v9"
)

// Redis 带键前缀的 Redis 客户端；nil 表示未启用，所有方法安全降级
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis 初始化 Redis 客户端，未启用时返回 nil
func NewRedis(cfg *config.RedisConfig) *Redis {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "sf"
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
}

// Enabled 判断缓存是否启用
func (r *Redis) Enabled() bool {
	return r != nil && r.client != nil
}

// Client 获取原始客户端（限流脚本使用）
func (r *Redis) Client() *redis.Client {
	if !r.Enabled() {
		return nil
	}
	return r.client
}

// Key 拼接带前缀的键
func (r *Redis) Key(key string) string {
	prefix := "sf"
	if r != nil && r.prefix != "" {
		prefix = r.prefix
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return prefix
	}
	return prefix + ":" + trimmed
}

// GetJSON 获取 JSON 缓存，未命中返回 false
func (r *Redis) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !r.Enabled() {
		return false, nil
	}
	val, err := r.client.Get(ctx, r.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !r.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.Key(key), payload, ttl).Err()
}

// Del 删除缓存
func (r *Redis) Del(ctx context.Context, key string) error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Del(ctx, r.Key(key)).Err()
}

// Close 关闭连接
func (r *Redis) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}
