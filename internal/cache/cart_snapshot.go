package cache

import (
	"context"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CartSnapshots 购物车本地快照（数据层不可用时的兜底，以及游客购物车的唯一存放处）
type CartSnapshots interface {
	Load(ctx context.Context, key string) ([]models.CartLine, bool, error)
	Save(ctx context.Context, key string, lines []models.CartLine) error
	Delete(ctx context.Context, key string) error
}

// NewCartSnapshots Redis 启用时使用 Redis，否则退回进程内 LRU
func NewCartSnapshots(r *Redis, cfg config.CartConfig) CartSnapshots {
	if r.Enabled() {
		ttl := time.Duration(cfg.SnapshotTTLHours) * time.Hour
		if ttl <= 0 {
			ttl = 30 * 24 * time.Hour
		}
		return &RedisCartSnapshots{redis: r, ttl: ttl}
	}
	return NewLRUCartSnapshots(cfg.SnapshotLRUSize)
}

func cartSnapshotKey(key string) string {
	return "cart:snapshot:" + key
}

// RedisCartSnapshots Redis 实现
type RedisCartSnapshots struct {
	redis *Redis
	ttl   time.Duration
}

// Load 读取快照
func (s *RedisCartSnapshots) Load(ctx context.Context, key string) ([]models.CartLine, bool, error) {
	var lines []models.CartLine
	hit, err := s.redis.GetJSON(ctx, cartSnapshotKey(key), &lines)
	if err != nil || !hit {
		return nil, false, err
	}
	return lines, true, nil
}

// Save 写入快照
func (s *RedisCartSnapshots) Save(ctx context.Context, key string, lines []models.CartLine) error {
	return s.redis.SetJSON(ctx, cartSnapshotKey(key), lines, s.ttl)
}

// Delete 删除快照
func (s *RedisCartSnapshots) Delete(ctx context.Context, key string) error {
	return s.redis.Del(ctx, cartSnapshotKey(key))
}

// LRUCartSnapshots 进程内有界快照
type LRUCartSnapshots struct {
	cache *lru.Cache[string, []models.CartLine]
}

// NewLRUCartSnapshots 创建进程内快照，size 非法时使用 4096
func NewLRUCartSnapshots(size int) *LRUCartSnapshots {
	if size <= 0 {
		size = 4096
	}
	c, err := lru.New[string, []models.CartLine](size)
	if err != nil {
		// 仅在 size <= 0 时出错，上面已兜底
		panic(err)
	}
	return &LRUCartSnapshots{cache: c}
}

// Load 读取快照（返回副本）
func (s *LRUCartSnapshots) Load(_ context.Context, key string) ([]models.CartLine, bool, error) {
	lines, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return cloneLines(lines), true, nil
}

// Save 写入快照（保存副本）
func (s *LRUCartSnapshots) Save(_ context.Context, key string, lines []models.CartLine) error {
	s.cache.Add(key, cloneLines(lines))
	return nil
}

// Delete 删除快照
func (s *LRUCartSnapshots) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

func cloneLines(lines []models.CartLine) []models.CartLine {
	if lines == nil {
		return nil
	}
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}
