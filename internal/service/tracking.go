package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/shopfront-next/internal/logger"
)

const trackingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateTrackingID 生成追踪码：前缀 + 时间戳 + 随机后缀
func GenerateTrackingID(prefix string, now time.Time) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "TRK"
	}
	return prefix + now.Format("20060102150405") + randAlphanumeric(4)
}

// NormalizeTrackingID 统一追踪码格式
func NormalizeTrackingID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func randAlphanumeric(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(trackingAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(trackingAlphabet[0])
			continue
		}
		b.WriteByte(trackingAlphabet[n.Int64()])
	}
	return b.String()
}

// nextTrackingID 生成未被占用的追踪码，冲突时重试
func (s *OrderService) nextTrackingID(ctx context.Context) (string, error) {
	attempts := s.trackingRetries
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		code := s.trackingGen(s.trackingPrefix, s.now())
		exists, err := s.orderRepo.ExistsTrackingID(ctx, code)
		if err != nil {
			return "", upstream(err)
		}
		if !exists {
			return code, nil
		}
		logger.Debugw("order_tracking_collision", "tracking_id", code, "attempt", i+1)
	}
	return "", ErrTrackingCodeExhausted
}
