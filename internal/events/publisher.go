// Package events 将已提交的订单变更投递到 Kafka，供下游系统订阅。
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/logger"

	"github.com/segmentio/kafka-go"
)

// OrderEvent 订单事件
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	TrackingID     string    `json:"tracking_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          string    `json:"total,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher 订单事件发布接口
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher Kafka 实现，以订单 ID 作为消息键保证同一订单有序
type KafkaPublisher struct {
	writer messageWriter
}

// NewPublisher 根据配置创建发布者；未启用时返回空实现
func NewPublisher(cfg *config.KafkaConfig) Publisher {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NopPublisher{}
	}
	return &KafkaPublisher{writer: newKafkaWriter(cfg)}
}

// newKafkaWriter 异步 writer，WriteMessages 只入队，投递结果在 Completion 中记录
func newKafkaWriter(cfg *config.KafkaConfig) *kafka.Writer {
	batchTimeout := time.Duration(cfg.BatchTimeoutMS) * time.Millisecond
	if batchTimeout <= 0 {
		batchTimeout = 10 * time.Millisecond
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		WriteTimeout: 5 * time.Second,
		Async:        true,
		Completion:   logDelivery,
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range messages {
		logger.Warnw("order_event_delivery_failed",
			"order_id", string(msg.Key),
			"event_type", headerValue(msg, "event_type"),
			"error", err,
		)
	}
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// PublishOrderEvent 发布订单事件
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// Close 关闭 writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher 未启用 Kafka 时的空实现
type NopPublisher struct{}

// PublishOrderEvent 丢弃事件
func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }

// Close 无操作
func (NopPublisher) Close() error { return nil }
