package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shopfront-next/internal/events"
	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := models.OpenDB("sqlite", dsn, gormlogger.Silent)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db, true); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

var errStoreDown = errors.New("store down")

// recordingNotifier 记录通知调用，可按类型注入错误或 panic
type recordingNotifier struct {
	mu        sync.Mutex
	calls     []string
	failKinds map[string]error
	panicKind string
}

func (n *recordingNotifier) record(kind string) error {
	n.mu.Lock()
	n.calls = append(n.calls, kind)
	n.mu.Unlock()
	if kind == n.panicKind {
		panic("notifier exploded")
	}
	if err, ok := n.failKinds[kind]; ok {
		return err
	}
	return nil
}

func (n *recordingNotifier) CustomerOrderConfirmation(_ context.Context, _ *models.Order, _ string) error {
	return n.record("customer")
}

func (n *recordingNotifier) AdminOrderAlert(_ context.Context, _ *models.Order, _ string) error {
	return n.record("admin")
}

func (n *recordingNotifier) DeliveryConfirmation(_ context.Context, _ *models.Order, _ string) error {
	return n.record("delivery")
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.calls))
	copy(out, n.calls)
	return out
}

// recordingPublisher 记录订单事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
