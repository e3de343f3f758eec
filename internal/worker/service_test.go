package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopfront-next/internal/config"
)

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(nil, &Consumer{}); !errors.Is(err, errQueueDisabled) {
		t.Fatalf("expected queue disabled, got %v", err)
	}
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); !errors.Is(err, errQueueDisabled) {
		t.Fatalf("expected queue disabled, got %v", err)
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); !errors.Is(err, errNilConsumer) {
		t.Fatalf("expected nil consumer error, got %v", err)
	}
}

func TestServiceStopBeforeStart(t *testing.T) {
	svc, err := NewService(&config.QueueConfig{Enabled: true, Host: "127.0.0.1", Port: 6399}, &Consumer{})
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}
	if svc.Name() != "worker" {
		t.Fatalf("unexpected name %q", svc.Name())
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}

	var empty *Service
	if err := empty.Start(context.Background()); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected not initialized, got %v", err)
	}
}
