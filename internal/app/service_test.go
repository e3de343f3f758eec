package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopfront-next/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	blocking bool
	stopped  atomic.Bool
	done     chan struct{}
}

func newFakeService(name string, blocking bool, startErr error) *fakeService {
	return &fakeService{name: name, blocking: blocking, startErr: startErr, done: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(_ context.Context) error {
	if s.blocking {
		<-s.done
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(_ context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.done)
	}
	return nil
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	boom := errors.New("boom")
	blocking := newFakeService("http", true, nil)
	failing := newFakeService("worker", false, boom)

	closed := false
	runner := NewRunner(blocking, failing)
	runner.onStop = func() { closed = true }

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("blocking service should be stopped")
	}
	if !closed {
		t.Fatalf("onStop hook should run")
	}
}

func TestRunnerReturnsNilOnContextCancel(t *testing.T) {
	blocking := newFakeService("http", true, nil)
	runner := NewRunner(blocking)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should be graceful, got %v", err)
	}
	if !blocking.stopped.Load() {
		t.Fatalf("service should be stopped on cancel")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
	if err := RunWithOptions(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil runner")
	}
}

func TestNormalizeOptionsDefaults(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll || opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}

	cfg := &config.Config{Server: config.ServerConfig{ShutdownTimeoutSeconds: 3}}
	opts = normalizeOptions(Options{Config: cfg})
	if opts.ShutdownTimeout != 3*time.Second {
		t.Fatalf("shutdown timeout should come from config, got %v", opts.ShutdownTimeout)
	}
}

func TestValidateMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if err := ValidateMode(mode); err != nil {
			t.Fatalf("mode %s should be valid: %v", mode, err)
		}
	}
	if err := ValidateMode("batch"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestHTTPServiceUsesServerConfig(t *testing.T) {
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeoutSeconds: 5}, http.NotFoundHandler())
	if svc.server.Addr != "127.0.0.1:0" {
		t.Fatalf("unexpected addr %s", svc.server.Addr)
	}
	if svc.server.ReadTimeout != 5*time.Second || svc.server.WriteTimeout != 0 {
		t.Fatalf("unexpected timeouts read=%v write=%v", svc.server.ReadTimeout, svc.server.WriteTimeout)
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start failed: %v", err)
	}
}
