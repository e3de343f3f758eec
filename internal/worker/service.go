package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/queue"

	"github.com/hibiken/asynq"
)

var (
	errQueueDisabled  = errors.New("queue disabled")
	errNilConsumer    = errors.New("consumer is nil")
	errNotInitialized = errors.New("worker not initialized")
)

// Service 订单通知消费进程，生命周期交给 app.Runner 管理
type Service struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewService 创建消费服务；队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errQueueDisabled
	}
	if consumer == nil {
		return nil, errNilConsumer
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = logger.S()
	serverCfg.ErrorHandler = asynq.ErrorHandlerFunc(logTaskFailure)

	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server:  asynq.NewServer(opt, serverCfg),
		mux:     mux,
		stopped: make(chan struct{}),
	}, nil
}

func logTaskFailure(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("worker_task_failed",
		"task_type", task.Type(),
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费并阻塞，直到 Stop 或 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errNotInitialized
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	logger.Infow("worker_started")
	select {
	case <-ctx.Done():
	case <-s.stopped:
	}
	return nil
}

// Stop 等待进行中的任务结束后关闭，可重复调用
func (s *Service) Stop(_ context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		s.server.Shutdown()
		close(s.stopped)
		logger.Infow("worker_stopped")
	})
	return nil
}
