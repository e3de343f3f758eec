package app

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/provider"
	"github.com/shopfront-next/internal/router"
	"github.com/shopfront-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg, models.DB)
	if err != nil {
		return nil, err
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	// 初始化 Worker 服务；all 模式下队列未启用时只跑 HTTP
	if mode == ModeAll || mode == ModeWorker {
		if mode == ModeAll && !cfg.Queue.Enabled {
			logger.Infow("app_worker_skipped", "reason", "queue_disabled")
		} else {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				container.Close(context.Background())
				return nil, err
			}
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		container.Close(context.Background())
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.onStop = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		container.Close(ctx)
	}
	return runner, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	if err := ValidateMode(opts.Mode); err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
