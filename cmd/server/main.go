package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/shopfront-next/internal/app"
	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	if err := app.ValidateMode(mode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	defer func() { _ = logger.Z().Sync() }()

	if weak := cfg.WeakSecrets(); len(weak) > 0 {
		if cfg.Server.Mode == "release" {
			log.Fatalw("weak_jwt_secret", "keys", strings.Join(weak, ","))
		}
		log.Warnw("weak_jwt_secret", "keys", strings.Join(weak, ","), "hint", "rotate before deploying")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalw("database_init_failed", "driver", cfg.Database.Driver, "error", err)
	}

	// 文档库启用时业务表不落关系库
	if err := models.AutoMigrate(models.DB, !cfg.DocStore.Enabled); err != nil {
		log.Fatalw("database_migrate_failed", "error", err)
	}

	// 初始化默认管理员账号
	defaultAdminUser := os.Getenv("SF_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("SF_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		log.Warnw("default_admin_skipped", "reason", "SF_DEFAULT_ADMIN_PASSWORD not set")
	} else if err := models.InitDefaultAdmin(models.DB, defaultAdminUser, defaultAdminPass); err != nil {
		log.Warnw("default_admin_init_failed", "error", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalw("app_run_failed", "error", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + "  ____  _                 __                 _   " + ansiReset)
	fmt.Println(ansiCyan + " / ___|| |__   ___  _ __ / _|_ __ ___  _ __ | |_ " + ansiReset)
	fmt.Println(ansiCyan + " \\___ \\| '_ \\ / _ \\| '_ \\ |_| '__/ _ \\| '_ \\| __|" + ansiReset)
	fmt.Println(ansiCyan + "  ___) | | | | (_) | |_) |  _| | | (_) | | | | |_ " + ansiReset)
	fmt.Println(ansiCyan + " |____/|_| |_|\\___/| .__/|_| |_|  \\___/|_| |_|\\__|" + ansiReset)
	fmt.Println(ansiCyan + "                   |_|                            " + ansiReset)
	fmt.Println(ansiBold + "Shopfront API" + ansiReset + ansiDim + " mode=" + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------" + ansiReset)
}
