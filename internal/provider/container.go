package provider

import (
	"context"

	"github.com/shopfront-next/internal/authz"
	"github.com/shopfront-next/internal/cache"
	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/docstore"
	"github.com/shopfront-next/internal/events"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/queue"
	"github.com/shopfront-next/internal/repository"
	"github.com/shopfront-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config        *config.Config
	DB            *gorm.DB
	DocStore      *docstore.Store
	Redis         *cache.Redis
	QueueClient   *queue.Client
	Publisher     events.Publisher
	CartSnapshots cache.CartSnapshots

	// Repositories
	AdminRepo   repository.AdminRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	ReviewRepo  repository.ReviewRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	EmailService   *service.EmailService
	EmailNotifier  *service.EmailNotifier
	CaptchaService *service.CaptchaService
	ProductService *service.ProductService
	CartService    *service.CartService
	OrderService   *service.OrderService
	ReviewService  *service.ReviewService
}

// NewContainer 初始化容器；db 为已迁移的关系库连接
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if db == nil {
		db = models.DB
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		Redis:       cache.NewRedis(&cfg.Redis),
		QueueClient: queue.NewClient(&cfg.Queue),
		Publisher:   events.NewPublisher(&cfg.Kafka),
	}
	c.CartSnapshots = cache.NewCartSnapshots(c.Redis, cfg.Cart)

	if cfg.DocStore.Enabled {
		store, err := docstore.Connect(context.Background(), &cfg.DocStore)
		if err != nil {
			logger.Errorw("provider_init_docstore_failed", "error", err)
			return nil, err
		}
		if err := store.EnsureIndexes(context.Background()); err != nil {
			logger.Warnw("provider_docstore_ensure_indexes_failed", "error", err)
		}
		c.DocStore = store
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}

	logger.Infow("provider_container_ready",
		"docstore", c.DocStore != nil,
		"redis", c.Redis.Enabled(),
		"queue", c.QueueClient.Enabled(),
		"kafka", cfg.Kafka.Enabled,
	)
	return c, nil
}

func (c *Container) initRepositories() {
	c.AdminRepo = repository.NewAdminRepository(c.DB)
	if c.DocStore != nil {
		c.ProductRepo = c.DocStore.Products()
		c.CartRepo = c.DocStore.Carts()
		c.OrderRepo = c.DocStore.Orders()
		c.ReviewRepo = c.DocStore.Reviews()
		return
	}
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
	c.ReviewRepo = repository.NewReviewRepository(c.DB)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.EmailNotifier = service.NewEmailNotifier(c.EmailService)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.CartSnapshots, c.Config.Cart, c.Config.Order)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		service.NewNotifier(c.QueueClient, c.EmailService),
		c.Publisher,
		c.Config.Order,
	)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	return nil
}

// Close 释放外部连接
func (c *Container) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_failed", "error", err)
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Warnw("provider_close_publisher_failed", "error", err)
		}
	}
	if err := c.Redis.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	if c.DocStore != nil {
		if err := c.DocStore.Close(ctx); err != nil {
			logger.Warnw("provider_close_docstore_failed", "error", err)
		}
	}
}
