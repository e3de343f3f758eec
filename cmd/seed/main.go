package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/docstore"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"
	"github.com/shopfront-next/internal/service"
)

var demoProducts = []service.ProductInput{
	{
		Name:        "Rattan Floor Lamp",
		Description: "Hand-woven rattan shade on a walnut stand.",
		Category:    "lighting",
		Price:       models.MustMoney("89.00"),
		Stock:       12,
		Images:      []string{"/images/rattan-lamp.jpg"},
		Features:    []string{"E27 bulb", "1.5m cable"},
		Colors:      []string{"natural", "black"},
	},
	{
		Name:        "Linen Cushion Cover",
		Description: "Stone-washed linen, hidden zip.",
		Category:    "textiles",
		Price:       models.MustMoney("24.50"),
		Stock:       40,
		Images:      []string{"/images/linen-cushion.jpg"},
		Colors:      []string{"sand", "olive", "rust"},
	},
	{
		Name:        "Ceramic Table Vase",
		Description: "Matte glaze, 22cm.",
		Category:    "decor",
		Price:       models.MustMoney("35.00"),
		Stock:       8,
		Images:      []string{"/images/ceramic-vase.jpg"},
	},
	{
		Name:        "Brass Desk Lamp",
		Description: "Adjustable arm with a dimmable LED.",
		Category:    "lighting",
		Price:       models.MustMoney("120.00"),
		Stock:       0,
		Images:      []string{"/images/brass-desk-lamp.jpg"},
		Features:    []string{"Dimmable", "USB-C"},
	},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		log.Fatalw("seed_database_init_failed", "error", err)
	}
	if err := models.AutoMigrate(models.DB, !cfg.DocStore.Enabled); err != nil {
		log.Fatalw("seed_database_migrate_failed", "error", err)
	}

	if err := models.InitDefaultAdmin(models.DB, os.Getenv("SF_DEFAULT_ADMIN_USERNAME"), os.Getenv("SF_DEFAULT_ADMIN_PASSWORD")); err != nil {
		log.Warnw("seed_default_admin_failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var productRepo repository.ProductRepository = repository.NewProductRepository(models.DB)
	if cfg.DocStore.Enabled {
		store, err := docstore.Connect(ctx, &cfg.DocStore)
		if err != nil {
			log.Fatalw("seed_docstore_connect_failed", "error", err)
		}
		defer func() { _ = store.Close(context.Background()) }()
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Warnw("seed_docstore_ensure_indexes_failed", "error", err)
		}
		productRepo = store.Products()
	}
	products := service.NewProductService(productRepo)

	created := 0
	for _, input := range demoProducts {
		existing, _, err := products.List(ctx, service.ProductListQuery{
			Page:         1,
			PageSize:     10,
			Keyword:      input.Name,
			IncludeDraft: true,
		})
		if err != nil {
			log.Fatalw("seed_product_lookup_failed", "name", input.Name, "error", err)
		}
		if hasProductNamed(existing, input.Name) {
			log.Infow("seed_product_exists", "name", input.Name)
			continue
		}
		product, err := products.Create(ctx, input)
		if err != nil {
			log.Warnw("seed_product_create_failed", "name", input.Name, "error", err)
			continue
		}
		created++
		log.Infow("seed_product_created", "id", product.ID, "name", product.Name)
	}
	log.Infow("seed_done", "created", created, "total", len(demoProducts))
}

func hasProductNamed(products []models.Product, name string) bool {
	for _, product := range products {
		if strings.EqualFold(strings.TrimSpace(product.Name), name) {
			return true
		}
	}
	return false
}
