// Package docstore 提供基于 MongoDB 的商品/购物车/订单/评价存储，
// 与 repository 包中的 GORM 实现共享同一组接口。
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionProducts = "products"
	collectionCarts    = "carts"
	collectionOrders   = "orders"
	collectionReviews  = "reviews"
)

// Store 文档库连接
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	opTimeout time.Duration
}

// Connect 建立连接并校验可用性
func Connect(ctx context.Context, cfg *config.DocStoreConfig) (*Store, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("docstore disabled")
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("docstore connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore ping: %w", err)
	}

	name := strings.TrimSpace(cfg.Database)
	if name == "" {
		name = "shopfront"
	}
	return &Store{client: client, db: client.Database(name), opTimeout: timeout}, nil
}

// Close 断开连接
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes 创建业务需要的索引
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		collectionProducts: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "stock", Value: -1}}},
		},
		collectionCarts: {
			{Keys: bson.D{{Key: "shopperKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "trackingId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "deletedByAdmin", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		collectionReviews: {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "authorKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, indexes := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("docstore ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Products 商品存储
func (s *Store) Products() *ProductStore {
	return &ProductStore{store: s, coll: s.db.Collection(collectionProducts)}
}

// Carts 购物车存储
func (s *Store) Carts() *CartStore {
	return &CartStore{store: s, coll: s.db.Collection(collectionCarts)}
}

// Orders 订单存储
func (s *Store) Orders() *OrderStore {
	return &OrderStore{store: s, coll: s.db.Collection(collectionOrders)}
}

// Reviews 评价存储
func (s *Store) Reviews() *ReviewStore {
	return &ReviewStore{store: s, coll: s.db.Collection(collectionReviews)}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s == nil || s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateKey
	}
	return err
}

func findPage(page, pageSize int, sortField string) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	if pageSize > 0 {
		opts.SetSkip(int64(repository.PageOffset(page, pageSize))).SetLimit(int64(pageSize))
	}
	return opts
}
