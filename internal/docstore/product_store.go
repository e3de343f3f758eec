package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductStore 商品文档存储
type ProductStore struct {
	store *Store
	coll  *mongo.Collection
}

var _ repository.ProductRepository = (*ProductStore)(nil)

// Create 创建商品
func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	_, err := s.coll.InsertOne(ctx, product)
	return translateWriteError(err)
}

// Update 整体替换商品文档
func (s *ProductStore) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	product.UpdatedAt = time.Now()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	return err
}

// Delete 删除商品
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetByID 根据 ID 获取商品
func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	var product models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (s *ProductStore) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	query := productListFilter(filter)
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := s.coll.Find(ctx, query, findPage(filter.Page, filter.PageSize, "createdAt"))
	if err != nil {
		return nil, 0, err
	}
	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListByCategory 同分类商品
func (s *ProductStore) ListByCategory(ctx context.Context, category, excludeID string, minStock, limit int) ([]models.Product, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.coll.Find(ctx, relatedProductsFilter(category, excludeID, minStock), opts)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateAggregateRating 写入评分聚合值
func (s *ProductStore) UpdateAggregateRating(ctx context.Context, id string, average float64, count int) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"averageRating": average,
		"reviewCount":   count,
		"updatedAt":     time.Now(),
	}})
	return err
}
