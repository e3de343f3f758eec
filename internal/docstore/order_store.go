package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderStore 订单文档存储
type OrderStore struct {
	store *Store
	coll  *mongo.Collection
}

var _ repository.OrderRepository = (*OrderStore)(nil)

// Create 创建订单
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.InsertOne(ctx, order)
	return translateWriteError(err)
}

// GetByID 根据 ID 获取订单
func (s *OrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByTrackingID 根据追踪码获取订单
func (s *OrderStore) GetByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"trackingId": trackingID})
}

func (s *OrderStore) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	var order models.Order
	if err := s.coll.FindOne(ctx, filter).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ExistsTrackingID 追踪码是否已被占用
func (s *OrderStore) ExistsTrackingID(ctx context.Context, trackingID string) (bool, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	count, err := s.coll.CountDocuments(ctx, bson.M{"trackingId": trackingID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 订单列表
func (s *OrderStore) List(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.page(ctx, orderListFilter(filter), filter.Page, filter.PageSize)
}

// Search 模糊搜索
func (s *OrderStore) Search(ctx context.Context, filter repository.OrderSearchFilter) ([]models.Order, int64, error) {
	return s.page(ctx, orderSearchFilter(filter), filter.Page, filter.PageSize)
}

func (s *OrderStore) page(ctx context.Context, query bson.M, page, pageSize int) ([]models.Order, int64, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := s.coll.Find(ctx, query, findPage(page, pageSize, "createdAt"))
	if err != nil {
		return nil, 0, err
	}
	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 按版本号条件更新
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, version int64, status string, updatedAt time.Time) (bool, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "version": version},
		bson.M{
			"$set": bson.M{"status": status, "updatedAt": updatedAt},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// SoftDelete 标记后台删除
func (s *OrderStore) SoftDelete(ctx context.Context, id string, updatedAt time.Time) (bool, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"deletedByAdmin": true, "updatedAt": updatedAt}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
