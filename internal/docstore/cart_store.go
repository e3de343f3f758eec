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

// CartStore 购物车文档存储，每个购物者一份文档
type CartStore struct {
	store *Store
	coll  *mongo.Collection
}

var _ repository.CartRepository = (*CartStore)(nil)

// GetByShopper 获取购物车
func (s *CartStore) GetByShopper(ctx context.Context, shopperKey string) (*models.Cart, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	var cart models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"shopperKey": shopperKey}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Upsert 整单覆盖写入
func (s *CartStore) Upsert(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	cart.UpdatedAt = time.Now()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"shopperKey": cart.ShopperKey}, cart, options.Replace().SetUpsert(true))
	return err
}

// Clear 清空购物车（幂等）
func (s *CartStore) Clear(ctx context.Context, shopperKey string) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.DeleteOne(ctx, bson.M{"shopperKey": shopperKey})
	return err
}
