package docstore

import (
	"context"
	"errors"

	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewStore 评价文档存储
type ReviewStore struct {
	store *Store
	coll  *mongo.Collection
}

var _ repository.ReviewRepository = (*ReviewStore)(nil)

// Create 创建评价
func (s *ReviewStore) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.InsertOne(ctx, review)
	return translateWriteError(err)
}

// Update 更新评价
func (s *ReviewStore) Update(ctx context.Context, review *models.Review) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	return err
}

// Delete 删除评价
func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetByID 根据 ID 获取评价
func (s *ReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByProductAndAuthor 获取作者对商品的评价
func (s *ReviewStore) GetByProductAndAuthor(ctx context.Context, productID, authorKey string) (*models.Review, error) {
	return s.findOne(ctx, bson.M{"productId": productID, "authorKey": authorKey})
}

func (s *ReviewStore) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	var review models.Review
	if err := s.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByProduct 商品评价列表
func (s *ReviewStore) ListByProduct(ctx context.Context, filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	query := bson.M{}
	if filter.ProductID != "" {
		query["productId"] = filter.ProductID
	}
	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	cursor, err := s.coll.Find(ctx, query, findPage(filter.Page, filter.PageSize, "createdAt"))
	if err != nil {
		return nil, 0, err
	}
	reviews := make([]models.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListRatings 商品全部评分
func (s *ReviewStore) ListRatings(ctx context.Context, productID string) ([]int, error) {
	ctx, cancel := s.store.withTimeout(ctx)
	defer cancel()
	cursor, err := s.coll.Find(ctx,
		bson.M{"productId": productID},
		options.Find().SetProjection(bson.M{"rating": 1, "_id": 0}),
	)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Rating int `bson:"rating"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	ratings := make([]int, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, row.Rating)
	}
	return ratings, nil
}
