package repository

import (
	"context"

	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetByProductAndAuthor(ctx context.Context, productID, authorKey string) (*models.Review, error)
	ListByProduct(ctx context.Context, filter ReviewListFilter) ([]models.Review, int64, error)
	// ListRatings 返回商品当前全部评分，用于全量重算聚合值
	ListRatings(ctx context.Context, productID string) ([]int, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create 创建评价
func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateWriteError(r.db.WithContext(ctx).Create(review).Error)
}

// Update 更新评价
func (r *GormReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByProductAndAuthor 获取作者对商品的评价
func (r *GormReviewRepository) GetByProductAndAuthor(ctx context.Context, productID, authorKey string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND author_key = ?", productID, authorKey).
		First(&review).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByProduct 商品评价列表，按创建时间倒序
func (r *GormReviewRepository) ListByProduct(ctx context.Context, filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.ProductID != "" {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []models.Review
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListRatings 商品全部评分
func (r *GormReviewRepository) ListRatings(ctx context.Context, productID string) ([]int, error) {
	var ratings []int
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
