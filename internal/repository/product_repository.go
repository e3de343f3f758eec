package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error)
	ListByCategory(ctx context.Context, category, excludeID string, minStock, limit int) ([]models.Product, error)
	UpdateAggregateRating(ctx context.Context, id string, average float64, count int) error
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Create 创建商品
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return translateWriteError(r.db.WithContext(ctx).Create(product).Error)
}

// Update 更新商品（整行保存）
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"search_text"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListByCategory 同分类商品（用于相关推荐），排除指定商品并要求库存不低于 minStock
func (r *GormProductRepository) ListByCategory(ctx context.Context, category, excludeID string, minStock, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ? AND stock >= ?", category, true, minStock)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateAggregateRating 写入评分聚合值
func (r *GormProductRepository) UpdateAggregateRating(ctx context.Context, id string, average float64, count int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   count,
			"updated_at":     time.Now(),
		}).Error
}
