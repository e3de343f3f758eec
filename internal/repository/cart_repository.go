package repository

import (
	"context"

	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByShopper(ctx context.Context, shopperKey string) (*models.Cart, error)
	Upsert(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, shopperKey string) error
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetByShopper 获取购物者的购物车
func (r *GormCartRepository) GetByShopper(ctx context.Context, shopperKey string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where("shopper_key = ?", shopperKey).First(&cart).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Upsert 整单覆盖写入（后写覆盖先写）
func (r *GormCartRepository) Upsert(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shopper_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"items", "updated_at"}),
	}).Create(cart).Error
}

// Clear 清空购物车（幂等）
func (r *GormCartRepository) Clear(ctx context.Context, shopperKey string) error {
	return r.db.WithContext(ctx).Where("shopper_key = ?", shopperKey).Delete(&models.Cart{}).Error
}
