package repository

import (
	"context"
	"strings"
	"time"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*models.Order, error)
	ExistsTrackingID(ctx context.Context, trackingID string) (bool, error)
	List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
	Search(ctx context.Context, filter OrderSearchFilter) ([]models.Order, int64, error)
	// UpdateStatus 仅当版本号匹配时写入，返回是否命中
	UpdateStatus(ctx context.Context, id string, version int64, status string, updatedAt time.Time) (bool, error)
	SoftDelete(ctx context.Context, id string, updatedAt time.Time) (bool, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return translateWriteError(r.db.WithContext(ctx).Create(order).Error)
}

// GetByID 根据 ID 获取订单（不过滤软删除）
func (r *GormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByTrackingID 根据追踪码获取订单（不过滤软删除）
func (r *GormOrderRepository) GetByTrackingID(ctx context.Context, trackingID string) (*models.Order, error) {
	return r.first(ctx, "tracking_id = ?", trackingID)
}

func (r *GormOrderRepository) first(ctx context.Context, cond string, arg interface{}) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&order).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ExistsTrackingID 追踪码是否已被占用
func (r *GormOrderRepository) ExistsTrackingID(ctx context.Context, trackingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("tracking_id = ?", trackingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 订单列表，按创建时间倒序
func (r *GormOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.ExcludeDeleted {
		query = query.Where("deleted_by_admin = ?", false)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		query = query.Where("email = ?", email)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.ExcludeRejected {
		query = query.Where("status <> ?", constants.OrderStatusRejected)
	}
	return r.page(query, filter.Page, filter.PageSize)
}

// Search 追踪码/电话/姓名/邮箱模糊匹配（检索列），按创建时间倒序
func (r *GormOrderRepository) Search(ctx context.Context, filter OrderSearchFilter) ([]models.Order, int64, error) {
	condition, argCount := buildLikeCondition(r.db, []string{"search_text"})
	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Where(condition, repeatLikeArgs(containsPattern(filter.Query), argCount)...)
	if filter.ExcludeDeleted {
		query = query.Where("deleted_by_admin = ?", false)
	}
	return r.page(query, filter.Page, filter.PageSize)
}

func (r *GormOrderRepository) page(query *gorm.DB, page, pageSize int) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	if err := applyPagination(query, page, pageSize).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 按版本号条件更新状态并递增版本
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id string, version int64, status string, updatedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SoftDelete 标记后台删除
func (r *GormOrderRepository) SoftDelete(ctx context.Context, id string, updatedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by_admin": true,
			"updated_at":       updatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
