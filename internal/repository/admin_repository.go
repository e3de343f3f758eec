package repository

import (
	"time"

	"github.com/shopfront-next/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 后台账号存取；账号与授权策略同库，不随文档库切换
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	List() ([]models.Admin, error)
	Create(admin *models.Admin) error
	TouchLastLogin(id uint, at time.Time) error
	IncrementTokenVersion(id uint) (bool, error)
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) first(query *gorm.DB) (*models.Admin, error) {
	var admin models.Admin
	if err := query.First(&admin).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByUsername 按账号查询，不存在时返回 nil
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	return r.first(r.db.Where("username = ?", username))
}

// GetByID 按 ID 查询，不存在时返回 nil
func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	return r.first(r.db.Where("id = ?", id))
}

// List 按 ID 顺序列出管理员
func (r *GormAdminRepository) List() ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.Order("id asc").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Create 创建管理员，账号重复返回 ErrDuplicateKey
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return translateWriteError(r.db.Create(admin).Error)
}

// TouchLastLogin 只更新最后登录时间
func (r *GormAdminRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// IncrementTokenVersion 令牌版本原子加一；账号不存在时返回 false
func (r *GormAdminRepository) IncrementTokenVersion(id uint) (bool, error) {
	result := r.db.Model(&models.Admin{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
