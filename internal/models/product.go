package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id" bson:"_id"`                         // 主键
	Name          string      `gorm:"not null" json:"name" bson:"name"`                                // 商品名称
	Description   string      `gorm:"type:text" json:"description" bson:"description"`                 // 商品描述
	Category      string      `gorm:"index;not null" json:"category" bson:"category"`                  // 分类
	Price         Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price" bson:"price"` // 售价
	Stock         int         `gorm:"not null;default:0" json:"stock" bson:"stock"`                    // 库存（仅展示与数量上限参考）
	Images        StringArray `gorm:"type:json" json:"images" bson:"images"`                           // 图片
	Features      StringArray `gorm:"type:json" json:"features" bson:"features"`                       // 卖点
	Colors        StringArray `gorm:"type:json" json:"colors" bson:"colors"`                           // 可选颜色
	AverageRating float64     `gorm:"not null;default:0" json:"average_rating" bson:"averageRating"`   // 平均评分（1 位小数）
	ReviewCount   int         `gorm:"not null;default:0" json:"review_count" bson:"reviewCount"`       // 评价数
	IsActive      bool        `gorm:"index;not null;default:true" json:"is_active" bson:"isActive"`    // 是否上架
	CreatedAt     time.Time   `gorm:"index" json:"created_at" bson:"createdAt"`                        // 创建时间
	UpdatedAt     time.Time   `json:"updated_at" bson:"updatedAt"`                                     // 更新时间
	SearchText    string      `gorm:"type:text" json:"-" bson:"-"`                                     // 检索列（小写，写入时生成）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeSave 写入前刷新检索列
func (p *Product) BeforeSave(_ *gorm.DB) error {
	if text := FoldSearchText(p.Name, p.Description); text != "" {
		p.SearchText = text
	}
	return nil
}

// PrimaryImage 返回首图
func (p *Product) PrimaryImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasColor 判断是否提供该颜色
func (p *Product) HasColor(color string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
