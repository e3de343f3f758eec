package models

import "time"

// Review 商品评价表（每个作者对每个商品仅一条）
type Review struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id" bson:"_id"`                                                   // 主键
	ProductID  string      `gorm:"size:36;not null;uniqueIndex:idx_review_product_author" json:"product_id" bson:"productId"` // 商品ID
	AuthorKey  string      `gorm:"size:191;not null;uniqueIndex:idx_review_product_author" json:"-" bson:"authorKey"`         // 作者标识
	AuthorName string      `json:"author_name" bson:"authorName"`                                                             // 作者昵称
	Rating     int         `gorm:"not null" json:"rating" bson:"rating"`                                                      // 评分 1-5
	Comment    string      `gorm:"type:text" json:"comment" bson:"comment"`                                                   // 评价内容
	Images     StringArray `gorm:"type:json" json:"images" bson:"images"`                                                     // 图片
	CreatedAt  time.Time   `gorm:"index" json:"created_at" bson:"createdAt"`                                                  // 创建时间
	UpdatedAt  time.Time   `json:"updated_at" bson:"updatedAt"`                                                               // 更新时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
