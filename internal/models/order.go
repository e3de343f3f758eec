package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单行快照，下单后不可变
type OrderItem struct {
	ProductID string `json:"product_id" bson:"productId"`
	Name      string `json:"name" bson:"name"`
	Price     Money  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	Color     string `json:"color,omitempty" bson:"color,omitempty"`
	Image     string `json:"image" bson:"image"`
}

// OrderItems 订单行列表
type OrderItems []OrderItem

// Value 实现 driver.Valuer 接口
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return json.Marshal([]OrderItem{})
	}
	return json.Marshal([]OrderItem(items))
}

// Scan 实现 sql.Scanner 接口
func (items *OrderItems) Scan(value interface{}) error {
	*items = OrderItems{}
	return scanJSONColumn(value, items)
}

// Order 订单表
type Order struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id" bson:"_id"`                                      // 主键
	TrackingID     string     `gorm:"uniqueIndex;size:64;not null" json:"tracking_id" bson:"trackingId"`            // 追踪码
	Name           string     `gorm:"not null" json:"name" bson:"name"`                                             // 收货人
	Phone          string     `gorm:"index;not null" json:"phone" bson:"phone"`                                     // 电话
	Email          string     `gorm:"index" json:"email" bson:"email"`                                              // 邮箱（购物者标识）
	Address        Address    `gorm:"type:text" json:"address" bson:"address"`                                      // 收货地址
	Items          OrderItems `gorm:"type:json" json:"items" bson:"items"`                                          // 商品快照
	Subtotal       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal" bson:"subtotal"`        // 商品小计
	ShippingFee    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee" bson:"shippingFee"` // 运费
	Total          Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total" bson:"total"`              // 合计
	PaymentMethod  string     `gorm:"not null" json:"payment_method" bson:"paymentMethod"`                          // 支付方式标签
	Notes          string     `gorm:"type:text" json:"notes,omitempty" bson:"notes,omitempty"`                      // 备注
	Status         string     `gorm:"index;not null" json:"status" bson:"status"`                                   // 订单状态
	DeletedByAdmin bool       `gorm:"index;not null;default:false" json:"deleted_by_admin" bson:"deletedByAdmin"`   // 后台软删除
	Version        int64      `gorm:"not null;default:0" json:"version" bson:"version"`                             // 乐观锁版本
	CreatedAt      time.Time  `gorm:"index" json:"created_at" bson:"createdAt"`                                     // 创建时间
	UpdatedAt      time.Time  `json:"updated_at" bson:"updatedAt"`                                                  // 更新时间
	SearchText     string     `gorm:"type:text" json:"-" bson:"-"`                                                  // 检索列（小写，写入时生成）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeSave 写入前刷新检索列
func (o *Order) BeforeSave(_ *gorm.DB) error {
	if text := FoldSearchText(o.TrackingID, o.Phone, o.Name, o.Email); text != "" {
		o.SearchText = text
	}
	return nil
}

// FormattedAddress 返回展示用地址
func (o *Order) FormattedAddress() string {
	if o == nil {
		return ""
	}
	return FormatAddress(o.Address)
}
