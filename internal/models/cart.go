package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CartLine 购物车行（价格/名称/图片为加购时的快照）
type CartLine struct {
	LineID       string `json:"line_id" bson:"lineId"`                                 // 行标识（商品 + 颜色）
	ProductID    string `json:"product_id" bson:"productId"`                           // 商品ID
	Name         string `json:"name" bson:"name"`                                      // 名称快照
	Price        Money  `json:"price" bson:"price"`                                    // 单价快照
	Image        string `json:"image" bson:"image"`                                    // 图片快照
	Quantity     int    `json:"quantity" bson:"quantity"`                              // 数量
	Color        string `json:"color,omitempty" bson:"color,omitempty"`                // 颜色
	StockCeiling int    `json:"stock_ceiling,omitempty" bson:"stockCeiling,omitempty"` // 数量上限（加购时的库存）
}

// CartLines 购物车行列表
type CartLines []CartLine

// Value 实现 driver.Valuer 接口
func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]CartLine{})
	}
	return json.Marshal([]CartLine(l))
}

// Scan 实现 sql.Scanner 接口
func (l *CartLines) Scan(value interface{}) error {
	*l = CartLines{}
	return scanJSONColumn(value, l)
}

// Cart 购物车（每个购物者一份）
type Cart struct {
	ShopperKey string    `gorm:"primaryKey;size:191" json:"shopper_key" bson:"shopperKey"` // 购物者标识
	Items      CartLines `gorm:"type:json" json:"items" bson:"items"`                      // 购物车行
	UpdatedAt  time.Time `json:"updated_at" bson:"updatedAt"`                              // 更新时间
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
