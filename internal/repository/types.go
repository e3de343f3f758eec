package repository

import "errors"

// ErrDuplicateKey 唯一约束冲突（关系库与文档库统一映射到该错误）
var ErrDuplicateKey = errors.New("duplicate key")

// ProductListFilter 商品列表筛选
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Keyword    string
	OnlyActive bool
}

// OrderListFilter 订单列表筛选
type OrderListFilter struct {
	Page            int
	PageSize        int
	Email           string // 为空表示不按购物者过滤
	Status          string
	ExcludeDeleted  bool // 后台视角排除软删除订单
	ExcludeRejected bool // 顾客“进行中订单”视角
}

// OrderSearchFilter 订单模糊搜索
type OrderSearchFilter struct {
	Query          string
	Page           int
	PageSize       int
	ExcludeDeleted bool
}

// ReviewListFilter 评价列表筛选
type ReviewListFilter struct {
	ProductID string
	Page      int
	PageSize  int
}
