package admin

import "github.com/shopfront-next/internal/provider"

// Handler 后台接口：订单处理、商品维护、评价审核与授权管理
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
