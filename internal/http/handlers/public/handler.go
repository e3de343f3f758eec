package public

import "github.com/shopfront-next/internal/provider"

// Handler 店铺前台接口，游客与登录购物者共用
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
