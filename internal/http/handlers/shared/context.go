package shared

import (
	"strings"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 上下文键
const (
	ContextKeyRequestID    = "request_id"
	ContextKeyAdminID      = "admin_id"
	ContextKeyUsername     = "username"
	ContextKeyAdminIsSuper = "admin_is_super"
	ContextKeyShopperKey   = "shopper_key"
	ContextKeyShopperEmail = "shopper_email"
	ContextKeyShopperName  = "shopper_name"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetAdminID 读取当前管理员 ID。
func GetAdminID(c *gin.Context) (uint, bool) {
	return GetContextUintWithKeys(c, ContextKeyAdminID, "error.unauthorized", "error.internal")
}

// Shopper 当前请求的购物者身份（未登录时为空）。
type Shopper struct {
	Key   string
	Email string
	Name  string
}

// GetShopper 读取可选的购物者身份。
func GetShopper(c *gin.Context) (Shopper, bool) {
	key := c.GetString(ContextKeyShopperKey)
	if key == "" {
		return Shopper{}, false
	}
	return Shopper{
		Key:   key,
		Email: c.GetString(ContextKeyShopperEmail),
		Name:  c.GetString(ContextKeyShopperName),
	}, true
}

// RequireShopper 读取购物者身份，未登录时直接返回 401。
func RequireShopper(c *gin.Context) (Shopper, bool) {
	shopper, ok := GetShopper(c)
	if !ok {
		RespondError(c, response.CodeUnauthorized, "error.shopper_required", nil)
		return Shopper{}, false
	}
	return shopper, true
}

// CartOwnerFromContext 登录购物者按邮箱归属，游客按购物车令牌归属。
// issueGuestToken 为 true 且游客没有令牌时签发新令牌并写入响应头。
func CartOwnerFromContext(c *gin.Context, issueGuestToken bool) service.CartOwner {
	if shopper, ok := GetShopper(c); ok {
		return service.CartOwner{ShopperKey: shopper.Key}
	}
	token := strings.TrimSpace(c.GetHeader(constants.HeaderCartToken))
	if token == "" && issueGuestToken {
		token = uuid.NewString()
	}
	if token != "" {
		c.Writer.Header().Set(constants.HeaderCartToken, token)
	}
	return service.CartOwner{GuestToken: token}
}
