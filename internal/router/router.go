package router

import (
	"sort"
	"strings"

	"github.com/shopfront-next/internal/authz"
	"github.com/shopfront-next/internal/config"
	adminhandlers "github.com/shopfront-next/internal/http/handlers/admin"
	publichandlers "github.com/shopfront-next/internal/http/handlers/public"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := c.Redis.Client()
	adminLoginRule := NewRateLimitRule(c.Redis.Key("rate:admin_login"), cfg.Security.LoginRateLimit, "error.login_too_many")
	trackingRule := NewRateLimitRule(c.Redis.Key("rate:order_tracking"), cfg.Security.TrackingRateLimit, "error.rate_limited")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/:id/related", publicHandler.ListRelatedProducts)
			public.GET("/products/:id/reviews", publicHandler.ListProductReviews)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.POST("/orders/track", RateLimitMiddleware(redisClient, trackingRule, KeyByIPAndJSONField("tracking_id")), publicHandler.TrackOrder)
		}

		// 购物者接口：游客凭购物车令牌，登录用户凭身份令牌
		shopper := apiV1.Group("")
		shopper.Use(ShopperAuthMiddleware(c.AuthService))
		{
			shopper.GET("/cart", publicHandler.GetCart)
			shopper.POST("/cart/items", publicHandler.AddCartItem)
			shopper.PATCH("/cart/items/:line_id", publicHandler.UpdateCartItem)
			shopper.DELETE("/cart/items/:line_id", publicHandler.RemoveCartItem)
			shopper.DELETE("/cart", publicHandler.ClearCart)
			shopper.POST("/cart/checkout/preview", publicHandler.PreviewCheckout)

			shopper.POST("/orders", publicHandler.CreateOrder)
			shopper.GET("/orders", publicHandler.ListMyOrders)
			shopper.GET("/orders/:id", publicHandler.GetMyOrder)

			shopper.POST("/products/:id/reviews", publicHandler.CreateReview)
			shopper.PUT("/reviews/:id", publicHandler.UpdateReview)
			shopper.DELETE("/reviews/:id", publicHandler.DeleteReview)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

			// 当前会话，只校验身份
			session := admin.Group("")
			session.Use(AdminJWTAuthMiddleware(c.AuthService))
			{
				session.GET("/me", adminHandler.GetMe)
				session.POST("/logout", adminHandler.Logout)
			}

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(AdminJWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/search", adminHandler.SearchOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.DELETE("/orders/:id", adminHandler.DeleteOrder)

				// 商品管理
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 评价管理
				authorized.GET("/products/:id/reviews", adminHandler.ListProductReviews)
				authorized.DELETE("/reviews/:id", adminHandler.DeleteReview)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.ListAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		switch item.Path {
		case "/api/v1/admin/login", "/api/v1/admin/me", "/api/v1/admin/logout":
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
