package admin

import (
	"strings"

	"github.com/shopfront-next/internal/constants"
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/i18n"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var adminOrderErrorRules = handlershared.ConcatMappedErrors(
	handlershared.OrderErrorRules,
	handlershared.UpstreamErrorRules,
)

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 后台订单列表（不含软删除订单）
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.ListOrders(c.Request.Context(), service.OrderListQuery{
		Scope:    constants.OrderScopeAdmin,
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondMappedError(c, err, adminOrderErrorRules)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.SuccessWithPage(c, handlershared.NewOrderViews(orders, locale, true), response.NewPagination(page, pageSize, total))
}

// SearchOrders 按追踪码/电话/姓名/邮箱模糊搜索
func (h *Handler) SearchOrders(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.SearchOrders(c.Request.Context(), c.Query("q"), page, pageSize)
	if err != nil {
		respondMappedError(c, err, adminOrderErrorRules)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.SuccessWithPage(c, handlershared.NewOrderViews(orders, locale, true), response.NewPagination(page, pageSize, total))
}

// GetOrder 后台订单详情（包含软删除订单）
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.OrderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMappedError(c, err, adminOrderErrorRules)
		return
	}
	response.Success(c, handlershared.NewOrderView(order, i18n.ResolveLocale(c), true))
}

// UpdateOrderStatus 按迁移表修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	locale := i18n.ResolveLocale(c)
	order, err := h.OrderService.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status, locale)
	if err != nil {
		respondMappedError(c, err, adminOrderErrorRules)
		return
	}
	handlershared.RequestLog(c).Infow("admin_order_status_updated",
		"operator_admin_id", currentAdminID(c),
		"order_id", order.ID,
		"status", order.Status,
	)
	response.Success(c, handlershared.NewOrderView(order, locale, true))
}

// DeleteOrder 软删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	order, err := h.OrderService.SoftDeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMappedError(c, err, adminOrderErrorRules)
		return
	}
	handlershared.RequestLog(c).Infow("admin_order_deleted",
		"operator_admin_id", currentAdminID(c),
		"order_id", order.ID,
	)
	response.Success(c, gin.H{"id": order.ID, "deleted_by_admin": order.DeletedByAdmin})
}
