package public

import (
	"strings"
	"time"

	"github.com/shopfront-next/internal/constants"
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/i18n"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var orderErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CaptchaErrorRules,
	handlershared.OrderErrorRules,
	handlershared.CartErrorRules,
	handlershared.UpstreamErrorRules,
)

// CreateOrderRequest 下单请求：商品取自购物车中选中的行
type CreateOrderRequest struct {
	Name          string                   `json:"name"`
	Phone         string                   `json:"phone"`
	Email         string                   `json:"email"`
	Address       models.StructuredAddress `json:"address"`
	LineIDs       []string                 `json:"line_ids"`
	Subtotal      *models.Money            `json:"subtotal"`
	PaymentMethod string                   `json:"payment_method"`
	Notes         string                   `json:"notes"`
	captchaFields
}

// TrackOrderRequest 追踪码查询请求
type TrackOrderRequest struct {
	TrackingID string `json:"tracking_id"`
	captchaFields
}

// TrackingView 公开追踪结果，不暴露联系方式
type TrackingView struct {
	TrackingID  string            `json:"tracking_id"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	Name        string            `json:"name"`
	AddressText string            `json:"address_text"`
	Items       models.OrderItems `json:"items"`
	Subtotal    models.Money      `json:"subtotal"`
	ShippingFee models.Money      `json:"shipping_fee"`
	Total       models.Money      `json:"total"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateOrder 提交订单；成功后从购物车移除已结算的行
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}

	shopper, loggedIn := handlershared.GetShopper(c)
	email := strings.TrimSpace(req.Email)
	if loggedIn {
		email = shopper.Email
	} else if err := h.CaptchaService.Verify(constants.CaptchaSceneGuestCheckout, req.captchaPayload()); err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}

	ctx := c.Request.Context()
	owner := handlershared.CartOwnerFromContext(c, false)
	preview, err := h.CartService.Preview(ctx, owner, req.LineIDs)
	if err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}

	locale := i18n.ResolveLocale(c)
	order, err := h.OrderService.CreateOrder(ctx, service.CreateOrderInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         email,
		Address:       req.Address,
		Items:         service.ItemsFromCartLines(preview.Items),
		Subtotal:      req.Subtotal,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Locale:        locale,
	})
	if err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}

	lineIDs := make([]string, 0, len(preview.Items))
	for _, line := range preview.Items {
		lineIDs = append(lineIDs, line.LineID)
	}
	if err := h.CartService.RemoveCheckedOut(ctx, owner, lineIDs); err != nil {
		handlershared.RequestLog(c).Warnw("order_cart_cleanup_failed", "order_id", order.ID, "error", err)
	}

	response.Success(c, handlershared.NewOrderView(order, locale, false))
}

// ListMyOrders 购物者订单历史；active_only=true 时排除已拒绝订单
func (h *Handler) ListMyOrders(c *gin.Context) {
	shopper, ok := handlershared.RequireShopper(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	orders, total, err := h.OrderService.ListOrders(c.Request.Context(), service.OrderListQuery{
		Scope:      constants.OrderScopeCustomer,
		Email:      shopper.Email,
		Status:     strings.TrimSpace(c.Query("status")),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}
	locale := i18n.ResolveLocale(c)
	response.SuccessWithPage(c, handlershared.NewOrderViews(orders, locale, false), response.NewPagination(page, pageSize, total))
}

// GetMyOrder 购物者查看自己的订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	shopper, ok := handlershared.RequireShopper(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetCustomerOrder(c.Request.Context(), c.Param("id"), shopper.Email)
	if err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}
	response.Success(c, handlershared.NewOrderView(order, i18n.ResolveLocale(c), false))
}

// TrackOrder 按追踪码公开查询
func (h *Handler) TrackOrder(c *gin.Context) {
	var req TrackOrderRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneOrderTracking, req.captchaPayload()); err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}

	order, err := h.OrderService.TrackOrder(c.Request.Context(), req.TrackingID)
	if err != nil {
		respondMappedError(c, err, orderErrorRules)
		return
	}
	response.Success(c, newTrackingView(order, i18n.ResolveLocale(c)))
}

func newTrackingView(order *models.Order, locale string) TrackingView {
	return TrackingView{
		TrackingID:  order.TrackingID,
		Status:      order.Status,
		StatusLabel: i18n.T(locale, "order.status."+order.Status),
		Name:        order.Name,
		AddressText: order.FormattedAddress(),
		Items:       order.Items,
		Subtotal:    order.Subtotal,
		ShippingFee: order.ShippingFee,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
