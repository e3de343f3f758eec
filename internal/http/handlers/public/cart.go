package public

import (
	"errors"
	"io"

	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var cartErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CartErrorRules,
	handlershared.ProductErrorRules,
	[]handlershared.MappedError{
		{Target: service.ErrOrderItemsRequired, Code: response.CodeBadRequest, Key: "error.order_items_required"},
	},
	handlershared.UpstreamErrorRules,
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutPreviewRequest 结算预览请求；line_ids 为空表示整车结算
type CheckoutPreviewRequest struct {
	LineIDs []string `json:"line_ids"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	owner := handlershared.CartOwnerFromContext(c, true)
	view, err := h.CartService.GetCart(c.Request.Context(), owner)
	if err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购；同商品同颜色合并为一行
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	owner := handlershared.CartOwnerFromContext(c, true)
	view, err := h.CartService.AddToCart(c.Request.Context(), owner, req.ProductID, req.Color)
	if err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	owner := handlershared.CartOwnerFromContext(c, true)
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), owner, c.Param("line_id"), req.Quantity)
	if err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	owner := handlershared.CartOwnerFromContext(c, true)
	view, err := h.CartService.RemoveFromCart(c.Request.Context(), owner, c.Param("line_id"))
	if err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	owner := handlershared.CartOwnerFromContext(c, true)
	if err := h.CartService.Clear(c.Request.Context(), owner); err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, nil)
}

// PreviewCheckout 结算预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	var req CheckoutPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	owner := handlershared.CartOwnerFromContext(c, true)
	preview, err := h.CartService.Preview(c.Request.Context(), owner, req.LineIDs)
	if err != nil {
		respondMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, preview)
}
