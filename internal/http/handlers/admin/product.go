package admin

import (
	"strings"

	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var adminProductErrorRules = handlershared.ConcatMappedErrors(
	handlershared.ProductErrorRules,
	handlershared.UpstreamErrorRules,
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Category    string       `json:"category" binding:"required"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	Images      []string     `json:"images"`
	Features    []string     `json:"features"`
	Colors      []string     `json:"colors"`
	IsActive    *bool        `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		Images:      r.Images,
		Features:    r.Features,
		Colors:      r.Colors,
		IsActive:    r.IsActive,
	}
}

// ListProducts 后台商品列表（包含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	products, total, err := h.ProductService.List(c.Request.Context(), service.ProductListQuery{
		Page:         page,
		PageSize:     pageSize,
		Category:     strings.TrimSpace(c.Query("category")),
		Keyword:      strings.TrimSpace(c.Query("keyword")),
		IncludeDraft: true,
	})
	if err != nil {
		respondMappedError(c, err, adminProductErrorRules)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 后台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMappedError(c, err, adminProductErrorRules)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondMappedError(c, err, adminProductErrorRules)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := handlershared.BindJSON(c, &req, ""); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		respondMappedError(c, err, adminProductErrorRules)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, adminProductErrorRules)
		return
	}
	handlershared.RequestLog(c).Infow("admin_product_deleted",
		"operator_admin_id", currentAdminID(c),
		"product_id", id,
	)
	response.Success(c, nil)
}
