package public

import (
	"strconv"
	"strings"

	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultRelatedLimit = 4

var productErrorRules = handlershared.ConcatMappedErrors(
	handlershared.ProductErrorRules,
	handlershared.UpstreamErrorRules,
)

// ListProducts 上架商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	products, total, err := h.ProductService.List(c.Request.Context(), service.ProductListQuery{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondMappedError(c, err, productErrorRules)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情（下架商品视为不存在）
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, product)
}

// ListRelatedProducts 同分类有库存的其他商品
func (h *Handler) ListRelatedProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRelatedLimit)))
	if err != nil || limit <= 0 {
		limit = defaultRelatedLimit
	}
	products, err := h.ProductService.Related(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondMappedError(c, err, productErrorRules)
		return
	}
	response.Success(c, products)
}
