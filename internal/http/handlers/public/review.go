package public

import (
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

var reviewErrorRules = handlershared.ConcatMappedErrors(
	handlershared.ReviewErrorRules,
	handlershared.UpstreamErrorRules,
)

// ReviewRequest 评价请求
type ReviewRequest struct {
	Rating  int      `json:"rating" binding:"required"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`
}

// ListProductReviews 商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	reviews, total, err := h.ReviewService.ListProductReviews(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondMappedError(c, err, reviewErrorRules)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// CreateReview 发表评价；每位购物者每个商品一条
func (h *Handler) CreateReview(c *gin.Context) {
	shopper, ok := handlershared.RequireShopper(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := handlershared.BindJSON(c, &req, "error.review_rating_invalid"); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	review, err := h.ReviewService.AddReview(c.Request.Context(), service.ReviewInput{
		ProductID:  c.Param("id"),
		AuthorKey:  shopper.Key,
		AuthorName: shopper.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Images:     req.Images,
	})
	if err != nil {
		respondMappedError(c, err, reviewErrorRules)
		return
	}
	response.Success(c, review)
}

// UpdateReview 修改自己的评价
func (h *Handler) UpdateReview(c *gin.Context) {
	shopper, ok := handlershared.RequireShopper(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := handlershared.BindJSON(c, &req, "error.review_rating_invalid"); err != nil {
		respondMappedError(c, err, nil)
		return
	}
	review, err := h.ReviewService.EditReview(c.Request.Context(), c.Param("id"), shopper.Key, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		Images:  req.Images,
	})
	if err != nil {
		respondMappedError(c, err, reviewErrorRules)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	shopper, ok := handlershared.RequireShopper(c)
	if !ok {
		return
	}
	if err := h.ReviewService.DeleteReview(c.Request.Context(), c.Param("id"), shopper.Key, false); err != nil {
		respondMappedError(c, err, reviewErrorRules)
		return
	}
	response.Success(c, nil)
}
