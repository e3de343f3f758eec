package admin

import (
	handlershared "github.com/shopfront-next/internal/http/handlers/shared"
	"github.com/shopfront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

var adminReviewErrorRules = handlershared.ConcatMappedErrors(
	handlershared.ReviewErrorRules,
	handlershared.UpstreamErrorRules,
)

// ListProductReviews 后台查看商品评价
func (h *Handler) ListProductReviews(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	reviews, total, err := h.ReviewService.ListProductReviews(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		respondMappedError(c, err, adminReviewErrorRules)
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// DeleteReview 删除任意评价并重算商品评分
func (h *Handler) DeleteReview(c *gin.Context) {
	id := c.Param("id")
	if err := h.ReviewService.DeleteReview(c.Request.Context(), id, "", true); err != nil {
		respondMappedError(c, err, adminReviewErrorRules)
		return
	}
	handlershared.RequestLog(c).Infow("admin_review_deleted",
		"operator_admin_id", currentAdminID(c),
		"review_id", id,
	)
	response.Success(c, nil)
}
