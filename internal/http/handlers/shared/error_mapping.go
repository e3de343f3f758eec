package shared

import (
	"errors"

	"github.com/shopfront-next/internal/http/response"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则表翻译业务错误，未命中时使用兜底码。
// 已包装为 AppError 的错误直接按自身码值响应；5xx 类规则保留原始错误用于日志。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	if appErr, ok := response.AsAppError(err); ok {
		var cause error
		if appErr.Code >= response.CodeInternal {
			cause = appErr.Err
		}
		RespondError(c, appErr.Code, appErr.Key, cause)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			var cause error
			if rule.Code >= response.CodeInternal {
				cause = err
			}
			RespondError(c, rule.Code, rule.Key, cause)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组规则，先出现的优先。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// UpstreamErrorRules 存储或外部依赖不可用
var UpstreamErrorRules = []MappedError{
	{Target: service.ErrUpstreamUnavailable, Code: response.CodeServiceUnavailable, Key: "error.upstream_unavailable"},
}

// CaptchaErrorRules 验证码校验
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
}

// ProductErrorRules 商品
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductColorInvalid, Code: response.CodeBadRequest, Key: "error.product_color_invalid"},
}

// CartErrorRules 购物车
var CartErrorRules = []MappedError{
	{Target: service.ErrCartOwnerRequired, Code: response.CodeBadRequest, Key: "error.cart_owner_required"},
	{Target: service.ErrCartQuantityInvalid, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrCartLineNotFound, Code: response.CodeNotFound, Key: "error.cart_line_not_found"},
	{Target: service.ErrCartTooManyLines, Code: response.CodeBadRequest, Key: "error.cart_too_many_lines"},
}

// OrderErrorRules 订单
var OrderErrorRules = []MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderIDRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrOrderItemsRequired, Code: response.CodeBadRequest, Key: "error.order_items_required"},
	{Target: service.ErrOrderItemInvalid, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrOrderContactRequired, Code: response.CodeBadRequest, Key: "error.order_contact_required"},
	{Target: service.ErrOrderPhoneInvalid, Code: response.CodeBadRequest, Key: "error.order_phone_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrOrderAddressRequired, Code: response.CodeBadRequest, Key: "error.order_address_required"},
	{Target: service.ErrOrderPaymentInvalid, Code: response.CodeBadRequest, Key: "error.order_payment_invalid"},
	{Target: service.ErrOrderAmountMismatch, Code: response.CodeBadRequest, Key: "error.order_amount_mismatch"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderTransitionInvalid, Code: response.CodeUnprocessable, Key: "error.order_transition_invalid"},
	{Target: service.ErrOrderConflict, Code: response.CodeConflict, Key: "error.order_conflict"},
	{Target: service.ErrOrderSearchQueryRequired, Code: response.CodeBadRequest, Key: "error.order_search_query_required"},
	{Target: service.ErrOrderTrackingRequired, Code: response.CodeBadRequest, Key: "error.order_tracking_required"},
	{Target: service.ErrShopperRequired, Code: response.CodeUnauthorized, Key: "error.shopper_required"},
	{Target: service.ErrTrackingCodeExhausted, Code: response.CodeInternal, Key: "error.tracking_code_exhausted"},
}

// ReviewErrorRules 评价
var ReviewErrorRules = []MappedError{
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "error.review_not_found"},
	{Target: service.ErrReviewDuplicate, Code: response.CodeConflict, Key: "error.review_duplicate"},
	{Target: service.ErrReviewRatingInvalid, Code: response.CodeBadRequest, Key: "error.review_rating_invalid"},
	{Target: service.ErrReviewForbidden, Code: response.CodeForbidden, Key: "error.review_forbidden"},
	{Target: service.ErrReviewAuthorMissing, Code: response.CodeBadRequest, Key: "error.review_author_missing"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}
