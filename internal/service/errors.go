package service

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrUpstreamUnavailable 存储或外部依赖不可用
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotificationFailed 通知发送失败（仅记录日志，不向调用方返回）
	ErrNotificationFailed = errors.New("notification failed")
)

// 商品
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInvalid      = errors.New("product invalid")
	ErrProductColorInvalid = errors.New("product color invalid")
)

// 购物车
var (
	ErrCartOwnerRequired   = errors.New("cart owner required")
	ErrCartQuantityInvalid = errors.New("cart quantity must be positive")
	ErrCartLineNotFound    = errors.New("cart line not found")
	ErrCartTooManyLines    = errors.New("cart has too many lines")
)

// 订单
var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderIDRequired          = errors.New("order id required")
	ErrOrderItemsRequired       = errors.New("order items required")
	ErrOrderItemInvalid         = errors.New("order item invalid")
	ErrOrderContactRequired     = errors.New("order contact required")
	ErrOrderPhoneInvalid        = errors.New("order phone invalid")
	ErrOrderAddressRequired     = errors.New("order address required")
	ErrOrderPaymentInvalid      = errors.New("order payment method invalid")
	ErrOrderAmountMismatch      = errors.New("order amount mismatch")
	ErrOrderStatusInvalid       = errors.New("order status invalid")
	ErrOrderTransitionInvalid   = errors.New("order status transition not allowed")
	ErrOrderConflict            = errors.New("order modified concurrently")
	ErrOrderSearchQueryRequired = errors.New("order search query required")
	ErrOrderTrackingRequired    = errors.New("order tracking code required")
	ErrTrackingCodeExhausted    = errors.New("tracking code generation exhausted")
)

// 评价
var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewDuplicate     = errors.New("review already exists")
	ErrReviewRatingInvalid = errors.New("review rating out of range")
	ErrReviewForbidden     = errors.New("review belongs to another author")
	ErrReviewAuthorMissing = errors.New("review author required")
)

// 认证与验证码
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrShopperRequired    = errors.New("shopper identity required")
	ErrAdminExists        = errors.New("admin username already exists")
	ErrAdminInvalid       = errors.New("admin username or password invalid")
	ErrAdminNotFound      = errors.New("admin not found")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// upstream 将存储层错误包装为 ErrUpstreamUnavailable，保留原始错误信息
func upstream(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
