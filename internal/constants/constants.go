package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusAccepted   = "accepted"
	OrderStatusProcessing = "processing"
	OrderStatusDelivering = "delivering"
	OrderStatusDone       = "done"
	OrderStatusRejected   = "rejected"
)

// 支付方式常量（仅为标签，不做线上收款）
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// 订单列表视角
const (
	OrderScopeAdmin    = "admin"
	OrderScopeCustomer = "customer"
)

// 订单事件类型
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
	OrderEventDeleted       = "order.deleted"
)

// 异步任务类型
const (
	TaskOrderCustomerConfirmation = "order:customer_confirmation"
	TaskOrderAdminAlert           = "order:admin_alert"
	TaskOrderDeliveryConfirmation = "order:delivery_confirmation"
)

// 验证码场景
const (
	CaptchaSceneGuestCheckout = "guest_checkout"
	CaptchaSceneOrderTracking = "order_tracking"
)

// 评分范围
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 请求头
const (
	HeaderCartToken = "X-Cart-Token"
	HeaderRequestID = "X-Request-ID"
)

// 默认购物车数量上限（库存未知时）
const DefaultStockCeiling = 99
