package i18n

var catalog = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":                 "请求参数错误",
		"error.unauthorized":                "未登录或登录已失效",
		"error.forbidden":                   "无权限执行该操作",
		"error.not_found":                   "资源不存在",
		"error.internal":                    "服务器内部错误",
		"error.too_many_requests":           "请求过于频繁，请稍后再试",
		"error.upstream_unavailable":        "服务暂时不可用，请稍后再试",
		"error.login_invalid":               "用户名或密码错误",
		"error.captcha_required":            "请先完成验证码",
		"error.captcha_invalid":             "验证码错误",
		"error.captcha_unavailable":         "验证码服务不可用",
		"error.product_not_found":           "商品不存在",
		"error.product_invalid":             "商品信息不完整",
		"error.product_color_invalid":       "商品不提供该颜色",
		"error.cart_quantity_invalid":       "数量必须大于 0",
		"error.cart_line_not_found":         "购物车中没有该商品",
		"error.cart_too_many_lines":         "购物车商品种类过多",
		"error.cart_owner_required":         "缺少购物车标识",
		"error.order_not_found":             "订单不存在",
		"error.order_items_required":        "订单商品不能为空",
		"error.order_item_invalid":          "订单商品信息不完整",
		"error.order_contact_required":      "请填写收货人姓名和电话",
		"error.order_phone_invalid":         "电话号码格式不正确",
		"error.order_address_required":      "请填写完整的收货地址",
		"error.order_payment_invalid":       "不支持的支付方式",
		"error.order_amount_mismatch":       "订单金额与商品不一致",
		"error.order_status_invalid":        "订单状态不合法",
		"error.order_transition_invalid":    "当前订单状态不允许该操作",
		"error.order_conflict":              "订单已被其他操作更新，请刷新后重试",
		"error.order_search_query_required": "请输入搜索关键字",
		"error.order_tracking_required":     "请输入追踪码",
		"error.review_not_found":            "评价不存在",
		"error.review_duplicate":            "您已评价过该商品",
		"error.review_rating_invalid":       "评分必须在 1 到 5 之间",
		"error.review_forbidden":            "只能修改自己的评价",
		"error.review_author_missing":       "缺少评价作者",
		"error.shopper_required":            "请先登录",
		"error.auth_header_missing":         "缺少 Authorization 请求头",
		"error.auth_header_invalid":         "Authorization 格式错误",
		"error.token_invalid":               "登录凭证无效或已过期",
		"error.rate_limited":                "请求过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":      "限流服务不可用",
		"error.login_too_many":              "登录尝试过多，请在 %d 秒后重试",
		"error.tracking_code_exhausted":     "订单号生成失败，请重试",
		"error.admin_exists":                "管理员账号已存在",
		"error.email_invalid":               "邮箱格式不正确",
		"error.admin_invalid":               "账号不能为空且密码至少 8 位",

		"order.status.pending":    "待确认",
		"order.status.accepted":   "已接单",
		"order.status.processing": "处理中",
		"order.status.delivering": "配送中",
		"order.status.done":       "已完成",
		"order.status.rejected":   "已拒绝",

		"email.order_confirmation.subject": "订单已提交 %s",
		"email.order_confirmation.body":    "%s 您好：\n\n我们已收到您的订单。\n追踪码：%s\n合计：%s\n收货地址：%s\n\n%s",
		"email.admin_alert.subject":        "新订单 %s",
		"email.admin_alert.body":           "收到新订单。\n追踪码：%s\n顾客：%s（%s / %s）\n合计：%s\n支付方式：%s\n收货地址：%s\n\n%s",
		"email.delivery.subject":           "订单已送达 %s",
		"email.delivery.body":              "%s 您好：\n\n您的订单 %s 已完成送达，感谢您的购买。\n收货地址：%s",
	},
	LocaleEN: {
		"error.bad_request":                 "Invalid request",
		"error.unauthorized":                "Not signed in or session expired",
		"error.forbidden":                   "Permission denied",
		"error.not_found":                   "Resource not found",
		"error.internal":                    "Internal server error",
		"error.too_many_requests":           "Too many requests, please try again later",
		"error.upstream_unavailable":        "Service temporarily unavailable, please try again later",
		"error.login_invalid":               "Invalid username or password",
		"error.captcha_required":            "Please complete the captcha",
		"error.captcha_invalid":             "Incorrect captcha",
		"error.captcha_unavailable":         "Captcha service unavailable",
		"error.product_not_found":           "Product not found",
		"error.product_invalid":             "Product information is incomplete",
		"error.product_color_invalid":       "This color is not offered for the product",
		"error.cart_quantity_invalid":       "Quantity must be at least 1",
		"error.cart_line_not_found":         "Item is not in the cart",
		"error.cart_too_many_lines":         "Too many different items in the cart",
		"error.cart_owner_required":         "Missing cart identity",
		"error.order_not_found":             "Order not found",
		"error.order_items_required":        "Order must contain at least one item",
		"error.order_item_invalid":          "Order item is incomplete",
		"error.order_contact_required":      "Name and phone are required",
		"error.order_phone_invalid":         "Phone number is invalid",
		"error.order_address_required":      "Street, city and province are required",
		"error.order_payment_invalid":       "Unsupported payment method",
		"error.order_amount_mismatch":       "Order amount does not match its items",
		"error.order_status_invalid":        "Unknown order status",
		"error.order_transition_invalid":    "This status change is not allowed for the order",
		"error.order_conflict":              "The order was changed by someone else, please reload",
		"error.order_search_query_required": "Search query is required",
		"error.order_tracking_required":     "Tracking code is required",
		"error.review_not_found":            "Review not found",
		"error.review_duplicate":            "You have already reviewed this product",
		"error.review_rating_invalid":       "Rating must be between 1 and 5",
		"error.review_forbidden":            "You can only change your own review",
		"error.review_author_missing":       "Review author is required",
		"error.shopper_required":            "Please sign in first",
		"error.auth_header_missing":         "Authorization header is missing",
		"error.auth_header_invalid":         "Authorization header is malformed",
		"error.token_invalid":               "Token is invalid or expired",
		"error.rate_limited":                "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":      "Rate limiter unavailable",
		"error.login_too_many":              "Too many login attempts, retry in %d seconds",
		"error.tracking_code_exhausted":     "Could not allocate a tracking code, please retry",
		"error.admin_exists":                "Admin username already exists",
		"error.email_invalid":               "Email address is invalid",
		"error.admin_invalid":               "Username is required and password needs at least 8 characters",

		"order.status.pending":    "Pending",
		"order.status.accepted":   "Accepted",
		"order.status.processing": "Processing",
		"order.status.delivering": "Out for delivery",
		"order.status.done":       "Delivered",
		"order.status.rejected":   "Rejected",

		"email.order_confirmation.subject": "Order received %s",
		"email.order_confirmation.body":    "Hi %s,\n\nWe have received your order.\nTracking code: %s\nTotal: %s\nShip to: %s\n\n%s",
		"email.admin_alert.subject":        "New order %s",
		"email.admin_alert.body":           "A new order was placed.\nTracking code: %s\nCustomer: %s (%s / %s)\nTotal: %s\nPayment: %s\nShip to: %s\n\n%s",
		"email.delivery.subject":           "Order delivered %s",
		"email.delivery.body":              "Hi %s,\n\nYour order %s has been delivered. Thank you for shopping with us.\nShip to: %s",
	},
}
