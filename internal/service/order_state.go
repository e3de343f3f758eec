package service

import "github.com/shopfront-next/internal/constants"

// orderTransitions 订单状态迁移表
var orderTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusAccepted, constants.OrderStatusRejected},
	constants.OrderStatusAccepted:   {constants.OrderStatusProcessing},
	constants.OrderStatusProcessing: {constants.OrderStatusDelivering},
	constants.OrderStatusDelivering: {constants.OrderStatusDone},
}

// IsKnownOrderStatus 是否为合法状态值
func IsKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusAccepted,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivering,
		constants.OrderStatusDone,
		constants.OrderStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminalOrderStatus 终态不再迁移
func IsTerminalOrderStatus(status string) bool {
	return status == constants.OrderStatusDone || status == constants.OrderStatusRejected
}

// CanTransitionOrder 判断状态迁移是否合法
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextOrderStatuses 返回当前状态允许迁移到的状态
func NextOrderStatuses(from string) []string {
	next := orderTransitions[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// InitialOrderStatus 根据支付方式决定初始状态
func InitialOrderStatus(paymentMethod string) string {
	if paymentMethod == constants.PaymentMethodOnline {
		return constants.OrderStatusProcessing
	}
	return constants.OrderStatusPending
}
