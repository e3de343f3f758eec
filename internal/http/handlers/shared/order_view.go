package shared

import (
	"github.com/shopfront-next/internal/i18n"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/service"
)

// OrderView 订单响应：原始字段 + 统一格式化的地址与状态文案
type OrderView struct {
	*models.Order
	AddressText  string   `json:"address_text"`
	StatusLabel  string   `json:"status_label"`
	NextStatuses []string `json:"next_statuses,omitempty"`
}

// NewOrderView 构造订单响应；withTransitions 为 true 时附带可迁移状态（后台使用）
func NewOrderView(order *models.Order, locale string, withTransitions bool) OrderView {
	view := OrderView{
		Order:       order,
		AddressText: order.FormattedAddress(),
		StatusLabel: i18n.T(locale, "order.status."+order.Status),
	}
	if withTransitions {
		view.NextStatuses = service.NextOrderStatuses(order.Status)
	}
	return view
}

// NewOrderViews 批量构造订单响应
func NewOrderViews(orders []models.Order, locale string, withTransitions bool) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i], locale, withTransitions))
	}
	return views
}
