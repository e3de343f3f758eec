package queue

import (
	"encoding/json"

	"github.com/shopfront-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCustomerConfirmation 下单确认邮件（顾客）
	TaskOrderCustomerConfirmation = constants.TaskOrderCustomerConfirmation
	// TaskOrderAdminAlert 新订单提醒（管理员）
	TaskOrderAdminAlert = constants.TaskOrderAdminAlert
	// TaskOrderDeliveryConfirmation 送达确认邮件（顾客）
	TaskOrderDeliveryConfirmation = constants.TaskOrderDeliveryConfirmation
)

// OrderNotificationPayload 订单通知任务载荷
type OrderNotificationPayload struct {
	OrderID string `json:"order_id"`
	Locale  string `json:"locale,omitempty"`
}

// NewOrderNotificationTask 创建订单通知任务
func NewOrderNotificationTask(taskType string, payload OrderNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

// ParseOrderNotificationPayload 解析订单通知任务载荷
func ParseOrderNotificationPayload(task *asynq.Task) (OrderNotificationPayload, error) {
	var payload OrderNotificationPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
