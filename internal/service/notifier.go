package service

import (
	"context"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/queue"
)

// Notifier 订单通知发送接口
type Notifier interface {
	CustomerOrderConfirmation(ctx context.Context, order *models.Order, locale string) error
	AdminOrderAlert(ctx context.Context, order *models.Order, locale string) error
	DeliveryConfirmation(ctx context.Context, order *models.Order, locale string) error
}

// EmailNotifier 同步发送邮件
type EmailNotifier struct {
	email *EmailService
}

// NewEmailNotifier 创建邮件通知
func NewEmailNotifier(email *EmailService) *EmailNotifier {
	return &EmailNotifier{email: email}
}

// CustomerOrderConfirmation 发送下单确认
func (n *EmailNotifier) CustomerOrderConfirmation(_ context.Context, order *models.Order, locale string) error {
	return n.email.SendOrderConfirmation(order, locale)
}

// AdminOrderAlert 发送新订单提醒
func (n *EmailNotifier) AdminOrderAlert(_ context.Context, order *models.Order, locale string) error {
	return n.email.SendAdminOrderAlert(order, locale)
}

// DeliveryConfirmation 发送送达确认
func (n *EmailNotifier) DeliveryConfirmation(_ context.Context, order *models.Order, locale string) error {
	return n.email.SendDeliveryConfirmation(order, locale)
}

// QueueNotifier 投递异步任务，由 worker 发送
type QueueNotifier struct {
	client *queue.Client
}

// NewQueueNotifier 创建队列通知
func NewQueueNotifier(client *queue.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

// CustomerOrderConfirmation 投递下单确认任务
func (n *QueueNotifier) CustomerOrderConfirmation(_ context.Context, order *models.Order, locale string) error {
	return n.enqueue(constants.TaskOrderCustomerConfirmation, order, locale)
}

// AdminOrderAlert 投递新订单提醒任务
func (n *QueueNotifier) AdminOrderAlert(_ context.Context, order *models.Order, locale string) error {
	return n.enqueue(constants.TaskOrderAdminAlert, order, locale)
}

// DeliveryConfirmation 投递送达确认任务
func (n *QueueNotifier) DeliveryConfirmation(_ context.Context, order *models.Order, locale string) error {
	return n.enqueue(constants.TaskOrderDeliveryConfirmation, order, locale)
}

func (n *QueueNotifier) enqueue(taskType string, order *models.Order, locale string) error {
	return n.client.EnqueueOrderNotification(taskType, queue.OrderNotificationPayload{
		OrderID: order.ID,
		Locale:  locale,
	})
}

// NewNotifier 队列可用时异步投递，否则同步发送
func NewNotifier(client *queue.Client, email *EmailService) Notifier {
	if client != nil && client.Enabled() {
		return NewQueueNotifier(client)
	}
	return NewEmailNotifier(email)
}
