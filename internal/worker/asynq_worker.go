package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/provider"
	"github.com/shopfront-next/internal/queue"
	"github.com/shopfront-next/internal/repository"
	"github.com/shopfront-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者：加载订单后同步发送邮件
type Consumer struct {
	orders   repository.OrderRepository
	notifier service.Notifier
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return nil
	}
	return newConsumer(c.OrderRepo, c.EmailNotifier)
}

func newConsumer(orders repository.OrderRepository, notifier service.Notifier) *Consumer {
	return &Consumer{orders: orders, notifier: notifier}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderCustomerConfirmation, c.handleCustomerConfirmation)
	mux.HandleFunc(queue.TaskOrderAdminAlert, c.handleAdminAlert)
	mux.HandleFunc(queue.TaskOrderDeliveryConfirmation, c.handleDeliveryConfirmation)
}

func (c *Consumer) handleCustomerConfirmation(ctx context.Context, task *asynq.Task) error {
	return c.handleOrderNotification(ctx, task, c.notifier.CustomerOrderConfirmation)
}

func (c *Consumer) handleAdminAlert(ctx context.Context, task *asynq.Task) error {
	return c.handleOrderNotification(ctx, task, c.notifier.AdminOrderAlert)
}

func (c *Consumer) handleDeliveryConfirmation(ctx context.Context, task *asynq.Task) error {
	return c.handleOrderNotification(ctx, task, c.notifier.DeliveryConfirmation)
}

type sendFunc func(ctx context.Context, order *models.Order, locale string) error

func (c *Consumer) handleOrderNotification(ctx context.Context, task *asynq.Task, send sendFunc) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	taskType := task.Type()
	payload, err := queue.ParseOrderNotificationPayload(task)
	if err != nil {
		logger.Warnw("worker_order_notification_unmarshal_failed", "task", taskType, "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		logger.Debugw("worker_order_notification_skip_invalid_payload", "task", taskType)
		return nil
	}

	order, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		logger.Warnw("worker_order_notification_fetch_order_failed", "task", taskType, "order_id", orderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_notification_skip_order_not_found", "task", taskType, "order_id", orderID)
		return nil
	}

	if err := send(ctx, order, payload.Locale); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled):
			logger.Debugw("worker_order_notification_skip_email_disabled", "task", taskType, "order_id", order.ID)
			return nil
		case errors.Is(err, service.ErrInvalidEmail):
			logger.Warnw("worker_order_notification_skip_invalid_receiver", "task", taskType, "order_id", order.ID, "tracking_id", order.TrackingID)
			return nil
		default:
			logger.Warnw("worker_order_notification_send_failed",
				"task", taskType,
				"order_id", order.ID,
				"tracking_id", order.TrackingID,
				"error", err,
			)
			return err
		}
	}
	logger.Infow("worker_order_notification_sent", "task", taskType, "order_id", order.ID, "tracking_id", order.TrackingID)
	return nil
}
