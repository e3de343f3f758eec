package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/events"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// defaultPublishTimeout 单次事件发布的上限，超时只记录日志
const defaultPublishTimeout = 3 * time.Second

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	notifier        Notifier
	publisher       events.Publisher
	shipping        ShippingPolicy
	trackingPrefix  string
	trackingRetries int
	minPhoneLength  int
	publishTimeout  time.Duration
	now             func() time.Time
	trackingGen     func(prefix string, now time.Time) string
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, notifier Notifier, publisher events.Publisher, cfg config.OrderConfig) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		orderRepo:       orderRepo,
		notifier:        notifier,
		publisher:       publisher,
		shipping:        NewShippingPolicy(cfg),
		trackingPrefix:  cfg.TrackingPrefix,
		trackingRetries: cfg.TrackingRetries,
		minPhoneLength:  cfg.MinPhoneLength,
		publishTimeout:  defaultPublishTimeout,
		now:             time.Now,
		trackingGen:     GenerateTrackingID,
	}
}

// OrderItemInput 下单商品快照
type OrderItemInput struct {
	ProductID string
	Name      string
	Price     models.Money
	Quantity  int
	Color     string
	Image     string
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	Name          string
	Phone         string
	Email         string
	Address       models.StructuredAddress
	Items         []OrderItemInput
	Subtotal      *models.Money // 客户端计算的小计，提供时必须与服务端一致
	PaymentMethod string
	Notes         string
	Locale        string
}

// ItemsFromCartLines 购物车行转下单快照
func ItemsFromCartLines(lines []models.CartLine) []OrderItemInput {
	items := make([]OrderItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItemInput{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Color:     line.Color,
			Image:     line.Image,
		})
	}
	return items
}

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	paymentMethod, err := s.validateCreateInput(&input)
	if err != nil {
		return nil, err
	}

	items := make(models.OrderItems, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			ProductID: strings.TrimSpace(item.ProductID),
			Name:      strings.TrimSpace(item.Name),
			Price:     item.Price,
			Quantity:  item.Quantity,
			Color:     strings.TrimSpace(item.Color),
			Image:     strings.TrimSpace(item.Image),
		})
		subtotal = subtotal.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	quote := s.shipping.QuoteFor(subtotal)
	if input.Subtotal != nil && !input.Subtotal.Decimal.Round(2).Equal(quote.Subtotal.Decimal) {
		return nil, ErrOrderAmountMismatch
	}

	trackingID, err := s.nextTrackingID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		ID:             models.NewID(),
		TrackingID:     trackingID,
		Name:           strings.TrimSpace(input.Name),
		Phone:          strings.TrimSpace(input.Phone),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Address:        models.NewStructuredAddress(strings.TrimSpace(input.Address.Street), strings.TrimSpace(input.Address.City), strings.TrimSpace(input.Address.Province), strings.TrimSpace(input.Address.PostalCode)),
		Items:          items,
		Subtotal:       quote.Subtotal,
		ShippingFee:    quote.ShippingFee,
		Total:          quote.Total,
		PaymentMethod:  paymentMethod,
		Notes:          strings.TrimSpace(input.Notes),
		Status:         InitialOrderStatus(paymentMethod),
		DeletedByAdmin: false,
		Version:        0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			logger.Warnw("order_tracking_conflict_on_insert", "tracking_id", trackingID)
			return nil, ErrTrackingCodeExhausted
		}
		return nil, upstream(err)
	}
	logger.Infow("order_created", "order_id", order.ID, "tracking_id", order.TrackingID, "total", order.Total.String(), "payment_method", order.PaymentMethod)

	s.notifyOrderCreated(ctx, order, input.Locale)
	s.publish(ctx, constants.OrderEventCreated, order, "")
	return order, nil
}

func (s *OrderService) validateCreateInput(input *CreateOrderInput) (string, error) {
	if len(input.Items) == 0 {
		return "", ErrOrderItemsRequired
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" || strings.TrimSpace(item.Name) == "" {
			return "", ErrOrderItemInvalid
		}
		if item.Quantity < 1 || item.Price.Decimal.IsNegative() {
			return "", ErrOrderItemInvalid
		}
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return "", ErrOrderContactRequired
	}
	if s.minPhoneLength > 0 && utf8.RuneCountInString(strings.TrimSpace(input.Phone)) < s.minPhoneLength {
		return "", ErrOrderPhoneInvalid
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return "", ErrInvalidEmail
		}
	}
	addr := input.Address
	if strings.TrimSpace(addr.Street) == "" || strings.TrimSpace(addr.City) == "" || strings.TrimSpace(addr.Province) == "" {
		return "", ErrOrderAddressRequired
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	switch method {
	case "":
		return constants.PaymentMethodCOD, nil
	case constants.PaymentMethodCOD, constants.PaymentMethodOnline:
		return method, nil
	default:
		return "", ErrOrderPaymentInvalid
	}
}

// TransitionStatus 按迁移表修改订单状态；版本号不一致时返回冲突
func (s *OrderService) TransitionStatus(ctx context.Context, id, status, locale string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	target := strings.ToLower(strings.TrimSpace(status))
	if !IsKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransitionOrder(order.Status, target) {
		return nil, ErrOrderTransitionInvalid
	}

	now := s.now()
	ok, err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Version, target, now)
	if err != nil {
		return nil, upstream(err)
	}
	if !ok {
		current, err := s.orderRepo.GetByID(ctx, id)
		if err != nil {
			return nil, upstream(err)
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		return nil, ErrOrderConflict
	}

	previous := order.Status
	order.Status = target
	order.Version++
	order.UpdatedAt = now
	logger.Infow("order_status_changed", "order_id", order.ID, "from", previous, "to", target)

	if target == constants.OrderStatusDone {
		s.notifyDelivered(ctx, order, locale)
	}
	s.publish(ctx, constants.OrderEventStatusChanged, order, previous)
	return order, nil
}

// SoftDeleteOrder 后台软删除，顾客视角仍可见
func (s *OrderService) SoftDeleteOrder(ctx context.Context, id string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	ok, err := s.orderRepo.SoftDelete(ctx, id, s.now())
	if err != nil {
		return nil, upstream(err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	logger.Infow("order_soft_deleted", "order_id", order.ID)
	s.publish(ctx, constants.OrderEventDeleted, order, "")
	return order, nil
}

// notifyOrderCreated 并行发送顾客确认与管理员提醒，失败只记录日志
func (s *OrderService) notifyOrderCreated(ctx context.Context, order *models.Order, locale string) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	var g errgroup.Group
	if order.Email != "" {
		g.Go(func() error {
			s.dispatch(constants.TaskOrderCustomerConfirmation, order, func() error {
				return s.notifier.CustomerOrderConfirmation(ctx, order, locale)
			})
			return nil
		})
	} else {
		logger.Debugw("order_customer_confirmation_skipped", "order_id", order.ID, "reason", "no_email")
	}
	g.Go(func() error {
		s.dispatch(constants.TaskOrderAdminAlert, order, func() error {
			return s.notifier.AdminOrderAlert(ctx, order, locale)
		})
		return nil
	})
	_ = g.Wait()
}

func (s *OrderService) notifyDelivered(ctx context.Context, order *models.Order, locale string) {
	if s.notifier == nil || order.Email == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.dispatch(constants.TaskOrderDeliveryConfirmation, order, func() error {
		return s.notifier.DeliveryConfirmation(ctx, order, locale)
	})
}

// dispatch 执行单个通知，错误与 panic 都被隔离在这里
func (s *OrderService) dispatch(kind string, order *models.Order, send func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("order_notification_panic", "kind", kind, "order_id", order.ID, "panic", fmt.Sprint(r))
		}
	}()
	if err := send(); err != nil {
		logger.Warnw("order_notification_failed",
			"kind", kind,
			"order_id", order.ID,
			"tracking_id", order.TrackingID,
			"error", fmt.Errorf("%w: %v", ErrNotificationFailed, err),
		)
	}
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order, previous string) {
	event := events.OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		TrackingID:     order.TrackingID,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total.String(),
		OccurredAt:     s.now(),
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.PublishOrderEvent(publishCtx, event); err != nil {
		logger.Warnw("order_event_publish_failed", "type", eventType, "order_id", order.ID, "error", err)
	}
}
