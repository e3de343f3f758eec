package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/events"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService(t *testing.T) (*OrderService, *recordingNotifier, *recordingPublisher, *repository.GormOrderRepository) {
	t.Helper()
	repo := repository.NewOrderRepository(openServiceTestDB(t))
	notifier := &recordingNotifier{failKinds: map[string]error{}}
	publisher := &recordingPublisher{}
	svc := NewOrderService(repo, notifier, publisher, config.OrderConfig{
		TrackingPrefix:        "TRK",
		TrackingRetries:       3,
		ShippingFee:           5,
		FreeShippingThreshold: 100,
		MinPhoneLength:        7,
	})
	return svc, notifier, publisher, repo
}

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		Name:    "Ada Obi",
		Phone:   "08012345678",
		Email:   "Ada@Example.com",
		Address: models.StructuredAddress{Street: "1 Main St", City: "Ikeja", Province: "Lagos", PostalCode: "100001"},
		Items: []OrderItemInput{
			{ProductID: "p1", Name: "Lamp", Price: models.MustMoney("20"), Quantity: 2, Color: "red"},
			{ProductID: "p2", Name: "Mug", Price: models.MustMoney("3.25"), Quantity: 1},
		},
		PaymentMethod: constants.PaymentMethodCOD,
	}
}

func TestCreateOrderComputesTotalsAndInitialStatus(t *testing.T) {
	svc, notifier, publisher, repo := newTestOrderService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, constants.OrderStatusPending, order.Status)
	assert.Equal(t, "43.25", order.Subtotal.String())
	assert.Equal(t, "5.00", order.ShippingFee.String())
	assert.Equal(t, "48.25", order.Total.String())
	assert.Equal(t, "ada@example.com", order.Email)
	assert.False(t, order.DeletedByAdmin)
	assert.True(t, strings.HasPrefix(order.TrackingID, "TRK"))
	assert.Len(t, order.TrackingID, len("TRK")+14+4)
	assert.Equal(t, "1 Main St, Ikeja, Lagos 100001", order.FormattedAddress())

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, order.TrackingID, stored.TrackingID)
	assert.Len(t, stored.Items, 2)

	assert.ElementsMatch(t, []string{"customer", "admin"}, notifier.kinds())
	assert.Equal(t, []string{constants.OrderEventCreated}, publisher.types())
}

func TestCreateOrderOnlinePaymentStartsProcessing(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	input := validOrderInput()
	input.PaymentMethod = "ONLINE"
	input.Items = []OrderItemInput{{ProductID: "p1", Name: "Sofa", Price: models.MustMoney("150"), Quantity: 1}}

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusProcessing, order.Status)
	assert.Equal(t, "0.00", order.ShippingFee.String(), "free shipping above threshold")
	assert.Equal(t, "150.00", order.Total.String())
}

func TestCreateOrderValidation(t *testing.T) {
	svc, notifier, publisher, _ := newTestOrderService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
		want   error
	}{
		{"no items", func(in *CreateOrderInput) { in.Items = nil }, ErrOrderItemsRequired},
		{"zero quantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }, ErrOrderItemInvalid},
		{"blank name", func(in *CreateOrderInput) { in.Name = "  " }, ErrOrderContactRequired},
		{"short phone", func(in *CreateOrderInput) { in.Phone = "123" }, ErrOrderPhoneInvalid},
		{"missing city", func(in *CreateOrderInput) { in.Address.City = "" }, ErrOrderAddressRequired},
		{"bad payment", func(in *CreateOrderInput) { in.PaymentMethod = "barter" }, ErrOrderPaymentInvalid},
		{"bad email", func(in *CreateOrderInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"subtotal mismatch", func(in *CreateOrderInput) {
			wrong := models.MustMoney("1.00")
			in.Subtotal = &wrong
		}, ErrOrderAmountMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validOrderInput()
			tc.mutate(&input)
			_, err := svc.CreateOrder(ctx, input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, notifier.kinds())
	assert.Empty(t, publisher.types())
}

func TestCreateOrderAcceptsMatchingClientSubtotal(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	input := validOrderInput()
	subtotal := models.MustMoney("43.25")
	input.Subtotal = &subtotal

	_, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
}

func TestCreateOrderSurvivesNotificationFailures(t *testing.T) {
	svc, notifier, _, repo := newTestOrderService(t)
	notifier.failKinds["admin"] = errors.New("smtp refused")
	notifier.panicKind = "customer"

	order, err := svc.CreateOrder(context.Background(), validOrderInput())
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.ElementsMatch(t, []string{"customer", "admin"}, notifier.kinds())
}

func TestTransitionToDoneSurvivesDeliveryNotificationFailure(t *testing.T) {
	svc, notifier, _, repo := newTestOrderService(t)
	ctx := context.Background()
	notifier.failKinds["delivery"] = errors.New("smtp refused")

	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	var updated *models.Order
	for _, status := range []string{
		constants.OrderStatusAccepted,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivering,
		constants.OrderStatusDone,
	} {
		updated, err = svc.TransitionStatus(ctx, order.ID, status, "en-US")
		require.NoError(t, err, status)
	}
	assert.Equal(t, constants.OrderStatusDone, updated.Status)
	assert.Contains(t, notifier.kinds(), "delivery")

	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, constants.OrderStatusDone, stored.Status)
	assert.Equal(t, order.Total.String(), stored.Total.String())
	assert.Equal(t, "48.25", stored.Total.String())
	require.Len(t, stored.Items, len(order.Items))
	for i, item := range order.Items {
		assert.Equal(t, item.ProductID, stored.Items[i].ProductID)
		assert.Equal(t, item.Quantity, stored.Items[i].Quantity)
		assert.Equal(t, item.Price.String(), stored.Items[i].Price.String())
	}
}

func TestCreateOrderSurvivesPublishFailure(t *testing.T) {
	svc, _, publisher, _ := newTestOrderService(t)
	publisher.err = errors.New("broker down")

	_, err := svc.CreateOrder(context.Background(), validOrderInput())
	require.NoError(t, err)
}

// stallingPublisher 阻塞直到 ctx 结束，模拟 broker 无响应
type stallingPublisher struct {
	hadDeadline bool
}

func (p *stallingPublisher) PublishOrderEvent(ctx context.Context, _ events.OrderEvent) error {
	_, p.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (p *stallingPublisher) Close() error { return nil }

func TestCreateOrderBoundsStalledPublish(t *testing.T) {
	svc, _, _, repo := newTestOrderService(t)
	stalled := &stallingPublisher{}
	svc.publisher = stalled
	svc.publishTimeout = 20 * time.Millisecond

	done := make(chan struct{})
	var (
		order *models.Order
		err   error
	)
	go func() {
		defer close(done)
		order, err = svc.CreateOrder(context.Background(), validOrderInput())
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("CreateOrder blocked on a stalled publisher")
	}
	require.NoError(t, err)
	assert.True(t, stalled.hadDeadline)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateOrderRetriesTrackingCollision(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()

	codes := []string{"TRKFIXED", "TRKFIXED", "TRKOTHER"}
	svc.trackingGen = func(string, time.Time) string {
		code := codes[0]
		codes = codes[1:]
		return code
	}
	first, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	assert.Equal(t, "TRKFIXED", first.TrackingID)
	assert.Equal(t, "TRKOTHER", second.TrackingID)

	svc.trackingGen = func(string, time.Time) string { return "TRKFIXED" }
	_, err = svc.CreateOrder(ctx, validOrderInput())
	assert.ErrorIs(t, err, ErrTrackingCodeExhausted)
}

func TestTransitionStatusFollowsTable(t *testing.T) {
	svc, notifier, publisher, _ := newTestOrderService(t)
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	_, err = svc.TransitionStatus(ctx, order.ID, constants.OrderStatusDone, "")
	assert.ErrorIs(t, err, ErrOrderTransitionInvalid)

	for _, status := range []string{
		constants.OrderStatusAccepted,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivering,
		constants.OrderStatusDone,
	} {
		updated, err := svc.TransitionStatus(ctx, order.ID, status, "en-US")
		require.NoError(t, err, status)
		assert.Equal(t, status, updated.Status)
	}

	final, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusDone, final.Status)
	assert.Equal(t, int64(4), final.Version)

	assert.ElementsMatch(t, []string{"customer", "admin", "delivery"}, notifier.kinds())
	types := publisher.types()
	assert.Equal(t, constants.OrderEventCreated, types[0])
	assert.Len(t, types, 5)

	_, err = svc.TransitionStatus(ctx, order.ID, constants.OrderStatusPending, "")
	assert.ErrorIs(t, err, ErrOrderTransitionInvalid)
}

func TestTransitionStatusErrors(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()

	_, err := svc.TransitionStatus(ctx, "missing", constants.OrderStatusAccepted, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = svc.TransitionStatus(ctx, "", constants.OrderStatusAccepted, "")
	assert.ErrorIs(t, err, ErrOrderIDRequired)
	_, err = svc.TransitionStatus(ctx, "x", "shipped", "")
	assert.ErrorIs(t, err, ErrOrderStatusInvalid)
}

type staleOrderRepo struct {
	repository.OrderRepository
}

func (r staleOrderRepo) UpdateStatus(context.Context, string, int64, string, time.Time) (bool, error) {
	return false, nil
}

func TestTransitionStatusReportsConcurrentWrite(t *testing.T) {
	svc, _, _, repo := newTestOrderService(t)
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	svc.orderRepo = staleOrderRepo{OrderRepository: repo}
	_, err = svc.TransitionStatus(ctx, order.ID, constants.OrderStatusAccepted, "")
	assert.ErrorIs(t, err, ErrOrderConflict)
}

func TestRejectedOrderIsTerminal(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	_, err = svc.TransitionStatus(ctx, order.ID, constants.OrderStatusRejected, "")
	require.NoError(t, err)
	_, err = svc.TransitionStatus(ctx, order.ID, constants.OrderStatusAccepted, "")
	assert.ErrorIs(t, err, ErrOrderTransitionInvalid)
}

func TestSoftDeleteHidesFromAdminListOnly(t *testing.T) {
	svc, _, publisher, _ := newTestOrderService(t)
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	deleted, err := svc.SoftDeleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedByAdmin)

	adminList, _, err := svc.ListOrders(ctx, OrderListQuery{Scope: constants.OrderScopeAdmin})
	require.NoError(t, err)
	assert.Empty(t, adminList)

	customerList, _, err := svc.ListOrders(ctx, OrderListQuery{Scope: constants.OrderScopeCustomer, Email: "ADA@example.com"})
	require.NoError(t, err)
	require.Len(t, customerList, 1)
	assert.Equal(t, order.ID, customerList[0].ID)

	tracked, err := svc.TrackOrder(ctx, strings.ToLower(order.TrackingID))
	require.NoError(t, err)
	assert.Equal(t, order.ID, tracked.ID)

	_, err = svc.SoftDeleteOrder(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Contains(t, publisher.types(), constants.OrderEventDeleted)
}

func TestListOrdersNewestFirstAndScopes(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	first, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)
	other := validOrderInput()
	other.Email = "bola@example.com"
	_, err = svc.CreateOrder(ctx, other)
	require.NoError(t, err)
	latest, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	all, total, err := svc.ListOrders(ctx, OrderListQuery{Scope: constants.OrderScopeAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, latest.ID, all[0].ID)

	mine, _, err := svc.ListOrders(ctx, OrderListQuery{Scope: constants.OrderScopeCustomer, Email: "ada@example.com"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, latest.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	_, _, err = svc.ListOrders(ctx, OrderListQuery{Scope: constants.OrderScopeCustomer})
	assert.ErrorIs(t, err, ErrShopperRequired)
}

func TestSearchOrders(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)
	other := validOrderInput()
	other.Name = "Bola Ade"
	other.Email = "bola@example.com"
	other.Phone = "09099998888"
	_, err = svc.CreateOrder(ctx, other)
	require.NoError(t, err)

	found, total, err := svc.SearchOrders(ctx, "BOLA", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Bola Ade", found[0].Name)

	byPhone, _, err := svc.SearchOrders(ctx, "9998888", 1, 20)
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	_, _, err = svc.SearchOrders(ctx, "   ", 1, 20)
	assert.ErrorIs(t, err, ErrOrderSearchQueryRequired)
}

func TestGetCustomerOrderChecksOwner(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	ctx := context.Background()
	order, err := svc.CreateOrder(ctx, validOrderInput())
	require.NoError(t, err)

	_, err = svc.GetCustomerOrder(ctx, order.ID, "ada@example.com")
	require.NoError(t, err)
	_, err = svc.GetCustomerOrder(ctx, order.ID, "eve@example.com")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

type brokenOrderRepo struct {
	repository.OrderRepository
}

func (brokenOrderRepo) GetByTrackingID(context.Context, string) (*models.Order, error) {
	return nil, errStoreDown
}

func TestStoreFailureMapsToUpstream(t *testing.T) {
	svc, _, _, _ := newTestOrderService(t)
	svc.orderRepo = brokenOrderRepo{}
	_, err := svc.TrackOrder(context.Background(), "TRK1")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
