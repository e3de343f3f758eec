package service

import (
	"context"
	"strings"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"
)

// OrderListQuery 订单列表查询
type OrderListQuery struct {
	Scope      string // admin / customer
	Email      string // customer 视角必填
	Status     string
	ActiveOnly bool // 顾客“进行中订单”：排除已拒绝
	Page       int
	PageSize   int
}

// GetOrder 按 ID 获取订单（后台详情，包含软删除订单）
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrOrderIDRequired
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetCustomerOrder 顾客查看自己的订单，邮箱不匹配视为不存在
func (s *OrderService) GetCustomerOrder(ctx context.Context, id, email string) (*models.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrShopperRequired
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.Email, email) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// TrackOrder 按追踪码查询（公开）
func (s *OrderService) TrackOrder(ctx context.Context, trackingID string) (*models.Order, error) {
	code := NormalizeTrackingID(trackingID)
	if code == "" {
		return nil, ErrOrderTrackingRequired
	}
	order, err := s.orderRepo.GetByTrackingID(ctx, code)
	if err != nil {
		return nil, upstream(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 订单列表，按创建时间倒序；后台视角隐藏软删除订单
func (s *OrderService) ListOrders(ctx context.Context, query OrderListQuery) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	status := strings.ToLower(strings.TrimSpace(query.Status))
	if status != "" {
		if !IsKnownOrderStatus(status) {
			return nil, 0, ErrOrderStatusInvalid
		}
		filter.Status = status
	}
	switch query.Scope {
	case constants.OrderScopeCustomer:
		email := strings.ToLower(strings.TrimSpace(query.Email))
		if email == "" {
			return nil, 0, ErrShopperRequired
		}
		filter.Email = email
		filter.ExcludeRejected = query.ActiveOnly
	default:
		filter.ExcludeDeleted = true
	}
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, upstream(err)
	}
	return orders, total, nil
}

// SearchOrders 按追踪码、电话、姓名、邮箱模糊搜索（不区分大小写）
func (s *OrderService) SearchOrders(ctx context.Context, query string, page, pageSize int) ([]models.Order, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, ErrOrderSearchQueryRequired
	}
	orders, total, err := s.orderRepo.Search(ctx, repository.OrderSearchFilter{
		Query:          query,
		Page:           page,
		PageSize:       pageSize,
		ExcludeDeleted: true,
	})
	if err != nil {
		return nil, 0, upstream(err)
	}
	return orders, total, nil
}
