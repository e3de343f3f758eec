package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopfront-next/internal/cache"
	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"
)

// CartOwner 购物车归属：已登录购物者使用 ShopperKey，游客使用 GuestToken
type CartOwner struct {
	ShopperKey string
	GuestToken string
}

// IsShopper 是否为已登录购物者
func (o CartOwner) IsShopper() bool {
	return strings.TrimSpace(o.ShopperKey) != ""
}

func (o CartOwner) valid() bool {
	return o.IsShopper() || strings.TrimSpace(o.GuestToken) != ""
}

func (o CartOwner) snapshotKey() string {
	if o.IsShopper() {
		return "shopper:" + strings.TrimSpace(o.ShopperKey)
	}
	return "guest:" + strings.TrimSpace(o.GuestToken)
}

// CartView 购物车展示数据
type CartView struct {
	Items []models.CartLine `json:"items"`
	Count int               `json:"count"`
	Total models.Money      `json:"total"`
}

// CheckoutPreview 结算预览
type CheckoutPreview struct {
	Items []models.CartLine `json:"items"`
	Count int               `json:"count"`
	Quote
}

// CartService 购物车服务
type CartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	snapshots      cache.CartSnapshots
	shipping       ShippingPolicy
	defaultCeiling int
	maxLines       int
	storeTimeout   time.Duration
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, snapshots cache.CartSnapshots, cartCfg config.CartConfig, orderCfg config.OrderConfig) *CartService {
	timeout := time.Duration(cartCfg.StoreTimeoutMillis) * time.Millisecond
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	defaultCeiling := cartCfg.DefaultStockCeil
	if defaultCeiling <= 0 {
		defaultCeiling = constants.DefaultStockCeiling
	}
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		snapshots:      snapshots,
		shipping:       NewShippingPolicy(orderCfg),
		defaultCeiling: defaultCeiling,
		maxLines:       cartCfg.MaxLines,
		storeTimeout:   timeout,
	}
}

// LoadCart 读取购物车；数据层失败时退回本地快照，缺失时返回空列表
func (s *CartService) LoadCart(ctx context.Context, owner CartOwner) ([]models.CartLine, error) {
	if !owner.valid() {
		return nil, ErrCartOwnerRequired
	}
	if !owner.IsShopper() {
		return s.loadSnapshot(ctx, owner), nil
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	cart, err := s.cartRepo.GetByShopper(storeCtx, owner.ShopperKey)
	if err != nil {
		logger.Warnw("cart_load_fallback_snapshot", "shopper_key", owner.ShopperKey, "error", err)
		return s.loadSnapshot(ctx, owner), nil
	}
	if cart == nil {
		return []models.CartLine{}, nil
	}
	return cloneCartLines(cart.Items), nil
}

// Persist 保存购物车；写入失败只记录日志，本地快照始终更新
func (s *CartService) Persist(ctx context.Context, owner CartOwner, items []models.CartLine) {
	if !owner.valid() {
		return
	}
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, owner.snapshotKey(), items); err != nil {
			logger.Warnw("cart_snapshot_save_failed", "owner", owner.snapshotKey(), "error", err)
		}
	}
	if !owner.IsShopper() {
		return
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	cart := &models.Cart{
		ShopperKey: owner.ShopperKey,
		Items:      models.CartLines(cloneCartLines(items)),
		UpdatedAt:  time.Now(),
	}
	if err := s.cartRepo.Upsert(storeCtx, cart); err != nil {
		logger.Warnw("cart_persist_failed", "shopper_key", owner.ShopperKey, "lines", len(items), "error", err)
	}
}

// Clear 清空购物车（幂等）
func (s *CartService) Clear(ctx context.Context, owner CartOwner) error {
	if !owner.valid() {
		return ErrCartOwnerRequired
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(ctx, owner.snapshotKey()); err != nil {
			logger.Warnw("cart_snapshot_delete_failed", "owner", owner.snapshotKey(), "error", err)
		}
	}
	if !owner.IsShopper() {
		return nil
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.cartRepo.Clear(storeCtx, owner.ShopperKey); err != nil {
		logger.Warnw("cart_clear_failed", "shopper_key", owner.ShopperKey, "error", err)
	}
	return nil
}

// GetCart 返回购物车展示数据
func (s *CartService) GetCart(ctx context.Context, owner CartOwner) (*CartView, error) {
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	return buildCartView(items), nil
}

// AddToCart 加购
func (s *CartService) AddToCart(ctx context.Context, owner CartOwner, productID, color string) (*CartView, error) {
	if !owner.valid() {
		return nil, ErrCartOwnerRequired
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, upstream(err)
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	color = strings.TrimSpace(color)
	if color != "" && len(product.Colors) > 0 && !product.HasColor(color) {
		return nil, ErrProductColorInvalid
	}
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	next := AddItem(items, product, color)
	if s.maxLines > 0 && len(next) > s.maxLines {
		return nil, ErrCartTooManyLines
	}
	s.Persist(ctx, owner, next)
	return buildCartView(next), nil
}

// UpdateQuantity 修改行数量
func (s *CartService) UpdateQuantity(ctx context.Context, owner CartOwner, lineID string, quantity int) (*CartView, error) {
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	next, err := SetQuantity(items, lineID, quantity, s.defaultCeiling)
	if err != nil {
		return nil, err
	}
	s.Persist(ctx, owner, next)
	return buildCartView(next), nil
}

// RemoveFromCart 删除行
func (s *CartService) RemoveFromCart(ctx context.Context, owner CartOwner, lineID string) (*CartView, error) {
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	next := RemoveItem(items, lineID)
	s.Persist(ctx, owner, next)
	return buildCartView(next), nil
}

// RemoveCheckedOut 下单成功后移除已结算的行；lineIDs 为空时清空购物车
func (s *CartService) RemoveCheckedOut(ctx context.Context, owner CartOwner, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return s.Clear(ctx, owner)
	}
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return err
	}
	s.Persist(ctx, owner, RemoveLines(items, lineIDs))
	return nil
}

// Preview 结算预览：选中行、件数与金额
func (s *CartService) Preview(ctx context.Context, owner CartOwner, lineIDs []string) (*CheckoutPreview, error) {
	items, err := s.LoadCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	selected, err := SelectLines(items, lineIDs)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrOrderItemsRequired
	}
	return &CheckoutPreview{
		Items: selected,
		Count: CountItems(selected),
		Quote: s.shipping.QuoteFor(TotalItems(selected).Decimal),
	}, nil
}

func buildCartView(items []models.CartLine) *CartView {
	if items == nil {
		items = []models.CartLine{}
	}
	return &CartView{
		Items: items,
		Count: CountItems(items),
		Total: TotalItems(items),
	}
}

func (s *CartService) loadSnapshot(ctx context.Context, owner CartOwner) []models.CartLine {
	if s.snapshots == nil {
		return []models.CartLine{}
	}
	lines, ok, err := s.snapshots.Load(ctx, owner.snapshotKey())
	if err != nil {
		logger.Warnw("cart_snapshot_load_failed", "owner", owner.snapshotKey(), "error", err)
		return []models.CartLine{}
	}
	if !ok || lines == nil {
		return []models.CartLine{}
	}
	return lines
}
