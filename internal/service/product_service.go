package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"
)

const defaultRelatedLimit = 4

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       models.Money
	Stock       int
	Images      []string
	Features    []string
	Colors      []string
	IsActive    *bool
}

// ProductListQuery 商品列表查询
type ProductListQuery struct {
	Page         int
	PageSize     int
	Category     string
	Keyword      string
	IncludeDraft bool // 后台视角包含下架商品
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &models.Product{
		ID:        models.NewID(),
		IsActive:  true,
		CreatedAt: now,
	}
	applyProductInput(product, input)
	product.UpdatedAt = now
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, upstream(err)
	}
	return product, nil
}

// Update 更新商品，评分聚合字段不受影响
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, input)
	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, upstream(err)
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return upstream(err)
	}
	return nil
}

// Get 获取商品
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, upstream(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetPublic 获取上架商品
func (s *ProductService) GetPublic(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, query ProductListQuery) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, repository.ProductListFilter{
		Page:       query.Page,
		PageSize:   query.PageSize,
		Category:   strings.TrimSpace(query.Category),
		Keyword:    strings.TrimSpace(query.Keyword),
		OnlyActive: !query.IncludeDraft,
	})
	if err != nil {
		return nil, 0, upstream(err)
	}
	return products, total, nil
}

// Related 同分类、有库存的其他商品
func (s *ProductService) Related(ctx context.Context, id string, limit int) ([]models.Product, error) {
	product, err := s.GetPublic(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	products, err := s.productRepo.ListByCategory(ctx, product.Category, product.ID, 1, limit)
	if err != nil {
		return nil, upstream(err)
	}
	return products, nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		return ErrProductInvalid
	}
	if input.Price.Decimal.IsNegative() || input.Stock < 0 {
		return ErrProductInvalid
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Category = strings.TrimSpace(input.Category)
	product.Price = input.Price
	product.Stock = input.Stock
	product.Images = models.StringArray(trimStrings(input.Images))
	product.Features = models.StringArray(trimStrings(input.Features))
	product.Colors = models.StringArray(trimStrings(input.Colors))
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func trimStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
