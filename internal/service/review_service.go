package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/logger"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// ReviewInput 评价输入
type ReviewInput struct {
	ProductID  string
	AuthorKey  string
	AuthorName string
	Rating     int
	Comment    string
	Images     []string
}

// RatingSummary 商品评分聚合
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"review_count"`
}

// AddReview 新增评价：每个作者对每个商品只能评价一次
func (s *ReviewService) AddReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	authorKey := strings.ToLower(strings.TrimSpace(input.AuthorKey))
	if authorKey == "" {
		return nil, ErrReviewAuthorMissing
	}
	if !validRating(input.Rating) {
		return nil, ErrReviewRatingInvalid
	}
	productID := strings.TrimSpace(input.ProductID)
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, upstream(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	existing, err := s.reviewRepo.GetByProductAndAuthor(ctx, productID, authorKey)
	if err != nil {
		return nil, upstream(err)
	}
	if existing != nil {
		return nil, ErrReviewDuplicate
	}

	now := time.Now()
	review := &models.Review{
		ID:         models.NewID(),
		ProductID:  productID,
		AuthorKey:  authorKey,
		AuthorName: strings.TrimSpace(input.AuthorName),
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
		Images:     models.StringArray(input.Images),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrReviewDuplicate
		}
		return nil, upstream(err)
	}
	if _, err := s.RecomputeRating(ctx, productID); err != nil {
		return nil, err
	}
	return review, nil
}

// EditReview 修改评价，仅作者本人可改
func (s *ReviewService) EditReview(ctx context.Context, id, authorKey string, input ReviewInput) (*models.Review, error) {
	review, err := s.getReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(review.AuthorKey, strings.TrimSpace(authorKey)) {
		return nil, ErrReviewForbidden
	}
	if !validRating(input.Rating) {
		return nil, ErrReviewRatingInvalid
	}
	review.Rating = input.Rating
	review.Comment = strings.TrimSpace(input.Comment)
	if input.Images != nil {
		review.Images = models.StringArray(input.Images)
	}
	review.UpdatedAt = time.Now()
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, upstream(err)
	}
	if _, err := s.RecomputeRating(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview 删除评价；asAdmin 为后台审核删除
func (s *ReviewService) DeleteReview(ctx context.Context, id, authorKey string, asAdmin bool) error {
	review, err := s.getReview(ctx, id)
	if err != nil {
		return err
	}
	if !asAdmin && !strings.EqualFold(review.AuthorKey, strings.TrimSpace(authorKey)) {
		return ErrReviewForbidden
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return upstream(err)
	}
	if asAdmin {
		logger.Infow("review_moderated_delete", "review_id", review.ID, "product_id", review.ProductID)
	}
	_, err = s.RecomputeRating(ctx, review.ProductID)
	return err
}

// ListProductReviews 商品评价列表
func (s *ReviewService) ListProductReviews(ctx context.Context, productID string, page, pageSize int) ([]models.Review, int64, error) {
	reviews, total, err := s.reviewRepo.ListByProduct(ctx, repository.ReviewListFilter{
		ProductID: strings.TrimSpace(productID),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, 0, upstream(err)
	}
	return reviews, total, nil
}

// RecomputeRating 按当前全部评分重算商品聚合值
func (s *ReviewService) RecomputeRating(ctx context.Context, productID string) (RatingSummary, error) {
	ratings, err := s.reviewRepo.ListRatings(ctx, productID)
	if err != nil {
		return RatingSummary{}, upstream(err)
	}
	summary := RatingSummary{Average: AverageRating(ratings), Count: len(ratings)}
	if err := s.productRepo.UpdateAggregateRating(ctx, productID, summary.Average, summary.Count); err != nil {
		return RatingSummary{}, upstream(err)
	}
	return summary, nil
}

// AverageRating 平均分，保留 1 位小数；无评分时为 0
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1).Float64()
	return avg
}

func (s *ReviewService) getReview(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, upstream(err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func validRating(rating int) bool {
	return rating >= constants.ReviewRatingMin && rating <= constants.ReviewRatingMax
}
