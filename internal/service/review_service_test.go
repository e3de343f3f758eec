package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReviewService(t *testing.T) (*ReviewService, *repository.GormProductRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	products := repository.NewProductRepository(db)
	now := time.Now()
	require.NoError(t, products.Create(context.Background(), &models.Product{
		ID:        "p1",
		Name:      "Lamp",
		Category:  "lighting",
		Price:     models.MustMoney("10"),
		Stock:     3,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return NewReviewService(repository.NewReviewRepository(db), products), products
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]int{4}))
	assert.Equal(t, 4.5, AverageRating([]int{5, 4}))
	assert.Equal(t, 3.7, AverageRating([]int{5, 4, 2}))
}

func TestAddReviewUpdatesAggregate(t *testing.T) {
	svc, products := newTestReviewService(t)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "ada@example.com", AuthorName: "Ada", Rating: 5})
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "bola@example.com", AuthorName: "Bola", Rating: 4})
	require.NoError(t, err)

	product, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, product.AverageRating)
	assert.Equal(t, 2, product.ReviewCount)
}

func TestAddReviewRejectsDuplicateAuthor(t *testing.T) {
	svc, products := newTestReviewService(t)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "ada@example.com", Rating: 5})
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "ADA@example.com", Rating: 1})
	assert.ErrorIs(t, err, ErrReviewDuplicate)

	product, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, product.AverageRating)
	assert.Equal(t, 1, product.ReviewCount)
}

func TestAddReviewValidation(t *testing.T) {
	svc, _ := newTestReviewService(t)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "a", Rating: 0})
	assert.ErrorIs(t, err, ErrReviewRatingInvalid)
	_, err = svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "a", Rating: 6})
	assert.ErrorIs(t, err, ErrReviewRatingInvalid)
	_, err = svc.AddReview(ctx, ReviewInput{ProductID: "p1", Rating: 3})
	assert.ErrorIs(t, err, ErrReviewAuthorMissing)
	_, err = svc.AddReview(ctx, ReviewInput{ProductID: "nope", AuthorKey: "a", Rating: 3})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestEditAndDeleteReviewRecompute(t *testing.T) {
	svc, products := newTestReviewService(t)
	ctx := context.Background()

	review, err := svc.AddReview(ctx, ReviewInput{ProductID: "p1", AuthorKey: "ada@example.com", Rating: 2})
	require.NoError(t, err)

	_, err = svc.EditReview(ctx, review.ID, "eve@example.com", ReviewInput{Rating: 5})
	assert.ErrorIs(t, err, ErrReviewForbidden)

	edited, err := svc.EditReview(ctx, review.ID, "ada@example.com", ReviewInput{Rating: 4, Comment: "better now"})
	require.NoError(t, err)
	assert.Equal(t, 4, edited.Rating)

	product, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.AverageRating)

	assert.ErrorIs(t, svc.DeleteReview(ctx, review.ID, "eve@example.com", false), ErrReviewForbidden)
	require.NoError(t, svc.DeleteReview(ctx, review.ID, "", true))

	product, err = products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, product.AverageRating)
	assert.Equal(t, 0, product.ReviewCount)

	assert.ErrorIs(t, svc.DeleteReview(ctx, review.ID, "", true), ErrReviewNotFound)
}
