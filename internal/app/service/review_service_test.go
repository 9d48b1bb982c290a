package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/db"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (ReviewService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reviewRepo := repository.NewReviewRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	reviewService := NewReviewService(reviewRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Test Product",
		Price:    decimal.NewFromFloat(20.00),
		Category: model.CategoryMen,
	}
	testDB.Create(product)

	return reviewService, user, product, testDB
}

func TestReviewService_AddReview_Success(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	review, err := reviewService.AddReview(user.ID, product.ID, 4, "Good fit")
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_AddReview_InvalidRating(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	_, err := reviewService.AddReview(user.ID, product.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = reviewService.AddReview(user.ID, product.ID, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviewService_AddReview_ProductNotFound(t *testing.T) {
	reviewService, user, _, _ := setupReviewServiceTest(t)

	_, err := reviewService.AddReview(user.ID, 9999, 5, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReviewService_AddReview_RefreshesReviewScore(t *testing.T) {
	reviewService, user, product, testDB := setupReviewServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err := reviewService.AddReview(user.ID, product.ID, 5, "")
	require.NoError(t, err)
	_, err = reviewService.AddReview(other.ID, product.ID, 3, "")
	require.NoError(t, err)

	var updated model.Product
	require.NoError(t, testDB.First(&updated, product.ID).Error)
	assert.Equal(t, 4.0, updated.ReviewScore)
}

func TestReviewService_GetProductReviews(t *testing.T) {
	reviewService, user, product, _ := setupReviewServiceTest(t)

	_, err := reviewService.AddReview(user.ID, product.ID, 5, "Excellent")
	require.NoError(t, err)

	reviews, err := reviewService.GetProductReviews(product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Excellent", reviews[0].Comment)
}

func TestReviewService_DeleteReview_OtherUsersReviewLooksMissing(t *testing.T) {
	reviewService, user, product, testDB := setupReviewServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	review, err := reviewService.AddReview(user.ID, product.ID, 5, "")
	require.NoError(t, err)

	err = reviewService.DeleteReview(other.ID, review.ID)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	err = reviewService.DeleteReview(user.ID, review.ID)
	assert.NoError(t, err)
}
