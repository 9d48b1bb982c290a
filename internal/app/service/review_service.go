package service

import (
	"errors"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewService interface {
	AddReview(userID, productID uint, rating int, comment string) (*model.Review, error)
	GetProductReviews(productID uint) ([]model.Review, error)
	DeleteReview(userID, reviewID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// AddReview records a rating for the product and refreshes the product's
// aggregate review score.
func (s *reviewService) AddReview(userID, productID uint, rating int, comment string) (*model.Review, error) {
	logger.Info("Adding review", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"rating":     rating,
	})

	if rating < 1 || rating > 5 {
		logger.Warn("Review rejected: invalid rating", map[string]interface{}{
			"user_id": userID,
			"rating":  rating,
		})
		return nil, ErrInvalidRating
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add review: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for review", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if err := s.refreshReviewScore(productID); err != nil {
		logger.Warn("Failed to refresh product review score", map[string]interface{}{
			"product_id": productID,
			"error":      err.Error(),
		})
	}

	logger.Info("Review added successfully", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": productID,
	})
	return review, nil
}

func (s *reviewService) GetProductReviews(productID uint) ([]model.Review, error) {
	logger.Debug("Fetching product reviews", map[string]interface{}{
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot fetch reviews: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(productID)
	if err != nil {
		logger.Error("Failed to fetch product reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Product reviews fetched successfully", map[string]interface{}{
		"product_id": productID,
		"count":      len(reviews),
	})
	return reviews, nil
}

func (s *reviewService) DeleteReview(userID, reviewID uint) error {
	logger.Info("Deleting review", map[string]interface{}{
		"user_id":   userID,
		"review_id": reviewID,
	})

	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Review not found for deletion", map[string]interface{}{
				"review_id": reviewID,
			})
			return ErrReviewNotFound
		}
		logger.Error("Failed to fetch review for deletion", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	// Another user's review is indistinguishable from a missing one
	if review.UserID != userID {
		logger.Warn("Review deletion denied: ownership mismatch", map[string]interface{}{
			"user_id":   userID,
			"review_id": reviewID,
			"owner_id":  review.UserID,
		})
		return ErrReviewNotFound
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	if err := s.refreshReviewScore(review.ProductID); err != nil {
		logger.Warn("Failed to refresh product review score", map[string]interface{}{
			"product_id": review.ProductID,
			"error":      err.Error(),
		})
	}

	logger.Info("Review deleted successfully", map[string]interface{}{
		"review_id": reviewID,
	})
	return nil
}

func (s *reviewService) refreshReviewScore(productID uint) error {
	average, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateReviewScore(productID, average)
}
