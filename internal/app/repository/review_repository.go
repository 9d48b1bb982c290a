package repository

import (
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByProductID(productID uint) ([]model.Review, error)
	FindByUserAndProduct(userID, productID uint) (*model.Review, error)
	Update(review *model.Review) error
	Delete(id uint) error
	AverageRating(productID uint) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":    review.UserID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":    review.UserID,
			"product_id": review.ProductID,
			"rating":     review.Rating,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    review.UserID,
		"product_id": review.ProductID,
	})
	return nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	logger.Debug("Finding review by ID in database", map[string]interface{}{
		"review_id": id,
	})

	var review model.Review
	err := r.db.Preload("User").First(&review, id).Error
	if err != nil {
		logger.Error("Failed to find review by ID in database", err, map[string]interface{}{
			"review_id": id,
		})
		return nil, err
	}

	logger.Debug("Review found by ID in database", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    review.UserID,
		"product_id": review.ProductID,
	})
	return &review, nil
}

func (r *reviewRepository) FindByProductID(productID uint) ([]model.Review, error) {
	logger.Debug("Finding reviews by product ID in database", map[string]interface{}{
		"product_id": productID,
	})

	var reviews []model.Review
	err := r.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by product ID in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Reviews found by product ID in database", map[string]interface{}{
		"product_id": productID,
		"count":      len(reviews),
	})
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndProduct(userID, productID uint) (*model.Review, error) {
	logger.Debug("Finding review by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	var review model.Review
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if err != nil {
		logger.Error("Failed to find review by user and product in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Review found by user and product in database", map[string]interface{}{
		"review_id":  review.ID,
		"user_id":    userID,
		"product_id": productID,
	})
	return &review, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
		"rating":    review.Rating,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}

	logger.Debug("Review updated in database", map[string]interface{}{
		"review_id": review.ID,
		"rating":    review.Rating,
	})
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}

	logger.Debug("Review deleted from database", map[string]interface{}{
		"review_id": id,
	})
	return nil
}

func (r *reviewRepository) AverageRating(productID uint) (float64, error) {
	logger.Debug("Calculating average rating in database", map[string]interface{}{
		"product_id": productID,
	})

	var result struct {
		Average float64
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("product_id = ?", productID).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to calculate average rating in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, err
	}

	logger.Debug("Average rating calculated in database", map[string]interface{}{
		"product_id": productID,
		"average":    result.Average,
	})
	return result.Average, nil
}
