package repository

import (
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(seller *model.Seller) error
	FindByID(id uint) (*model.Seller, error)
	FindByUserID(userID uint) (*model.Seller, error)
	Update(seller *model.Seller) error
}

type sellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{db: db}
}

func (r *sellerRepository) Create(seller *model.Seller) error {
	logger.Debug("Creating seller in database", map[string]interface{}{
		"user_id":   seller.UserID,
		"shop_name": seller.ShopName,
	})

	if err := r.db.Create(seller).Error; err != nil {
		logger.Error("Failed to create seller in database", err, map[string]interface{}{
			"user_id":   seller.UserID,
			"shop_name": seller.ShopName,
		})
		return err
	}

	logger.Debug("Seller created in database", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   seller.UserID,
	})
	return nil
}

func (r *sellerRepository) FindByID(id uint) (*model.Seller, error) {
	logger.Debug("Finding seller by ID in database", map[string]interface{}{
		"seller_id": id,
	})

	var seller model.Seller
	err := r.db.First(&seller, id).Error
	if err != nil {
		logger.Error("Failed to find seller by ID in database", err, map[string]interface{}{
			"seller_id": id,
		})
		return nil, err
	}

	logger.Debug("Seller found by ID in database", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   seller.UserID,
	})
	return &seller, nil
}

func (r *sellerRepository) FindByUserID(userID uint) (*model.Seller, error) {
	logger.Debug("Finding seller by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var seller model.Seller
	err := r.db.Where("user_id = ?", userID).First(&seller).Error
	if err != nil {
		logger.Error("Failed to find seller by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Seller found by user ID in database", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   userID,
	})
	return &seller, nil
}

func (r *sellerRepository) Update(seller *model.Seller) error {
	logger.Debug("Updating seller in database", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   seller.UserID,
	})

	if err := r.db.Save(seller).Error; err != nil {
		logger.Error("Failed to update seller in database", err, map[string]interface{}{
			"seller_id": seller.ID,
			"user_id":   seller.UserID,
		})
		return err
	}

	logger.Debug("Seller updated in database", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   seller.UserID,
	})
	return nil
}
