package repository

import (
	"errors"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	GetOrCreate(userID uint) (*model.Wishlist, error)
	FindByUserID(userID uint) (*model.Wishlist, error)
	AddItem(wishlistID, productID uint) (bool, error)
	RemoveItem(wishlistID, productID uint) (bool, error)
	HasItem(wishlistID, productID uint) (bool, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) GetOrCreate(userID uint) (*model.Wishlist, error) {
	logger.Debug("Getting or creating wishlist in database", map[string]interface{}{
		"user_id": userID,
	})

	var wishlist model.Wishlist
	err := r.db.Where(model.Wishlist{UserID: userID}).FirstOrCreate(&wishlist).Error
	if err != nil {
		// A concurrent create may win the race on the user_id unique
		// index; the existing row is the correct result.
		if isUniqueViolation(err) {
			if ferr := r.db.Where("user_id = ?", userID).First(&wishlist).Error; ferr == nil {
				return &wishlist, nil
			}
		}
		logger.Error("Failed to get or create wishlist in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishlist ready in database", map[string]interface{}{
		"wishlist_id": wishlist.ID,
		"user_id":     userID,
	})
	return &wishlist, nil
}

func (r *wishlistRepository) FindByUserID(userID uint) (*model.Wishlist, error) {
	logger.Debug("Finding wishlist by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var wishlist model.Wishlist
	err := r.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("wishlist_items.created_at DESC")
		}).
		Preload("Items.Product").
		First(&wishlist).Error
	if err != nil {
		logger.Error("Failed to find wishlist by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishlist found by user ID in database", map[string]interface{}{
		"wishlist_id": wishlist.ID,
		"user_id":     userID,
		"count":       len(wishlist.Items),
	})
	return &wishlist, nil
}

// AddItem inserts the product into the wishlist. Returns false without error
// when the product was already present.
func (r *wishlistRepository) AddItem(wishlistID, productID uint) (bool, error) {
	logger.Debug("Adding wishlist item in database", map[string]interface{}{
		"wishlist_id": wishlistID,
		"product_id":  productID,
	})

	item := model.WishlistItem{
		WishlistID: wishlistID,
		ProductID:  productID,
	}
	if err := r.db.Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			logger.Debug("Wishlist item already present in database", map[string]interface{}{
				"wishlist_id": wishlistID,
				"product_id":  productID,
			})
			return false, nil
		}
		logger.Error("Failed to add wishlist item in database", err, map[string]interface{}{
			"wishlist_id": wishlistID,
			"product_id":  productID,
		})
		return false, err
	}

	logger.Debug("Wishlist item added in database", map[string]interface{}{
		"wishlist_item_id": item.ID,
		"wishlist_id":      wishlistID,
		"product_id":       productID,
	})
	return true, nil
}

// RemoveItem deletes the product from the wishlist. Returns false without
// error when the product was not present.
func (r *wishlistRepository) RemoveItem(wishlistID, productID uint) (bool, error) {
	logger.Debug("Removing wishlist item from database", map[string]interface{}{
		"wishlist_id": wishlistID,
		"product_id":  productID,
	})

	result := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{})
	if result.Error != nil {
		logger.Error("Failed to remove wishlist item from database", result.Error, map[string]interface{}{
			"wishlist_id": wishlistID,
			"product_id":  productID,
		})
		return false, result.Error
	}

	logger.Debug("Wishlist item removal completed in database", map[string]interface{}{
		"wishlist_id": wishlistID,
		"product_id":  productID,
		"removed":     result.RowsAffected > 0,
	})
	return result.RowsAffected > 0, nil
}

func (r *wishlistRepository) HasItem(wishlistID, productID uint) (bool, error) {
	var item model.WishlistItem
	err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		logger.Error("Failed to check wishlist item in database", err, map[string]interface{}{
			"wishlist_id": wishlistID,
			"product_id":  productID,
		})
		return false, err
	}
	return true, nil
}
