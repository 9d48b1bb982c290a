package service

import (
	"errors"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistService interface {
	GetUserWishlist(userID uint) (*model.Wishlist, error)
	AddToWishlist(userID, productID uint) (bool, error)
	RemoveFromWishlist(userID, productID uint) (bool, error)
	IsOnWishlist(userID, productID uint) (bool, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) (*model.Wishlist, error) {
	logger.Debug("Fetching user wishlist", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.wishlistRepo.GetOrCreate(userID); err != nil {
		logger.Error("Failed to ensure wishlist exists", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	wishlist, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User wishlist fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(wishlist.Items),
	})
	return wishlist, nil
}

// AddToWishlist saves the product for the user. The returned bool reports
// whether the product was newly added; re-adding is a quiet no-op.
func (s *wishlistService) AddToWishlist(userID, productID uint) (bool, error) {
	logger.Info("Adding product to wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to wishlist: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return false, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return false, err
	}

	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		logger.Error("Failed to get or create wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}

	added, err := s.wishlistRepo.AddItem(wishlist.ID, productID)
	if err != nil {
		logger.Error("Failed to add wishlist item", err, map[string]interface{}{
			"wishlist_id": wishlist.ID,
			"product_id":  productID,
		})
		return false, err
	}

	logger.Info("Wishlist add completed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"added":      added,
	})
	return added, nil
}

// IsOnWishlist reports whether the user has saved the product.
func (s *wishlistService) IsOnWishlist(userID, productID uint) (bool, error) {
	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		logger.Error("Failed to get or create wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}

	has, err := s.wishlistRepo.HasItem(wishlist.ID, productID)
	if err != nil {
		logger.Error("Failed to check wishlist item", err, map[string]interface{}{
			"wishlist_id": wishlist.ID,
			"product_id":  productID,
		})
		return false, err
	}
	return has, nil
}

// RemoveFromWishlist drops the product from the user's wishlist. Removing a
// product that is not saved is a quiet no-op reported by the bool.
func (s *wishlistService) RemoveFromWishlist(userID, productID uint) (bool, error) {
	logger.Info("Removing product from wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	wishlist, err := s.wishlistRepo.GetOrCreate(userID)
	if err != nil {
		logger.Error("Failed to get or create wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}

	removed, err := s.wishlistRepo.RemoveItem(wishlist.ID, productID)
	if err != nil {
		logger.Error("Failed to remove wishlist item", err, map[string]interface{}{
			"wishlist_id": wishlist.ID,
			"product_id":  productID,
		})
		return false, err
	}

	logger.Info("Wishlist remove completed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"removed":    removed,
	})
	return removed, nil
}
