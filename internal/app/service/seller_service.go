package service

import (
	"errors"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSellerNotFound      = errors.New("seller not found")
	ErrSellerAlreadyExists = errors.New("seller profile already exists")
)

type SellerService interface {
	RegisterSeller(userID uint, shopName, shopAddress, contact string) (*model.Seller, error)
	GetSellerByUserID(userID uint) (*model.Seller, error)
	UpdateSeller(userID uint, shopName, shopAddress, contact string) (*model.Seller, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
	userRepo   repository.UserRepository
}

func NewSellerService(
	sellerRepo repository.SellerRepository,
	userRepo repository.UserRepository,
) SellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		userRepo:   userRepo,
	}
}

// RegisterSeller opens a shop for the user and upgrades their role. A user
// holds at most one seller profile.
func (s *sellerService) RegisterSeller(userID uint, shopName, shopAddress, contact string) (*model.Seller, error) {
	logger.Info("Registering seller", map[string]interface{}{
		"user_id":   userID,
		"shop_name": shopName,
	})

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Seller registration failed: user not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for seller registration", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	existing, err := s.sellerRepo.FindByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing seller", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Seller registration failed: profile already exists", map[string]interface{}{
			"user_id":   userID,
			"seller_id": existing.ID,
		})
		return nil, ErrSellerAlreadyExists
	}

	seller := &model.Seller{
		UserID:      userID,
		ShopName:    shopName,
		ShopAddress: shopAddress,
		Contact:     contact,
	}

	if err := s.sellerRepo.Create(seller); err != nil {
		logger.Error("Failed to create seller", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if user.Role == model.RoleUser {
		user.Role = model.RoleSeller
		if err := s.userRepo.Update(user); err != nil {
			logger.Error("Failed to upgrade user role to seller", err, map[string]interface{}{
				"user_id": userID,
			})
			return nil, err
		}
	}

	logger.Info("Seller registered successfully", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   userID,
		"shop_name": shopName,
	})
	return seller, nil
}

func (s *sellerService) GetSellerByUserID(userID uint) (*model.Seller, error) {
	logger.Debug("Fetching seller by user ID", map[string]interface{}{
		"user_id": userID,
	})

	seller, err := s.sellerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Seller not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrSellerNotFound
		}
		logger.Error("Failed to fetch seller", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Seller fetched successfully", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   userID,
	})
	return seller, nil
}

func (s *sellerService) UpdateSeller(userID uint, shopName, shopAddress, contact string) (*model.Seller, error) {
	logger.Info("Updating seller", map[string]interface{}{
		"user_id": userID,
	})

	seller, err := s.sellerRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Seller not found for update", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrSellerNotFound
		}
		logger.Error("Failed to fetch seller for update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Update fields if provided
	updated := false
	if shopName != "" && shopName != seller.ShopName {
		seller.ShopName = shopName
		updated = true
	}
	if shopAddress != "" && shopAddress != seller.ShopAddress {
		seller.ShopAddress = shopAddress
		updated = true
	}
	if contact != "" && contact != seller.Contact {
		seller.Contact = contact
		updated = true
	}

	if !updated {
		logger.Debug("No changes detected for seller", map[string]interface{}{
			"user_id": userID,
		})
		return seller, nil
	}

	if err := s.sellerRepo.Update(seller); err != nil {
		logger.Error("Failed to update seller", err, map[string]interface{}{
			"seller_id": seller.ID,
		})
		return nil, err
	}

	logger.Info("Seller updated successfully", map[string]interface{}{
		"seller_id": seller.ID,
		"user_id":   userID,
	})
	return seller, nil
}
