package service

import (
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
)

// ProvisionService creates the per-user rows every account needs: a profile,
// a cart, and a wishlist. Each is guarded by a unique index on user_id, so
// calling it again (or concurrently) never produces a second row.
type ProvisionService interface {
	EnsureUserDefaults(userID uint) error
}

type provisionService struct {
	profileRepo  repository.ProfileRepository
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
}

func NewProvisionService(
	profileRepo repository.ProfileRepository,
	cartRepo repository.CartRepository,
	wishlistRepo repository.WishlistRepository,
) ProvisionService {
	return &provisionService{
		profileRepo:  profileRepo,
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
	}
}

func (s *provisionService) EnsureUserDefaults(userID uint) error {
	logger.Debug("Provisioning user defaults", map[string]interface{}{
		"user_id": userID,
	})

	if _, err := s.profileRepo.GetOrCreate(userID); err != nil {
		logger.Error("Failed to provision profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if _, err := s.cartRepo.GetOrCreate(userID); err != nil {
		logger.Error("Failed to provision cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if _, err := s.wishlistRepo.GetOrCreate(userID); err != nil {
		logger.Error("Failed to provision wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User defaults provisioned", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
