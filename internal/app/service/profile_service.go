package service

import (
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/pkg/logger"
)

type ProfileService interface {
	GetProfile(userID uint) (*model.Profile, error)
	UpdateProfile(userID uint, phone, address, avatarURL string) (*model.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile returns the user's profile, creating an empty one when the
// registration-time provisioning did not run.
func (s *profileService) GetProfile(userID uint) (*model.Profile, error) {
	logger.Debug("Fetching user profile", map[string]interface{}{
		"user_id": userID,
	})

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		logger.Error("Failed to fetch user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("User profile fetched successfully", map[string]interface{}{
		"user_id":    userID,
		"profile_id": profile.ID,
	})
	return profile, nil
}

func (s *profileService) UpdateProfile(userID uint, phone, address, avatarURL string) (*model.Profile, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	profile, err := s.profileRepo.GetOrCreate(userID)
	if err != nil {
		logger.Error("Failed to fetch profile for update", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// Update fields if provided
	updated := false
	if phone != "" && phone != profile.Phone {
		profile.Phone = phone
		updated = true
	}
	if address != "" && address != profile.Address {
		profile.Address = address
		updated = true
	}
	if avatarURL != "" && avatarURL != profile.AvatarURL {
		profile.AvatarURL = avatarURL
		updated = true
	}

	if !updated {
		logger.Debug("No changes detected for user profile", map[string]interface{}{
			"user_id": userID,
		})
		return profile, nil
	}

	if err := s.profileRepo.Update(profile); err != nil {
		logger.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User profile updated successfully", map[string]interface{}{
		"user_id":    userID,
		"profile_id": profile.ID,
	})

	return profile, nil
}
