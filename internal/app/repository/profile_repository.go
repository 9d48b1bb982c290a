package repository

import (
	"errors"
	"strings"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	GetOrCreate(userID uint) (*model.Profile, error)
	FindByUserID(userID uint) (*model.Profile, error)
	Update(profile *model.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// isUniqueViolation reports whether err is a unique constraint failure, for
// both postgres and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *profileRepository) GetOrCreate(userID uint) (*model.Profile, error) {
	logger.Debug("Getting or creating profile in database", map[string]interface{}{
		"user_id": userID,
	})

	var profile model.Profile
	err := r.db.Where(model.Profile{UserID: userID}).FirstOrCreate(&profile).Error
	if err != nil {
		// A concurrent create may win the race on the user_id unique
		// index; the existing row is the correct result.
		if isUniqueViolation(err) {
			if ferr := r.db.Where("user_id = ?", userID).First(&profile).Error; ferr == nil {
				return &profile, nil
			}
		}
		logger.Error("Failed to get or create profile in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Profile ready in database", map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    userID,
	})
	return &profile, nil
}

func (r *profileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	logger.Debug("Finding profile by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var profile model.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		logger.Error("Failed to find profile by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Profile found by user ID in database", map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    userID,
	})
	return &profile, nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	logger.Debug("Updating profile in database", map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
	})

	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update profile in database", err, map[string]interface{}{
			"profile_id": profile.ID,
			"user_id":    profile.UserID,
		})
		return err
	}

	logger.Debug("Profile updated in database", map[string]interface{}{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
	})
	return nil
}
