package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/db"
	"github.com/threadcart/threadcart-backend/pkg/util"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	profileRepo := repository.NewProfileRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	wishlistRepo := repository.NewWishlistRepository(testDB)
	provision := NewProvisionService(profileRepo, cartRepo, wishlistRepo)

	// The minimum bcrypt cost keeps the suite fast
	authService := NewAuthService(userRepo, provision, "test-secret", 15*time.Minute, 7*24*time.Hour, 4)

	return authService, testDB
}

func TestAuthService_Register_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, tokens, err := authService.Register("new@example.com", "password123", "New User")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// The stored hash must verify against the original password
	assert.True(t, util.VerifyPassword(user.PasswordHash, "password123"))
}

func TestAuthService_Register_ProvisionsDefaults(t *testing.T) {
	authService, testDB := setupAuthServiceTest(t)

	user, _, err := authService.Register("new@example.com", "password123", "New User")
	require.NoError(t, err)

	var profileCount, cartCount, wishlistCount int64
	testDB.Model(&model.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount)
	testDB.Model(&model.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	testDB.Model(&model.Wishlist{}).Where("user_id = ?", user.ID).Count(&wishlistCount)

	assert.Equal(t, int64(1), profileCount)
	assert.Equal(t, int64(1), cartCount)
	assert.Equal(t, int64(1), wishlistCount)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("dup@example.com", "password123", "First")
	require.NoError(t, err)

	_, _, err = authService.Register("dup@example.com", "password456", "Second")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User")
	require.NoError(t, err)

	user, tokens, err := authService.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User")
	require.NoError(t, err)

	_, _, err = authService.Login("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	// An unknown account and a bad password produce the same error
	_, _, err := authService.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	// Logout degrades to a no-op when Redis is not configured
	err := authService.Logout(context.Background(), "some-token")
	assert.NoError(t, err)
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	registered, _, err := authService.Register("get@example.com", "password123", "Get User")
	require.NoError(t, err)

	user, err := authService.GetUserByID(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)
	assert.NotNil(t, user.Profile)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
