package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/db"
	"github.com/tanawit/petnest-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) (AuthService, UserService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	userService := NewUserService(userRepo)
	authService := NewAuthService(userRepo, userService, nil, config.JWTConfig{
		Secret:      "test-secret",
		TokenExpiry: time.Hour,
	})
	return authService, userService
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.RegisterAdmin("admin@example.com", "password123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	require.NotNil(t, user.Email)
	assert.Equal(t, "admin@example.com", *user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_RegisterAdmin_DuplicateEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.RegisterAdmin("admin@example.com", "password123", "Admin")
	require.NoError(t, err)

	_, err = authService.RegisterAdmin("admin@example.com", "different", "Other")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.RegisterAdmin("admin@example.com", "password123", "Admin")
	require.NoError(t, err)

	user, tokens, err := authService.LoginAdmin("admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_LoginAdmin_WrongPassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.RegisterAdmin("admin@example.com", "password123", "Admin")
	require.NoError(t, err)

	_, _, err = authService.LoginAdmin("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginAdmin_UnknownEmail(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, _, err := authService.LoginAdmin("missing@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginAdmin_RejectsCustomerAccount(t *testing.T) {
	authService, userService := setupAuthServiceTest(t)

	// LINE customers have no password and must not pass the admin login
	user, err := userService.FindOrCreateByLineID("U1234567890", "Customer", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)

	_, _, err = authService.LoginAdmin("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_FindOrCreateByLineID(t *testing.T) {
	_, userService := setupAuthServiceTest(t)

	created, err := userService.FindOrCreateByLineID("U1234567890", "Customer", "https://example.com/a.png")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Second login with a changed profile reuses the row and refreshes it
	again, err := userService.FindOrCreateByLineID("U1234567890", "Renamed", "https://example.com/b.png")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Renamed", again.DisplayName)
	assert.Equal(t, "https://example.com/b.png", again.PictureURL)
}
