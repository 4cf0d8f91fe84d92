package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) (*gorm.DB, UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewUserRepository(testDB)
}

func TestUserRepository_Create(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	lineID := "U1234567890"
	user := &model.User{
		LineID:      &lineID,
		DisplayName: "Line Customer",
		Role:        model.RoleUser,
	}

	err := repo.Create(user)
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUserRepository_Create_DuplicateLineID(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	lineID := "U1234567890"
	require.NoError(t, repo.Create(&model.User{LineID: &lineID, DisplayName: "First", Role: model.RoleUser}))

	dup := lineID
	err := repo.Create(&model.User{LineID: &dup, DisplayName: "Second", Role: model.RoleUser})
	assert.Error(t, err)
}

func TestUserRepository_FindByLineID(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	lineID := "U1234567890"
	user := &model.User{LineID: &lineID, DisplayName: "Line Customer", Role: model.RoleUser}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByLineID(lineID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByLineID("UNOSUCHUSER")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	email := "admin@example.com"
	admin := &model.User{
		Email:        &email,
		PasswordHash: "hash",
		DisplayName:  "Admin",
		Role:         model.RoleAdmin,
	}
	require.NoError(t, repo.Create(admin))

	found, err := repo.FindByEmail(email)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, found.Role)

	_, err = repo.FindByEmail("missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	testDB, repo := setupUserTest(t)
	defer db.CleanupTestDB(testDB)

	lineID := "U1234567890"
	user := &model.User{LineID: &lineID, DisplayName: "Old Name", Role: model.RoleUser}
	require.NoError(t, repo.Create(user))

	user.DisplayName = "New Name"
	user.PictureURL = "https://example.com/pic.png"
	err := repo.Update(user)
	assert.NoError(t, err)

	updated, _ := repo.FindByID(user.ID)
	assert.Equal(t, "New Name", updated.DisplayName)
	assert.Equal(t, "https://example.com/pic.png", updated.PictureURL)
}
