package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/app/service"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupAddressControllerTest(t *testing.T) (*AddressController, *gin.Engine, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	addressRepo := repository.NewAddressRepository(testDB)
	addressService := service.NewAddressService(addressRepo)
	addressController := NewAddressController(addressService)

	lineID := "U1234567890"
	user := &model.User{
		LineID:      &lineID,
		DisplayName: "Test User",
		Role:        model.RoleUser,
	}
	testDB.Create(user)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return addressController, router, testDB, user
}

func createTestAddress(t *testing.T, testDB *gorm.DB, userID uint) *model.Address {
	t.Helper()

	address := &model.Address{
		UserID:    userID,
		Label:     "Home",
		Name:      "Somchai",
		Lastname:  "Jaidee",
		Phone:     "0812345678",
		Address:   "99/1 Sukhumvit Rd",
		ZipCode:   "10110",
		Province:  "Bangkok",
		District:  "Watthana",
		IsDefault: true,
	}
	require.NoError(t, testDB.Create(address).Error)
	return address
}

func TestAddressController_UpdateAddress_Success(t *testing.T) {
	controller, router, testDB, user := setupAddressControllerTest(t)
	address := createTestAddress(t, testDB, user.ID)

	router.PUT("/addresses/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateAddress(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"label": "Office",
		"phone": "0898765432",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/addresses/%d", address.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	updated := response["address"].(map[string]interface{})
	assert.Equal(t, "Office", updated["label"])
	assert.Equal(t, "0898765432", updated["phone"])
	assert.Equal(t, "Somchai", updated["name"])
}

func TestAddressController_UpdateAddress_WrongUser(t *testing.T) {
	controller, router, testDB, user := setupAddressControllerTest(t)
	address := createTestAddress(t, testDB, user.ID)

	router.PUT("/addresses/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID+1)
		controller.UpdateAddress(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"label": "Office",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/addresses/%d", address.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddressController_UpdateAddress_InvalidPhone(t *testing.T) {
	controller, router, testDB, user := setupAddressControllerTest(t)
	address := createTestAddress(t, testDB, user.ID)

	router.PUT("/addresses/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateAddress(c)
	})

	body, _ := json.Marshal(map[string]interface{}{
		"phone": "081-234-56",
	})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/addresses/%d", address.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
