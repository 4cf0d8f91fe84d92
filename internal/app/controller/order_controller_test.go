package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/app/service"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Order) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewProductOptionRepository(testDB)

	productService := service.NewProductService(productRepo, optionRepo)
	orderService := service.NewOrderService(orderRepo, productService, nil)
	orderController := NewOrderController(orderService)

	lineID := "U1234567890"
	user := &model.User{
		LineID:      &lineID,
		DisplayName: "Test User",
		Role:        model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Salmon Dog Treats",
		Category: "food",
		Status:   true,
		Options:  []model.ProductOption{{Size: "S", Price: 100, Stock: 5}},
	}
	testDB.Create(product)

	order := &model.Order{
		OrderCode:     "ORD00001",
		UserID:        user.ID,
		AddressID:     1,
		Subtotal:      200,
		Shipping:      20,
		TotalPrice:    220,
		TotalQuantity: 2,
		Status:        model.OrderStatusPending,
		OrderDate:     time.Now(),
		Items: []model.OrderItem{
			{ProductID: product.ID, Size: "S", Quantity: 2, Price: 100},
		},
	}
	testDB.Create(order)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user, order
}

func asAdmin(c *gin.Context) {
	c.Set("user_id", uint(999))
	c.Set("user_role", model.RoleAdmin)
}

func TestOrderController_GetOrder_Owner(t *testing.T) {
	controller, router, _, user, order := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user_role", model.RoleUser)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, order.OrderCode, response.Order.OrderCode)
}

func TestOrderController_GetOrder_OtherUserForbidden(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		c.Set("user_id", user.ID+1)
		c.Set("user_role", model.RoleUser)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderController_GetOrder_AdminSeesAll(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_GetOrder_InvalidID(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.GET("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetOrderByCode(t *testing.T) {
	controller, router, _, user, order := setupOrderControllerTest(t)

	router.GET("/orders/code/:code", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Set("user_role", model.RoleUser)
		controller.GetOrderByCode(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/code/"+order.OrderCode, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderController_UpdateOrder_Status(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.UpdateOrder(c)
	})

	body := []byte(`{"status":"Delivered"}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, model.OrderStatusDelivered, response.Order.Status)
}

func TestOrderController_UpdateOrder_InvalidStatus(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.UpdateOrder(c)
	})

	body := []byte(`{"status":"Teleported"}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_STATUS_INVALID", response["error"])
}

func TestOrderController_UpdateOrder_CancelledIsTerminal(t *testing.T) {
	controller, router, testDB, _, order := setupOrderControllerTest(t)

	testDB.Model(order).Update("status", model.OrderStatusCancelled)

	router.PUT("/orders/:id", func(c *gin.Context) {
		asAdmin(c)
		controller.UpdateOrder(c)
	})

	body := []byte(`{"status":"Pending"}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ORDER_CANCELLED", response["error"])
}

func TestOrderController_SetTracking(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id/tracking", func(c *gin.Context) {
		asAdmin(c)
		controller.SetTracking(c)
	})

	body, _ := json.Marshal(TrackingRequest{TrackingNumber: "TH123456789"})
	req := httptest.NewRequest(http.MethodPut, "/orders/1/tracking", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "TH123456789", response.Order.TrackingNumber)
	assert.Equal(t, model.OrderStatusShipped, response.Order.Status)
}

func TestOrderController_SetTracking_MissingNumber(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.PUT("/orders/:id/tracking", func(c *gin.Context) {
		asAdmin(c)
		controller.SetTracking(c)
	})

	req := httptest.NewRequest(http.MethodPut, "/orders/1/tracking", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_GetMyOrders(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.GET("/orders/me", func(c *gin.Context) {
		c.Set("user_id", user.ID)
		controller.GetMyOrders(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}
