package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressRequest struct {
	Label     string `json:"label"`
	Name      string `json:"name" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Phone     string `json:"phone" binding:"required,len=10,numeric"`
	Address   string `json:"address" binding:"required"`
	ZipCode   string `json:"zip_code" binding:"required"`
	Province  string `json:"province" binding:"required"`
	District  string `json:"district" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	Label     string `json:"label"`
	Name      string `json:"name"`
	Lastname  string `json:"lastname"`
	Phone     string `json:"phone" binding:"omitempty,len=10,numeric"`
	Address   string `json:"address"`
	ZipCode   string `json:"zip_code"`
	Province  string `json:"province"`
	District  string `json:"district"`
	IsDefault bool   `json:"is_default"`
}

// GetAddresses lists the user's addresses, default first
// GET /api/v1/addresses
func (ctrl *AddressController) GetAddresses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addresses, err := ctrl.addressService.GetByUserID(userID)
	if err != nil {
		log.Error("Failed to fetch addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addresses": addresses,
		"count":     len(addresses),
	})
}

// CreateAddress adds an address
// POST /api/v1/addresses
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid address payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.Create(userID, service.AddressInput{
		Label:     req.Label,
		Name:      req.Name,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		Address:   req.Address,
		ZipCode:   req.ZipCode,
		Province:  req.Province,
		District:  req.District,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhone) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Phone must be exactly 10 digits")
			return
		}
		log.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"address": address,
	})
}

// UpdateAddress modifies an address owned by the user
// PUT /api/v1/addresses/:id
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid address data")
		return
	}

	address, err := ctrl.addressService.Update(userID, addressID, service.AddressInput{
		Label:     req.Label,
		Name:      req.Name,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		Address:   req.Address,
		ZipCode:   req.ZipCode,
		Province:  req.Province,
		District:  req.District,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		ctrl.respondAddressError(c, err, userID, addressID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address,
	})
}

// DeleteAddress removes an address owned by the user
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.addressService.Delete(userID, addressID); err != nil {
		ctrl.respondAddressError(c, err, userID, addressID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted",
	})
}

func (ctrl *AddressController) respondAddressError(c *gin.Context, err error, userID, addressID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
	case errors.Is(err, service.ErrAddressAccessDenied):
		apperrors.Forbidden(c, "Address belongs to another user")
	case errors.Is(err, service.ErrInvalidPhone):
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Phone must be exactly 10 digits")
	default:
		log.Error("Address operation failed", err, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		apperrors.InternalError(c, "Address operation failed")
	}
}
