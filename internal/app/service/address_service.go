package service

import (
	"errors"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAddressNotFound     = errors.New("address not found")
	ErrAddressAccessDenied = errors.New("address belongs to another user")
	ErrInvalidPhone        = errors.New("phone must be exactly 10 digits")
)

// AddressInput is the create/update payload.
type AddressInput struct {
	Label     string
	Name      string
	Lastname  string
	Phone     string
	Address   string
	ZipCode   string
	Province  string
	District  string
	IsDefault bool
}

type AddressService interface {
	Create(userID uint, input AddressInput) (*model.Address, error)
	GetByUserID(userID uint) ([]model.Address, error)
	Update(userID, addressID uint, input AddressInput) (*model.Address, error)
	Delete(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) Create(userID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Creating address", map[string]interface{}{
		"user_id": userID,
		"label":   input.Label,
	})

	if !validPhone(input.Phone) {
		return nil, ErrInvalidPhone
	}

	address := &model.Address{
		UserID:    userID,
		Label:     input.Label,
		Name:      input.Name,
		Lastname:  input.Lastname,
		Phone:     input.Phone,
		Address:   input.Address,
		ZipCode:   input.ZipCode,
		Province:  input.Province,
		District:  input.District,
		IsDefault: input.IsDefault,
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// A new default demotes every other address of the user.
	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID, address.ID); err != nil {
			return nil, err
		}
	}

	return address, nil
}

func (s *addressService) GetByUserID(userID uint) ([]model.Address, error) {
	return s.addressRepo.FindByUserID(userID)
}

func (s *addressService) Update(userID, addressID uint, input AddressInput) (*model.Address, error) {
	logger.Info("Updating address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	address, err := s.findOwned(userID, addressID)
	if err != nil {
		return nil, err
	}

	if input.Phone != "" && !validPhone(input.Phone) {
		return nil, ErrInvalidPhone
	}

	if input.Label != "" {
		address.Label = input.Label
	}
	if input.Name != "" {
		address.Name = input.Name
	}
	if input.Lastname != "" {
		address.Lastname = input.Lastname
	}
	if input.Phone != "" {
		address.Phone = input.Phone
	}
	if input.Address != "" {
		address.Address = input.Address
	}
	if input.ZipCode != "" {
		address.ZipCode = input.ZipCode
	}
	if input.Province != "" {
		address.Province = input.Province
	}
	if input.District != "" {
		address.District = input.District
	}
	address.IsDefault = input.IsDefault

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	if address.IsDefault {
		if err := s.addressRepo.ClearDefault(userID, address.ID); err != nil {
			return nil, err
		}
	}

	return address, nil
}

func (s *addressService) Delete(userID, addressID uint) error {
	logger.Info("Deleting address", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	if _, err := s.findOwned(userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Delete(addressID)
}

func (s *addressService) findOwned(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		logger.Warn("Address access denied", map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
			"owner_id":   address.UserID,
		})
		return nil, ErrAddressAccessDenied
	}
	return address, nil
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
