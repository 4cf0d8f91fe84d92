package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByUserID(userID uint) ([]model.Address, error)
	FindByID(id uint) (*model.Address, error)
	Update(address *model.Address) error
	ClearDefault(userID, exceptID uint) error
	Delete(id uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	logger.Debug("Creating address in database", map[string]interface{}{
		"user_id": address.UserID,
		"label":   address.Label,
	})

	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}

	return nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.Address, error) {
	logger.Debug("Finding addresses by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var addresses []model.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	logger.Debug("Updating address in database", map[string]interface{}{
		"address_id": address.ID,
	})

	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
		})
		return err
	}

	return nil
}

// ClearDefault unsets is_default on every address of the user except
// the given one. Keeps the single-default invariant.
func (r *addressRepository) ClearDefault(userID, exceptID uint) error {
	logger.Debug("Clearing default flag on other addresses in database", map[string]interface{}{
		"user_id":   userID,
		"except_id": exceptID,
	})

	err := r.db.Model(&model.Address{}).
		Where("user_id = ? AND id <> ?", userID, exceptID).
		Update("is_default", false).Error
	if err != nil {
		logger.Error("Failed to clear default flag on addresses in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	return nil
}

func (r *addressRepository) Delete(id uint) error {
	logger.Debug("Deleting address from database", map[string]interface{}{
		"address_id": id,
	})

	if err := r.db.Delete(&model.Address{}, id).Error; err != nil {
		logger.Error("Failed to delete address from database", err, map[string]interface{}{
			"address_id": id,
		})
		return err
	}

	return nil
}
