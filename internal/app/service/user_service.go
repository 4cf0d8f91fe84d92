package service

import (
	"errors"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	GetByID(id uint) (*model.User, error)
	// FindOrCreateByLineID resolves a LINE login to a local user,
	// refreshing the profile fields when they changed upstream.
	FindOrCreateByLineID(lineID, displayName, pictureURL string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) FindOrCreateByLineID(lineID, displayName, pictureURL string) (*model.User, error) {
	user, err := s.userRepo.FindByLineID(lineID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		logger.Info("Creating user from LINE profile", map[string]interface{}{
			"display_name": displayName,
		})
		user = &model.User{
			LineID:      &lineID,
			DisplayName: displayName,
			PictureURL:  pictureURL,
			Role:        model.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}

	if user.DisplayName != displayName || user.PictureURL != pictureURL {
		logger.Debug("Refreshing user profile from LINE", map[string]interface{}{
			"user_id": user.ID,
		})
		user.DisplayName = displayName
		user.PictureURL = pictureURL
		if err := s.userRepo.Update(user); err != nil {
			// Login still succeeds with the stale profile.
			logger.Error("Failed to refresh user profile", err, map[string]interface{}{
				"user_id": user.ID,
			})
		}
	}

	return user, nil
}
