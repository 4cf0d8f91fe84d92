package service

import (
	"context"
	"errors"
	"time"

	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/line"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"github.com/tanawit/petnest-backend/pkg/redis"
	"github.com/tanawit/petnest-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrLineLoginFailed    = errors.New("LINE login failed")
)

type AuthService interface {
	LineLoginURL(state string) string
	// LoginWithLineCode runs the full callback flow: code exchange,
	// profile fetch, find-or-create, token issue.
	LoginWithLineCode(ctx context.Context, code string) (*model.User, *util.TokenPair, error)
	RegisterAdmin(email, password, displayName string) (*model.User, error)
	LoginAdmin(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	IssueTokens(user *model.User) (*util.TokenPair, error)
}

type authService struct {
	userRepo    repository.UserRepository
	userService UserService
	lineClient  *line.Client
	jwtCfg      config.JWTConfig
}

func NewAuthService(
	userRepo repository.UserRepository,
	userService UserService,
	lineClient *line.Client,
	jwtCfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		userService: userService,
		lineClient:  lineClient,
		jwtCfg:      jwtCfg,
	}
}

func (s *authService) LineLoginURL(state string) string {
	return s.lineClient.AuthorizeURL(state)
}

func (s *authService) LoginWithLineCode(ctx context.Context, code string) (*model.User, *util.TokenPair, error) {
	logger.Info("Handling LINE login callback")

	token, err := s.lineClient.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("LINE code exchange failed", err)
		return nil, nil, ErrLineLoginFailed
	}

	profile, err := s.lineClient.GetProfile(ctx, token.AccessToken)
	if err != nil {
		logger.Error("LINE profile fetch failed", err)
		return nil, nil, ErrLineLoginFailed
	}

	user, err := s.userService.FindOrCreateByLineID(profile.UserID, profile.DisplayName, profile.PictureURL)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("LINE login completed", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

func (s *authService) RegisterAdmin(email, password, displayName string) (*model.User, error) {
	logger.Info("Registering admin account", map[string]interface{}{
		"email": email,
	})

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        &email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) LoginAdmin(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.Role != model.RoleAdmin || !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Admin login rejected", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Logout blacklists the presented token for the remainder of its
// lifetime. Without Redis the logout degrades to a client-side discard.
func (s *authService) Logout(ctx context.Context, token string) error {
	if redis.GetClient() == nil {
		logger.Warn("Logout without Redis, token stays valid until expiry")
		return nil
	}

	expiry := s.jwtCfg.TokenExpiry
	if claims, err := util.ValidateToken(token, s.jwtCfg.Secret); err == nil && claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			expiry = remaining
		}
	}

	return redis.BlacklistToken(ctx, token, expiry)
}

func (s *authService) IssueTokens(user *model.User) (*util.TokenPair, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return util.GenerateTokenPair(
		user.ID,
		email,
		string(user.Role),
		s.jwtCfg.Secret,
		s.jwtCfg.TokenExpiry,
		s.jwtCfg.TokenExpiry*4,
	)
}
