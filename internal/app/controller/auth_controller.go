package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
	"github.com/tanawit/petnest-backend/pkg/util"
)

const stateCookieName = "line_oauth_state"

type AuthController struct {
	authService service.AuthService
	userService service.UserService
	lineCfg     config.LineConfig
}

func NewAuthController(
	authService service.AuthService,
	userService service.UserService,
	lineCfg config.LineConfig,
) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
		lineCfg:     lineCfg,
	}
}

type LineTokenRequest struct {
	Code string `json:"code" binding:"required"`
}

type AdminRegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LineLogin redirects the browser to the LINE authorization page
// GET /api/v1/auth/line
func (ctrl *AuthController) LineLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	state, err := util.GenerateRandomState(16)
	if err != nil {
		log.Error("Failed to generate OAuth state", err)
		apperrors.InternalError(c, "Failed to start LINE login")
		return
	}

	// Cookie binds the callback to this browser session
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, ctrl.authService.LineLoginURL(state))
}

// LineCallback completes the OAuth flow and redirects to the frontend
// with the issued token.
// GET /api/v1/auth/line/callback?code=&state=
func (ctrl *AuthController) LineCallback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	expectedState, err := c.Cookie(stateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		log.Warn("LINE callback state mismatch", map[string]interface{}{
			"has_cookie": err == nil,
		})
		apperrors.BadRequest(c, apperrors.AuthStateMismatch, "OAuth state mismatch")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing authorization code")
		return
	}

	_, tokens, err := ctrl.authService.LoginWithLineCode(c.Request.Context(), code)
	if err != nil {
		log.Error("LINE login failed", err)
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthLineFailed, "LINE login failed")
		return
	}

	redirect := fmt.Sprintf("%s/auth/callback?token=%s", strings.TrimRight(ctrl.lineCfg.FrontendURL, "/"), tokens.AccessToken)
	c.Redirect(http.StatusFound, redirect)
}

// LineToken is the JSON variant of the callback for SPA clients that
// received the code themselves.
// POST /api/v1/auth/line/token
func (ctrl *AuthController) LineToken(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LineTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing authorization code")
		return
	}

	user, tokens, err := ctrl.authService.LoginWithLineCode(c.Request.Context(), req.Code)
	if err != nil {
		log.Error("LINE token login failed", err)
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthLineFailed, "LINE login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Profile returns the authenticated user
// GET /api/v1/auth/profile
func (ctrl *AuthController) Profile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// Logout revokes the presented token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		log.Error("Logout failed", err)
		apperrors.InternalError(c, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}

// AdminRegister creates an admin account
// POST /api/v1/auth/admin/register
func (ctrl *AuthController) AdminRegister(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	user, err := ctrl.authService.RegisterAdmin(req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Email already registered")
			return
		}
		log.Error("Admin registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": user,
	})
}

// AdminLogin authenticates an admin account
// POST /api/v1/auth/admin/login
func (ctrl *AuthController) AdminLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid login data")
		return
	}

	user, tokens, err := ctrl.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Admin login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}
