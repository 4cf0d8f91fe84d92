package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error envelope for every failed request.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// RespondWithError writes the standard error envelope.
// statusCode: HTTP status code
// errorCode: an error code constant (see codes.go)
// message: human-readable message
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Status:    statusCode,
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}

// Shorthand helpers for the common responses.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal error occurred. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ParseAndRespond runs a raw error through ParseError and writes the
// envelope with a status matching the parsed code. Constraint
// violations read as conflicts, lookups as 404s, everything else as a
// server error.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)

	status := http.StatusInternalServerError
	switch info.Code {
	case ValidationInvalidInput:
		status = http.StatusConflict
	case ValidationInvalidID, ValidationRequired:
		status = http.StatusBadRequest
	case ProductNotFound, OrderNotFound, AddressNotFound, ReviewNotFound,
		UserNotFound, FavoriteNotFound, CartItemNotFound:
		status = http.StatusNotFound
	}

	RespondWithError(c, status, info.Code, info.Message)
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Status:    http.StatusBadRequest,
		Error:     ValidationInvalidInput,
		Message:   "Invalid input",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
		Fields:    fields,
	})
}
