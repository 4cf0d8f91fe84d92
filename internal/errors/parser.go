package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries the parsed code and message for an error.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw database or network error into a stable
// code and a user-facing message. Sensitive driver detail stays out of
// the response; the raw error still goes to the log at the call site.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: context + " not found",
		}
	}

	// PostgreSQL constraint violations surface as driver error strings.
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: context + " already exists",
		}
	}
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidID,
			Message: "Referenced " + context + " does not exist",
		}
	}
	if strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Missing required field for " + context,
		}
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred",
	}
}

func notFoundCode(context string) string {
	switch context {
	case "product":
		return ProductNotFound
	case "order":
		return OrderNotFound
	case "address":
		return AddressNotFound
	case "review":
		return ReviewNotFound
	case "user":
		return UserNotFound
	case "favorite":
		return FavoriteNotFound
	case "cart item":
		return CartItemNotFound
	default:
		return InternalServerError
	}
}
