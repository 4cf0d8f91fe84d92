package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthStateMismatch      = "AUTH_STATE_MISMATCH"
	AuthLineFailed         = "AUTH_LINE_FAILED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Product (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductOptionMissing = "PRODUCT_OPTION_MISSING"
	ProductDuplicateSize = "PRODUCT_DUPLICATE_SIZE"
	ProductOutOfStock    = "PRODUCT_OUT_OF_STOCK"

	// ==================== Cart (CART_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// ==================== Order (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"
	OrderCancelled      = "ORDER_CANCELLED"
	OrderStatusInvalid  = "ORDER_STATUS_INVALID"
	OrderStockShortfall = "ORDER_STOCK_SHORTFALL"

	// ==================== Favorite (FAVORITE_) ====================
	FavoriteNotFound = "FAVORITE_NOT_FOUND"

	// ==================== Address (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND"

	// ==================== Review (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS"

	// ==================== User (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
