package line

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid LINE client configuration")

	// ErrTokenExchange is returned when the authorization code exchange fails
	ErrTokenExchange = errors.New("failed to exchange authorization code")

	// ErrProfileFetch is returned when the profile request fails
	ErrProfileFetch = errors.New("failed to fetch LINE profile")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")
)
