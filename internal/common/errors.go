package common

import "errors"

var (
	// ErrTokenExpired is the status message the backend uses for an expired
	// access token; the gRPC interceptor refreshes on it.
	ErrTokenExpired = errors.New("token expired")

	ErrInvalidToken = errors.New("invalid token")
)
