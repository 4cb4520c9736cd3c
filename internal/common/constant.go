// Package common contains constants and helpers shared by the gateway
// transports and the local store.
package common

const (
	// AccessTokenHeaderName carries the access token in gRPC metadata.
	AccessTokenHeaderName = "access_token"

	// APIKeyHeaderName carries the project API key on every backend request.
	APIKeyHeaderName = "apikey"

	// IdempotencyKeyHeaderName lets the backend drop a replayed domain action.
	IdempotencyKeyHeaderName = "idempotency-key"
)
