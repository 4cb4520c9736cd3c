// Package gateway is the client's transport to the backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Gateway interface): session
//     lookup and change notification, email and Telegram sign-in/sign-up,
//     sign-out, profile fetch and remote procedure invocation.
//  2. RESTGateway, speaking the hosted backend's HTTP API (auth, row reads
//     and rpc endpoints).
//  3. GRPCGateway, calling generic unary methods of the miniapp.v1.Backend
//     service with structpb payloads. An interceptor injects the access
//     token and transparently refreshes it once when the server reports it
//     expired.
//
// Both transports keep the current session in a single slot (last write
// wins) and fan every change out to subscribers. Token material never
// leaves the package except through a SessionStore.
//
// # Error Handling
//
// Transport conditions are sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrConflict,
// ErrSignupsDisabled, ErrConfirmationRequired. A structured rejection
// returned by a remote procedure ({"success": false, "message": code}) is a
// *DomainError carrying the code.
package gateway
