// Package metadata is the local key/value table that backs client
// preferences and the sealed session.
package metadata

import "context"

// Repository stores opaque values by key. Get returns nil, nil for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
}
