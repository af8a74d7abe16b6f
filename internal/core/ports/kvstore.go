package ports

import "context"

// KVStore abstracts the durable string-keyed blob store the currency engine
// persists into. Implementations must return apperrors.ErrNotFound from Get
// when the key is absent; any other failure is a storage fault.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
