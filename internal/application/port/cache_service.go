package port

import (
	"context"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// SetRequest is the upsert payload sent to the cache service.
type SetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	// Expiration is the time-to-live in seconds.
	Expiration int64 `json:"expiration"`
}

// LookupResponse is the single-key lookup contract of the cache service.
type LookupResponse struct {
	Found bool   `json:"found"`
	Value string `json:"value,omitempty"`
}

// CacheService is the remote LRU cache the console inspects and mutates.
// Implementations report transport and non-success statuses as errors.
type CacheService interface {
	// GetAll returns every entry in service order. A nil slice means no entries.
	GetAll(ctx context.Context) ([]entity.CacheEntry, error)

	// Get looks up a single key.
	Get(ctx context.Context, key string) (LookupResponse, error)

	// Set inserts or overwrites a key.
	Set(ctx context.Context, req SetRequest) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error
}
