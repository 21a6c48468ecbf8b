package cache

import (
	"time"
)

// CacheService is the fetch block cache. Adapters set a key for a
// source when it answers with a rate-limit status and skip fetches
// while the key lives.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}
