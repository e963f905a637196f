// Package cache provides a small cache abstraction with in-memory and Redis
// implementations, used to keep hot community aggregates (member counts,
// top-level listings) off the database.
package cache

import "time"

// Cache defines the contract for cache implementations. Values are stored as
// JSON so typed results round-trip through either backend.
type Cache interface {
	// Set stores a value under the given key for the given duration
	Set(key string, value interface{}, duration time.Duration)

	// Get unmarshals the value stored under key into dest, reporting whether
	// a usable entry was found
	Get(key string, dest interface{}) bool

	// Delete removes a value by key
	Delete(key string)

	// Close closes any underlying connections
	Close() error
}
