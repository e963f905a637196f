package cache

import (
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// Memory is the in-memory cache implementation backed by go-cache.
type Memory struct {
	cache *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory creates an in-memory cache with the given default expiration and
// cleanup interval.
func NewMemory(defaultExpiration, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (m *Memory) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Memory cache: failed to marshal value")
		return
	}
	m.cache.Set(key, data, duration)
}

func (m *Memory) Get(key string, dest interface{}) bool {
	value, found := m.cache.Get(key)
	if !found {
		return false
	}
	data, ok := value.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Memory cache: failed to unmarshal value")
		return false
	}
	return true
}

func (m *Memory) Delete(key string) {
	m.cache.Delete(key)
}

// Close is a no-op for the in-memory cache.
func (m *Memory) Close() error {
	return nil
}
