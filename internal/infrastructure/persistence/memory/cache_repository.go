// Package memory provides in-memory cache repository implementation
package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/forkcast/forkcast/internal/ports/outbound"
)

// ErrKeyNotFound is returned when a key is absent or expired
var ErrKeyNotFound = errors.New("key not found")

// CacheItem represents a cached item
type CacheItem struct {
	Value     []byte
	ExpiresAt time.Time
}

// CacheRepository implements in-memory cache repository. It is the
// default when Redis is disabled in configuration.
type CacheRepository struct {
	data  map[string]CacheItem
	mutex sync.Mutex
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() *CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]CacheItem),
	}

	go repo.cleanup()

	return repo
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	item, exists := r.data[key]
	if !exists {
		return nil, ErrKeyNotFound
	}

	if time.Now().After(item.ExpiresAt) {
		delete(r.data, key)
		return nil, ErrKeyNotFound
	}

	return item.Value, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	expiresAt := time.Now().Add(ttl)
	if ttl == 0 {
		expiresAt = time.Now().Add(24 * time.Hour) // Default to 24 hours
	}

	r.data[key] = CacheItem{
		Value:     value,
		ExpiresAt: expiresAt,
	}

	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Increment bumps a counter key, creating it at 1. Counters are stored
// as decimal strings so Get interoperates with the Redis adapter.
func (r *CacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var value int64
	item, exists := r.data[key]
	if exists && time.Now().Before(item.ExpiresAt) {
		parsed, err := strconv.ParseInt(string(item.Value), 10, 64)
		if err != nil {
			return 0, errors.New("value is not an integer")
		}
		value = parsed
	}
	value++

	r.data[key] = CacheItem{
		Value:     []byte(strconv.FormatInt(value, 10)),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	return value, nil
}

// cleanup removes expired items
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mutex.Lock()
		now := time.Now()
		for key, item := range r.data {
			if now.After(item.ExpiresAt) {
				delete(r.data, key)
			}
		}
		r.mutex.Unlock()
	}
}
