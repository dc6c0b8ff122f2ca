package cache

import (
	"context"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_cache "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

type Manager[T any] struct {
	cache *cache.Cache[T]
}

// NewManager builds an in-memory cache. Entries set without an explicit
// expiration live for defaultExpiration; gocache.NoExpiration keeps them for
// the lifetime of the manager.
func NewManager[T any](defaultExpiration time.Duration) *Manager[T] {
	var cleanup time.Duration
	if defaultExpiration > 0 {
		cleanup = defaultExpiration
	}
	client := gocache.New(defaultExpiration, cleanup)
	return &Manager[T]{
		cache: cache.New[T](go_cache.NewGoCache(client)),
	}
}

func (m *Manager[T]) Set(key string, value T) error {
	timeout, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return m.cache.Set(timeout, key, value)
}

func (m *Manager[T]) SetWithExpiration(key string, value T, expir time.Duration) error {
	timeout, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	return m.cache.Set(timeout, key, value, store.WithExpiration(expir))
}

// GetValue returns the zero value and a nil error on a cache miss.
func (m *Manager[T]) GetValue(key string) (value T, err error) {
	timeout, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	const errorMessage = "value not found"
	value, err = m.cache.Get(timeout, key)
	if err != nil && strings.Contains(err.Error(), errorMessage) {
		err = nil
		return
	}
	return
}
