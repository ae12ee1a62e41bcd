package asset

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	qrCacheTTL     = 5 * time.Minute
	qrCacheCleanup = 10 * time.Minute
)

// QRStore caches composed QR PNGs by identifier. The disk copy is the
// durable cache; an in-memory front avoids re-reading hot entries.
// QR bytes are derived data and can always be rebuilt from their inputs.
type QRStore struct {
	*Store

	mu    sync.Mutex
	cache *gocache.Cache
}

func NewQRStore(dir string) (*QRStore, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	return &QRStore{
		Store: store,
		cache: gocache.New(qrCacheTTL, qrCacheCleanup),
	}, nil
}

// Put stores the PNG and refreshes the memory front.
func (s *QRStore) Put(id string, data []byte) (string, error) {
	name, err := s.Store.Put(id, data)
	if err != nil {
		return "", err
	}
	s.cache.Set(id, data, gocache.DefaultExpiration)
	return name, nil
}

// Get serves from memory when possible, falling back to disk.
func (s *QRStore) Get(id string) ([]byte, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.([]byte), nil
	}
	data, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, data, gocache.DefaultExpiration)
	return data, nil
}

// Delete drops both the disk copy and the memory front.
func (s *QRStore) Delete(id string) error {
	s.cache.Delete(id)
	return s.Store.Delete(id)
}

// GetOrRegenerate returns the cached PNG for id, invoking regenerate and
// persisting its result on a miss so subsequent reads hit the cache.
// Regeneration is idempotent; the lock only avoids duplicate work when
// two readers miss at once.
func (s *QRStore) GetOrRegenerate(id string, regenerate func() ([]byte, error)) ([]byte, error) {
	if data, err := s.Get(id); err == nil {
		return data, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another reader may have regenerated while we waited.
	if data, err := s.Get(id); err == nil {
		return data, nil
	}

	data, err := regenerate()
	if err != nil {
		return nil, err
	}
	if _, err := s.Put(id, data); err != nil {
		return nil, err
	}
	return data, nil
}
