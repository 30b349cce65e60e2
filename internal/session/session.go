// Package session tracks revoked session tokens so a logout takes effect
// before the token expires.
package session

import (
	"context"
	"sync"
	"time"
)

// Store records revoked token ids until their natural expiry.
type Store interface {
	// Revoke marks tokenID as revoked until the given time.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// IsRevoked reports whether tokenID was revoked and has not expired.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryStore is a process-local Store. Revocations are lost on restart
// and are not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !until.After(m.now()) {
		return nil
	}
	m.revoked[tokenID] = until
	m.sweepLocked()
	return nil
}

func (m *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(m.now()) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

// sweepLocked drops expired entries. The caller holds m.mu.
func (m *MemoryStore) sweepLocked() {
	now := m.now()
	for id, until := range m.revoked {
		if !until.After(now) {
			delete(m.revoked, id)
		}
	}
}
