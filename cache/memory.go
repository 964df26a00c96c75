package cache

import (
	"context"
	"sync"
	"time"

	"github.com/anjiri1684/study_platform/models"
)

type entry struct {
	role    models.Role
	expires time.Time
}

type MemoryRoleCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryRoleCache(ttl time.Duration) *MemoryRoleCache {
	return &MemoryRoleCache{ttl: ttl, now: time.Now, entries: map[string]entry{}}
}

func (m *MemoryRoleCache) Get(_ context.Context, email string) (models.Role, error) {
	m.mu.RLock()
	e, ok := m.entries[email]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expires) {
		return "", ErrMiss
	}
	return e.role, nil
}

func (m *MemoryRoleCache) Set(_ context.Context, email string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[email] = entry{role: role, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryRoleCache) Invalidate(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, email)
	return nil
}
