package profile

import (
	"sync"

	"github.com/jonathan/formfill-agent/internal/types"
)

// MemoryStore is a process-local Store. It backs tests and embedded use where
// the host application owns persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	profile   *types.Profile
	sensitive map[string]struct{}
	mode      types.UsageMode
}

// NewMemoryStore creates a store seeded with the given profile (nil for
// empty) and the default usage mode.
func NewMemoryStore(p *types.Profile) *MemoryStore {
	if p == nil {
		p = &types.Profile{}
	}
	return &MemoryStore{
		profile:   p,
		sensitive: make(map[string]struct{}),
		mode:      types.DefaultUsageMode,
	}
}

// Profile returns a copy of the stored profile.
func (s *MemoryStore) Profile() (*types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone(), nil
}

// SetProfile replaces the stored profile.
func (s *MemoryStore) SetProfile(p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Clone()
	return nil
}

// SensitiveKeys returns a copy of the sensitive-key set.
func (s *MemoryStore) SensitiveKeys() (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.sensitive))
	for k := range s.sensitive {
		out[k] = struct{}{}
	}
	return out, nil
}

// SetSensitiveKeys replaces the sensitive-key set.
func (s *MemoryStore) SetSensitiveKeys(keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensitive = keySet(keys)
	return nil
}

// UsageMode returns the stored mode.
func (s *MemoryStore) UsageMode() (types.UsageMode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode, nil
}

// SetUsageMode replaces the stored mode.
func (s *MemoryStore) SetUsageMode(mode types.UsageMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}

var _ Store = (*MemoryStore)(nil)
