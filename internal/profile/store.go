// Package profile defines the settings-store contract the engine depends on
// and provides in-memory and JSON-file implementations.
package profile

import "github.com/jonathan/formfill-agent/internal/types"

// Store is the external settings collaborator: a key-value surface with
// last-write-wins semantics holding the profile, the sensitive-key set, and
// the usage mode.
type Store interface {
	// Profile returns the current profile.
	Profile() (*types.Profile, error)
	// SetProfile replaces the stored profile.
	SetProfile(p *types.Profile) error
	// SensitiveKeys returns the category keys excluded from automatic
	// persistence.
	SensitiveKeys() (map[string]struct{}, error)
	// SetSensitiveKeys replaces the sensitive-key set.
	SetSensitiveKeys(keys []string) error
	// UsageMode returns the generative-call policy.
	UsageMode() (types.UsageMode, error)
	// SetUsageMode replaces the generative-call policy.
	SetUsageMode(mode types.UsageMode) error
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
