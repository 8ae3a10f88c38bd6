package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/formfill-agent/internal/types"
)

// fileDoc is the on-disk shape of a FileStore.
type fileDoc struct {
	Profile       *types.Profile  `json:"profile"`
	SensitiveKeys []string        `json:"sensitive_keys,omitempty"`
	UsageMode     types.UsageMode `json:"usage_mode,omitempty"`
}

// FileStore persists settings to a single JSON file. Reads load the file on
// every call; writes rewrite it whole. Last write wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at path. The file is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("profile store path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() (*fileDoc, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &fileDoc{Profile: &types.Profile{}, UsageMode: types.DefaultUsageMode}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile store %s: %w", s.path, err)
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile store %s: %w", s.path, err)
	}
	if doc.Profile == nil {
		doc.Profile = &types.Profile{}
	}
	if doc.UsageMode == "" {
		doc.UsageMode = types.DefaultUsageMode
	}
	return &doc, nil
}

func (s *FileStore) save(doc *fileDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile store %s: %w", s.path, err)
	}
	return nil
}

// Profile returns the stored profile.
func (s *FileStore) Profile() (*types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Profile, nil
}

// SetProfile replaces the stored profile.
func (s *FileStore) SetProfile(p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Profile = p
	return s.save(doc)
}

// SensitiveKeys returns the stored sensitive-key set.
func (s *FileStore) SensitiveKeys() (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return keySet(doc.SensitiveKeys), nil
}

// SetSensitiveKeys replaces the stored sensitive-key set.
func (s *FileStore) SetSensitiveKeys(keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.SensitiveKeys = append([]string(nil), keys...)
	return s.save(doc)
}

// UsageMode returns the stored mode.
func (s *FileStore) UsageMode() (types.UsageMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	return doc.UsageMode, nil
}

// SetUsageMode replaces the stored mode.
func (s *FileStore) SetUsageMode(mode types.UsageMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.UsageMode = mode
	return s.save(doc)
}

var _ Store = (*FileStore)(nil)
