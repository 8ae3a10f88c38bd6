package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/formfill-agent/internal/types"
)

func TestMemoryStore_Defaults(t *testing.T) {
	store := NewMemoryStore(nil)

	prof, err := store.Profile()
	require.NoError(t, err)
	assert.False(t, prof.Has(types.KeyName))

	mode, err := store.UsageMode()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultUsageMode, mode)

	keys, err := store.SensitiveKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMemoryStore_ProfileIsolation(t *testing.T) {
	store := NewMemoryStore(&types.Profile{Name: "Jane"})

	prof, err := store.Profile()
	require.NoError(t, err)
	prof.Name = "Mutated"

	again, err := store.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.Name, "callers get copies, not the stored profile")
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(nil)

	require.NoError(t, store.SetProfile(&types.Profile{Name: "Jane", Skills: []string{"Go"}}))
	require.NoError(t, store.SetUsageMode(types.ModeAuto))
	require.NoError(t, store.SetSensitiveKeys([]string{types.KeySalary, types.KeyDateOfBirth}))

	prof, err := store.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane", prof.Name)

	mode, err := store.UsageMode()
	require.NoError(t, err)
	assert.Equal(t, types.ModeAuto, mode)

	keys, err := store.SensitiveKeys()
	require.NoError(t, err)
	assert.Contains(t, keys, types.KeySalary)
	assert.Contains(t, keys, types.KeyDateOfBirth)
}

func TestFileStore_MissingFileActsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "profile.json"))
	require.NoError(t, err)

	prof, err := store.Profile()
	require.NoError(t, err)
	assert.False(t, prof.Has(types.KeyName))

	mode, err := store.UsageMode()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultUsageMode, mode)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetProfile(&types.Profile{Name: "Jane", Email: "jane@example.com"}))
	require.NoError(t, store.SetUsageMode(types.ModeOff))
	require.NoError(t, store.SetSensitiveKeys([]string{types.KeySalary}))

	// A second store over the same file sees everything.
	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	prof, err := reopened.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane", prof.Name)
	assert.Equal(t, "jane@example.com", prof.Email)

	mode, err := reopened.UsageMode()
	require.NoError(t, err)
	assert.Equal(t, types.ModeOff, mode)

	keys, err := reopened.SensitiveKeys()
	require.NoError(t, err)
	assert.Contains(t, keys, types.KeySalary)
}

func TestFileStore_PartialWritesKeepOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetProfile(&types.Profile{Name: "Jane"}))
	require.NoError(t, store.SetUsageMode(types.ModeAuto))

	prof, err := store.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane", prof.Name, "mode write must not clobber the profile")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Profile()
	assert.Error(t, err)
}

func TestFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile *types.Profile
		wantErr bool
	}{
		{"empty profile", &types.Profile{}, false},
		{"valid", &types.Profile{Email: "jane@example.com", LinkedIn: "https://linkedin.com/in/jane"}, false},
		{"bad email", &types.Profile{Email: "not-an-email"}, true},
		{"bad url", &types.Profile{GitHub: "github dot com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
