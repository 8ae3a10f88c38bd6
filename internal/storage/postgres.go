// Package storage provides a PostgreSQL-backed settings store for deployments
// where the profile must outlive a single host process.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/formfill-agent/internal/profile"
	"github.com/jonathan/formfill-agent/internal/types"
)

// opTimeout bounds every store operation so the synchronous Store contract
// cannot hang a fill pass.
const opTimeout = 5 * time.Second

// Store keys within the settings table.
const (
	settingProfile       = "profile"
	settingSensitiveKeys = "sensitive_keys"
	settingUsageMode     = "usage_mode"
)

// PostgresStore implements profile.Store over a single jsonb key-value table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and ensures the settings table exists.
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS autofill_settings (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure settings table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) get(key string, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM autofill_settings WHERE key = $1`, key,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return true, nil
}

func (s *PostgresStore) set(key string, value any) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO autofill_settings (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Profile returns the stored profile, or an empty one if none was saved yet.
func (s *PostgresStore) Profile() (*types.Profile, error) {
	var p types.Profile
	if _, err := s.get(settingProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProfile replaces the stored profile.
func (s *PostgresStore) SetProfile(p *types.Profile) error {
	return s.set(settingProfile, p)
}

// SensitiveKeys returns the stored sensitive-key set.
func (s *PostgresStore) SensitiveKeys() (map[string]struct{}, error) {
	var keys []string
	if _, err := s.get(settingSensitiveKeys, &keys); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}

// SetSensitiveKeys replaces the stored sensitive-key set.
func (s *PostgresStore) SetSensitiveKeys(keys []string) error {
	return s.set(settingSensitiveKeys, keys)
}

// UsageMode returns the stored mode, defaulting when none was saved.
func (s *PostgresStore) UsageMode() (types.UsageMode, error) {
	var mode types.UsageMode
	found, err := s.get(settingUsageMode, &mode)
	if err != nil {
		return "", err
	}
	if !found || mode == "" {
		return types.DefaultUsageMode, nil
	}
	return mode, nil
}

// SetUsageMode replaces the stored mode.
func (s *PostgresStore) SetUsageMode(mode types.UsageMode) error {
	return s.set(settingUsageMode, mode)
}

var _ profile.Store = (*PostgresStore)(nil)
