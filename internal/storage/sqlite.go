// Package storage persists player progress and preferences.
// The SQLite store uses the pure-Go modernc.org/sqlite driver to avoid CGO;
// the Redis store lets several servers share profiles.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	"github.com/vovakirdan/tui-platformer/internal/settings"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// Store is the SQLite progress and preference store.
type Store struct {
	db    *sql.DB
	newID func() string
}

var (
	_ progress.Store = (*Store)(nil)
	_ settings.Store = (*Store)(nil)
)

// Option configures a store.
type Option func(*options)

type options struct {
	newID func() string
}

// WithIDFunc sets the generator for new profile IDs. The default is a
// random UUID.
func WithIDFunc(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

func buildOptions(opts []Option) options {
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, newID: buildOptions(opts).newID}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS unlocks (
			profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			ability TEXT NOT NULL,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, ability)
		);

		CREATE TABLE IF NOT EXISTS conditions (
			profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			cond_key TEXT NOT NULL,
			ability TEXT NOT NULL,
			satisfied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (profile_id, cond_key, ability)
		);

		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureProfile returns the ID of the profile called name, creating it if
// it does not exist.
func (s *Store) EnsureProfile(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: profile name is empty")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profiles (id, name) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
		s.newID(), name,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create profile: %w", err)
	}

	var id string
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM profiles WHERE name = ?", name).Scan(&id); err != nil {
		return "", fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return id, nil
}

// Profiles lists every profile ordered by name.
func (s *Store) Profiles(ctx context.Context) ([]progress.Profile, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM profiles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []progress.Profile
	for rows.Next() {
		var p progress.Profile
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

func (s *Store) profileExists(ctx context.Context, profileID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM profiles WHERE id = ?", profileID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("storage: profile %s: %w", profileID, progress.ErrNoProfile)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return nil
}

// Load returns the saved unlocks and conditions of a profile in the order
// they were saved. Ability names this build does not know are skipped.
func (s *Store) Load(ctx context.Context, profileID string) (progress.Snapshot, error) {
	var snap progress.Snapshot
	if err := s.profileExists(ctx, profileID); err != nil {
		return snap, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT ability FROM unlocks WHERE profile_id = ? ORDER BY unlocked_at, rowid",
		profileID,
	)
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return snap, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if id, err := ability.ParseID(name); err == nil {
			snap.Unlocked = append(snap.Unlocked, id)
		}
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("storage: row iteration error: %w", err)
	}

	crows, err := s.db.QueryContext(ctx,
		"SELECT cond_key, ability FROM conditions WHERE profile_id = ? ORDER BY satisfied_at, rowid",
		profileID,
	)
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query conditions: %w", err)
	}
	defer crows.Close()

	for crows.Next() {
		var key, name string
		if err := crows.Scan(&key, &name); err != nil {
			return snap, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if id, err := ability.ParseID(name); err == nil {
			snap.Conditions = append(snap.Conditions, unlock.Condition{Key: key, Ability: id})
		}
	}
	if err := crows.Err(); err != nil {
		return snap, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return snap, nil
}

// SaveUnlock records that the profile holds id. Saving twice is a no-op.
func (s *Store) SaveUnlock(ctx context.Context, profileID string, id ability.ID) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO unlocks (profile_id, ability) VALUES (?, ?)",
		profileID, id.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save unlock: %w", err)
	}
	return nil
}

// DeleteUnlock removes a saved unlock.
func (s *Store) DeleteUnlock(ctx context.Context, profileID string, id ability.ID) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM unlocks WHERE profile_id = ? AND ability = ?",
		profileID, id.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete unlock: %w", err)
	}
	return nil
}

// SaveCondition records a satisfied condition. Saving twice is a no-op.
func (s *Store) SaveCondition(ctx context.Context, profileID string, c unlock.Condition) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO conditions (profile_id, cond_key, ability) VALUES (?, ?, ?)",
		profileID, c.Key, c.Ability.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save condition: %w", err)
	}
	return nil
}

// Reset deletes all progress of a profile. The profile itself is kept.
func (s *Store) Reset(ctx context.Context, profileID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM unlocks WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("storage: cannot clear unlocks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM conditions WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("storage: cannot clear conditions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

// GetPreference returns a saved preference value.
func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query preference: %w", err)
	}
	return value, true, nil
}

// SetPreference saves a preference value.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference: %w", err)
	}
	return nil
}
