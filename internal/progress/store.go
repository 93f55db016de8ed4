// Package progress saves and restores a player's unlocked abilities and
// satisfied unlock conditions.
package progress

//go:generate mockgen -destination=mock/mock_store.go -package=mockprogress -source=store.go

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

// ErrNoProfile is returned for a profile ID the store does not know.
var ErrNoProfile = errors.New("profile not found")

// Snapshot is the saved state of one profile.
type Snapshot struct {
	Unlocked   []ability.ID
	Conditions []unlock.Condition
}

// Profile is a named save slot.
type Profile struct {
	ID   string
	Name string
}

// Store persists progress. Implementations must be safe for concurrent use;
// every SSH session writes through the same store.
type Store interface {
	// EnsureProfile returns the ID of the profile called name, creating it
	// if needed.
	EnsureProfile(ctx context.Context, name string) (string, error)
	Profiles(ctx context.Context) ([]Profile, error)
	Load(ctx context.Context, profileID string) (Snapshot, error)
	SaveUnlock(ctx context.Context, profileID string, id ability.ID) error
	DeleteUnlock(ctx context.Context, profileID string, id ability.ID) error
	SaveCondition(ctx context.Context, profileID string, c unlock.Condition) error
	// Reset deletes every unlock and condition saved for the profile.
	Reset(ctx context.Context, profileID string) error
}
