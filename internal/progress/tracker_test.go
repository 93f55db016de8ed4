package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	mockprogress "github.com/vovakirdan/tui-platformer/internal/progress/mock"
	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

const profile = "profile-1"

var (
	feather = unlock.Condition{Key: "item_collected_feather", Ability: ability.DoubleJump}
	golem   = unlock.Condition{Key: "boss_defeated_golem", Ability: ability.Dash}
	keyless = unlock.Condition{Key: "", Ability: ability.WallClimb}
)

func newPlayer(t *testing.T) (*ability.Registry, *unlock.Dispatcher) {
	t.Helper()
	catalog, err := ability.NewCatalog(ability.DefaultDefinitions())
	require.NoError(t, err)
	reg := ability.NewRegistry(catalog)
	d := unlock.New(reg)
	require.NoError(t, d.Load([]unlock.Condition{feather, golem, keyless}))
	return reg, d
}

func TestTracker_SavesTriggeredUnlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()

	reg, d := newPlayer(t)
	tr := progress.Track(ctx, store, profile, reg, d)
	defer tr.Close()

	store.EXPECT().SaveUnlock(ctx, profile, ability.DoubleJump).Return(nil).Times(1)
	store.EXPECT().SaveCondition(ctx, profile, feather).Return(nil).Times(1)

	d.OnItemCollected("feather")
	require.NoError(t, tr.Err())
}

func TestTracker_SavesCascade(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()

	reg, d := newPlayer(t)
	tr := progress.Track(ctx, store, profile, reg, d)
	defer tr.Close()

	store.EXPECT().SaveUnlock(ctx, profile, gomock.Any()).Return(nil).Times(3)
	store.EXPECT().SaveCondition(ctx, profile, feather).Return(nil)
	store.EXPECT().SaveCondition(ctx, profile, golem).Return(nil)
	store.EXPECT().SaveCondition(ctx, profile, keyless).Return(nil)

	d.OnItemCollected("feather")
	d.OnBossDefeated("golem")

	assert.True(t, reg.Has(ability.WallClimb))
	require.NoError(t, tr.Err())
}

func TestTracker_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()

	reg, d := newPlayer(t)
	tr := progress.Track(ctx, store, profile, reg, d)
	defer tr.Close()

	store.EXPECT().DeleteUnlock(ctx, profile, ability.Jump).Return(nil)
	require.NoError(t, reg.Revoke(ability.Jump))

	// Already locked: no notification, no write.
	require.NoError(t, reg.Revoke(ability.Jump))
}

func TestTracker_KeepsFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()
	boom := errors.New("disk full")

	reg, d := newPlayer(t)
	tr := progress.Track(ctx, store, profile, reg, d)
	defer tr.Close()

	store.EXPECT().SaveUnlock(ctx, profile, ability.Dash).Return(boom)
	store.EXPECT().SaveCondition(ctx, profile, golem).Return(errors.New("still full"))

	d.OnBossDefeated("golem")

	require.Error(t, tr.Err())
	assert.ErrorIs(t, tr.Err(), boom)
	assert.True(t, reg.Has(ability.Dash), "write failures do not undo the unlock")
}

func TestTracker_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)

	reg, d := newPlayer(t)
	tr := progress.Track(context.Background(), store, profile, reg, d)
	tr.Close()

	// No expectations: any store call fails the test.
	d.OnItemCollected("feather")
	assert.True(t, reg.Has(ability.DoubleJump))
}

func TestRestore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()

	store.EXPECT().Load(ctx, profile).Return(progress.Snapshot{
		Unlocked:   []ability.ID{ability.Jump, ability.DoubleJump},
		Conditions: []unlock.Condition{feather},
	}, nil)

	reg, d := newPlayer(t)
	var notified []ability.ID
	reg.Subscribe(func(def ability.Definition) { notified = append(notified, def.ID) })

	snap, err := progress.Restore(ctx, store, profile, reg, d)
	require.NoError(t, err)
	assert.Len(t, snap.Unlocked, 2)

	assert.True(t, reg.Has(ability.DoubleJump))
	assert.True(t, d.IsConditionMet(feather.Key))
	assert.Empty(t, notified)

	// Restored conditions are not written back.
	tr := progress.Track(ctx, store, profile, reg, d)
	defer tr.Close()
	tr.Sync()
}

func TestRestore_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mockprogress.NewMockStore(ctrl)
	ctx := context.Background()

	store.EXPECT().Load(ctx, profile).Return(progress.Snapshot{}, progress.ErrNoProfile)

	reg, d := newPlayer(t)
	_, err := progress.Restore(ctx, store, profile, reg, d)
	assert.ErrorIs(t, err, progress.ErrNoProfile)
}
