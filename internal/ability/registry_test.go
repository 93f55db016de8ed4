package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	c, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)
	return NewRegistry(c, opts...)
}

// recorder collects unlock notifications.
type recorder struct {
	got []ID
}

func (r *recorder) listen(d Definition) { r.got = append(r.got, d.ID) }

func TestRegistry_StartingAbilitiesUnlockedSilently(t *testing.T) {
	c, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)

	r := NewRegistry(c)
	var rec recorder
	r.Subscribe(rec.listen)

	assert.True(t, r.Has(Jump))
	assert.False(t, r.Has(DoubleJump))
	assert.Empty(t, rec.got)
}

func TestRegistry_UnlockIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	var rec recorder
	r.Subscribe(rec.listen)

	out, err := r.Unlock(Dash)
	require.NoError(t, err)
	assert.Equal(t, Granted, out)
	assert.True(t, r.Has(Dash))

	out, err = r.Unlock(Dash)
	require.NoError(t, err)
	assert.Equal(t, AlreadyUnlocked, out)
	assert.Equal(t, []ID{Dash}, rec.got)
}

func TestRegistry_UnlockIsNotGated(t *testing.T) {
	r := newTestRegistry(t)

	require.False(t, r.CanUnlock(WallClimb))
	out, err := r.Unlock(WallClimb)
	require.NoError(t, err)
	assert.Equal(t, Granted, out)
	assert.True(t, r.Has(WallClimb))
}

func TestRegistry_TryUnlock(t *testing.T) {
	r := newTestRegistry(t)

	out, err := r.TryUnlock(WallClimb)
	require.NoError(t, err)
	assert.Equal(t, Blocked, out)
	assert.False(t, r.Has(WallClimb))

	out, err = r.TryUnlock(Jump)
	require.NoError(t, err)
	assert.Equal(t, AlreadyUnlocked, out)

	out, err = r.TryUnlock(DoubleJump)
	require.NoError(t, err)
	assert.Equal(t, Granted, out)

	_, err = r.TryUnlock(ID(999))
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestRegistry_CanUnlock(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name string
		id   ID
		want bool
	}{
		{"already unlocked", Jump, false},
		{"prerequisites met", DoubleJump, true},
		{"prerequisites met dash", Dash, true},
		{"prerequisites missing", WallClimb, false},
		{"unknown", ID(999), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CanUnlock(tt.id))
		})
	}

	_, _ = r.Unlock(DoubleJump)
	assert.False(t, r.CanUnlock(WallClimb), "one prerequisite still missing")
	_, _ = r.Unlock(Dash)
	assert.True(t, r.CanUnlock(WallClimb))
}

func TestRegistry_UnknownAbility(t *testing.T) {
	r := newTestRegistry(t)
	var rec recorder
	r.Subscribe(rec.listen)

	assert.False(t, r.CanUnlock(ID(999)))
	assert.False(t, r.Has(ID(999)))

	out, err := r.Unlock(ID(999))
	assert.ErrorIs(t, err, ErrUnknownAbility)
	assert.Equal(t, Unknown, out)
	assert.Empty(t, rec.got)

	out, err = r.TryUnlock(ID(999))
	assert.ErrorIs(t, err, ErrUnknownAbility)
	assert.Equal(t, Unknown, out)
	assert.Equal(t, "unknown ability", out.String())

	_, ok := r.Definition(ID(999))
	assert.False(t, ok)
}

func TestRegistry_AbilityMissingFromCatalog(t *testing.T) {
	c, err := NewCatalog([]Definition{{ID: Jump, Starting: true}})
	require.NoError(t, err)
	r := NewRegistry(c)

	_, err = r.Unlock(Dash)
	assert.ErrorIs(t, err, ErrUnknownAbility)
	assert.False(t, r.Has(Dash))
}

func TestRegistry_ListenersInRegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)

	var order []string
	r.Subscribe(func(Definition) { order = append(order, "first") })
	r.Subscribe(func(Definition) { order = append(order, "second") })

	_, err := r.Unlock(Dash)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRegistry_Unsubscribe(t *testing.T) {
	r := newTestRegistry(t)
	var rec recorder
	unsubscribe := r.Subscribe(rec.listen)

	_, _ = r.Unlock(Dash)
	unsubscribe()
	_, _ = r.Unlock(DoubleJump)

	assert.Equal(t, []ID{Dash}, rec.got)
}

func TestRegistry_NestedUnlockIsQueued(t *testing.T) {
	r := newTestRegistry(t)

	var order []string
	r.Subscribe(func(d Definition) {
		order = append(order, "a:"+d.ID.String())
		if d.ID == DoubleJump {
			_, err := r.Unlock(Dash)
			require.NoError(t, err)
		}
	})
	r.Subscribe(func(d Definition) {
		order = append(order, "b:"+d.ID.String())
	})

	_, err := r.Unlock(DoubleJump)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"a:double_jump", "b:double_jump",
		"a:dash", "b:dash",
	}, order)
	assert.True(t, r.Has(Dash))
}

func TestRegistry_Revoke(t *testing.T) {
	r := newTestRegistry(t)
	var unlocked, revoked recorder
	r.Subscribe(unlocked.listen)
	r.SubscribeRevoke(revoked.listen)

	_, _ = r.Unlock(DoubleJump)
	require.NoError(t, r.Revoke(Jump))

	assert.False(t, r.Has(Jump))
	assert.True(t, r.Has(DoubleJump), "dependants stay unlocked")
	assert.Equal(t, []ID{Jump}, revoked.got)
	assert.Equal(t, []ID{DoubleJump}, unlocked.got)

	require.NoError(t, r.Revoke(Jump), "revoking a locked ability is a no-op")
	assert.Len(t, revoked.got, 1)

	assert.ErrorIs(t, r.Revoke(ID(999)), ErrUnknownAbility)
}

func TestRegistry_Restore(t *testing.T) {
	r := newTestRegistry(t)
	var rec recorder
	r.Subscribe(rec.listen)

	n := r.Restore([]ID{Dash, ID(42), Jump, WallClimb})
	assert.Equal(t, 2, n)
	assert.True(t, r.Has(Dash))
	assert.True(t, r.Has(WallClimb))
	assert.Empty(t, rec.got)
}

func TestRegistry_Views(t *testing.T) {
	r := newTestRegistry(t)
	_, _ = r.Unlock(Dash)

	ids := func(defs []Definition) []ID {
		var out []ID
		for _, d := range defs {
			out = append(out, d.ID)
		}
		return out
	}

	assert.Equal(t, []ID{Jump, Dash}, ids(r.Unlocked()))
	assert.Equal(t, []ID{DoubleJump, WallClimb}, ids(r.Locked()))
	assert.Equal(t, []ID{DoubleJump}, ids(r.Unlockable()))
	assert.Equal(t, []ID{Jump, Dash}, r.UnlockedIDs())
}

func TestRegistry_Use(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Use(Dash)
	assert.ErrorIs(t, err, ErrLocked)

	_, _ = r.Unlock(Dash)
	d, err := r.Use(Dash)
	require.NoError(t, err)
	assert.Equal(t, Dash, d.ID)

	_, err = r.Use(Jump)
	assert.ErrorIs(t, err, ErrPassive)

	_, err = r.Use(ID(999))
	assert.ErrorIs(t, err, ErrUnknownAbility)
}

func TestRegistry_Load(t *testing.T) {
	r := newTestRegistry(t)
	var rec recorder
	r.Subscribe(rec.listen)
	_, _ = r.Unlock(Dash)

	err := r.Load([]Definition{
		{ID: Jump},
		{ID: Dash, Starting: true},
	})
	require.NoError(t, err)
	assert.True(t, r.Has(Dash))
	assert.False(t, r.Has(Jump))
	assert.Equal(t, 2, r.Catalog().Len())

	err = r.Load([]Definition{{ID: Dash, Prerequisites: []ID{WallClimb}}})
	require.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, 2, r.Catalog().Len(), "failed load keeps the previous catalog")

	_, _ = r.Unlock(Jump)
	assert.Equal(t, []ID{Dash, Jump}, rec.got, "subscriptions survive Load")
}
