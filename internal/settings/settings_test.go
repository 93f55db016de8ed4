package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]string
	err    error
}

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) GetPreference(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) SetPreference(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func TestTickRate(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		want int
	}{
		{"default", Default(), 60},
		{"30", Settings{TargetFrameRate: 30}, 30},
		{"144", Settings{TargetFrameRate: 144}, 144},
		{"unlimited is capped", Settings{TargetFrameRate: Unlimited}, 240},
		{"above cap", Settings{TargetFrameRate: 500}, 240},
		{"vsync overrides target", Settings{TargetFrameRate: 240, VSync: true}, 60},
		{"zero falls back", Settings{}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.TickRate())
		})
	}
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/30, Settings{TargetFrameRate: 30}.TickInterval())
}

func TestSetFrameRate(t *testing.T) {
	s := Default()
	require.NoError(t, s.SetFrameRate(Unlimited))
	assert.Equal(t, Unlimited, s.TargetFrameRate)

	assert.ErrorIs(t, s.SetFrameRate(0), ErrInvalidFrameRate)
	assert.ErrorIs(t, s.SetFrameRate(-5), ErrInvalidFrameRate)
	assert.Equal(t, Unlimited, s.TargetFrameRate)
}

func TestPresetDisablesVSync(t *testing.T) {
	s := Settings{TargetFrameRate: 60, VSync: true}
	require.NoError(t, s.Preset(120))
	assert.Equal(t, Settings{TargetFrameRate: 120}, s)
}

func TestLabelsAndIndex(t *testing.T) {
	assert.Equal(t, "Unlimited", Label(Unlimited))
	assert.Equal(t, "144 FPS", Label(144))
	assert.Equal(t, "VSync", Settings{VSync: true}.String())

	assert.Equal(t, 0, IndexOf(30))
	assert.Equal(t, 5, IndexOf(Unlimited))
	assert.Equal(t, 1, IndexOf(75), "unknown rate shows 60 FPS")
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	s, err := Load(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	require.NoError(t, Save(ctx, store, Settings{TargetFrameRate: 144, VSync: true}))
	assert.Equal(t, "144", store.values[KeyTargetFrameRate])
	assert.Equal(t, "1", store.values[KeyVSync])

	s, err = Load(ctx, store, nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{TargetFrameRate: 144, VSync: true}, s)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	store := newMemStore()
	store.values[KeyTargetFrameRate] = "fast"
	store.values[KeyVSync] = "0"

	s, err := Load(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_StoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("disk gone")

	_, err := Load(context.Background(), store, nil)
	assert.Error(t, err)
	assert.Error(t, Save(context.Background(), store, Default()))
}
