package level

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-platformer/internal/unlock"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "meadow", list[0].ID)
	assert.Equal(t, "caverns", list[1].ID)
	assert.Equal(t, "summit", list[2].ID)

	meadow, err := c.Get("meadow")
	require.NoError(t, err)
	assert.Equal(t, "caverns", meadow.Next)
	assert.True(t, meadow.Solid(meadow.SpawnX, meadow.SpawnY+1), "spawn stands on ground")
}

func TestCatalog_Keys(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	keys := c.Keys(unlock.Key)
	assert.Contains(t, keys, "item_collected_feather")
	assert.Contains(t, keys, "boss_defeated_golem")
	assert.Contains(t, keys, "area_entered_crystal_cave")
	assert.Contains(t, keys, "quest_completed_summit")
	for _, k := range keys {
		assert.True(t, unlock.ValidKey(k), k)
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	c := NewCatalog()
	_, err := c.Get("nowhere")
	assert.Error(t, err)
	assert.False(t, c.Exists("nowhere"))
}

func TestCatalog_RegisterDuplicate(t *testing.T) {
	c := NewCatalog()
	l, err := Parse([]byte(tiny))
	require.NoError(t, err)

	require.NoError(t, c.Register(l))
	assert.Error(t, c.Register(l))
	assert.True(t, c.Exists("tiny"))
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":    {Data: []byte("id: a\norder: 2\ntiles: |\n  S\n")},
		"b.yaml":    {Data: []byte("id: b\norder: 1\nnext: a\ntiles: |\n  S\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"bad level", fstest.MapFS{"a.yaml": {Data: []byte("id: a\ntiles: |\n  ...\n")}}},
		{"duplicate id", fstest.MapFS{
			"a.yaml": {Data: []byte("id: a\ntiles: |\n  S\n")},
			"b.yaml": {Data: []byte("id: a\ntiles: |\n  S\n")},
		}},
		{"dangling next", fstest.MapFS{"a.yaml": {Data: []byte("id: a\nnext: z\ntiles: |\n  S\n")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}
