package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		event, name, want string
	}{
		{EventBossDefeated, "golem", "boss_defeated_golem"},
		{EventBossDefeated, "Golem", "boss_defeated_Golem"},
		{EventItemCollected, "Blue Feather", "item_collected_Blue Feather"},
		{EventItemCollected, "feather-2", "item_collected_feather-2"},
		{EventAreaEntered, "cave 2", "area_entered_cave 2"},
		{EventQuestCompleted, "ascent", "quest_completed_ascent"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Key(tt.event, tt.name)
			assert.Equal(t, tt.want, got)
			assert.True(t, ValidKey(got))
		})
	}
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey(""))
	assert.True(t, ValidKey("a1_b2"))
	assert.True(t, ValidKey("boss_defeated_Golem"))
	assert.True(t, ValidKey("item_collected_feather-2"))
	assert.False(t, ValidKey(" "))
	assert.False(t, ValidKey("boss_defeated_golem "))
	assert.False(t, ValidKey("\tarea_entered_cave"))
}
