package unlock

import (
	"strings"
)

// Event types used to build canonical condition keys.
const (
	EventBossDefeated   = "boss_defeated"
	EventItemCollected  = "item_collected"
	EventAreaEntered    = "area_entered"
	EventQuestCompleted = "quest_completed"
)

// ValidKey reports whether key may be registered. The empty string is the
// keyless condition and is always valid. Any other key must be non-blank
// and carry no surrounding whitespace; the dispatcher checks it against the
// registered set when it fires.
func ValidKey(key string) bool {
	if key == "" {
		return true
	}
	return strings.TrimSpace(key) == key
}

// Key builds the condition key for an event, e.g.
// Key(EventBossDefeated, "Golem") == "boss_defeated_Golem".
// The name is used verbatim.
func Key(eventType, name string) string {
	return eventType + "_" + name
}
