package ability

import "errors"

var (
	// ErrConfig marks a malformed catalog or condition table. It is fatal for
	// whatever is loading the configuration.
	ErrConfig = errors.New("invalid ability configuration")

	// ErrUnknownAbility is returned when an ID is not in the catalog.
	ErrUnknownAbility = errors.New("unknown ability")

	// ErrLocked is returned by Use for abilities the player does not hold.
	ErrLocked = errors.New("ability is locked")

	// ErrPassive is returned by Use for passive abilities.
	ErrPassive = errors.New("ability is passive")
)

// Outcome is the result of an unlock attempt. None of the outcomes are
// errors; they let callers tell "newly granted" apart from "nothing happened".
type Outcome int

const (
	// Unknown is returned with ErrUnknownAbility; nothing was attempted.
	Unknown Outcome = iota
	// Granted means the ability was added and listeners were notified.
	Granted
	// AlreadyUnlocked means the ability was held before the call.
	AlreadyUnlocked
	// Blocked means a gated unlock found missing prerequisites.
	Blocked
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case AlreadyUnlocked:
		return "already unlocked"
	case Blocked:
		return "prerequisites not met"
	default:
		return "unknown ability"
	}
}
