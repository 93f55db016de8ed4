package ability

// DefaultDefinitions returns the stock ability set: jump from the start,
// double jump and dash after jump, wall climb after both.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID:          Jump,
			Name:        "Jump",
			Description: "Leap into the air.",
			Starting:    true,
			Passive:     true,
			Kind:        DefaultKind(Jump),
		},
		{
			ID:            DoubleJump,
			Name:          "Double Jump",
			Description:   "Jump a second time while airborne.",
			Prerequisites: []ID{Jump},
			Passive:       true,
			UnlockHint:    "Collect the feather",
			Kind:          DefaultKind(DoubleJump),
		},
		{
			ID:            Dash,
			Name:          "Dash",
			Description:   "Burst forward in the direction you face.",
			Prerequisites: []ID{Jump},
			Cooldown:      1,
			EnergyCost:    10,
			UnlockHint:    "Defeat the Golem",
			Kind:          DefaultKind(Dash),
		},
		{
			ID:            WallClimb,
			Name:          "Wall Climb",
			Description:   "Cling to walls, climb them and jump off.",
			Prerequisites: []ID{DoubleJump, Dash},
			Passive:       true,
			UnlockHint:    "Master both double jump and dash",
			Kind:          DefaultKind(WallClimb),
		},
	}
}
