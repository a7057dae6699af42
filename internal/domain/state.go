package domain

// RouterState is a user's position in the conversation state machine.
// It is derived from an origin lookup and never stored.
type RouterState int

const (
	// StateNoOrigin means the user has not shared a location or picked a preset.
	StateNoOrigin RouterState = iota
	// StateHasOrigin means destination queries can be answered.
	StateHasOrigin
)

// String returns the conventional upper-case name of the state.
func (s RouterState) String() string {
	if s == StateHasOrigin {
		return "HAS_ORIGIN"
	}
	return "NO_ORIGIN"
}

// StateOf derives the state from the found flag of an origin lookup.
func StateOf(found bool) RouterState {
	if found {
		return StateHasOrigin
	}
	return StateNoOrigin
}
