package alias

import "time"

// State is the redirect decision for a code at a given instant.
type State int

const (
	// StateUnknown means no alias exists for the code.
	StateUnknown State = iota
	// StateActive means the alias exists and has not yet expired.
	StateActive
	// StateExpired means the alias exists but its lifespan has passed.
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// StateAt computes the state of a stored alias purely from the clock.
// The boundary instant expiresAt itself counts as expired. There are no
// stored state transitions and no background sweep; every call recomputes.
func StateAt(now, expiresAt time.Time) State {
	if now.Before(expiresAt) {
		return StateActive
	}

	return StateExpired
}

// Resolution is the outcome of resolving a code.
type Resolution struct {
	State     State
	TargetURL string
	ExpiresAt time.Time
}
