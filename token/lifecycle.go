package token

// Lifecycle is a token's playability window. Timestamps are unix seconds;
// a zero bound means unbounded on that side. The window is half-open:
// [Start, End).
type Lifecycle struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// PlayState is the playability state derived from a lifecycle window.
// It is computed on every read and never stored.
type PlayState int

const (
	// NotStarted means the window has a start bound in the future.
	NotStarted PlayState = iota
	// Active means now is inside the window.
	Active
	// Ended means the window has an end bound in the past.
	Ended
)

// String implements fmt.Stringer.
func (s PlayState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Active:
		return "active"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// StateAt returns the playability state at the given time.
// Start is inclusive, End is exclusive. A fully unbounded window
// (0, 0) is always Active.
func (l Lifecycle) StateAt(now uint64) PlayState {
	if l.Start != 0 && now < l.Start {
		return NotStarted
	}
	if l.End != 0 && now >= l.End {
		return Ended
	}
	return Active
}

// PlayableAt reports whether the token is playable at the given time.
func (l Lifecycle) PlayableAt(now uint64) bool {
	return l.StateAt(now) == Active
}

// Bounded reports whether the window has any bound at all.
func (l Lifecycle) Bounded() bool {
	return l.Start != 0 || l.End != 0
}
