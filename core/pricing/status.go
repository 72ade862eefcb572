package pricing

// Status is the pricing-load state machine.
// idle -> loading -> {ready | failed}; the terminal states never
// transition further within a session.
type Status int

const (
	// StatusIdle means the load has not started
	StatusIdle Status = iota

	// StatusLoading means the fetch is in flight
	StatusLoading

	// StatusReady means the table is loaded and usable
	StatusReady

	// StatusFailed means the load failed; terminal for the session
	StatusFailed
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status can no longer change
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusFailed
}
