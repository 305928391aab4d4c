package enums

import "fmt"

// SessionState tracks a settlement session through tender collection.
type SessionState string

const (
	SessionStateCollecting    SessionState = "collecting"
	SessionStateReadyToCommit SessionState = "ready_to_commit"
	SessionStateCommitted     SessionState = "committed"
	SessionStateDiscarded     SessionState = "discarded"
)

var validSessionStates = []SessionState{
	SessionStateCollecting,
	SessionStateReadyToCommit,
	SessionStateCommitted,
	SessionStateDiscarded,
}

// String implements fmt.Stringer.
func (s SessionState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SessionState.
func (s SessionState) IsValid() bool {
	for _, candidate := range validSessionStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the session can no longer change.
func (s SessionState) IsTerminal() bool {
	return s == SessionStateCommitted || s == SessionStateDiscarded
}

// ParseSessionState converts raw input into a SessionState.
func ParseSessionState(value string) (SessionState, error) {
	for _, candidate := range validSessionStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid session state %q", value)
}
