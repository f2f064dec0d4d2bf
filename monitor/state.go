package monitor

import "fmt"

type State int

const (
	StateNotStarted State = iota
	StateSending
	StateListening
	StateComplete
	StateStalled
	// StateFailed means dispatch was aborted by an error.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateSending:
		return "Sending"
	case StateListening:
		return "Listening"
	case StateComplete:
		return "Complete"
	case StateStalled:
		return "Stalled"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := StateNotStarted; st <= StateFailed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("monitor: unknown state %q", text)
}
