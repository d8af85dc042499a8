package behavior

import (
	"fmt"
	"strings"
)

// State is a capybara's behavior state.
type State int

const (
	Idle State = iota
	Walk
	Run
	Sit
	GetUp

	NumStates
)

var stateNames = [NumStates]string{"Idle", "Walk", "Run", "Sit", "GetUp"}

func (s State) String() string {
	if s < 0 || s >= NumStates {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState accepts state names case-insensitively.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(n, name) {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("unknown behavior state %q", name)
}

// Moving reports whether the state walks toward a target.
func (s State) Moving() bool {
	return s == Walk || s == Run
}
