package flow

import (
	"errors"
	"fmt"
)

// Error variables for rejected session operations
var (
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrRequestInFlight     = errors.New("a chat request is already in flight")
	ErrNoSelection         = errors.New("no option selected")
	ErrUnknownOption       = errors.New("option is not offered")
	ErrSelectionIncomplete = errors.New("exactly three coverages must be selected")
	ErrUnknownChoice       = errors.New("unknown dialogue choice")
	ErrUnknownTab          = errors.New("tab is not available in this variant")
	ErrFeatureUnavailable  = errors.New("feature is not available in this variant")
)

// TransitionError reports an operation that is not legal in the machine's current state.
type TransitionError struct {
	Machine string
	State   string
	Action  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s in state %q", e.Machine, e.Action, e.State)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidTransition).
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func transitionError(machine, state, action string) error {
	return &TransitionError{Machine: machine, State: state, Action: action}
}
