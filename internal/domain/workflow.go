package domain

// State is a step of the per-invocation workflow.
type State string

const (
	StateAwaitingQuery     State = "awaiting_query"
	StateGenerating        State = "generating"
	StateNoCommand         State = "no_command"
	StateGenerationError   State = "generation_error"
	StateAwaitingSelection State = "awaiting_selection"
	StateDispatching       State = "dispatching"
	StateIdle              State = "idle"
)

// Terminal reports whether the workflow ends in this state.
func (s State) Terminal() bool {
	switch s {
	case StateIdle, StateNoCommand, StateGenerationError:
		return true
	default:
		return false
	}
}

// Outcome summarizes one invocation.
type Outcome struct {
	Query     string
	States    []State
	Submitted []CommandCandidate
}

// Final returns the last state reached, or "" if none were recorded.
func (o Outcome) Final() State {
	if len(o.States) == 0 {
		return ""
	}
	return o.States[len(o.States)-1]
}

// Enter records a state transition.
func (o *Outcome) Enter(s State) {
	o.States = append(o.States, s)
}
