package statemachine

// RegenerateDay lifecycle states. A RegenerationState tracks one day's
// lifecycle and rejects a second move to PENDING while one is pending.
// planservice.Service.RegenerateDay does not consult a RegenerationState, so
// concurrent regenerate requests for the same day are not rejected there.
const (
	RegenerationIdle    State = "IDLE"
	RegenerationPending State = "PENDING"
	RegenerationDone    State = "DONE"
	RegenerationFailed  State = "FAILED"
)

// regenerationTransitions defines valid transitions for a day's regeneration lifecycle.
var regenerationTransitions = []Transition{
	{From: RegenerationIdle, To: RegenerationPending},
	{From: RegenerationPending, To: RegenerationDone},
	{From: RegenerationPending, To: RegenerationFailed},
	{From: RegenerationDone, To: RegenerationIdle},
	{From: RegenerationFailed, To: RegenerationIdle},
}

// RegenerationState tracks whether a regenerateDay call is in flight for a given day.
type RegenerationState struct {
	state State
}

// NewRegenerationState creates a new RegenerationState in the IDLE state.
func NewRegenerationState() *RegenerationState {
	return &RegenerationState{state: RegenerationIdle}
}

// CurrentState returns the current regeneration state.
func (sm *RegenerationState) CurrentState() State {
	return sm.state
}

// ValidTransitions returns all valid regeneration transitions.
func (sm *RegenerationState) ValidTransitions() []Transition {
	return regenerationTransitions
}

// CanTransitionTo checks if a transition to the target state is valid from the current state.
func (sm *RegenerationState) CanTransitionTo(target State) bool {
	for _, t := range regenerationTransitions {
		if t.From == sm.state && t.To == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts to transition to the target state.
// Returns an InvalidTransitionError if the transition is not valid.
func (sm *RegenerationState) TransitionTo(target State) error {
	if !sm.CanTransitionTo(target) {
		return NewInvalidTransitionError(sm.state, target)
	}
	sm.state = target
	return nil
}

// InFlight reports whether a regeneration is currently pending for this day.
func (sm *RegenerationState) InFlight() bool {
	return sm.state == RegenerationPending
}

var _ StateMachine = (*RegenerationState)(nil)
