package statemachine

// Binder-break timer states.
const (
	TimerIdle      State = "IDLE"
	TimerRunning   State = "RUNNING"
	TimerCompleted State = "COMPLETED"
	TimerCancelled State = "CANCELLED"
)

// binderBreakTransitions defines valid transitions for the binder-break timer.
// Valid transitions:
//   - IDLE -> RUNNING (user starts the break, or the every_90_minutes checkpoint fires)
//   - RUNNING -> COMPLETED (timer reaches zero)
//   - RUNNING -> CANCELLED (user cancels the break)
//   - COMPLETED -> IDLE (timer reset for the next interval)
//
// Note: no transition out of CANCELLED; a cancelled timer must be recreated.
var binderBreakTransitions = []Transition{
	{From: TimerIdle, To: TimerRunning},
	{From: TimerRunning, To: TimerCompleted},
	{From: TimerRunning, To: TimerCancelled},
	{From: TimerCompleted, To: TimerIdle},
}

// BinderBreakTimer manages the runtime, session-scoped binder-break timer.
// Entering RUNNING is the trigger point for a "workout paused" advisory;
// leaving RUNNING (by completion or cancellation) resumes the session clock.
type BinderBreakTimer struct {
	state State
}

// NewBinderBreakTimer creates a new binder-break timer in the IDLE state.
func NewBinderBreakTimer() *BinderBreakTimer {
	return &BinderBreakTimer{state: TimerIdle}
}

// CurrentState returns the current timer state.
func (sm *BinderBreakTimer) CurrentState() State {
	return sm.state
}

// ValidTransitions returns all valid binder-break timer transitions.
func (sm *BinderBreakTimer) ValidTransitions() []Transition {
	return binderBreakTransitions
}

// CanTransitionTo checks if a transition to the target state is valid from the current state.
func (sm *BinderBreakTimer) CanTransitionTo(target State) bool {
	for _, t := range binderBreakTransitions {
		if t.From == sm.state && t.To == target {
			return true
		}
	}
	return false
}

// TransitionTo attempts to transition to the target state.
// Returns an InvalidTransitionError if the transition is not valid.
func (sm *BinderBreakTimer) TransitionTo(target State) error {
	if !sm.CanTransitionTo(target) {
		return NewInvalidTransitionError(sm.state, target)
	}
	sm.state = target
	return nil
}

// IsRunning reports whether the timer is currently counting down.
func (sm *BinderBreakTimer) IsRunning() bool {
	return sm.state == TimerRunning
}

// ValidTimerStates returns all valid binder-break timer states.
func ValidTimerStates() []State {
	return []State{TimerIdle, TimerRunning, TimerCompleted, TimerCancelled}
}

// IsTerminalTimerState reports whether a state has no further automatic transitions
// without external action (CANCELLED is terminal; COMPLETED loops back to IDLE).
func IsTerminalTimerState(s State) bool {
	return s == TimerCancelled
}

var _ StateMachine = (*BinderBreakTimer)(nil)
