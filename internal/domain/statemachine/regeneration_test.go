package statemachine

import "testing"

func TestRegenerationState_CurrentState(t *testing.T) {
	sm := NewRegenerationState()
	if sm.CurrentState() != RegenerationIdle {
		t.Errorf("expected IDLE, got %s", sm.CurrentState())
	}
}

func TestRegenerationState_InFlight(t *testing.T) {
	sm := NewRegenerationState()
	if sm.InFlight() {
		t.Error("expected not in flight initially")
	}

	if err := sm.TransitionTo(RegenerationPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sm.InFlight() {
		t.Error("expected in flight after PENDING")
	}

	if err := sm.TransitionTo(RegenerationDone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm.InFlight() {
		t.Error("expected not in flight after DONE")
	}
}

func TestRegenerationState_RejectsConcurrentPending(t *testing.T) {
	sm := NewRegenerationState()
	if err := sm.TransitionTo(RegenerationPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm.CanTransitionTo(RegenerationPending) {
		t.Error("expected a second concurrent PENDING transition to be rejected")
	}
}

func TestRegenerationState_FailedResetsToIdle(t *testing.T) {
	sm := NewRegenerationState()
	if err := sm.TransitionTo(RegenerationPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sm.TransitionTo(RegenerationFailed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sm.TransitionTo(RegenerationIdle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegenerationState_ImplementsInterface(t *testing.T) {
	var _ StateMachine = (*RegenerationState)(nil)
}
