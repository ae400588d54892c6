package planassembler

import (
	"testing"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/rulesengine"
)

func phasePtr(p exercise.Phase) *exercise.Phase { return &p }

func TestFilterCandidates_ExcludesByID(t *testing.T) {
	sc := &rulesengine.SafetyContext{ExcludedExerciseIDs: map[int]bool{1: true}}
	pool := []exercise.Exercise{{ID: 1, Name: "Bench"}, {ID: 2, Name: "Row"}}
	out := filterCandidates(pool, &profile.Profile{}, sc, exercise.PhaseMaintenance)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only exercise 2 to survive, got %+v", out)
	}
}

func TestFilterCandidates_BlockedPatternExcludesMatchingExercises(t *testing.T) {
	sc := &rulesengine.SafetyContext{
		ExcludedExerciseIDs: map[int]bool{},
		BlockedPatterns:     []string{"push"},
	}
	pool := []exercise.Exercise{
		{ID: 1, Name: "Push-up", Pattern: exercise.PatternPush},
		{ID: 2, Name: "Row", Pattern: exercise.PatternPull},
	}
	out := filterCandidates(pool, &profile.Profile{}, sc, exercise.PhaseMaintenance)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected push pattern excluded, got %+v", out)
	}
}

func TestFilterCandidates_BlockedMuscleGroupExcludesIntersecting(t *testing.T) {
	sc := &rulesengine.SafetyContext{
		ExcludedExerciseIDs: map[int]bool{},
		BlockedMuscleGroups: []string{"chest"},
	}
	pool := []exercise.Exercise{
		{ID: 1, Name: "Bench", TargetMuscles: []string{"chest", "triceps"}},
		{ID: 2, Name: "Squat", TargetMuscles: []string{"quads"}},
	}
	out := filterCandidates(pool, &profile.Profile{}, sc, exercise.PhaseMaintenance)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected chest exercise excluded, got %+v", out)
	}
}

func TestFilterCandidates_EarliestSafePhaseGateBlocksUnclearedExercises(t *testing.T) {
	sc := &rulesengine.SafetyContext{
		ExcludedExerciseIDs:       map[int]bool{},
		RequiresEarliestSafePhase: true,
	}
	pool := []exercise.Exercise{
		{ID: 1, Name: "Overhead Press", EarliestSafePhase: phasePtr(exercise.PhaseLate)},
		{ID: 2, Name: "Leg Press", EarliestSafePhase: phasePtr(exercise.PhaseImmediate)},
	}
	out := filterCandidates(pool, &profile.Profile{}, sc, exercise.PhaseEarly)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only cleared exercise to survive, got %+v", out)
	}
}

func TestFilterCandidates_EquipmentUnavailableExcludes(t *testing.T) {
	sc := &rulesengine.SafetyContext{ExcludedExerciseIDs: map[int]bool{}}
	pool := []exercise.Exercise{
		{ID: 1, Name: "Barbell Squat", Equipment: []string{"barbell"}},
		{ID: 2, Name: "Bodyweight Squat", Equipment: []string{"none"}},
	}
	p := &profile.Profile{Equipment: []string{"dumbbell"}}
	out := filterCandidates(pool, p, sc, exercise.PhaseMaintenance)
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected only bodyweight exercise to survive, got %+v", out)
	}
}

func TestCurrentRecoveryPhase_TakesMostRestrictiveAcrossSurgeries(t *testing.T) {
	now := time.Now()
	p := &profile.Profile{
		Surgeries: []profile.Surgery{
			{Type: profile.SurgeryTopSurgery, Date: now.AddDate(0, 0, -200)},
			{Type: profile.SurgeryBottomSurgery, Date: now.AddDate(0, 0, -7)},
		},
	}
	phase := currentRecoveryPhase(p, now)
	if phase != exercise.PhaseImmediate {
		t.Fatalf("expected most restrictive phase (immediate) across surgeries, got %v", phase)
	}
}

func TestCurrentRecoveryPhase_NoUnhealedSurgeriesReturnsMaintenance(t *testing.T) {
	p := &profile.Profile{}
	if phase := currentRecoveryPhase(p, time.Now()); phase != exercise.PhaseMaintenance {
		t.Fatalf("expected maintenance phase with no surgeries, got %v", phase)
	}
}
