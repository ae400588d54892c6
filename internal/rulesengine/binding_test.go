package rulesengine

import (
	"testing"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

func TestEvaluate_AceBandageExcludesPlyometricExercises(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	p.Binding = profile.Binding{Binds: true, Type: profile.BinderAceBandage, DurationHours: 4}

	pool := []exercise.Exercise{
		{ID: 1, Name: "Box Jump", Pattern: exercise.PatternPlyometric, BinderAware: true, HeavyBindingSafe: true},
		{ID: 2, Name: "Walk", Pattern: exercise.PatternCardio, BinderAware: true, HeavyBindingSafe: true, Difficulty: "light"},
	}
	ctx := &rules.EvaluationContext{Profile: p, ExercisePool: pool, CurrentDate: time.Now()}

	sc := Evaluate(ctx, cfg, nil, "user-1", "plan-1")
	if !sc.ExcludedExerciseIDs[1] {
		t.Fatalf("expected plyometric exercise 1 excluded for ace-bandage binder, got %+v", sc.ExcludedExerciseIDs)
	}
	if sc.ExcludedExerciseIDs[2] {
		t.Fatalf("did not expect low-difficulty cardio exercise 2 excluded, got %+v", sc.ExcludedExerciseIDs)
	}
}

func TestEvaluate_DIYBinderExcludesPlyometricExercises(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	p.Binding = profile.Binding{Binds: true, Type: profile.BinderDIY, DurationHours: 2}

	pool := []exercise.Exercise{
		{ID: 1, Name: "Burpee", Pattern: exercise.PatternPlyometric, BinderAware: true, HeavyBindingSafe: true},
	}
	ctx := &rules.EvaluationContext{Profile: p, ExercisePool: pool, CurrentDate: time.Now()}

	sc := Evaluate(ctx, cfg, nil, "user-1", "plan-1")
	if !sc.ExcludedExerciseIDs[1] {
		t.Fatalf("expected plyometric exercise excluded for DIY binder, got %+v", sc.ExcludedExerciseIDs)
	}
}
