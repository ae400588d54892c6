package rulesengine

import (
	"context"
	"testing"
	"time"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/event"
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

func baseProfile() profile.Profile {
	return profile.Profile{
		UserID:      "user-1",
		Identity:    profile.IdentityTransMasc,
		PrimaryGoal: profile.GoalMasculinization,
	}
}

func TestEvaluate_BindingAceBandageExcludesUnsafeExercises(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	p.Binding = profile.Binding{Binds: true, Type: profile.BinderAceBandage, DurationHours: 4}

	pool := []exercise.Exercise{
		{ID: 1, Name: "Push-up", Pattern: exercise.PatternPush, BinderAware: false, HeavyBindingSafe: false},
		{ID: 2, Name: "Walk", Pattern: exercise.PatternCardio, BinderAware: true, HeavyBindingSafe: true},
	}
	ctx := &rules.EvaluationContext{Profile: p, ExercisePool: pool, CurrentDate: time.Now()}

	sc := Evaluate(ctx, cfg, event.NewBus(), "user-1", "plan-1")
	if !sc.ExcludedExerciseIDs[1] {
		t.Fatalf("expected exercise 1 excluded, got excluded set %+v", sc.ExcludedExerciseIDs)
	}
}

func TestEvaluate_PostOpTopSurgeryEarlyPhaseBlocksChest(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	p.Surgeries = []profile.Surgery{{Type: profile.SurgeryTopSurgery, Date: time.Now().AddDate(0, 0, -14)}}

	ctx := &rules.EvaluationContext{Profile: p, CurrentDate: time.Now()}
	sc := Evaluate(ctx, cfg, nil, "user-1", "plan-1")

	found := false
	for _, g := range sc.BlockedMuscleGroups {
		if g == "chest" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected chest to be blocked at 2 weeks post top surgery, got %+v", sc.BlockedMuscleGroups)
	}
}

func TestEvaluate_HRTInjectionDaySoftens(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	now := time.Now()
	p.HRT = profile.HRTStatus{Type: profile.HRTTestosterone, Months: 6, Days: []time.Weekday{now.Weekday()}}

	ctx := &rules.EvaluationContext{Profile: p, CurrentDate: now}
	sc := Evaluate(ctx, cfg, nil, "user-1", "plan-1")

	if sc.Modification.SuggestedIntensity == nil || *sc.Modification.SuggestedIntensity != rules.IntensityLight {
		t.Errorf("expected injection day to set light suggested intensity, got %+v", sc.Modification.SuggestedIntensity)
	}
}

func TestEvaluate_DysphoriaSwimmingExcludesViaTags(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	p.DysphoriaTriggers = []profile.DysphoriaTrigger{profile.TriggerSwimming}

	ctx := &rules.EvaluationContext{Profile: p, CurrentDate: time.Now()}
	sc := Evaluate(ctx, cfg, nil, "user-1", "plan-1")

	found := false
	for _, tag := range sc.DysphoriaExcludeTags {
		if tag == "swim" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected swim dysphoria exclude tag, got %+v", sc.DysphoriaExcludeTags)
	}
}

func TestEvaluate_PanickingPredicateIsRecoveredAsDiagnostic(t *testing.T) {
	cfg := defaultConfigForTest()
	p := baseProfile()
	ctx := &rules.EvaluationContext{Profile: p, CurrentDate: time.Now()}
	sc := newSafetyContext()

	panicky := rules.Rule{
		ID:       "test.panics",
		Category: rules.CategoryBinding,
		Condition: func(ctx *rules.EvaluationContext) bool {
			panic("boom")
		},
	}
	evaluateRule(panicky, ctx, sc, nil, "user-1", "plan-1")

	if len(sc.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic from recovered panic, got %d", len(sc.Diagnostics))
	}
	_ = cfg
}

func defaultConfigForTest() *configstore.Config {
	src := &fakeSourceForEval{}
	loader := configstore.NewLoader(src, nil)
	return loader.Load(context.Background())
}

type fakeSourceForEval struct{}

func (f *fakeSourceForEval) FetchRows(ctx context.Context) ([]configstore.Row, error) {
	return nil, nil
}
