package planassembler

import (
	"context"
	"fmt"
	"time"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/event"
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
	"github.com/waynenilsen/safeworkout/internal/rulesengine"
)

// Assemble builds a seven-day Plan for p starting on startDate, drawing
// candidates from pool and config from cfg. Each day runs its own rules
// evaluation pass (some rules, like the injection-day softener, depend on
// the day's date) before candidate filtering, scoring, selection, parameter
// application, duration-variant fan-out, and checkpoint injection. A day
// that cannot fill its compound slot after a critical block downgrades to
// rest rather than returning an error, per the assembly downgrade path.
// startDate is truncated to midnight in its own location so that identical
// inputs (including startDate) always produce a byte-identical plan.
func Assemble(ctx context.Context, p *profile.Profile, pool []exercise.Exercise, cfg *configstore.Config, bus *event.Bus, planID string, startDate time.Time) (*plan.Plan, error) {
	if p == nil {
		return nil, fmt.Errorf("planassembler: profile is required")
	}

	result := &plan.Plan{
		ID:        planID,
		UserID:    p.UserID,
		StartDate: truncateToDay(startDate),
	}

	for i, kind := range plan.WeeklyRotation {
		dayDate := result.StartDate.AddDate(0, 0, i)
		result.Days[i] = assembleDay(ctx, p, pool, cfg, bus, planID, i, kind, dayDate)
	}

	if bus != nil {
		_ = bus.Publish(ctx, event.NewStateEvent(event.EventPlanGenerated, p.UserID, planID))
	}

	return result, nil
}

// RegenerateDay re-runs assembly for a single day of an existing plan,
// re-evaluating rules against the current profile and pool rather than
// reusing whatever fired when the plan was first generated. The day's
// template kind and date are taken from existing, not recomputed from the
// weekly rotation, so a regenerate call cannot change what kind of day it
// is — only which exercises fill it.
func RegenerateDay(ctx context.Context, p *profile.Profile, pool []exercise.Exercise, cfg *configstore.Config, bus *event.Bus, planID string, existing plan.Day) (*plan.Day, error) {
	if p == nil {
		return nil, fmt.Errorf("planassembler: profile is required")
	}

	day := assembleDay(ctx, p, pool, cfg, bus, planID, existing.DayNumber, existing.Template, existing.Date)

	if bus != nil {
		_ = bus.Publish(ctx, event.NewStateEvent(event.EventDayRegenerated, p.UserID, planID).
			WithPayload(event.PayloadDayNumber, existing.DayNumber))
	}

	return &day, nil
}

func assembleDay(ctx context.Context, p *profile.Profile, pool []exercise.Exercise, cfg *configstore.Config, bus *event.Bus, planID string, dayNumber int, kind plan.TemplateKind, dayDate time.Time) plan.Day {
	day := plan.Day{
		Date:      dayDate,
		DayNumber: dayNumber,
		Template:  kind,
	}

	if kind == plan.TemplateRest {
		return day
	}

	evalCtx := &rules.EvaluationContext{Profile: *p, ExercisePool: pool, CurrentDate: dayDate}
	sc := rulesengine.Evaluate(evalCtx, cfg, bus, p.UserID, planID)

	currentPhase := currentRecoveryPhase(p, dayDate)
	template := plan.Templates[kind]

	filtered := filterCandidates(pool, p, sc, currentPhase)
	if sc.HasCriticalBlock() && !satisfiesCompoundSlot(filtered, template) {
		day.DowngradeReason = "critical safety block left no compound exercises available; downgraded to rest"
		publishDowngrade(bus, p.UserID, planID, dayNumber, day.DowngradeReason)
		return day
	}

	selected := selectExercises(filtered, p.PrimaryGoal, sc.SoftFilters, template.Quota)
	if len(selected) == 0 {
		day.DowngradeReason = "no candidate exercises survived filtering; downgraded to rest"
		publishDowngrade(bus, p.UserID, planID, dayNumber, day.DowngradeReason)
		return day
	}

	day.Variants = buildVariants(ctx, p, template.Defaults, filtered, selected, sc)
	if allVariantsEmpty(day.Variants) {
		day.DowngradeReason = "no duration variant could be built from the selected exercises; downgraded to rest"
		publishDowngrade(bus, p.UserID, planID, dayNumber, day.DowngradeReason)
		day.Variants = nil
	}

	return day
}

func publishDowngrade(bus *event.Bus, userID, planID string, dayNumber int, reason string) {
	if bus == nil {
		return
	}
	_ = bus.Publish(context.Background(), event.NewStateEvent(event.EventDayDowngradedToRest, userID, planID).
		WithPayload(event.PayloadDayNumber, dayNumber).
		WithPayload(event.PayloadReason, reason))
}

func satisfiesCompoundSlot(filtered []exercise.Exercise, template plan.Template) bool {
	if template.Quota.Compound == 0 {
		return true
	}
	for _, ex := range filtered {
		for _, pattern := range template.PrimaryPatterns {
			if ex.Pattern == pattern {
				return true
			}
		}
	}
	return false
}

func allVariantsEmpty(variants map[int]*plan.Workout) bool {
	for _, w := range variants {
		if w != nil {
			return false
		}
	}
	return true
}

// truncateToDay drops the time-of-day component of t, keeping its location,
// so a plan's start date is always midnight of the calendar day the caller
// requested.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
