package planassembler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/rulesengine"
)

// buildVariants fans out one Workout build per session duration the profile
// supports, concurrently. Each variant starts from the common exercise
// selection, then either trims it down (trimToFit) or expands it with
// next-best candidates pulled from the full filtered pool (expandWithSlack)
// to use the time the shorter/longer duration actually allows. Per-variant
// failures are swallowed: a variant that cannot be built (e.g. nothing fits)
// is simply left nil in the returned map, which Day.IsRestDay and the API
// layer both already treat as "unavailable", grounded on the teacher's
// stresstest errgroup fan-out with individual failures returned as nil
// rather than aborting the group.
func buildVariants(ctx context.Context, p *profile.Profile, defaults plan.DefaultSetsReps, filtered, selected []exercise.Exercise, sc *rulesengine.SafetyContext) map[int]*plan.Workout {
	variants := map[int]*plan.Workout{}
	if len(selected) == 0 {
		return variants
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for _, d := range profile.ValidSessionDurations {
		duration := d
		if !p.HasSessionDuration(duration) {
			continue
		}
		g.Go(func() error {
			w := buildWorkoutVariant(duration, defaults, filtered, selected, p.PrimaryGoal, sc)
			mu.Lock()
			variants[duration] = w
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return variants
}

func buildWorkoutVariant(durationMinutes int, defaults plan.DefaultSetsReps, filtered, selected []exercise.Exercise, goal profile.Goal, sc *rulesengine.SafetyContext) *plan.Workout {
	capMinutes := float64(durationMinutes)
	if sc.Modification.MaxWorkoutMinutes != nil && float64(*sc.Modification.MaxWorkoutMinutes) < capMinutes {
		capMinutes = float64(*sc.Modification.MaxWorkoutMinutes)
	}

	instances := applyParameters(selected, defaults, sc.Modification)
	trimmed := trimToFit(instances, capMinutes)
	if len(trimmed) == 0 {
		return nil
	}

	used := make(map[int]bool, len(selected))
	for _, ex := range selected {
		used[ex.ID] = true
	}
	trimmed = expandWithSlack(trimmed, used, filtered, goal, sc, defaults, capMinutes)

	var total float64
	for _, inst := range trimmed {
		total += inst.DurationMinutes
	}

	patternByID := make(map[int]exercise.Pattern, len(filtered))
	for _, ex := range filtered {
		patternByID[ex.ID] = ex.Pattern
	}

	return &plan.Workout{
		Name:         fmt.Sprintf("%d-minute", durationMinutes),
		Exercises:    trimmed,
		TotalMinutes: total,
		Timeline:     buildTimeline(sc.Checkpoints, trimmed, patternByID),
		RulesApplied: auditFor(sc),
	}
}

// expandWithSlack fills leftover time in a longer-duration variant with
// next-best candidates from filtered that weren't already picked by the
// base selection, per the duration-variant step's "expand with next-best
// candidates" option. Candidates are tried in score order and skipped (not
// stopped on) if they don't fit the remaining slack, so a handful of small
// finishers can still land after a big one is skipped.
func expandWithSlack(trimmed []plan.ExerciseInstance, used map[int]bool, filtered []exercise.Exercise, goal profile.Goal, sc *rulesengine.SafetyContext, defaults plan.DefaultSetsReps, capMinutes float64) []plan.ExerciseInstance {
	var total float64
	for _, inst := range trimmed {
		total += inst.DurationMinutes
	}

	var remaining []exercise.Exercise
	for _, ex := range filtered {
		if !used[ex.ID] {
			remaining = append(remaining, ex)
		}
	}
	if len(remaining) == 0 {
		return trimmed
	}

	scored := make([]scoredExercise, 0, len(remaining))
	for _, ex := range remaining {
		scored = append(scored, scoredExercise{exercise: ex, score: score(ex, goal, sc.SoftFilters)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].exercise.ID < scored[j].exercise.ID
	})

	for _, s := range scored {
		candidateInstances := applyParameters([]exercise.Exercise{s.exercise}, defaults, sc.Modification)
		if len(candidateInstances) == 0 {
			continue
		}
		inst := candidateInstances[0]
		if total+inst.DurationMinutes > capMinutes {
			continue
		}
		trimmed = append(trimmed, inst)
		total += inst.DurationMinutes
	}
	return trimmed
}

func auditFor(sc *rulesengine.SafetyContext) []plan.AuditRecord {
	out := make([]plan.AuditRecord, 0, len(sc.Audit))
	for _, a := range sc.Audit {
		out = append(out, plan.AuditRecord{
			RuleID:      a.RuleID,
			Category:    string(a.Category),
			ActionType:  string(a.ActionType),
			UserMessage: a.UserMessage,
			Timestamp:   a.Timestamp,
		})
	}
	return out
}

// trimToFit drops the lowest-priority (last-selected, i.e. lowest-scored)
// exercises until the running total fits within cap minutes, always keeping
// at least the first exercise so a variant never comes back completely empty
// when any candidate survived filtering.
func trimToFit(instances []plan.ExerciseInstance, capMinutes float64) []plan.ExerciseInstance {
	if len(instances) == 0 {
		return nil
	}
	kept := make([]plan.ExerciseInstance, 0, len(instances))
	var total float64
	for _, inst := range instances {
		if len(kept) > 0 && total+inst.DurationMinutes > capMinutes {
			continue
		}
		kept = append(kept, inst)
		total += inst.DurationMinutes
	}
	return kept
}
