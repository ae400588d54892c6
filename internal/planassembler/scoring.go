package planassembler

import (
	"sort"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

const (
	goalEmphasisBonus       = 0.25
	goalEmphasisBaseline    = 1.0
	preferTagMultiplier     = 1.15
	deprioritizeMultiplier  = 0.65
	neutralSoftFilterFactor = 1.0
)

// scoredExercise pairs a candidate with its computed score for selection.
type scoredExercise struct {
	exercise exercise.Exercise
	score    float64
}

// score computes effectiveness_rating × goal_emphasis_weight ×
// soft_filter_modifier for one candidate, per the scoring step.
func score(ex exercise.Exercise, goal profile.Goal, softFilters []rules.SoftFilterAction) float64 {
	goalWeight := goalEmphasisBaseline
	if ex.EmphasizesGoal(goal) {
		goalWeight += goalEmphasisBonus
	}

	softModifier := neutralSoftFilterFactor
	for _, f := range softFilters {
		if matchesTags(ex.DysphoriaTags, f.PreferTags) {
			softModifier *= preferTagMultiplier
		}
		if matchesTags(ex.DysphoriaTags, f.DeprioritizeTags) {
			softModifier *= deprioritizeMultiplier
		}
	}

	return ex.EffectivenessRating * goalWeight * softModifier
}

func matchesTags(have, want []string) bool {
	if len(have) == 0 || len(want) == 0 {
		return false
	}
	set := make(map[string]bool, len(want))
	for _, w := range want {
		set[w] = true
	}
	for _, h := range have {
		if set[h] {
			return true
		}
	}
	return false
}

// selectExercises greedily picks exercises by score, honoring the
// template's slot quota and a per-muscle-group cap, tie-breaking by
// effectiveness then by stable id. Compound/accessory/core classification
// is approximated from pattern: squat/hinge/lunge/push/pull are compound,
// core is its own slot, everything else is accessory.
func selectExercises(candidates []exercise.Exercise, goal profile.Goal, softFilters []rules.SoftFilterAction, quota plan.SlotQuota) []exercise.Exercise {
	scored := make([]scoredExercise, 0, len(candidates))
	for _, ex := range candidates {
		scored = append(scored, scoredExercise{exercise: ex, score: score(ex, goal, softFilters)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].exercise.EffectivenessRating != scored[j].exercise.EffectivenessRating {
			return scored[i].exercise.EffectivenessRating > scored[j].exercise.EffectivenessRating
		}
		return scored[i].exercise.ID < scored[j].exercise.ID
	})

	const muscleGroupCap = 2
	muscleCounts := map[string]int{}
	remaining := map[string]int{
		"compound":  quota.Compound,
		"accessory": quota.Accessory,
		"core":      quota.Core,
	}

	var selected []exercise.Exercise
	for _, s := range scored {
		slot := slotFor(s.exercise.Pattern)
		if remaining[slot] <= 0 {
			continue
		}
		if exceedsMuscleGroupCap(s.exercise.TargetMuscles, muscleCounts, muscleGroupCap) {
			continue
		}
		selected = append(selected, s.exercise)
		remaining[slot]--
		for _, m := range s.exercise.TargetMuscles {
			muscleCounts[m]++
		}
		if len(selected) >= quota.Total() {
			break
		}
	}
	return selected
}

func slotFor(p exercise.Pattern) string {
	switch p {
	case exercise.PatternCore:
		return "core"
	case exercise.PatternSquat, exercise.PatternHinge, exercise.PatternLunge, exercise.PatternPush, exercise.PatternPull:
		return "compound"
	default:
		return "accessory"
	}
}

func exceedsMuscleGroupCap(muscles []string, counts map[string]int, cap int) bool {
	for _, m := range muscles {
		if counts[m] >= cap {
			return true
		}
	}
	return false
}
