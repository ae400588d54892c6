package planassembler

import (
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// secondsPerSetWork is the assumed working time per set, used to estimate an
// exercise instance's contribution to total workout minutes.
const secondsPerSetWork = 45.0

var lowerBodyMuscles = map[string]bool{
	"quads": true, "hamstrings": true, "glutes": true, "calves": true,
}

var upperBodyMuscles = map[string]bool{
	"chest": true, "back": true, "shoulders": true, "biceps": true, "triceps": true,
}

// applyParameters turns selected exercises into ExerciseInstances, applying
// the merged modification bag on top of the template's baseline sets/reps/
// rest, per the assembler's parameter-application step.
func applyParameters(selected []exercise.Exercise, defaults plan.DefaultSetsReps, mod rules.ParameterModification) []plan.ExerciseInstance {
	instances := make([]plan.ExerciseInstance, 0, len(selected))
	for _, c := range selected {
		sets := defaults.Sets
		rest := defaults.RestSeconds
		reps := defaults.Reps

		if mod.VolumeReductionPercent != nil {
			sets = reduceByPercent(sets, *mod.VolumeReductionPercent)
		}
		if isLowerBody(c.TargetMuscles) && mod.LowerBodyVolumePercent != nil {
			sets = reduceByPercent(sets, 100-*mod.LowerBodyVolumePercent)
		}
		if isUpperBody(c.TargetMuscles) && mod.UpperBodyVolumePercent != nil {
			sets = reduceByPercent(sets, 100-*mod.UpperBodyVolumePercent)
		}
		if mod.MaxSets != nil && sets > *mod.MaxSets {
			sets = *mod.MaxSets
		}
		if sets < 1 {
			sets = 1
		}

		if mod.RestSecondsIncrease != nil {
			rest += int(*mod.RestSecondsIncrease)
		}
		if mod.RestSecondsReduction != nil {
			rest -= int(*mod.RestSecondsReduction)
		}
		if mod.RecoveryMultiplier != nil {
			rest = int(float64(rest) * *mod.RecoveryMultiplier)
		}
		if rest < 15 {
			rest = 15
		}

		if mod.RepRange != nil {
			reps = *mod.RepRange
		}

		var notes string
		if mod.MaxWeight != nil {
			notes = fmt.Sprintf("cap weight at %s", *mod.MaxWeight)
		}

		duration := float64(sets) * (float64(rest) + secondsPerSetWork) / 60.0

		instances = append(instances, plan.ExerciseInstance{
			ExerciseID:      c.ID,
			Name:            c.Name,
			Sets:            sets,
			Reps:            reps,
			RestSeconds:     rest,
			Notes:           notes,
			DurationMinutes: duration,
		})
	}
	return instances
}

func reduceByPercent(base int, percent float64) int {
	if percent <= 0 {
		return base
	}
	if percent >= 100 {
		return 1
	}
	reduced := float64(base) * (1 - percent/100)
	rounded := int(reduced + 0.5)
	if rounded < 1 {
		rounded = 1
	}
	return rounded
}

func isLowerBody(muscles []string) bool {
	for _, m := range muscles {
		if lowerBodyMuscles[m] {
			return true
		}
	}
	return false
}

func isUpperBody(muscles []string) bool {
	for _, m := range muscles {
		if upperBodyMuscles[m] {
			return true
		}
	}
	return false
}
