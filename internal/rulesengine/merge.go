// Package rulesengine evaluates the safety rule tables against a profile
// and exercise pool, producing a SafetyContext the plan assembler consumes.
// Evaluation is two-phase: a pure predicate pass collects which rules
// fired, then each fired rule's action is resolved (which may read config).
package rulesengine

import "github.com/waynenilsen/safeworkout/internal/domain/rules"

// MergeParameters folds mod into bag using the most-restrictive-wins
// algebra: each key present in mod is combined with any existing value in
// bag via a key-specific direction (max, min, argmin, or first-wins). Keys
// mod does not set are left untouched in bag. The result is always at
// least as restrictive as either input on every key.
func MergeParameters(bag, mod rules.ParameterModification) rules.ParameterModification {
	out := bag

	out.VolumeReductionPercent = mergeMaxFloat(out.VolumeReductionPercent, mod.VolumeReductionPercent)
	out.RestSecondsIncrease = mergeMaxFloat(out.RestSecondsIncrease, mod.RestSecondsIncrease)
	out.RecoveryMultiplier = mergeMaxFloat(out.RecoveryMultiplier, mod.RecoveryMultiplier)
	out.RestSecondsReduction = mergeMaxFloat(out.RestSecondsReduction, mod.RestSecondsReduction)

	out.ProgressiveOverloadRate = mergeMinFloat(out.ProgressiveOverloadRate, mod.ProgressiveOverloadRate)
	out.LowerBodyVolumePercent = mergeMinFloat(out.LowerBodyVolumePercent, mod.LowerBodyVolumePercent)
	out.UpperBodyVolumePercent = mergeMinFloat(out.UpperBodyVolumePercent, mod.UpperBodyVolumePercent)
	out.MaxSets = mergeMinInt(out.MaxSets, mod.MaxSets)
	out.MaxWorkoutMinutes = mergeMinInt(out.MaxWorkoutMinutes, mod.MaxWorkoutMinutes)

	out.SuggestedIntensity = mergeArgMinIntensity(out.SuggestedIntensity, mod.SuggestedIntensity)

	out.MaxWeight = mergeFirstWinsString(out.MaxWeight, mod.MaxWeight)
	out.RepRange = mergeFirstWinsString(out.RepRange, mod.RepRange)

	return out
}

// mergeMaxFloat implements the "max" direction: larger is more restrictive.
func mergeMaxFloat(existing, incoming *float64) *float64 {
	if incoming == nil {
		return existing
	}
	if existing == nil || *incoming > *existing {
		return incoming
	}
	return existing
}

// mergeMinFloat implements the "min" direction: smaller is more restrictive.
func mergeMinFloat(existing, incoming *float64) *float64 {
	if incoming == nil {
		return existing
	}
	if existing == nil || *incoming < *existing {
		return incoming
	}
	return existing
}

func mergeMinInt(existing, incoming *int) *int {
	if incoming == nil {
		return existing
	}
	if existing == nil || *incoming < *existing {
		return incoming
	}
	return existing
}

// mergeArgMinIntensity implements the "argmin" direction over the ordered
// intensity scale: the lower ordinal (lighter intensity) is more restrictive.
func mergeArgMinIntensity(existing, incoming *rules.IntensityLevel) *rules.IntensityLevel {
	if incoming == nil {
		return existing
	}
	if existing == nil || *incoming < *existing {
		return incoming
	}
	return existing
}

// mergeFirstWinsString implements the "first-wins" direction for
// non-comparable categorical strings.
func mergeFirstWinsString(existing, incoming *string) *string {
	if existing != nil {
		return existing
	}
	return incoming
}
