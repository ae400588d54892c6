package planassembler

import (
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

// every90MinutesInterval is the interval the binder-break checkpoint repeats
// at, expressed in minutes to match ExerciseInstance.DurationMinutes.
const every90MinutesInterval = 90.0

// isStrengthPattern reports whether p belongs to the "strength-pattern"
// class before_strength checkpoints anchor on: every resistance pattern
// except cardio, plyometric, mobility and stretch.
func isStrengthPattern(p exercise.Pattern) bool {
	switch p {
	case exercise.PatternPush, exercise.PatternPull, exercise.PatternSquat, exercise.PatternHinge,
		exercise.PatternLunge, exercise.PatternCarry, exercise.PatternCore:
		return true
	}
	return false
}

func isCardioPattern(p exercise.Pattern) bool {
	return p == exercise.PatternCardio
}

// firstMatchingIndex returns the index of the first exercise instance whose
// pattern (looked up via patternByID) satisfies match, or fallback if none
// match.
func firstMatchingIndex(exercises []plan.ExerciseInstance, patternByID map[int]exercise.Pattern, match func(exercise.Pattern) bool, fallback int) int {
	for i, inst := range exercises {
		if match(patternByID[inst.ExerciseID]) {
			return i
		}
	}
	return fallback
}

// buildTimeline resolves a SafetyContext's RequiredCheckpoints into positions
// within a workout's exercise list, per the checkpoint-timeline-injector step.
// WorkoutStart lands at the front of the list; BeforeStrength/BeforeCardio
// land immediately before the first exercise matching the trigger's pattern
// class (falling back to the front if the workout has none); Every90Minutes
// repeats at each 90-minute boundary the cumulative duration crosses;
// CoolDown and WorkoutCompletion land after the last exercise.
func buildTimeline(required []plan.RequiredCheckpoint, exercises []plan.ExerciseInstance, patternByID map[int]exercise.Pattern) plan.Timeline {
	var checkpoints []plan.Checkpoint
	tail := len(exercises)

	for _, rc := range required {
		switch rc.Trigger {
		case plan.TriggerWorkoutStart:
			checkpoints = append(checkpoints, toCheckpoint(rc, 0))
		case plan.TriggerBeforeStrength:
			pos := firstMatchingIndex(exercises, patternByID, isStrengthPattern, 0)
			checkpoints = append(checkpoints, toCheckpoint(rc, pos))
		case plan.TriggerBeforeCardio:
			pos := firstMatchingIndex(exercises, patternByID, isCardioPattern, 0)
			checkpoints = append(checkpoints, toCheckpoint(rc, pos))
		case plan.TriggerEvery90Minutes:
			checkpoints = append(checkpoints, every90MinutesCheckpoints(rc, exercises)...)
		case plan.TriggerCoolDown, plan.TriggerWorkoutCompletion:
			checkpoints = append(checkpoints, toCheckpoint(rc, tail))
		default:
			checkpoints = append(checkpoints, toCheckpoint(rc, 0))
		}
	}

	return plan.Timeline{Checkpoints: checkpoints}
}

func toCheckpoint(rc plan.RequiredCheckpoint, position int) plan.Checkpoint {
	return plan.Checkpoint{
		Type:     rc.Type,
		Trigger:  rc.Trigger,
		Message:  rc.Message,
		Severity: rc.Severity,
		Position: position,
	}
}

func every90MinutesCheckpoints(rc plan.RequiredCheckpoint, exercises []plan.ExerciseInstance) []plan.Checkpoint {
	var out []plan.Checkpoint
	var elapsed float64
	nextBoundary := every90MinutesInterval
	for i, inst := range exercises {
		elapsed += inst.DurationMinutes
		if elapsed >= nextBoundary {
			out = append(out, toCheckpoint(rc, i+1))
			nextBoundary += every90MinutesInterval
		}
	}
	return out
}
