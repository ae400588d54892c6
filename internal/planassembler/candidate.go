// Package planassembler builds a seven-day Plan from a profile, exercise
// library, and the SafetyContext a rules-engine evaluation pass produced.
// The pipeline is template selection, candidate filtering, scoring, greedy
// selection, parameter application, per-duration variant fan-out, and
// checkpoint-timeline injection.
package planassembler

import (
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/rulesengine"
)

// filterCandidates applies, in order, the excluded-exercise set, blocked
// patterns and muscle groups, contraindication and dysphoria tags, the
// post-op earliest-safe-phase gate, and equipment availability, per the
// assembler's candidate-filtering step.
func filterCandidates(pool []exercise.Exercise, p *profile.Profile, sc *rulesengine.SafetyContext, currentPhase exercise.Phase) []exercise.Exercise {
	var out []exercise.Exercise
	for _, ex := range pool {
		if sc.ExcludedExerciseIDs[ex.ID] {
			continue
		}
		if matchesAny(string(ex.Pattern), sc.BlockedPatterns) {
			continue
		}
		if intersectsAny(ex.TargetMuscles, sc.BlockedMuscleGroups) {
			continue
		}
		if len(sc.ContraindicationTags) > 0 && ex.HasContraindication(sc.ContraindicationTags) {
			continue
		}
		if len(sc.DysphoriaExcludeTags) > 0 && ex.HasDysphoriaTag(sc.DysphoriaExcludeTags) {
			continue
		}
		if sc.RequiresEarliestSafePhase && !ex.ClearedForPhase(currentPhase) {
			continue
		}
		if !ex.EquipmentSatisfiedBy(p.Equipment) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func matchesAny(pattern string, blocked []string) bool {
	for _, b := range blocked {
		if pattern == normalizePattern(b) {
			return true
		}
	}
	return false
}

// normalizePattern uppercases a lower/snake-case pattern name from config or
// a rule literal so it compares equal to exercise.Pattern's enum values.
func normalizePattern(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 32
		}
		out[i] = c
	}
	return string(out)
}

func intersectsAny(muscles, blocked []string) bool {
	if len(muscles) == 0 || len(blocked) == 0 {
		return false
	}
	set := make(map[string]bool, len(blocked))
	for _, b := range blocked {
		set[b] = true
	}
	for _, m := range muscles {
		if set[m] {
			return true
		}
	}
	return false
}

// weeksToPhase maps weeks-post-op onto the catalog's ordered recovery-phase
// enum. No config row carries these thresholds (spec.md is silent on the
// exact weeks-to-phase boundary; EarliestSafePhase is a catalog property,
// not a per-surgery config value), so a single fixed schedule applies
// across all surgery types — a deliberately conservative simplification
// recorded as a design decision rather than left as an open question.
func weeksToPhase(weeks int) exercise.Phase {
	switch {
	case weeks < 4:
		return exercise.PhaseImmediate
	case weeks < 8:
		return exercise.PhaseEarly
	case weeks < 12:
		return exercise.PhaseMid
	case weeks < 24:
		return exercise.PhaseLate
	default:
		return exercise.PhaseMaintenance
	}
}

// currentRecoveryPhase computes the most restrictive (earliest) recovery
// phase across all of a profile's unhealed surgeries, per the multiple-
// surgery union policy: the exercise gate must respect the least-healed
// surgery, not just the most recent one.
func currentRecoveryPhase(p *profile.Profile, now time.Time) exercise.Phase {
	phase := exercise.PhaseMaintenance
	found := false
	for _, s := range p.UnhealedSurgeries() {
		weeks := profile.WeeksPostOp(s, now)
		candidate := weeksToPhase(weeks)
		if !found || candidate < phase {
			phase = candidate
			found = true
		}
	}
	if !found {
		return exercise.PhaseMaintenance
	}
	return phase
}
