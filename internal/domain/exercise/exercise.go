// Package exercise provides domain logic for the Exercise catalog entity.
// This package contains pure business logic with no database dependencies,
// making it testable in isolation.
package exercise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/waynenilsen/safeworkout/internal/domain/profile"
)

// Pattern is the movement classification of an exercise.
type Pattern string

const (
	PatternPush       Pattern = "PUSH"
	PatternPull       Pattern = "PULL"
	PatternSquat      Pattern = "SQUAT"
	PatternHinge      Pattern = "HINGE"
	PatternLunge      Pattern = "LUNGE"
	PatternCarry      Pattern = "CARRY"
	PatternCore       Pattern = "CORE"
	PatternCardio     Pattern = "CARDIO"
	PatternMobility   Pattern = "MOBILITY"
	PatternStretch    Pattern = "STRETCH"
	PatternPlyometric Pattern = "PLYOMETRIC"
)

// Intensity is an ordered scale used by both exercise defaults and the
// merged parameter bag's suggested-intensity key.
type Intensity int

const (
	IntensityVeryLight Intensity = iota
	IntensityLight
	IntensityModerate
	IntensityHigh
	IntensityVeryHigh
)

// ParseIntensity converts a lowercase, hyphenated intensity string (as it
// appears in config rows) into an Intensity. Unrecognized strings return
// IntensityModerate, the conservative middle default.
func ParseIntensity(s string) Intensity {
	switch s {
	case "very-light", "very_light":
		return IntensityVeryLight
	case "light":
		return IntensityLight
	case "moderate":
		return IntensityModerate
	case "high":
		return IntensityHigh
	case "very-high", "very_high":
		return IntensityVeryHigh
	default:
		return IntensityModerate
	}
}

// Phase is the ordered recovery-phase enum gating post-op exercise admissibility.
type Phase int

const (
	PhaseImmediate Phase = iota
	PhaseEarly
	PhaseMid
	PhaseLate
	PhaseMaintenance
)

// ParsePhase converts a lowercase phase string into a Phase. Unrecognized
// strings return PhaseMaintenance, i.e. "not yet cleared for anything earlier",
// the conservative reading of an unparseable value.
func ParsePhase(s string) Phase {
	switch s {
	case "immediate":
		return PhaseImmediate
	case "early":
		return PhaseEarly
	case "mid":
		return PhaseMid
	case "late":
		return PhaseLate
	case "maintenance":
		return PhaseMaintenance
	default:
		return PhaseMaintenance
	}
}

// Validation errors for Exercise fields.
var (
	ErrIDRequired          = errors.New("exercise id must be positive")
	ErrNameRequired        = errors.New("exercise name is required")
	ErrPatternInvalid      = errors.New("exercise pattern is not a recognized value")
	ErrEffectivenessRange  = errors.New("effectiveness rating must be between 0 and 1 inclusive")
	ErrEarliestPhaseMissing = errors.New("earliest safe phase is required for exercises eligible for post-op users")
)

// Exercise is a single catalog entry: a candidate movement the assembler may
// select for a workout.
type Exercise struct {
	ID                  int
	Name                string
	Pattern             Pattern
	TargetMuscles       []string
	Equipment           []string
	Difficulty          string
	BinderAware         bool
	HeavyBindingSafe    bool
	PelvicFloorSafe     bool
	Contraindications   []string
	DysphoriaTags       []string
	// EarliestSafePhase is a pointer so that "absent" is distinguishable from
	// PhaseImmediate: an exercise with no value set is treated as "not
	// cleared" for any post-op user, per the catalog invariant.
	EarliestSafePhase   *Phase
	EffectivenessRating float64
	GenderGoalEmphasis  []profile.Goal
}

// Validate checks the exercise's own invariants. EligibleForPostOp controls
// whether EarliestSafePhase is required: the catalog invariant only demands
// it for exercises that can appear for a post-op user, which by design is
// every exercise unless explicitly exempted (e.g. pure stretches the rules
// engine never gates on recovery phase).
func (e *Exercise) Validate(eligibleForPostOp bool) error {
	if e.ID <= 0 {
		return ErrIDRequired
	}
	if e.Name == "" {
		return ErrNameRequired
	}
	if !validPattern(e.Pattern) {
		return ErrPatternInvalid
	}
	if e.EffectivenessRating < 0 || e.EffectivenessRating > 1 {
		return fmt.Errorf("%w: got %f", ErrEffectivenessRange, e.EffectivenessRating)
	}
	if eligibleForPostOp && e.EarliestSafePhase == nil {
		return ErrEarliestPhaseMissing
	}
	return nil
}

func validPattern(p Pattern) bool {
	switch p {
	case PatternPush, PatternPull, PatternSquat, PatternHinge, PatternLunge,
		PatternCarry, PatternCore, PatternCardio, PatternMobility, PatternStretch,
		PatternPlyometric:
		return true
	}
	return false
}

// HasContraindication reports whether the exercise carries any of the given tags.
func (e *Exercise) HasContraindication(tags []string) bool {
	return intersects(e.Contraindications, tags)
}

// HasDysphoriaTag reports whether the exercise carries any of the given tags.
func (e *Exercise) HasDysphoriaTag(tags []string) bool {
	return intersects(e.DysphoriaTags, tags)
}

// EmphasizesGoal reports whether the exercise's gender-goal emphasis includes g.
func (e *Exercise) EmphasizesGoal(g profile.Goal) bool {
	for _, goal := range e.GenderGoalEmphasis {
		if goal == g {
			return true
		}
	}
	return false
}

// ClearedForPhase reports whether the exercise's EarliestSafePhase has been
// reached by the given current phase. An exercise with no EarliestSafePhase
// is never cleared.
func (e *Exercise) ClearedForPhase(current Phase) bool {
	if e.EarliestSafePhase == nil {
		return false
	}
	return current >= *e.EarliestSafePhase
}

// NormalizeEquipment lower-cases and deduplicates a list of equipment
// strings, preserving first-seen order. Profile and exercise loaders call
// this so that "Dumbbell", "dumbbell", and "DUMBBELL" all compare equal.
func NormalizeEquipment(items []string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		norm := strings.ToLower(strings.TrimSpace(item))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}

// EquipmentSatisfiedBy reports whether all of the exercise's required
// equipment is present in the available set. An empty or "none" equipment
// list is always satisfied (bodyweight). Comparison is case-insensitive:
// both sides are normalized before matching.
func (e *Exercise) EquipmentSatisfiedBy(available []string) bool {
	if len(e.Equipment) == 0 {
		return true
	}
	have := make(map[string]bool, len(available))
	for _, a := range NormalizeEquipment(available) {
		have[a] = true
	}
	for _, req := range NormalizeEquipment(e.Equipment) {
		if req == "none" {
			continue
		}
		if !have[req] {
			return false
		}
	}
	return true
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if set[v] {
			return true
		}
	}
	return false
}
