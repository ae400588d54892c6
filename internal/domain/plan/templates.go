package plan

import "github.com/waynenilsen/safeworkout/internal/domain/exercise"

// TemplateKind is the day pattern chosen from the weekly rotation.
type TemplateKind string

const (
	TemplateUpperPush     TemplateKind = "UPPER_PUSH"
	TemplateUpperPull     TemplateKind = "UPPER_PULL"
	TemplateLower         TemplateKind = "LOWER"
	TemplateCore          TemplateKind = "CORE"
	TemplateFull          TemplateKind = "FULL"
	TemplateActiveRecovery TemplateKind = "ACTIVE_RECOVERY"
	TemplateRest          TemplateKind = "REST"
)

// SlotQuota is the number of exercises of a given role a template requires.
type SlotQuota struct {
	Compound  int
	Accessory int
	Core      int
}

// Total returns the sum of all slots in the quota.
func (q SlotQuota) Total() int {
	return q.Compound + q.Accessory + q.Core
}

// DefaultSetsReps is the template's baseline sets/reps/rest before any
// modification-bag adjustments are applied.
type DefaultSetsReps struct {
	Sets        int
	Reps        string
	RestSeconds int
	Intensity   exercise.Intensity
}

// Template couples a day pattern to its primary movement patterns, slot
// quota, and default training parameters. Externalized as a data table (per
// the open question on template slot quotas) so a future config-store
// migration can take it over without an assembler rewrite.
type Template struct {
	Kind            TemplateKind
	PrimaryPatterns []exercise.Pattern
	Quota           SlotQuota
	Defaults        DefaultSetsReps
}

// WeeklyRotation is the default seven-day template rotation, indexed by day
// number (0 = start date).
var WeeklyRotation = [7]TemplateKind{
	TemplateUpperPush,
	TemplateUpperPull,
	TemplateLower,
	TemplateCore,
	TemplateFull,
	TemplateActiveRecovery,
	TemplateRest,
}

// Templates maps each TemplateKind to its definition.
var Templates = map[TemplateKind]Template{
	TemplateUpperPush: {
		Kind:            TemplateUpperPush,
		PrimaryPatterns: []exercise.Pattern{exercise.PatternPush},
		Quota:           SlotQuota{Compound: 2, Accessory: 2, Core: 0},
		Defaults:        DefaultSetsReps{Sets: 3, Reps: "8-12", RestSeconds: 90, Intensity: exercise.IntensityModerate},
	},
	TemplateUpperPull: {
		Kind:            TemplateUpperPull,
		PrimaryPatterns: []exercise.Pattern{exercise.PatternPull},
		Quota:           SlotQuota{Compound: 2, Accessory: 2, Core: 0},
		Defaults:        DefaultSetsReps{Sets: 3, Reps: "8-12", RestSeconds: 90, Intensity: exercise.IntensityModerate},
	},
	TemplateLower: {
		Kind:            TemplateLower,
		PrimaryPatterns: []exercise.Pattern{exercise.PatternSquat, exercise.PatternHinge, exercise.PatternLunge},
		Quota:           SlotQuota{Compound: 2, Accessory: 2, Core: 1},
		Defaults:        DefaultSetsReps{Sets: 3, Reps: "6-10", RestSeconds: 120, Intensity: exercise.IntensityModerate},
	},
	TemplateCore: {
		Kind:            TemplateCore,
		PrimaryPatterns: []exercise.Pattern{exercise.PatternCore, exercise.PatternCarry},
		Quota:           SlotQuota{Compound: 0, Accessory: 2, Core: 3},
		Defaults:        DefaultSetsReps{Sets: 3, Reps: "12-15", RestSeconds: 60, Intensity: exercise.IntensityLight},
	},
	TemplateFull: {
		Kind: TemplateFull,
		PrimaryPatterns: []exercise.Pattern{
			exercise.PatternPush, exercise.PatternPull, exercise.PatternSquat, exercise.PatternHinge,
		},
		Quota:    SlotQuota{Compound: 2, Accessory: 2, Core: 1},
		Defaults: DefaultSetsReps{Sets: 3, Reps: "8-12", RestSeconds: 90, Intensity: exercise.IntensityModerate},
	},
	TemplateActiveRecovery: {
		Kind:            TemplateActiveRecovery,
		PrimaryPatterns: []exercise.Pattern{exercise.PatternMobility, exercise.PatternStretch, exercise.PatternCardio},
		Quota:           SlotQuota{Compound: 0, Accessory: 3, Core: 0},
		Defaults:        DefaultSetsReps{Sets: 2, Reps: "10-15", RestSeconds: 45, Intensity: exercise.IntensityLight},
	},
	TemplateRest: {
		Kind:            TemplateRest,
		PrimaryPatterns: nil,
		Quota:           SlotQuota{},
		Defaults:        DefaultSetsReps{},
	},
}
