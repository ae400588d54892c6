// Package configstore presents a typed, complete config object to the rules
// engine and hides the backing store behind a cache, per-type phase tables
// for HRT and post-operative recovery, binding packs, and dysphoria
// handling strategies. The loader never fails its caller: an unreachable
// store falls back to the last known good config, or conservative built-in
// defaults if none was ever loaded.
package configstore

import (
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// PhaseConfig is one entry in an HRT or post-operative phase table: a
// half-open week/month interval paired with the parameter and categorical
// adjustments that apply while the profile is inside it.
type PhaseConfig struct {
	// Start/End (weeks for post-op rows, months for HRT rows) bound the
	// half-open interval [Start, End) this phase governs.
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	BlockedPatterns     []string                    `json:"blockedPatterns,omitempty"`
	BlockedMuscleGroups []string                    `json:"blockedMuscleGroups,omitempty"`
	Modification        rules.ParameterModification `json:"modification"`
}

// Contains reports whether v falls in this phase's half-open interval.
func (p PhaseConfig) Contains(v float64) bool {
	return v >= p.Start && v < p.End
}

// HasCriticalExclusions reports whether this phase carries a categorical
// block rather than just parameter adjustments — the post-op engine uses
// this to decide whether a phase derives a "critical" or "high" severity rule.
func (p PhaseConfig) HasCriticalExclusions() bool {
	return len(p.BlockedPatterns) > 0 || len(p.BlockedMuscleGroups) > 0
}

// BindingConfig is the parameter pack and thresholds associated with one
// binder type.
type BindingConfig struct {
	Modification             rules.ParameterModification `json:"modification"`
	LongDurationThresholdHrs int                         `json:"longDurationThresholdHrs"`
	LongDurationModification rules.ParameterModification `json:"longDurationModification"`
	OverheadThresholdHrs     int                         `json:"overheadThresholdHrs"`
	OverheadVolumeReduction  rules.ParameterModification `json:"overheadVolumeReduction"`
}

// DysphoriaConfig is the handling strategy for one dysphoria trigger.
type DysphoriaConfig struct {
	// Strategy is either "EXCLUDE" or "SOFT".
	Strategy         string   `json:"strategy"`
	ExcludeTags      []string `json:"excludeTags,omitempty"`
	PreferTags       []string `json:"preferTags,omitempty"`
	DeprioritizeTags []string `json:"deprioritizeTags,omitempty"`
}

const (
	DysphoriaStrategyExclude = "EXCLUDE"
	DysphoriaStrategySoft    = "SOFT"
)

// Config is the normalized, typed object the rules engine reads. It holds
// one phase table per HRT type, one phase table per surgery type, one
// binding pack per binder type, and one dysphoria config per trigger.
type Config struct {
	HRTEstrogenPhases     []PhaseConfig
	HRTTestosteronePhases []PhaseConfig
	HRTDualPhases         []PhaseConfig

	// DualBodyDistribution is the parameter adjustment applied to dual-HRT
	// profiles after three months, keyed by the profile's primary goal
	// (feminization lower-emphasis, masculinization upper-emphasis).
	DualBodyDistribution map[profile.Goal]rules.ParameterModification

	PostOpPhases map[profile.SurgeryType][]PhaseConfig

	BindingPacks map[profile.BinderType]BindingConfig

	DysphoriaConfigs map[profile.DysphoriaTrigger]DysphoriaConfig

	// BindingDurationThresholdHrs is the default long-duration-wear
	// threshold used when a binder-specific override is absent.
	BindingDurationThresholdHrs int
}

// HrtPhase returns the unique phase whose half-open month interval contains
// months, or nil if none matches.
func (c *Config) HrtPhase(hrtType profile.HRTType, months int) *PhaseConfig {
	var table []PhaseConfig
	switch hrtType {
	case profile.HRTEstrogen:
		table = c.HRTEstrogenPhases
	case profile.HRTTestosterone:
		table = c.HRTTestosteronePhases
	case profile.HRTBoth:
		table = c.HRTDualPhases
	default:
		return nil
	}
	return findPhase(table, float64(months))
}

// Binding looks up the parameter pack for a binder type, or nil if unconfigured.
func (c *Config) Binding(kind profile.BinderType) *BindingConfig {
	b, ok := c.BindingPacks[kind]
	if !ok {
		return nil
	}
	return &b
}

// PostOp returns the ordered phase list for a surgery type.
func (c *Config) PostOp(surgery profile.SurgeryType) []PhaseConfig {
	return c.PostOpPhases[surgery]
}

// Dysphoria returns the handling config for a trigger, or nil if unconfigured.
func (c *Config) Dysphoria(trigger profile.DysphoriaTrigger) *DysphoriaConfig {
	d, ok := c.DysphoriaConfigs[trigger]
	if !ok {
		return nil
	}
	return &d
}

func findPhase(table []PhaseConfig, v float64) *PhaseConfig {
	for i := range table {
		if table[i].Contains(v) {
			return &table[i]
		}
	}
	return nil
}
