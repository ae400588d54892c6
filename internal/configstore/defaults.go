package configstore

import (
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

func floatPtr(f float64) *float64              { return &f }
func intPtr(i int) *int                        { return &i }
func intensityPtr(i rules.IntensityLevel) *rules.IntensityLevel { return &i }

// builtinDefaults is the config the loader falls back to when the backing
// store has never produced a successful load. Every parameter pack here
// picks the more restrictive option where the real row shape is unknown, so
// an outage never relaxes a safety behavior relative to what a correctly
// configured store would produce.
func builtinDefaults() *Config {
	return &Config{
		HRTEstrogenPhases: []PhaseConfig{
			{Start: 0, End: 3, Modification: rules.ParameterModification{
				VolumeReductionPercent: floatPtr(15),
				RecoveryMultiplier:     floatPtr(1.2),
			}},
			{Start: 3, End: 1e9, Modification: rules.ParameterModification{}},
		},
		HRTTestosteronePhases: []PhaseConfig{
			{Start: 0, End: 3, Modification: rules.ParameterModification{
				RestSecondsIncrease: floatPtr(30),
				SuggestedIntensity:  intensityPtr(rules.IntensityModerate),
			}},
			{Start: 3, End: 1e9, Modification: rules.ParameterModification{}},
		},
		HRTDualPhases: []PhaseConfig{
			{Start: 0, End: 3, Modification: rules.ParameterModification{
				VolumeReductionPercent: floatPtr(15),
				RestSecondsIncrease:    floatPtr(30),
			}},
			{Start: 3, End: 1e9, Modification: rules.ParameterModification{}},
		},
		DualBodyDistribution: map[profile.Goal]rules.ParameterModification{
			profile.GoalFeminization: {
				LowerBodyVolumePercent: floatPtr(60),
				UpperBodyVolumePercent: floatPtr(40),
			},
			profile.GoalMasculinization: {
				LowerBodyVolumePercent: floatPtr(40),
				UpperBodyVolumePercent: floatPtr(60),
			},
		},
		PostOpPhases: map[profile.SurgeryType][]PhaseConfig{
			profile.SurgeryTopSurgery: {
				{Start: 0, End: 6, BlockedPatterns: []string{"push", "pull"}, BlockedMuscleGroups: []string{"chest"}},
				{Start: 6, End: 12, Modification: rules.ParameterModification{VolumeReductionPercent: floatPtr(30)}},
				{Start: 12, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryBottomSurgery: {
				{Start: 0, End: 12, BlockedPatterns: []string{"core", "squat", "hinge", "lunge"}},
				{Start: 12, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryVaginoplasty: {
				{Start: 0, End: 12, BlockedPatterns: []string{"core", "squat", "hinge", "lunge"}},
				{Start: 12, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryPhalloplasty: {
				{Start: 0, End: 12, BlockedMuscleGroups: []string{"donor_site"}},
				{Start: 12, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryMetoidioplasty: {
				{Start: 0, End: 8, BlockedPatterns: []string{"core"}},
				{Start: 8, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryOrchiectomy: {
				{Start: 0, End: 4, Modification: rules.ParameterModification{VolumeReductionPercent: floatPtr(40)}},
				{Start: 4, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryHysterectomy: {
				{Start: 0, End: 8, BlockedPatterns: []string{"core"}},
				{Start: 8, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryBreastAugmentation: {
				{Start: 0, End: 8, BlockedPatterns: []string{"stretch"}, BlockedMuscleGroups: []string{"chest"}},
				{Start: 8, End: 1e9, Modification: rules.ParameterModification{}},
			},
			profile.SurgeryFFS: {
				{Start: 0, End: 6, BlockedMuscleGroups: []string{"forward_bend"}},
				{Start: 6, End: 1e9, Modification: rules.ParameterModification{}},
			},
		},
		BindingPacks: map[profile.BinderType]BindingConfig{
			profile.BinderAceBandage: {
				Modification: rules.ParameterModification{
					VolumeReductionPercent: floatPtr(20),
					RestSecondsIncrease:    floatPtr(20),
				},
				LongDurationThresholdHrs: 8,
				LongDurationModification: rules.ParameterModification{
					RestSecondsIncrease: floatPtr(30),
					RecoveryMultiplier:  floatPtr(1.3),
				},
				OverheadThresholdHrs:    4,
				OverheadVolumeReduction: rules.ParameterModification{VolumeReductionPercent: floatPtr(25)},
			},
			profile.BinderDIY: {
				Modification: rules.ParameterModification{
					VolumeReductionPercent: floatPtr(25),
					RestSecondsIncrease:    floatPtr(25),
				},
				LongDurationThresholdHrs: 8,
				LongDurationModification: rules.ParameterModification{
					RestSecondsIncrease: floatPtr(30),
					RecoveryMultiplier:  floatPtr(1.3),
				},
				OverheadThresholdHrs:    4,
				OverheadVolumeReduction: rules.ParameterModification{VolumeReductionPercent: floatPtr(25)},
			},
			profile.BinderCommercial: {
				LongDurationThresholdHrs: 8,
				LongDurationModification: rules.ParameterModification{RestSecondsIncrease: floatPtr(15)},
				OverheadThresholdHrs:      6,
				OverheadVolumeReduction:   rules.ParameterModification{VolumeReductionPercent: floatPtr(10)},
			},
			profile.BinderSports: {
				LongDurationThresholdHrs: 8,
				LongDurationModification: rules.ParameterModification{RestSecondsIncrease: floatPtr(10)},
				OverheadThresholdHrs:      6,
				OverheadVolumeReduction:   rules.ParameterModification{VolumeReductionPercent: floatPtr(10)},
			},
		},
		DysphoriaConfigs: map[profile.DysphoriaTrigger]DysphoriaConfig{
			profile.TriggerLookingAtChest: {Strategy: DysphoriaStrategySoft, PreferTags: []string{"low_mirror"}, DeprioritizeTags: []string{"chest_focus"}},
			profile.TriggerMirrors:        {Strategy: DysphoriaStrategySoft, PreferTags: []string{"no_mirror"}, DeprioritizeTags: []string{"mirror_required"}},
			profile.TriggerBodyContact:    {Strategy: DysphoriaStrategyExclude, ExcludeTags: []string{"partner_assisted", "spotter_contact"}},
			profile.TriggerCrowdedSpaces:  {Strategy: DysphoriaStrategySoft, PreferTags: []string{"home_friendly"}, DeprioritizeTags: []string{"gym_floor"}},
			profile.TriggerTightClothing:  {Strategy: DysphoriaStrategySoft, PreferTags: []string{"loose_fit_friendly"}, DeprioritizeTags: []string{"compression_required"}},
			profile.TriggerPhotos:         {Strategy: DysphoriaStrategySoft, PreferTags: []string{"no_progress_photo"}},
			profile.TriggerSwimming:       {Strategy: DysphoriaStrategyExclude, ExcludeTags: []string{"swim", "pool"}},
			profile.TriggerFormFocused:    {Strategy: DysphoriaStrategySoft, DeprioritizeTags: []string{"form_focused"}},
		},
		BindingDurationThresholdHrs: 8,
	}
}
