package rulesengine

import (
	"testing"

	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

func f(v float64) *float64                       { return &v }
func i(v int) *int                                { return &v }
func lvl(v rules.IntensityLevel) *rules.IntensityLevel { return &v }
func s(v string) *string                          { return &v }

func TestMergeParameters_MaxDirectionKeepsLarger(t *testing.T) {
	bag := rules.ParameterModification{VolumeReductionPercent: f(20)}
	mod := rules.ParameterModification{VolumeReductionPercent: f(35)}
	got := MergeParameters(bag, mod)
	if *got.VolumeReductionPercent != 35 {
		t.Errorf("expected 35, got %v", *got.VolumeReductionPercent)
	}

	// Smaller incoming value must not relax the existing restriction.
	bag2 := rules.ParameterModification{VolumeReductionPercent: f(35)}
	mod2 := rules.ParameterModification{VolumeReductionPercent: f(20)}
	got2 := MergeParameters(bag2, mod2)
	if *got2.VolumeReductionPercent != 35 {
		t.Errorf("expected merge to keep the more restrictive 35, got %v", *got2.VolumeReductionPercent)
	}
}

func TestMergeParameters_MinDirectionKeepsSmaller(t *testing.T) {
	bag := rules.ParameterModification{MaxSets: i(5)}
	mod := rules.ParameterModification{MaxSets: i(3)}
	got := MergeParameters(bag, mod)
	if *got.MaxSets != 3 {
		t.Errorf("expected 3, got %v", *got.MaxSets)
	}
}

func TestMergeParameters_ArgMinIntensityKeepsLighter(t *testing.T) {
	bag := rules.ParameterModification{SuggestedIntensity: lvl(rules.IntensityHigh)}
	mod := rules.ParameterModification{SuggestedIntensity: lvl(rules.IntensityLight)}
	got := MergeParameters(bag, mod)
	if *got.SuggestedIntensity != rules.IntensityLight {
		t.Errorf("expected IntensityLight, got %v", *got.SuggestedIntensity)
	}
}

func TestMergeParameters_FirstWinsKeepsExisting(t *testing.T) {
	bag := rules.ParameterModification{RepRange: s("6-10")}
	mod := rules.ParameterModification{RepRange: s("12-15")}
	got := MergeParameters(bag, mod)
	if *got.RepRange != "6-10" {
		t.Errorf("expected first value 6-10 to win, got %v", *got.RepRange)
	}
}

func TestMergeParameters_NilIncomingLeavesExistingUntouched(t *testing.T) {
	bag := rules.ParameterModification{VolumeReductionPercent: f(20)}
	got := MergeParameters(bag, rules.ParameterModification{})
	if *got.VolumeReductionPercent != 20 {
		t.Errorf("expected untouched 20, got %v", *got.VolumeReductionPercent)
	}
}

func TestMergeParameters_IsAtLeastAsRestrictiveAsEitherInput(t *testing.T) {
	m1 := rules.ParameterModification{VolumeReductionPercent: f(10), MaxSets: i(6)}
	m2 := rules.ParameterModification{VolumeReductionPercent: f(25), MaxSets: i(4)}

	merged := MergeParameters(m1, m2)
	if *merged.VolumeReductionPercent < *m1.VolumeReductionPercent || *merged.VolumeReductionPercent < *m2.VolumeReductionPercent {
		t.Error("merged volume reduction should be at least as restrictive (large) as both inputs")
	}
	if *merged.MaxSets > *m1.MaxSets || *merged.MaxSets > *m2.MaxSets {
		t.Error("merged max sets should be at least as restrictive (small) as both inputs")
	}
}
