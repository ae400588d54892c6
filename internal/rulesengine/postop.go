package rulesengine

import (
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// BuildPostOpRules derives, for each surgery type, a critical rule (fires
// when the current recovery phase carries blocked patterns or muscle
// groups) and a high-severity rule (fires when the phase carries only
// parameter adjustments), per the phase table's "derives two rules"
// design. It also adds the specialized categorical exclusions the spec
// calls out for specific surgeries, and the earliest-safe-phase gate.
func BuildPostOpRules(cfg *configstore.Config) []rules.Rule {
	var out []rules.Rule
	for surgery, phases := range cfg.PostOpPhases {
		out = append(out, postOpCriticalRule(surgery, phases))
		out = append(out, postOpParameterRule(surgery, phases))
	}
	out = append(out,
		bottomSurgeryPelvicFloorRule(),
		ffsForwardBendRule(),
		phalloplastyDonorSiteRule(),
		breastAugmentationChestStretchRule(),
		earliestSafePhaseGateRule(),
		topSurgeryScarCareCheckpointRule(),
	)
	return out
}

func findPhaseForSurgery(ctx *rules.EvaluationContext, surgeryType profile.SurgeryType, phases []configstore.PhaseConfig) (*configstore.PhaseConfig, *profile.Surgery) {
	surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, surgeryType)
	if surgery == nil {
		return nil, nil
	}
	weeks := profile.WeeksPostOp(*surgery, ctx.CurrentDate)
	for i := range phases {
		if phases[i].Contains(float64(weeks)) {
			return &phases[i], surgery
		}
	}
	return nil, surgery
}

func postOpCriticalRule(surgery profile.SurgeryType, phases []configstore.PhaseConfig) rules.Rule {
	return rules.Rule{
		ID:          fmt.Sprintf("post_op.%s.critical", surgery),
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityCritical,
		SurgeryType: surgery,
		Condition: func(ctx *rules.EvaluationContext) bool {
			phase, _ := findPhaseForSurgery(ctx, surgery, phases)
			return phase != nil && phase.HasCriticalExclusions()
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			phase, _ := findPhaseForSurgery(ctx, surgery, phases)
			if phase == nil {
				return rules.CriticalBlockAction{}, nil
			}
			return rules.CriticalBlockAction{
				Patterns:     phase.BlockedPatterns,
				MuscleGroups: phase.BlockedMuscleGroups,
			}, nil
		},
		MessageTemplate: "{weeksPostOp} weeks post-op — some movement patterns are off-limits for now.",
	}
}

func postOpParameterRule(surgery profile.SurgeryType, phases []configstore.PhaseConfig) rules.Rule {
	return rules.Rule{
		ID:          fmt.Sprintf("post_op.%s.parameters", surgery),
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityHigh,
		SurgeryType: surgery,
		Condition: func(ctx *rules.EvaluationContext) bool {
			phase, _ := findPhaseForSurgery(ctx, surgery, phases)
			return phase != nil && !phase.HasCriticalExclusions()
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			phase, _ := findPhaseForSurgery(ctx, surgery, phases)
			if phase == nil {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: phase.Modification}, nil
		},
		MessageTemplate: "{weeksPostOp} weeks post-op — adjusting training load for recovery.",
	}
}

// bottomSurgeryPelvicFloorRule restricts bottom-surgery recovery under 12
// weeks to pelvic-floor-safe exercises only.
func bottomSurgeryPelvicFloorRule() rules.Rule {
	return rules.Rule{
		ID:          "post_op.bottom_surgery.pelvic_floor_only",
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityCritical,
		SurgeryType: profile.SurgeryBottomSurgery,
		Condition: func(ctx *rules.EvaluationContext) bool {
			surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, profile.SurgeryBottomSurgery)
			return surgery != nil && profile.WeeksPostOp(*surgery, ctx.CurrentDate) < 12
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			var ids []int
			for _, ex := range ctx.ExercisePool {
				if !ex.PelvicFloorSafe {
					ids = append(ids, ex.ID)
				}
			}
			return rules.ExcludeExercisesAction{ExerciseIDs: ids}, nil
		},
		MessageTemplate: "Only pelvic-floor-safe exercises until 12 weeks post-op.",
	}
}

func ffsForwardBendRule() rules.Rule {
	return rules.Rule{
		ID:          "post_op.ffs.no_forward_bend",
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityCritical,
		SurgeryType: profile.SurgeryFFS,
		Condition: func(ctx *rules.EvaluationContext) bool {
			surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, profile.SurgeryFFS)
			return surgery != nil && profile.WeeksPostOp(*surgery, ctx.CurrentDate) < 6
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.CriticalBlockAction{MuscleGroups: []string{"forward_bend"}}, nil
		},
		MessageTemplate: "Excluding forward-bending patterns until 6 weeks post-FFS.",
	}
}

func phalloplastyDonorSiteRule() rules.Rule {
	return rules.Rule{
		ID:          "post_op.phalloplasty.no_donor_site_stress",
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityCritical,
		SurgeryType: profile.SurgeryPhalloplasty,
		Condition: func(ctx *rules.EvaluationContext) bool {
			surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, profile.SurgeryPhalloplasty)
			return surgery != nil && profile.WeeksPostOp(*surgery, ctx.CurrentDate) < 12
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.CriticalBlockAction{MuscleGroups: []string{"donor_site"}}, nil
		},
		MessageTemplate: "Excluding donor-site stressors until 12 weeks post-op.",
	}
}

func breastAugmentationChestStretchRule() rules.Rule {
	return rules.Rule{
		ID:          "post_op.breast_augmentation.no_chest_stretch",
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityCritical,
		SurgeryType: profile.SurgeryBreastAugmentation,
		Condition: func(ctx *rules.EvaluationContext) bool {
			surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, profile.SurgeryBreastAugmentation)
			return surgery != nil && profile.WeeksPostOp(*surgery, ctx.CurrentDate) < 8
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.CriticalBlockAction{Patterns: []string{"stretch"}, MuscleGroups: []string{"chest"}}, nil
		},
		MessageTemplate: "Excluding chest-stretch patterns until 8 weeks post-augmentation.",
	}
}

// topSurgeryScarCareCheckpointRule adds a cool-down reminder to check
// incision sites while the scar is still healing, for anyone with an
// unhealed top surgery.
func topSurgeryScarCareCheckpointRule() rules.Rule {
	return rules.Rule{
		ID:          "post_op.top_surgery.scar_care_checkpoint",
		Category:    rules.CategoryPostOp,
		Severity:    rules.SeverityHigh,
		SurgeryType: profile.SurgeryTopSurgery,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, profile.SurgeryTopSurgery) != nil
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointScarCare,
				Trigger:  plan.TriggerCoolDown,
				Message:  "Check your incision sites during cool-down — watch for unusual redness, swelling, or discharge.",
				Severity: plan.SeverityWarning,
			}}, nil
		},
	}
}

// earliestSafePhaseGateRule excludes exercises whose earliest-safe-phase
// has not yet been reached by any unhealed surgery's recovery window.
// Missing earliest-safe-phase on an exercise is "not cleared" — handled by
// Exercise.ClearedForPhase returning false for a nil phase, which this rule
// only fires over when the profile has at least one unhealed surgery.
func earliestSafePhaseGateRule() rules.Rule {
	return rules.Rule{
		ID:       "post_op.earliest_safe_phase_gate",
		Category: rules.CategoryPostOp,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return len(ctx.Profile.UnhealedSurgeries()) > 0
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.ExcludeExercisesAction{RequiresEarliestSafePhase: true}, nil
		},
		MessageTemplate: "Filtering to exercises cleared for your current recovery phase.",
	}
}
