package rulesengine

import (
	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// BuildHRTRules derives the HRT rule table from cfg: per-type phase
// lookups, the dual-HRT body-volume redistribution after three months,
// the early-testosterone/early-dual tendon-adaptation checkpoint, and the
// injection-day softening predicate.
func BuildHRTRules(cfg *configstore.Config) []rules.Rule {
	return []rules.Rule{
		hrtPhaseParameterRule(cfg),
		dualBodyDistributionRule(cfg),
		earlyTestosteroneCheckpointRule(),
		earlyDualCheckpointRule(),
		injectionDaySofteningRule(),
	}
}

func hrtPhaseParameterRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "hrt.phase_parameters",
		Category: rules.CategoryHRT,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.HRT.Type != profile.HRTNone
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			phase := cfg.HrtPhase(ctx.Profile.HRT.Type, ctx.Profile.HRT.Months)
			if phase == nil {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: phase.Modification}, nil
		},
		MessageTemplate: "Adjusting training for where you are in your HRT timeline ({hrtMonths} months).",
	}
}

// dualBodyDistributionRule shifts lower/upper body volume emphasis for
// dual-HRT profiles three months or more in, toward the profile's primary
// goal (feminization: lower-emphasis; masculinization: upper-emphasis).
func dualBodyDistributionRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "hrt.dual_body_distribution",
		Category: rules.CategoryHRT,
		Severity: rules.SeverityInfo,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.HRT.Type == profile.HRTBoth && ctx.Profile.HRT.Months >= 3
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			mod, ok := cfg.DualBodyDistribution[ctx.Profile.PrimaryGoal]
			if !ok {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: mod}, nil
		},
		MessageTemplate: "Shifting body-region emphasis to match your goal now that you're {hrtMonths} months into dual HRT.",
	}
}

func earlyTestosteroneCheckpointRule() rules.Rule {
	return rules.Rule{
		ID:       "hrt.early_testosterone_tendon_checkpoint",
		Category: rules.CategoryHRT,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.HRT.Type == profile.HRTTestosterone && ctx.Profile.HRT.Months < 3
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointSafetyReminder,
				Trigger:  plan.TriggerBeforeStrength,
				Message:  "Your tendons are still adapting to testosterone — warm up thoroughly before loading.",
				Severity: plan.SeverityWarning,
			}}, nil
		},
	}
}

func earlyDualCheckpointRule() rules.Rule {
	return rules.Rule{
		ID:       "hrt.early_dual_tendon_checkpoint",
		Category: rules.CategoryHRT,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.HRT.Type == profile.HRTBoth && ctx.Profile.HRT.Months < 3
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointSafetyReminder,
				Trigger:  plan.TriggerBeforeStrength,
				Message:  "Tendon adaptation takes time on dual HRT too — warm up thoroughly before loading.",
				Severity: plan.SeverityWarning,
			}}, nil
		},
	}
}

// injectionDaySofteningRule fires when today is one of the profile's
// explicit HRT injection days, softening the session.
func injectionDaySofteningRule() rules.Rule {
	return rules.Rule{
		ID:       "hrt.injection_day_softening",
		Category: rules.CategoryHRT,
		Severity: rules.SeverityInfo,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.HRT.Type != profile.HRTNone && ctx.Profile.IsInjectionDay(ctx.CurrentDate.Weekday())
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			light := ruleIntensityLight()
			return rules.ModifyParametersAction{Modification: rules.ParameterModification{
				SuggestedIntensity:     &light,
				VolumeReductionPercent: floatPtrHRT(20),
			}}, nil
		},
		MessageTemplate: "Today's an injection day — taking it lighter.",
	}
}

func ruleIntensityLight() rules.IntensityLevel { return rules.IntensityLight }
func floatPtrHRT(f float64) *float64            { return &f }
