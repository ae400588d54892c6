package rulesengine

import (
	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// BuildBindingRules derives the binding rule table from cfg. The table does
// not depend on any one profile; each rule's Condition reads the profile
// out of the EvaluationContext it's handed at evaluation time.
func BuildBindingRules(cfg *configstore.Config) []rules.Rule {
	return []rules.Rule{
		bindingHighRiskExclusionRule(cfg),
		bindingAceOrDIYParameterRule(cfg),
		bindingWorkoutStartWarningRule(),
		bindingLongDurationRule(cfg),
		bindingBreakTimerRule(),
		bindingPostWorkoutReminderRule(),
		bindingOverheadVolumeRule(cfg),
	}
}

func isHighRiskBinder(t profile.BinderType) bool {
	return t == profile.BinderAceBandage || t == profile.BinderDIY
}

// bindingHighRiskExclusionRule excludes exercises that are not binder-aware,
// not heavy-binding-safe, or whose pattern is high-intensity cardio or
// plyometric, for ace-bandage or DIY binders.
func bindingHighRiskExclusionRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "binding.high_risk_exclusion",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityCritical,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.Binding.Binds && isHighRiskBinder(ctx.Profile.Binding.Type)
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			var ids []int
			for _, ex := range ctx.ExercisePool {
				if !ex.BinderAware || !ex.HeavyBindingSafe {
					ids = append(ids, ex.ID)
					continue
				}
				if ex.Pattern == exercise.PatternCardio && (ex.Difficulty == "high" || ex.Difficulty == "very_high") {
					ids = append(ids, ex.ID)
					continue
				}
				if ex.Pattern == exercise.PatternPlyometric {
					ids = append(ids, ex.ID)
				}
			}
			return rules.CriticalBlockAction{ExerciseIDs: ids}, nil
		},
		MessageTemplate: "Excluding exercises that aren't safe for ace-bandage or DIY binding.",
	}
}

// bindingAceOrDIYParameterRule applies the binder-specific parameter pack.
func bindingAceOrDIYParameterRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "binding.parameter_pack",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.Binding.Binds
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			pack := cfg.Binding(ctx.Profile.Binding.Type)
			if pack == nil {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: pack.Modification}, nil
		},
		MessageTemplate: "Applying your binder's training adjustments.",
	}
}

func bindingWorkoutStartWarningRule() rules.Rule {
	return rules.Rule{
		ID:       "binding.safety_warning_checkpoint",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.Binding.Binds && isHighRiskBinder(ctx.Profile.Binding.Type)
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointSafetyWarning,
				Trigger:  plan.TriggerWorkoutStart,
				Message:  "Monitor your breathing closely today — your binder type carries extra risk.",
				Severity: plan.SeverityCritical,
			}}, nil
		},
	}
}

func bindingLongDurationRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "binding.long_duration_pack",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			threshold := cfg.BindingDurationThresholdHrs
			if pack := cfg.Binding(ctx.Profile.Binding.Type); pack != nil && pack.LongDurationThresholdHrs > 0 {
				threshold = pack.LongDurationThresholdHrs
			}
			return ctx.Profile.Binding.Binds && ctx.Profile.Binding.DurationHours >= threshold
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			pack := cfg.Binding(ctx.Profile.Binding.Type)
			if pack == nil {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: pack.LongDurationModification}, nil
		},
		MessageTemplate: "Wearing time is long today — adding extra recovery.",
	}
}

func bindingBreakTimerRule() rules.Rule {
	return rules.Rule{
		ID:       "binding.break_checkpoint",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityInfo,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.Binding.Binds
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointBinderBreak,
				Trigger:  plan.TriggerEvery90Minutes,
				Message:  "Take a binder break — loosen or remove it for a few minutes if you can.",
				Severity: plan.SeverityWarning,
			}}, nil
		},
	}
}

func bindingPostWorkoutReminderRule() rules.Rule {
	return rules.Rule{
		ID:       "binding.post_workout_reminder",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityInfo,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return ctx.Profile.Binding.Binds
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			return rules.InjectCheckpointAction{Checkpoint: plan.RequiredCheckpoint{
				Type:     plan.CheckpointPostWorkoutReminder,
				Trigger:  plan.TriggerWorkoutCompletion,
				Message:  "Workout's done — check in on your breathing and skin before your next binding cycle.",
				Severity: plan.SeverityInfo,
			}}, nil
		},
	}
}

func bindingOverheadVolumeRule(cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       "binding.overhead_volume_reduction",
		Category: rules.CategoryBinding,
		Severity: rules.SeverityHigh,
		Condition: func(ctx *rules.EvaluationContext) bool {
			if !ctx.Profile.Binding.Binds {
				return false
			}
			pack := cfg.Binding(ctx.Profile.Binding.Type)
			threshold := cfg.BindingDurationThresholdHrs
			if pack != nil && pack.OverheadThresholdHrs > 0 {
				threshold = pack.OverheadThresholdHrs
			}
			return ctx.Profile.Binding.DurationHours >= threshold || ctx.Profile.Binding.Type == profile.BinderAceBandage
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			pack := cfg.Binding(ctx.Profile.Binding.Type)
			if pack == nil {
				return rules.ModifyParametersAction{}, nil
			}
			return rules.ModifyParametersAction{Modification: pack.OverheadVolumeReduction}, nil
		},
		MessageTemplate: "Reducing overhead-pressing volume for binding safety.",
	}
}
