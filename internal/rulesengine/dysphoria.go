package rulesengine

import (
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// BuildDysphoriaRules derives one rule per dysphoria trigger configured in
// cfg. Condition checks whether the profile reports that trigger; Resolve
// looks up the handling strategy (exclude or soft) fresh, so a config
// change between evaluations is picked up without rebuilding the table.
func BuildDysphoriaRules(cfg *configstore.Config) []rules.Rule {
	var out []rules.Rule
	for trigger := range cfg.DysphoriaConfigs {
		out = append(out, dysphoriaTriggerRule(trigger, cfg))
	}
	return out
}

func profileHasTrigger(p *profile.Profile, trigger profile.DysphoriaTrigger) bool {
	for _, t := range p.DysphoriaTriggers {
		if t == trigger {
			return true
		}
	}
	return false
}

func dysphoriaTriggerRule(trigger profile.DysphoriaTrigger, cfg *configstore.Config) rules.Rule {
	return rules.Rule{
		ID:       fmt.Sprintf("dysphoria.%s", trigger),
		Category: rules.CategoryDysphoria,
		Severity: rules.SeverityInfo,
		Condition: func(ctx *rules.EvaluationContext) bool {
			return profileHasTrigger(&ctx.Profile, trigger)
		},
		Resolve: func(ctx *rules.EvaluationContext) (rules.RuleAction, error) {
			dc := cfg.Dysphoria(trigger)
			if dc == nil {
				return rules.SoftFilterAction{}, nil
			}
			switch dc.Strategy {
			case configstore.DysphoriaStrategyExclude:
				return rules.ExcludeExercisesAction{DysphoriaTags: dc.ExcludeTags}, nil
			case configstore.DysphoriaStrategySoft:
				return rules.SoftFilterAction{PreferTags: dc.PreferTags, DeprioritizeTags: dc.DeprioritizeTags}, nil
			default:
				return rules.SoftFilterAction{}, nil
			}
		},
		MessageTemplate: "Adjusting your plan around a known dysphoria trigger.",
	}
}
