package rulesengine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/event"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// Evaluate runs every rule table in the fixed category order (binding,
// post-op, HRT, dysphoria) against ctx, merging their effects into a single
// SafetyContext. Rule panics and resolver errors are recovered and recorded
// as diagnostics rather than propagated, per the fail-safe evaluation
// contract: a broken rule is treated as not firing, never as a crash.
func Evaluate(ctx *rules.EvaluationContext, cfg *configstore.Config, bus *event.Bus, userID, planID string) *SafetyContext {
	sc := newSafetyContext()

	tables := map[rules.Category][]rules.Rule{
		rules.CategoryBinding:   BuildBindingRules(cfg),
		rules.CategoryPostOp:    BuildPostOpRules(cfg),
		rules.CategoryHRT:       BuildHRTRules(cfg),
		rules.CategoryDysphoria: BuildDysphoriaRules(cfg),
	}

	for _, category := range rules.CategoryOrder {
		for _, rule := range tables[category] {
			evaluateRule(rule, ctx, sc, bus, userID, planID)
		}
	}

	return sc
}

func evaluateRule(rule rules.Rule, ctx *rules.EvaluationContext, sc *SafetyContext, bus *event.Bus, userID, planID string) {
	defer func() {
		if r := recover(); r != nil {
			sc.Diagnostics = append(sc.Diagnostics, fmt.Sprintf("rule %s panicked: %v", rule.ID, r))
			publishEvaluationFailure(bus, userID, planID, rule.ID, fmt.Sprintf("%v", r))
		}
	}()

	if !rule.Condition(ctx) {
		return
	}

	action, err := rule.Resolve(ctx)
	if err != nil {
		sc.Diagnostics = append(sc.Diagnostics, fmt.Sprintf("rule %s failed to resolve: %v", rule.ID, err))
		publishEvaluationFailure(bus, userID, planID, rule.ID, err.Error())
		return
	}

	sc.applyAction(action)

	message := renderMessage(rule, ctx)
	sc.Audit = append(sc.Audit, AuditRecord{
		RuleID:      rule.ID,
		Category:    rule.Category,
		Severity:    rule.Severity,
		ActionType:  action.Type(),
		UserMessage: message,
		Timestamp:   ctx.CurrentDate,
	})

	if bus != nil {
		_ = bus.Publish(context.Background(), event.NewStateEvent(event.EventRuleFired, userID, planID).
			WithPayload(event.PayloadRuleID, rule.ID).
			WithPayload(event.PayloadCategory, string(rule.Category)).
			WithPayload(event.PayloadActionType, string(action.Type())).
			WithPayload(event.PayloadMessage, message))
	}
}

func publishEvaluationFailure(bus *event.Bus, userID, planID, ruleID, reason string) {
	if bus == nil {
		return
	}
	_ = bus.Publish(context.Background(), event.NewStateEvent(event.EventRuleEvaluationFailed, userID, planID).
		WithPayload(event.PayloadRuleID, ruleID).
		WithPayload(event.PayloadReason, reason))
}

// renderMessage substitutes {weeksPostOp} and {hrtMonths} tokens in a
// rule's message template.
func renderMessage(rule rules.Rule, ctx *rules.EvaluationContext) string {
	msg := rule.MessageTemplate
	if msg == "" {
		return ""
	}
	if strings.Contains(msg, "{weeksPostOp}") {
		surgery := profile.MostRecentUnhealedSurgery(ctx.Profile.Surgeries, rule.SurgeryType)
		weeks := 0
		if surgery != nil {
			weeks = profile.WeeksPostOp(*surgery, ctx.CurrentDate)
		}
		msg = strings.ReplaceAll(msg, "{weeksPostOp}", strconv.Itoa(weeks))
	}
	if strings.Contains(msg, "{hrtMonths}") {
		msg = strings.ReplaceAll(msg, "{hrtMonths}", strconv.Itoa(ctx.Profile.HRT.Months))
	}
	return msg
}
