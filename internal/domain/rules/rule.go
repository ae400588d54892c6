package rules

import (
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
)

// Category groups rules for fixed-order evaluation: binding, then
// post-operative, then HRT, then dysphoria. Order sets the audit sequence
// and, because MergeParameters keeps the first MaxWeight and RepRange it
// sees, which rule's values for those two keys win.
type Category string

const (
	CategoryBinding   Category = "BINDING"
	CategoryPostOp    Category = "POST_OP"
	CategoryHRT       Category = "HRT"
	CategoryDysphoria Category = "DYSPHORIA"
)

// CategoryOrder is the fixed evaluation order.
var CategoryOrder = []Category{CategoryBinding, CategoryPostOp, CategoryHRT, CategoryDysphoria}

// Severity is how strongly a rule's firing should be called out in audit messaging.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityInfo     Severity = "INFO"
)

// EvaluationContext is the input to a single rule-evaluation pass.
type EvaluationContext struct {
	Profile      profile.Profile
	ExercisePool []exercise.Exercise
	CurrentDate  time.Time
}

// Condition is a pure predicate over the evaluation context. It must not
// mutate ctx and must not panic; the engine recovers from panics and treats
// the rule as not firing, per the fail-safe evaluation contract.
type Condition func(ctx *EvaluationContext) bool

// ActionResolver resolves a fired rule's action, optionally reading config.
// It returns the resolved action, or an error if it cannot be resolved.
type ActionResolver func(ctx *EvaluationContext) (RuleAction, error)

// Rule is one declarative entry in a category's rule table: a predicate plus
// a deferred action resolver, per the two-phase evaluation design (phase 1
// collects which rules fired under pure predicates; phase 2 resolves each
// fired rule's action against config).
type Rule struct {
	ID       string
	Category Category
	Severity Severity
	Condition Condition
	Resolve  ActionResolver
	// MessageTemplate may contain {weeksPostOp} or {hrtMonths} tokens,
	// substituted by the engine when producing the audit record's
	// user-facing message.
	MessageTemplate string
	// SurgeryType associates a post-op rule with the surgery whose
	// weeks-post-op value feeds its message template. Empty for non-post-op rules.
	SurgeryType profile.SurgeryType
}
