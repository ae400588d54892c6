// Package audit writes rule-firing records from the rules engine to durable
// storage, without ever failing the plan-generation pipeline that produced
// them: a write that exhausts its retry budget is logged and dropped.
package audit

import (
	"context"
	"time"
)

// Record is one rule-firing event to be written to the audit trail.
type Record struct {
	UserID      string
	PlanID      string
	RuleID      string
	Category    string
	ActionType  string
	UserMessage string
	OccurredAt  time.Time
}

// Sink accepts audit records. Implementations must not block plan
// generation on a slow or unavailable store for longer than their own
// retry budget allows.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}
