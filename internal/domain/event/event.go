// Package event provides an in-memory event bus for decoupling rule firings,
// timer transitions, and plan-lifecycle milestones from the callers that
// produce them (the rules engine, the plan assembler, the binder-break
// timer) and the observers that consume them (the audit sink, diagnostics
// logging, a future telemetry transport).
package event

import "time"

// EventType identifies the type of domain event that occurred.
type EventType string

const (
	// EventRuleFired fires once per rule that fires during an evaluation pass.
	EventRuleFired EventType = "RULE_FIRED"
	// EventRuleEvaluationFailed fires when a rule predicate or action resolver
	// panics or returns an error; the rule is treated as not firing.
	EventRuleEvaluationFailed EventType = "RULE_EVALUATION_FAILED"
	// EventCheckpointInjected fires when a checkpoint is added to a workout timeline.
	EventCheckpointInjected EventType = "CHECKPOINT_INJECTED"
	// EventTimerStateChanged fires when the binder-break timer transitions states.
	EventTimerStateChanged EventType = "TIMER_STATE_CHANGED"
	// EventPlanGenerated fires when a full weekly plan has been assembled.
	EventPlanGenerated EventType = "PLAN_GENERATED"
	// EventDayRegenerated fires when a single day has been regenerated.
	EventDayRegenerated EventType = "DAY_REGENERATED"
	// EventDayDowngradedToRest fires when assembly failure forces a day to rest.
	EventDayDowngradedToRest EventType = "DAY_DOWNGRADED_TO_REST"
	// EventAuditWriteFailed fires when the audit sink could not persist a record
	// after exhausting its retry budget. Plan generation is never failed by this.
	EventAuditWriteFailed EventType = "AUDIT_WRITE_FAILED"
	// EventConfigFallback fires when the config loader had to serve cached or
	// built-in defaults because the backing store was unreachable.
	EventConfigFallback EventType = "CONFIG_FALLBACK"
)

// ValidEventTypes contains all valid event types for validation.
var ValidEventTypes = map[EventType]bool{
	EventRuleFired:            true,
	EventRuleEvaluationFailed: true,
	EventCheckpointInjected:   true,
	EventTimerStateChanged:    true,
	EventPlanGenerated:        true,
	EventDayRegenerated:       true,
	EventDayDowngradedToRest:  true,
	EventAuditWriteFailed:     true,
	EventConfigFallback:       true,
}

// StateEvent represents an event that occurred during rule evaluation, plan
// assembly, or a state transition. Events carry contextual information
// about what changed.
type StateEvent struct {
	// Type identifies the kind of event.
	Type EventType
	// UserID is the UUID of the user the event pertains to.
	UserID string
	// PlanID is the UUID of the plan associated with the event, if any.
	PlanID string
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Payload contains event-specific data. Keys and values depend on the event type.
	Payload map[string]interface{}
}

// NewStateEvent creates a new StateEvent with the given type, user ID, and plan ID.
// The timestamp is set to the current time.
func NewStateEvent(eventType EventType, userID, planID string) StateEvent {
	return StateEvent{
		Type:      eventType,
		UserID:    userID,
		PlanID:    planID,
		Timestamp: time.Now(),
		Payload:   make(map[string]interface{}),
	}
}

// WithPayload adds payload data to the event and returns the event for chaining.
func (e StateEvent) WithPayload(key string, value interface{}) StateEvent {
	if e.Payload == nil {
		e.Payload = make(map[string]interface{})
	}
	e.Payload[key] = value
	return e
}

// GetString retrieves a string value from the payload.
// Returns empty string if the key doesn't exist or isn't a string.
func (e StateEvent) GetString(key string) string {
	if e.Payload == nil {
		return ""
	}
	if v, ok := e.Payload[key].(string); ok {
		return v
	}
	return ""
}

// GetInt retrieves an int value from the payload.
// Returns 0 if the key doesn't exist or isn't an int.
func (e StateEvent) GetInt(key string) int {
	if e.Payload == nil {
		return 0
	}
	if v, ok := e.Payload[key].(int); ok {
		return v
	}
	return 0
}

// GetFloat64 retrieves a float64 value from the payload.
// Returns 0.0 if the key doesn't exist or isn't a float64.
func (e StateEvent) GetFloat64(key string) float64 {
	if e.Payload == nil {
		return 0.0
	}
	if v, ok := e.Payload[key].(float64); ok {
		return v
	}
	return 0.0
}

// GetBool retrieves a bool value from the payload.
// Returns false if the key doesn't exist or isn't a bool.
func (e StateEvent) GetBool(key string) bool {
	if e.Payload == nil {
		return false
	}
	if v, ok := e.Payload[key].(bool); ok {
		return v
	}
	return false
}

// Payload keys for common event data.
const (
	// PayloadRuleID is the key for the identifier of the rule that fired.
	PayloadRuleID = "ruleId"
	// PayloadCategory is the key for the rule category (binding, post_op, hrt, dysphoria).
	PayloadCategory = "category"
	// PayloadActionType is the key for the action tag the rule resolved to.
	PayloadActionType = "actionType"
	// PayloadMessage is the key for the resolved user-facing message.
	PayloadMessage = "message"
	// PayloadCheckpointType is the key for the checkpoint type injected into a timeline.
	PayloadCheckpointType = "checkpointType"
	// PayloadTrigger is the key for the checkpoint's trigger condition.
	PayloadTrigger = "trigger"
	// PayloadDayNumber is the key for the day-of-week index (0-6) within a plan.
	PayloadDayNumber = "dayNumber"
	// PayloadDuration is the key for the workout duration variant in minutes.
	PayloadDuration = "duration"
	// PayloadReason is the key for a human-readable explanation of a downgrade or fallback.
	PayloadReason = "reason"
	// PayloadFromState is the key for the state a timer transitioned from.
	PayloadFromState = "fromState"
	// PayloadToState is the key for the state a timer transitioned to.
	PayloadToState = "toState"
)
