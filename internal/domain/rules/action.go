// Package rules provides the declarative rule shape the engine evaluates:
// a predicate plus a tagged action. Actions are modeled as a discriminated
// union (ActionType discriminator + concrete payload types implementing
// RuleAction), the same envelope pattern the teacher uses for polymorphic
// JSON payloads, so rules can be logged and replayed without losing type
// information.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

// ActionType discriminates the concrete RuleAction payload.
type ActionType string

const (
	ActionCriticalBlock     ActionType = "CRITICAL_BLOCK"
	ActionExcludeExercises  ActionType = "EXCLUDE_EXERCISES"
	ActionModifyParameters  ActionType = "MODIFY_PARAMETERS"
	ActionInjectCheckpoint  ActionType = "INJECT_CHECKPOINT"
	ActionSoftFilter        ActionType = "SOFT_FILTER"
)

// ValidActionTypes is the closed set of recognized action discriminators.
var ValidActionTypes = map[ActionType]bool{
	ActionCriticalBlock:    true,
	ActionExcludeExercises: true,
	ActionModifyParameters: true,
	ActionInjectCheckpoint: true,
	ActionSoftFilter:       true,
}

// RuleAction is the interface every tagged action payload implements.
type RuleAction interface {
	// Type returns the action's discriminator.
	Type() ActionType
}

// CriticalBlockAction is a categorical prohibition of patterns or muscle groups.
type CriticalBlockAction struct {
	Patterns      []string `json:"patterns,omitempty"`
	MuscleGroups  []string `json:"muscleGroups,omitempty"`
	ExerciseIDs   []int    `json:"exerciseIds,omitempty"`
}

// Type implements RuleAction.
func (CriticalBlockAction) Type() ActionType { return ActionCriticalBlock }

// ExcludeExercisesAction removes matching exercises from the candidate pool.
// Criteria is resolved by the engine: a contraindication tag intersection, an
// explicit exercise-id set, or both.
type ExcludeExercisesAction struct {
	ContraindicationTags []string `json:"contraindicationTags,omitempty"`
	// DysphoriaTags intersects against an exercise's DysphoriaTags rather
	// than its Contraindications — the criterion dysphoria-trigger exclude
	// rules resolve to.
	DysphoriaTags []string `json:"dysphoriaTags,omitempty"`
	ExerciseIDs   []int    `json:"exerciseIds,omitempty"`
	// RequiresEarliestSafePhase marks an exclusion that depends on the
	// exercise's EarliestSafePhase gate rather than a static criterion —
	// resolved by the engine against the current post-op phase.
	RequiresEarliestSafePhase bool `json:"requiresEarliestSafePhase,omitempty"`
}

// Type implements RuleAction.
func (ExcludeExercisesAction) Type() ActionType { return ActionExcludeExercises }

// ModifyParametersAction merges a set of key/value adjustments into the
// running modification bag via the most-restrictive-wins algebra.
type ModifyParametersAction struct {
	Modification ParameterModification `json:"modification"`
}

// Type implements RuleAction.
func (ModifyParametersAction) Type() ActionType { return ActionModifyParameters }

// InjectCheckpointAction appends a checkpoint to the working list.
type InjectCheckpointAction struct {
	Checkpoint plan.RequiredCheckpoint `json:"checkpoint"`
}

// Type implements RuleAction.
func (InjectCheckpointAction) Type() ActionType { return ActionInjectCheckpoint }

// SoftFilterAction is appended to the soft-filters list, consumed later by scoring.
type SoftFilterAction struct {
	PreferTags        []string `json:"preferTags,omitempty"`
	DeprioritizeTags  []string `json:"deprioritizeTags,omitempty"`
	PreferAlternatives []int   `json:"preferAlternatives,omitempty"`
}

// Type implements RuleAction.
func (SoftFilterAction) Type() ActionType { return ActionSoftFilter }

// ActionEnvelope is the wire format for polymorphic RuleAction serialization,
// used when an evaluated action needs to cross an audit-log or config
// boundary without losing its concrete type.
type ActionEnvelope struct {
	Type ActionType      `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalAction serializes a RuleAction with its type discriminator.
func MarshalAction(action RuleAction) ([]byte, error) {
	data, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rule action: %w", err)
	}
	envelope := ActionEnvelope{Type: action.Type(), Data: data}
	return json.Marshal(envelope)
}

// UnmarshalAction deserializes a RuleAction from its envelope.
func UnmarshalAction(data []byte) (RuleAction, error) {
	var envelope ActionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule action envelope: %w", err)
	}
	return unmarshalActionByType(envelope.Type, envelope.Data)
}

func unmarshalActionByType(t ActionType, data json.RawMessage) (RuleAction, error) {
	switch t {
	case ActionCriticalBlock:
		var a CriticalBlockAction
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal critical block action: %w", err)
		}
		return a, nil
	case ActionExcludeExercises:
		var a ExcludeExercisesAction
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal exclude exercises action: %w", err)
		}
		return a, nil
	case ActionModifyParameters:
		var a ModifyParametersAction
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal modify parameters action: %w", err)
		}
		return a, nil
	case ActionInjectCheckpoint:
		var a InjectCheckpointAction
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inject checkpoint action: %w", err)
		}
		return a, nil
	case ActionSoftFilter:
		var a SoftFilterAction
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal soft filter action: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown rule action type: %s", t)
	}
}
