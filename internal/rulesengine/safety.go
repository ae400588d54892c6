package rulesengine

import (
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/domain/rules"
)

// AuditRecord is the output of one fired rule: enough to reconstruct why an
// exclusion, parameter change, or checkpoint happened without re-running
// evaluation.
type AuditRecord struct {
	RuleID      string
	Category    rules.Category
	Severity    rules.Severity
	ActionType  rules.ActionType
	UserMessage string
	Timestamp   time.Time
}

// SafetyContext is the accumulated output of one full rule-evaluation pass:
// the merged parameter bag, the categorical exclusions, the checkpoint
// list, the soft filters deferred to scoring, and the audit trail.
type SafetyContext struct {
	Modification rules.ParameterModification

	BlockedPatterns     []string
	BlockedMuscleGroups []string
	ExcludedExerciseIDs map[int]bool

	// ContraindicationTags accumulates exclude_exercises criteria that
	// reference an exercise's Contraindications tags rather than a fixed id
	// set; the candidate filter resolves these against the exercise pool.
	ContraindicationTags []string

	// DysphoriaExcludeTags accumulates exclude_exercises criteria that
	// reference an exercise's DysphoriaTags instead of its Contraindications.
	DysphoriaExcludeTags []string

	// RequiresEarliestSafePhase is true once any fired rule ties exclusion
	// to an exercise's EarliestSafePhase gate, letting the candidate filter
	// skip that check entirely for users with no post-op restriction.
	RequiresEarliestSafePhase bool

	Checkpoints []plan.RequiredCheckpoint

	SoftFilters []rules.SoftFilterAction

	Audit []AuditRecord

	// Diagnostics carries non-fatal evaluation warnings: a panicking
	// predicate, an unresolvable config-dependent action.
	Diagnostics []string
}

func newSafetyContext() *SafetyContext {
	return &SafetyContext{ExcludedExerciseIDs: map[int]bool{}}
}

// HasCriticalBlock reports whether any fired rule issued a categorical
// prohibition at all — the assembler uses this to decide whether a day
// must downgrade to rest when no exercise satisfies the remaining pool.
func (s *SafetyContext) HasCriticalBlock() bool {
	return len(s.BlockedPatterns) > 0 || len(s.BlockedMuscleGroups) > 0
}

func (s *SafetyContext) applyAction(a rules.RuleAction) {
	switch action := a.(type) {
	case rules.CriticalBlockAction:
		s.BlockedPatterns = append(s.BlockedPatterns, action.Patterns...)
		s.BlockedMuscleGroups = append(s.BlockedMuscleGroups, action.MuscleGroups...)
		for _, id := range action.ExerciseIDs {
			s.ExcludedExerciseIDs[id] = true
		}
	case rules.ExcludeExercisesAction:
		for _, id := range action.ExerciseIDs {
			s.ExcludedExerciseIDs[id] = true
		}
		if action.RequiresEarliestSafePhase {
			s.RequiresEarliestSafePhase = true
		}
		s.ContraindicationTags = append(s.ContraindicationTags, action.ContraindicationTags...)
		s.DysphoriaExcludeTags = append(s.DysphoriaExcludeTags, action.DysphoriaTags...)
	case rules.ModifyParametersAction:
		s.Modification = MergeParameters(s.Modification, action.Modification)
	case rules.InjectCheckpointAction:
		s.Checkpoints = append(s.Checkpoints, action.Checkpoint)
	case rules.SoftFilterAction:
		s.SoftFilters = append(s.SoftFilters, action)
	}
}
