// Package plan provides the value types the assembler produces: Plan, Day,
// Workout, ExerciseInstance, Checkpoint, and the checkpoint Timeline. These
// are plain data, with no persistence dependency — the repository layer
// maps them to and from storage rows.
package plan

import "time"

// CheckpointType identifies the kind of safety checkpoint injected into a
// workout timeline.
type CheckpointType string

const (
	CheckpointBinderBreak       CheckpointType = "BINDER_BREAK"
	CheckpointPostWorkoutReminder CheckpointType = "POST_WORKOUT_REMINDER"
	CheckpointSafetyWarning     CheckpointType = "SAFETY_WARNING"
	CheckpointSafetyReminder    CheckpointType = "SAFETY_REMINDER"
	CheckpointScarCare          CheckpointType = "SCAR_CARE"
)

// Trigger identifies when a checkpoint should be inserted into the timeline.
type Trigger string

const (
	TriggerWorkoutStart      Trigger = "WORKOUT_START"
	TriggerBeforeStrength    Trigger = "BEFORE_STRENGTH"
	TriggerBeforeCardio      Trigger = "BEFORE_CARDIO"
	TriggerEvery90Minutes    Trigger = "EVERY_90_MINUTES"
	TriggerCoolDown          Trigger = "COOL_DOWN"
	TriggerWorkoutCompletion Trigger = "WORKOUT_COMPLETION"
)

// Severity is the urgency of a checkpoint's message.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// RequiredCheckpoint is a checkpoint the rules engine has determined must
// appear in the timeline, prior to positional resolution.
type RequiredCheckpoint struct {
	Type     CheckpointType
	Trigger  Trigger
	Message  string
	Severity Severity
}

// Checkpoint is a RequiredCheckpoint that has been placed at a position in
// the resolved timeline.
type Checkpoint struct {
	Type     CheckpointType
	Trigger  Trigger
	Message  string
	Severity Severity
	// Position is the index into the workout's exercise list that this
	// checkpoint precedes. A Position equal to len(exercises) places it at
	// the tail (cool-down / completion markers).
	Position int
}

// Timeline is the ordered sequence of checkpoints interleaved with a workout's exercises.
type Timeline struct {
	Checkpoints []Checkpoint
}

// ExerciseInstance is a single selected exercise placed into a workout, with
// its resolved training parameters.
type ExerciseInstance struct {
	ExerciseID  int
	Name        string
	Sets        int
	Reps        string
	RestSeconds int
	Notes       string
	// DurationMinutes is this instance's contribution to the workout's total
	// time, used by the checkpoint injector's every_N_minutes placement.
	DurationMinutes float64
}

// AuditRecord is a snapshot of one rule firing, embedded into the workout
// that it helped produce.
type AuditRecord struct {
	RuleID      string
	Category    string
	ActionType  string
	UserMessage string
	Timestamp   time.Time
}

// Workout is one duration variant of a day's training.
type Workout struct {
	Name          string
	Exercises     []ExerciseInstance
	TotalMinutes  float64
	Timeline      Timeline
	RulesApplied  []AuditRecord
}

// Day is one day of a weekly plan, with a workout per supported duration
// variant. A nil entry for a duration means the profile does not support
// that duration; an explicit rest day has TemplateKind == TemplateRest and
// every variant nil.
type Day struct {
	Date      time.Time
	DayNumber int
	Template  TemplateKind
	Variants  map[int]*Workout
	// DowngradeReason is set when critical blocks forced a training day
	// into rest, or when assembly downgraded a slot (regress/substitute/rest).
	DowngradeReason string
}

// Plan is the full seven-day output of the assembler for one profile snapshot.
type Plan struct {
	ID        string
	UserID    string
	StartDate time.Time
	Days      [7]Day
}

// IsRestDay reports whether the day has no workout in any variant.
func (d *Day) IsRestDay() bool {
	for _, w := range d.Variants {
		if w != nil {
			return false
		}
	}
	return true
}
