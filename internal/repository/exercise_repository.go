package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
)

// ExerciseRepository reads and writes the exercise catalog.
type ExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// ListAll returns the entire catalog, ordered by ID. The plan assembler
// filters this pool per profile rather than pushing filters into SQL, since
// the filtering rules (contraindication tags, phase gates) are domain logic.
func (r *ExerciseRepository) ListAll(ctx context.Context) ([]exercise.Exercise, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, pattern, target_muscles, equipment, difficulty,
		       binder_aware, heavy_binding_safe, pelvic_floor_safe,
		       contraindications, dysphoria_tags, earliest_safe_phase,
		       effectiveness_rating, gender_goal_emphasis
		FROM exercises ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var out []exercise.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exercises: %w", err)
	}
	return out, nil
}

// GetByID retrieves a single exercise. Returns (nil, nil) if not found.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int) (*exercise.Exercise, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, pattern, target_muscles, equipment, difficulty,
		       binder_aware, heavy_binding_safe, pelvic_floor_safe,
		       contraindications, dysphoria_tags, earliest_safe_phase,
		       effectiveness_rating, gender_goal_emphasis
		FROM exercises WHERE id = ?
	`, id)
	ex, err := scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// scanRow abstracts over *sql.Row and *sql.Rows, which share a Scan method
// but no common interface in database/sql.
type scanRow interface {
	Scan(dest ...interface{}) error
}

func scanExercise(row scanRow) (*exercise.Exercise, error) {
	var id int
	var name, pattern, targetMuscles, equipment, difficulty string
	var binderAware, heavyBindingSafe, pelvicFloorSafe int64
	var contraindications, dysphoriaTags string
	var earliestSafePhase sql.NullString
	var effectivenessRating float64
	var genderGoalEmphasis string

	err := row.Scan(
		&id, &name, &pattern, &targetMuscles, &equipment, &difficulty,
		&binderAware, &heavyBindingSafe, &pelvicFloorSafe,
		&contraindications, &dysphoriaTags, &earliestSafePhase,
		&effectivenessRating, &genderGoalEmphasis,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan exercise: %w", err)
	}

	var muscles, equip, contra, tags []string
	if err := json.Unmarshal([]byte(targetMuscles), &muscles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal target muscles: %w", err)
	}
	if err := json.Unmarshal([]byte(equipment), &equip); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
	}
	if err := json.Unmarshal([]byte(contraindications), &contra); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contraindications: %w", err)
	}
	if err := json.Unmarshal([]byte(dysphoriaTags), &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dysphoria tags: %w", err)
	}

	var goalStrings []string
	if err := json.Unmarshal([]byte(genderGoalEmphasis), &goalStrings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gender goal emphasis: %w", err)
	}
	goals := make([]profile.Goal, len(goalStrings))
	for i, g := range goalStrings {
		goals[i] = profile.Goal(g)
	}

	var phase *exercise.Phase
	if earliestSafePhase.Valid {
		p := exercise.ParsePhase(earliestSafePhase.String)
		phase = &p
	}

	return &exercise.Exercise{
		ID:                  id,
		Name:                name,
		Pattern:             exercise.Pattern(pattern),
		TargetMuscles:       muscles,
		Equipment:           exercise.NormalizeEquipment(equip),
		Difficulty:          difficulty,
		BinderAware:         int64ToBool(binderAware),
		HeavyBindingSafe:    int64ToBool(heavyBindingSafe),
		PelvicFloorSafe:     int64ToBool(pelvicFloorSafe),
		Contraindications:   contra,
		DysphoriaTags:       tags,
		EarliestSafePhase:   phase,
		EffectivenessRating: effectivenessRating,
		GenderGoalEmphasis:  goals,
	}, nil
}

// Upsert writes a single catalog entry, replacing any existing row with the same ID.
func (r *ExerciseRepository) Upsert(ctx context.Context, ex exercise.Exercise) error {
	targetMuscles, err := marshalJSON(ex.TargetMuscles)
	if err != nil {
		return fmt.Errorf("failed to marshal target muscles: %w", err)
	}
	equipment, err := marshalJSON(ex.Equipment)
	if err != nil {
		return fmt.Errorf("failed to marshal equipment: %w", err)
	}
	contraindications, err := marshalJSON(ex.Contraindications)
	if err != nil {
		return fmt.Errorf("failed to marshal contraindications: %w", err)
	}
	dysphoriaTags, err := marshalJSON(ex.DysphoriaTags)
	if err != nil {
		return fmt.Errorf("failed to marshal dysphoria tags: %w", err)
	}
	genderGoalEmphasis, err := marshalJSON(ex.GenderGoalEmphasis)
	if err != nil {
		return fmt.Errorf("failed to marshal gender goal emphasis: %w", err)
	}

	var phase sql.NullString
	if ex.EarliestSafePhase != nil {
		phase = sql.NullString{String: phaseToString(*ex.EarliestSafePhase), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO exercises (
			id, name, pattern, target_muscles, equipment, difficulty,
			binder_aware, heavy_binding_safe, pelvic_floor_safe,
			contraindications, dysphoria_tags, earliest_safe_phase,
			effectiveness_rating, gender_goal_emphasis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			pattern = excluded.pattern,
			target_muscles = excluded.target_muscles,
			equipment = excluded.equipment,
			difficulty = excluded.difficulty,
			binder_aware = excluded.binder_aware,
			heavy_binding_safe = excluded.heavy_binding_safe,
			pelvic_floor_safe = excluded.pelvic_floor_safe,
			contraindications = excluded.contraindications,
			dysphoria_tags = excluded.dysphoria_tags,
			earliest_safe_phase = excluded.earliest_safe_phase,
			effectiveness_rating = excluded.effectiveness_rating,
			gender_goal_emphasis = excluded.gender_goal_emphasis
	`,
		ex.ID, ex.Name, string(ex.Pattern), targetMuscles, equipment, ex.Difficulty,
		boolToInt64(ex.BinderAware), boolToInt64(ex.HeavyBindingSafe), boolToInt64(ex.PelvicFloorSafe),
		contraindications, dysphoriaTags, phase,
		ex.EffectivenessRating, genderGoalEmphasis,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exercise: %w", err)
	}
	return nil
}

func phaseToString(p exercise.Phase) string {
	switch p {
	case exercise.PhaseImmediate:
		return "immediate"
	case exercise.PhaseEarly:
		return "early"
	case exercise.PhaseMid:
		return "mid"
	case exercise.PhaseLate:
		return "late"
	default:
		return "maintenance"
	}
}
