package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/profile"
)

// ProfileRepository persists profile.Profile aggregates, including their
// nested surgery history.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	UserID            string
	Identity          string
	PrimaryGoal       string
	Experience        string
	Equipment         string
	SessionDurations  string
	HRTType           string
	HRTMonths         int64
	HRTFrequency      string
	HRTDays           string
	Binds             int64
	BinderType        string
	BinderFrequency   string
	BinderDurationHrs int64
	DysphoriaTriggers string
	PlanningAhead     int64
	UpdatedAt         string
}

// GetByID retrieves a profile and its surgeries by user ID. Returns
// (nil, nil) if no profile exists for that ID.
func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (*profile.Profile, error) {
	var row profileRow
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, identity, primary_goal, experience, equipment, session_durations,
		       hrt_type, hrt_months, hrt_frequency, hrt_days,
		       binds, binder_type, binder_frequency, binder_duration_hrs,
		       dysphoria_triggers, planning_ahead, updated_at
		FROM profiles WHERE user_id = ?
	`, userID).Scan(
		&row.UserID, &row.Identity, &row.PrimaryGoal, &row.Experience, &row.Equipment, &row.SessionDurations,
		&row.HRTType, &row.HRTMonths, &row.HRTFrequency, &row.HRTDays,
		&row.Binds, &row.BinderType, &row.BinderFrequency, &row.BinderDurationHrs,
		&row.DysphoriaTriggers, &row.PlanningAhead, &row.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	surgeries, err := r.surgeriesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return rowToProfile(row, surgeries)
}

// Save creates or replaces a profile and its surgery rows in a single transaction.
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	equipment, err := marshalJSON(p.Equipment)
	if err != nil {
		return fmt.Errorf("failed to marshal equipment: %w", err)
	}
	sessionDurations, err := marshalJSON(p.SessionDurations)
	if err != nil {
		return fmt.Errorf("failed to marshal session durations: %w", err)
	}
	hrtDays, err := marshalJSON(weekdaysToInts(p.HRT.Days))
	if err != nil {
		return fmt.Errorf("failed to marshal hrt days: %w", err)
	}
	dysphoriaTriggers, err := marshalJSON(p.DysphoriaTriggers)
	if err != nil {
		return fmt.Errorf("failed to marshal dysphoria triggers: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin profile save transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, identity, primary_goal, experience, equipment, session_durations,
			hrt_type, hrt_months, hrt_frequency, hrt_days,
			binds, binder_type, binder_frequency, binder_duration_hrs,
			dysphoria_triggers, planning_ahead, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			identity = excluded.identity,
			primary_goal = excluded.primary_goal,
			experience = excluded.experience,
			equipment = excluded.equipment,
			session_durations = excluded.session_durations,
			hrt_type = excluded.hrt_type,
			hrt_months = excluded.hrt_months,
			hrt_frequency = excluded.hrt_frequency,
			hrt_days = excluded.hrt_days,
			binds = excluded.binds,
			binder_type = excluded.binder_type,
			binder_frequency = excluded.binder_frequency,
			binder_duration_hrs = excluded.binder_duration_hrs,
			dysphoria_triggers = excluded.dysphoria_triggers,
			planning_ahead = excluded.planning_ahead,
			updated_at = excluded.updated_at
	`,
		p.UserID, string(p.Identity), string(p.PrimaryGoal), string(p.Experience), equipment, sessionDurations,
		string(p.HRT.Type), p.HRT.Months, string(p.HRT.Frequency), hrtDays,
		boolToInt64(p.Binding.Binds), string(p.Binding.Type), string(p.Binding.Frequency), p.Binding.DurationHours,
		dysphoriaTriggers, boolToInt64(p.PlanningAhead), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM surgeries WHERE user_id = ?`, p.UserID); err != nil {
		return fmt.Errorf("failed to clear surgeries: %w", err)
	}
	for _, s := range p.Surgeries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO surgeries (user_id, surgery_type, surgery_date, fully_healed)
			VALUES (?, ?, ?, ?)
		`, p.UserID, string(s.Type), s.Date.Format(time.RFC3339), boolToInt64(s.FullyHealed))
		if err != nil {
			return fmt.Errorf("failed to insert surgery: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile save: %w", err)
	}
	return nil
}

// Delete removes a profile and its surgeries.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) surgeriesFor(ctx context.Context, userID string) ([]profile.Surgery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT surgery_type, surgery_date, fully_healed FROM surgeries WHERE user_id = ? ORDER BY surgery_date
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch surgeries: %w", err)
	}
	defer rows.Close()

	var out []profile.Surgery
	for rows.Next() {
		var surgeryType, surgeryDate string
		var fullyHealed int64
		if err := rows.Scan(&surgeryType, &surgeryDate, &fullyHealed); err != nil {
			return nil, fmt.Errorf("failed to scan surgery: %w", err)
		}
		date, err := time.Parse(time.RFC3339, surgeryDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse surgery date: %w", err)
		}
		out = append(out, profile.Surgery{
			Type:        profile.SurgeryType(surgeryType),
			Date:        date,
			FullyHealed: int64ToBool(fullyHealed),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate surgeries: %w", err)
	}
	return out, nil
}

func rowToProfile(row profileRow, surgeries []profile.Surgery) (*profile.Profile, error) {
	var equipment, dysphoriaTriggers []string
	var hrtDayInts, sessionDurationInts []int
	if err := json.Unmarshal([]byte(row.Equipment), &equipment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipment: %w", err)
	}
	if err := json.Unmarshal([]byte(row.SessionDurations), &sessionDurationInts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session durations: %w", err)
	}
	if err := json.Unmarshal([]byte(row.HRTDays), &hrtDayInts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hrt days: %w", err)
	}
	if err := json.Unmarshal([]byte(row.DysphoriaTriggers), &dysphoriaTriggers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dysphoria triggers: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile updated_at: %w", err)
	}

	triggers := make([]profile.DysphoriaTrigger, len(dysphoriaTriggers))
	for i, t := range dysphoriaTriggers {
		triggers[i] = profile.DysphoriaTrigger(t)
	}

	return &profile.Profile{
		UserID:           row.UserID,
		Identity:         profile.Identity(row.Identity),
		PrimaryGoal:      profile.Goal(row.PrimaryGoal),
		Experience:       profile.Experience(row.Experience),
		Equipment:        exercise.NormalizeEquipment(equipment),
		SessionDurations: sessionDurationInts,
		HRT: profile.HRTStatus{
			Type:      profile.HRTType(row.HRTType),
			Months:    int(row.HRTMonths),
			Frequency: profile.Frequency(row.HRTFrequency),
			Days:      intsToWeekdays(hrtDayInts),
		},
		Binding: profile.Binding{
			Binds:         int64ToBool(row.Binds),
			Type:          profile.BinderType(row.BinderType),
			Frequency:     profile.Frequency(row.BinderFrequency),
			DurationHours: int(row.BinderDurationHrs),
		},
		Surgeries:         surgeries,
		DysphoriaTriggers: triggers,
		PlanningAhead:     int64ToBool(row.PlanningAhead),
		UpdatedAt:         updatedAt,
	}, nil
}

func weekdaysToInts(days []time.Weekday) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func intsToWeekdays(ints []int) []time.Weekday {
	out := make([]time.Weekday, len(ints))
	for i, v := range ints {
		out[i] = time.Weekday(v)
	}
	return out
}
