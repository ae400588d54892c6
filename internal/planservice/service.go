// Package planservice orchestrates plan generation: it pulls the profile
// and exercise pool, loads the current safety configuration, runs
// planassembler.Assemble/RegenerateDay, and persists the result. It is the
// transactional/wiring layer above the pure internal/planassembler engine,
// mirroring the teacher's internal/service split between pure progression
// logic and the service that wires it to repositories.
package planservice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	domainevent "github.com/waynenilsen/safeworkout/internal/domain/event"
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	domainprofile "github.com/waynenilsen/safeworkout/internal/domain/profile"
	apperrors "github.com/waynenilsen/safeworkout/internal/errors"
	"github.com/waynenilsen/safeworkout/internal/planassembler"
)

// ProfileGetter is the subset of ProfileRepository the service needs.
type ProfileGetter interface {
	GetByID(ctx context.Context, userID string) (*domainprofile.Profile, error)
}

// ExerciseLister is the subset of ExerciseRepository the service needs.
type ExerciseLister interface {
	ListAll(ctx context.Context) ([]exercise.Exercise, error)
}

// PlanStore is the subset of PlanRepository the service needs.
type PlanStore interface {
	Save(ctx context.Context, p *plan.Plan) error
	GetByID(ctx context.Context, id string) (*plan.Plan, error)
	GetCurrentForUser(ctx context.Context, userID string) (*plan.Plan, error)
}

// ConfigProvider loads the current safety configuration.
type ConfigProvider interface {
	Load(ctx context.Context) *configstore.Config
}

// Service orchestrates plan generation, fetch, and per-day regeneration.
type Service struct {
	profiles  ProfileGetter
	exercises ExerciseLister
	plans     PlanStore
	config    ConfigProvider
	bus       *domainevent.Bus
	newPlanID func() string
}

// NewService creates a new plan service.
func NewService(profiles ProfileGetter, exercises ExerciseLister, plans PlanStore, config ConfigProvider, bus *domainevent.Bus) *Service {
	return &Service{
		profiles:  profiles,
		exercises: exercises,
		plans:     plans,
		config:    config,
		bus:       bus,
		newPlanID: uuid.NewString,
	}
}

// Generate runs the full assembly pipeline for a user and persists the
// result. startDate fixes the plan's first day; a zero value means "today".
// If persistence fails, the assembled plan is still returned to the caller
// (per the PERSISTENCE_FAILED policy) wrapped around the save error.
func (s *Service) Generate(ctx context.Context, userID string, startDate time.Time) (*plan.Plan, error) {
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.exercises.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternal("failed to load exercise library", err)
	}

	cfg := s.config.Load(ctx)
	planID := s.newPlanID()

	if startDate.IsZero() {
		startDate = time.Now()
	}

	result, err := planassembler.Assemble(ctx, p, pool, cfg, s.bus, planID, startDate)
	if err != nil {
		return nil, apperrors.NewInternal("failed to assemble plan", err)
	}

	if err := s.plans.Save(ctx, result); err != nil {
		return result, apperrors.NewPersistenceError("save plan", err)
	}

	return result, nil
}

// GetCurrent returns the most recently generated plan for a user.
func (s *Service) GetCurrent(ctx context.Context, userID string) (*plan.Plan, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequest("user ID is required")
	}
	p, err := s.plans.GetCurrentForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to fetch current plan", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFound("plan", userID)
	}
	return p, nil
}

// RegenerateDay re-runs assembly for a single day of a user's current plan
// and persists the updated plan.
func (s *Service) RegenerateDay(ctx context.Context, userID string, dayNumber int) (*plan.Plan, error) {
	if dayNumber < 0 || dayNumber >= len(plan.WeeklyRotation) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("day number must be between 0 and %d", len(plan.WeeklyRotation)-1))
	}

	currentPlan, err := s.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.exercises.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternal("failed to load exercise library", err)
	}

	cfg := s.config.Load(ctx)

	newDay, err := planassembler.RegenerateDay(ctx, p, pool, cfg, s.bus, currentPlan.ID, currentPlan.Days[dayNumber])
	if err != nil {
		return nil, apperrors.NewInternal("failed to regenerate day", err)
	}
	currentPlan.Days[dayNumber] = *newDay

	if err := s.plans.Save(ctx, currentPlan); err != nil {
		return currentPlan, apperrors.NewPersistenceError("save regenerated plan", err)
	}

	return currentPlan, nil
}

func (s *Service) loadProfile(ctx context.Context, userID string) (*domainprofile.Profile, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequest("user ID is required")
	}
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to load profile", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFound("profile", userID)
	}
	if verr := p.Validate(); verr != nil {
		return nil, apperrors.NewProfileInvariantError("profile", verr.Error())
	}
	return p, nil
}
