package planservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	domainprofile "github.com/waynenilsen/safeworkout/internal/domain/profile"
	apperrors "github.com/waynenilsen/safeworkout/internal/errors"
)

type stubProfiles struct {
	p   *domainprofile.Profile
	err error
}

func (s stubProfiles) GetByID(ctx context.Context, userID string) (*domainprofile.Profile, error) {
	return s.p, s.err
}

type stubExercises struct {
	pool []exercise.Exercise
	err  error
}

func (s stubExercises) ListAll(ctx context.Context) ([]exercise.Exercise, error) {
	return s.pool, s.err
}

type stubPlans struct {
	saved   *plan.Plan
	saveErr error
	current *plan.Plan
	getErr  error
}

func (s *stubPlans) Save(ctx context.Context, p *plan.Plan) error {
	s.saved = p
	return s.saveErr
}
func (s *stubPlans) GetByID(ctx context.Context, id string) (*plan.Plan, error) { return s.current, s.getErr }
func (s *stubPlans) GetCurrentForUser(ctx context.Context, userID string) (*plan.Plan, error) {
	return s.current, s.getErr
}

type stubConfig struct {
	cfg *configstore.Config
}

func (s stubConfig) Load(ctx context.Context) *configstore.Config { return s.cfg }

type emptySource struct{}

func (emptySource) FetchRows(ctx context.Context) ([]configstore.Row, error) { return nil, nil }

func testPool() []exercise.Exercise {
	immediate := exercise.PhaseImmediate
	return []exercise.Exercise{
		{ID: 1, Name: "Push-up", Pattern: exercise.PatternPush, TargetMuscles: []string{"chest"}, EffectivenessRating: 0.8, EarliestSafePhase: &immediate},
		{ID: 2, Name: "Row", Pattern: exercise.PatternPull, TargetMuscles: []string{"back"}, EffectivenessRating: 0.8, EarliestSafePhase: &immediate},
		{ID: 3, Name: "Squat", Pattern: exercise.PatternSquat, TargetMuscles: []string{"quads"}, EffectivenessRating: 0.8, EarliestSafePhase: &immediate},
	}
}

func testProfile() *domainprofile.Profile {
	return &domainprofile.Profile{
		UserID:           "user-1",
		Identity:         domainprofile.IdentityNonBinary,
		PrimaryGoal:      domainprofile.GoalGeneralFitness,
		SessionDurations: []int{30, 45, 60, 90},
	}
}

func testConfig() *configstore.Config {
	return configstore.NewLoader(emptySource{}, nil).Load(context.Background())
}

func TestService_GenerateSavesAndReturnsPlan(t *testing.T) {
	plans := &stubPlans{}
	svc := NewService(stubProfiles{p: testProfile()}, stubExercises{pool: testPool()}, plans, stubConfig{cfg: testConfig()}, nil)

	got, err := svc.Generate(context.Background(), "user-1", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("expected plan for user-1, got %q", got.UserID)
	}
	if plans.saved == nil || plans.saved.ID != got.ID {
		t.Error("expected plan to be saved")
	}
}

func TestService_GenerateRejectsMissingProfile(t *testing.T) {
	svc := NewService(stubProfiles{p: nil}, stubExercises{pool: testPool()}, &stubPlans{}, stubConfig{cfg: testConfig()}, nil)

	_, err := svc.Generate(context.Background(), "user-1", time.Time{})
	if err == nil || !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_GenerateReturnsPlanAndErrorOnPersistenceFailure(t *testing.T) {
	plans := &stubPlans{saveErr: errors.New("disk full")}
	svc := NewService(stubProfiles{p: testProfile()}, stubExercises{pool: testPool()}, plans, stubConfig{cfg: testConfig()}, nil)

	got, err := svc.Generate(context.Background(), "user-1", time.Time{})
	if got == nil {
		t.Fatal("expected plan to still be returned on persistence failure")
	}
	if err == nil || apperrors.GetStateErrorCode(err) != apperrors.CodePersistenceRetryExhausted {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestService_GetCurrentReturnsNotFoundWhenMissing(t *testing.T) {
	svc := NewService(stubProfiles{}, stubExercises{}, &stubPlans{current: nil}, stubConfig{}, nil)

	_, err := svc.GetCurrent(context.Background(), "user-1")
	if err == nil || !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_RegenerateDayRejectsOutOfRangeDayNumber(t *testing.T) {
	svc := NewService(stubProfiles{}, stubExercises{}, &stubPlans{}, stubConfig{}, nil)

	_, err := svc.RegenerateDay(context.Background(), "user-1", 99)
	if err == nil || !apperrors.IsBadRequest(err) {
		t.Fatalf("expected bad request error, got %v", err)
	}
}

func TestService_RegenerateDayUpdatesOneDayOfExistingPlan(t *testing.T) {
	existing := &plan.Plan{ID: "plan-1", UserID: "user-1"}
	existing.Days[0] = plan.Day{DayNumber: 0, Template: plan.TemplateUpperPush}

	plans := &stubPlans{current: existing}
	svc := NewService(stubProfiles{p: testProfile()}, stubExercises{pool: testPool()}, plans, stubConfig{cfg: testConfig()}, nil)

	got, err := svc.RegenerateDay(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Days[0].DayNumber != 0 || got.Days[0].Template != plan.TemplateUpperPush {
		t.Errorf("expected day 0 template preserved, got %+v", got.Days[0])
	}
}
