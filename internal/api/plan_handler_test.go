package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/testutil"
)

func seedFullExercisePool(t *testing.T, ts *testutil.TestServer) {
	t.Helper()
	immediate := exercise.PhaseImmediate
	pool := []struct {
		id      int
		name    string
		pattern exercise.Pattern
	}{
		{1, "Incline Push-up", exercise.PatternPush},
		{2, "Dumbbell Press", exercise.PatternPush},
		{3, "Overhead Press", exercise.PatternPush},
		{4, "Band Row", exercise.PatternPull},
		{5, "Lat Pulldown", exercise.PatternPull},
		{6, "Inverted Row", exercise.PatternPull},
		{7, "Goblet Squat", exercise.PatternSquat},
		{8, "Split Squat", exercise.PatternSquat},
		{9, "Romanian Deadlift", exercise.PatternHinge},
		{10, "Hip Hinge", exercise.PatternHinge},
		{11, "Reverse Lunge", exercise.PatternLunge},
		{12, "Farmer Carry", exercise.PatternCarry},
		{13, "Dead Bug", exercise.PatternCore},
		{14, "Plank", exercise.PatternCore},
		{15, "Bird Dog", exercise.PatternCore},
		{16, "Brisk Walk", exercise.PatternCardio},
		{17, "Hip Mobility Flow", exercise.PatternMobility},
		{18, "Hamstring Stretch", exercise.PatternStretch},
	}
	for _, ex := range pool {
		seedExercise(t, ts, exercise.Exercise{
			ID:                  ex.id,
			Name:                ex.name,
			Pattern:             ex.pattern,
			TargetMuscles:       []string{"general"},
			EarliestSafePhase:   &immediate,
			EffectivenessRating: 0.75,
		})
	}
}

func createMinimalProfile(t *testing.T, ts *testutil.TestServer, userID string) {
	t.Helper()
	resp, err := postJSON(ts.URL("/profiles"), minimalProfileBody(userID))
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201 creating profile, got %d: %s", resp.StatusCode, b)
	}
}

type planDataEnvelope struct {
	Data struct {
		ID     string `json:"ID"`
		UserID string `json:"UserID"`
		Days   []struct {
			DayNumber int    `json:"DayNumber"`
			Template  string `json:"Template"`
		} `json:"Days"`
	} `json:"data"`
}

func TestPlanGenerateAndGet(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	createMinimalProfile(t, ts, "user-plan-1")
	seedFullExercisePool(t, ts)

	resp, err := postJSON(ts.URL("/plans/user-plan-1/generate"), "")
	if err != nil {
		t.Fatalf("failed to generate plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, b)
	}

	var generated planDataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatalf("failed to decode generate response: %v", err)
	}
	if generated.Data.UserID != "user-plan-1" {
		t.Errorf("expected user id user-plan-1, got %q", generated.Data.UserID)
	}
	if len(generated.Data.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(generated.Data.Days))
	}

	getResp, err := http.Get(ts.URL("/plans/user-plan-1"))
	if err != nil {
		t.Fatalf("failed to get current plan: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(getResp.Body)
		t.Fatalf("expected 200, got %d: %s", getResp.StatusCode, b)
	}

	var fetched planDataEnvelope
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	if fetched.Data.ID != generated.Data.ID {
		t.Errorf("expected fetched plan id %q, got %q", generated.Data.ID, fetched.Data.ID)
	}
}

func TestPlanGenerateWithExplicitStartDate(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	createMinimalProfile(t, ts, "user-plan-startdate")
	seedFullExercisePool(t, ts)

	resp, err := postJSON(ts.URL("/plans/user-plan-startdate/generate"), `{"startDate":"2026-03-02T00:00:00Z"}`)
	if err != nil {
		t.Fatalf("failed to generate plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, b)
	}

	var generated struct {
		Data struct {
			StartDate string `json:"StartDate"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		t.Fatalf("failed to decode generate response: %v", err)
	}
	if generated.Data.StartDate != "2026-03-02T00:00:00Z" {
		t.Errorf("expected start date 2026-03-02T00:00:00Z, got %q", generated.Data.StartDate)
	}
}

func TestPlanGenerateMissingProfileFails(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	resp, err := postJSON(ts.URL("/plans/no-such-user/generate"), "")
	if err != nil {
		t.Fatalf("failed to call generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 404, got %d: %s", resp.StatusCode, b)
	}
}

func TestPlanGetMissingReturnsNotFound(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	createMinimalProfile(t, ts, "user-no-plan")

	resp, err := http.Get(ts.URL("/plans/user-no-plan"))
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 404, got %d: %s", resp.StatusCode, b)
	}
}

func TestPlanRegenerateDayPreservesDayNumber(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	createMinimalProfile(t, ts, "user-regen-1")
	seedFullExercisePool(t, ts)

	genResp, err := postJSON(ts.URL("/plans/user-regen-1/generate"), "")
	if err != nil {
		t.Fatalf("failed to generate plan: %v", err)
	}
	genResp.Body.Close()
	if genResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 generating plan, got %d", genResp.StatusCode)
	}

	regenResp, err := postJSON(ts.URL("/plans/user-regen-1/days/2/regenerate"), "")
	if err != nil {
		t.Fatalf("failed to regenerate day: %v", err)
	}
	defer regenResp.Body.Close()
	if regenResp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(regenResp.Body)
		t.Fatalf("expected 200, got %d: %s", regenResp.StatusCode, b)
	}

	var regenerated planDataEnvelope
	if err := json.NewDecoder(regenResp.Body).Decode(&regenerated); err != nil {
		t.Fatalf("failed to decode regenerate response: %v", err)
	}
	if len(regenerated.Data.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(regenerated.Data.Days))
	}
	if regenerated.Data.Days[2].DayNumber != 2 {
		t.Errorf("expected day 2 to keep its day number, got %d", regenerated.Data.Days[2].DayNumber)
	}
}

func TestPlanRegenerateDayOutOfRangeIsBadRequest(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	createMinimalProfile(t, ts, "user-regen-2")
	seedFullExercisePool(t, ts)

	genResp, err := postJSON(ts.URL("/plans/user-regen-2/generate"), "")
	if err != nil {
		t.Fatalf("failed to generate plan: %v", err)
	}
	genResp.Body.Close()

	resp, err := postJSON(ts.URL("/plans/user-regen-2/days/99/regenerate"), "")
	if err != nil {
		t.Fatalf("failed to call regenerate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, b)
	}
}
