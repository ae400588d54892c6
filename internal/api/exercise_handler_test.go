package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
	"github.com/waynenilsen/safeworkout/internal/repository"
	"github.com/waynenilsen/safeworkout/internal/testutil"
)

func seedExercise(t *testing.T, ts *testutil.TestServer, ex exercise.Exercise) {
	t.Helper()
	repo := repository.NewExerciseRepository(ts.DB())
	if err := repo.Upsert(context.Background(), ex); err != nil {
		t.Fatalf("failed to seed exercise: %v", err)
	}
}

func TestExerciseListReturnsSeededExercises(t *testing.T) {
	ts, err := testutil.NewTestServer()
	if err != nil {
		t.Fatalf("failed to create test server: %v", err)
	}
	defer ts.Close()

	immediate := exercise.PhaseImmediate
	seedExercise(t, ts, exercise.Exercise{
		ID:                  1,
		Name:                "Incline Push-up",
		Pattern:             exercise.PatternPush,
		TargetMuscles:       []string{"chest", "triceps"},
		EarliestSafePhase:   &immediate,
		EffectivenessRating: 0.7,
	})

	resp, err := http.Get(ts.URL("/exercises"))
	if err != nil {
		t.Fatalf("failed to list exercises: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, b)
	}

	var envelope struct {
		Data []exercise.Exercise `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Name != "Incline Push-up" {
		t.Errorf("expected name Incline Push-up, got %q", envelope.Data[0].Name)
	}
}
