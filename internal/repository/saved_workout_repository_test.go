package repository

import (
	"context"
	"testing"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

func TestSavedWorkoutRepository_SaveAndListForUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if _, err := db.Exec(`INSERT INTO profiles (user_id, identity, updated_at) VALUES (?, ?, ?)`, "user-1", "NON_BINARY", time.Now().Format(time.RFC3339)); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	repo := NewSavedWorkoutRepository(db)
	ctx := context.Background()

	w := plan.Workout{Name: "30-minute", TotalMinutes: 30, Exercises: []plan.ExerciseInstance{{ExerciseID: 1, Name: "Row"}}}
	id, err := repo.Save(ctx, "user-1", "plan-1", 0, w)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a nonzero id")
	}

	list, err := repo.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 saved workout, got %d", len(list))
	}
	if list[0].Workout.Name != "30-minute" || len(list[0].Workout.Exercises) != 1 {
		t.Errorf("unexpected saved workout: %+v", list[0])
	}
}

func TestSavedWorkoutRepository_DeleteScopedToUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, id := range []string{"user-1", "user-2"} {
		if _, err := db.Exec(`INSERT INTO profiles (user_id, identity, updated_at) VALUES (?, ?, ?)`, id, "NON_BINARY", time.Now().Format(time.RFC3339)); err != nil {
			t.Fatalf("seed profile %s: %v", id, err)
		}
	}

	repo := NewSavedWorkoutRepository(db)
	ctx := context.Background()

	id, err := repo.Save(ctx, "user-1", "plan-1", 0, plan.Workout{Name: "30-minute"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.Delete(ctx, "user-2", id); err != nil {
		t.Fatalf("delete as wrong user: %v", err)
	}
	list, err := repo.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected delete by wrong user to be a no-op, got %d remaining", len(list))
	}

	if err := repo.Delete(ctx, "user-1", id); err != nil {
		t.Fatalf("delete as owner: %v", err)
	}
	list, err = repo.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list for user after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected 0 remaining after owner delete, got %d", len(list))
	}
}
