package api

import (
	"context"
	"net/http"

	"github.com/waynenilsen/safeworkout/internal/domain/exercise"
)

// ExerciseLister is the read-only interface the exercise library handler needs.
type ExerciseLister interface {
	ListAll(ctx context.Context) ([]exercise.Exercise, error)
}

// ExerciseHandler handles HTTP requests for the exercise library.
type ExerciseHandler struct {
	repo ExerciseLister
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(repo ExerciseLister) *ExerciseHandler {
	return &ExerciseHandler{repo: repo}
}

// List handles GET /exercises.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.repo.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, exercises)
}
