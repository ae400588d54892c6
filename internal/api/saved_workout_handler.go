package api

import (
	"context"
	"net/http"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
	"github.com/waynenilsen/safeworkout/internal/repository"
)

// SavedWorkoutStore is the persistence interface the saved-workout handler needs.
type SavedWorkoutStore interface {
	Save(ctx context.Context, userID, planID string, dayNumber int, w plan.Workout) (int64, error)
	ListForUser(ctx context.Context, userID string) ([]repository.SavedWorkout, error)
}

// SavedWorkoutHandler handles HTTP requests for saved workout copies.
type SavedWorkoutHandler struct {
	store SavedWorkoutStore
}

// NewSavedWorkoutHandler creates a new SavedWorkoutHandler.
func NewSavedWorkoutHandler(store SavedWorkoutStore) *SavedWorkoutHandler {
	return &SavedWorkoutHandler{store: store}
}

type saveWorkoutRequest struct {
	PlanID    string       `json:"planId"`
	DayNumber int          `json:"dayNumber"`
	Workout   plan.Workout `json:"workout"`
}

// List handles GET /plans/{userID}/saved-workouts.
func (h *SavedWorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	workouts, err := h.store.ListForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, workouts)
}

// Create handles POST /plans/{userID}/saved-workouts.
func (h *SavedWorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req saveWorkoutRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	id, err := h.store.Save(r.Context(), userID, req.PlanID, req.DayNumber, req.Workout)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, struct {
		ID int64 `json:"id"`
	}{ID: id})
}
