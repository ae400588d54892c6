package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/waynenilsen/safeworkout/internal/domain/plan"
)

// PlanGenerator is the orchestration interface the plan handler needs.
type PlanGenerator interface {
	Generate(ctx context.Context, userID string, startDate time.Time) (*plan.Plan, error)
	GetCurrent(ctx context.Context, userID string) (*plan.Plan, error)
	RegenerateDay(ctx context.Context, userID string, dayNumber int) (*plan.Plan, error)
}

// generateRequest is the optional request body for POST .../generate. An
// absent or zero StartDate means "generate starting today".
type generateRequest struct {
	StartDate time.Time `json:"startDate"`
}

// PlanHandler handles HTTP requests for plan generation and retrieval.
type PlanHandler struct {
	service PlanGenerator
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(service PlanGenerator) *PlanHandler {
	return &PlanHandler{service: service}
}

// Generate handles POST /plans/{userID}/generate. The request body is
// optional; when present, its startDate field fixes the plan's first day
// (useful for reproducible test runs and backfills) instead of defaulting
// to today.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req generateRequest
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	p, err := h.service.Generate(r.Context(), userID, req.StartDate)
	if err != nil {
		if p == nil {
			writeDomainError(w, err)
			return
		}
		// Persistence failed but a plan was assembled; return it with the
		// failure surfaced in the error envelope rather than discarding it.
		writeJSON(w, http.StatusOK, struct {
			Data  *plan.Plan   `json:"data"`
			Error *ErrorDetail `json:"error,omitempty"`
		}{Data: p, Error: &ErrorDetail{Code: domainErrorToCode(err), Message: err.Error()}})
		return
	}
	writeData(w, http.StatusCreated, p)
}

// Get handles GET /plans/{userID}.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	p, err := h.service.GetCurrent(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// RegenerateDay handles POST /plans/{userID}/days/{dayNumber}/regenerate.
func (h *PlanHandler) RegenerateDay(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	dayNumber, err := strconv.Atoi(r.PathValue("dayNumber"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "dayNumber must be an integer")
		return
	}

	p, err := h.service.RegenerateDay(r.Context(), userID, dayNumber)
	if err != nil {
		if p == nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data  *plan.Plan   `json:"data"`
			Error *ErrorDetail `json:"error,omitempty"`
		}{Data: p, Error: &ErrorDetail{Code: domainErrorToCode(err), Message: err.Error()}})
		return
	}
	writeData(w, http.StatusOK, p)
}
