package api

import (
	"net/http"
	"time"

	domainprofile "github.com/waynenilsen/safeworkout/internal/domain/profile"
	"github.com/waynenilsen/safeworkout/internal/profile"
)

// ProfileHandler handles HTTP requests for profile operations.
type ProfileHandler struct {
	service *profile.Service
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type surgeryRequest struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	FullyHealed bool      `json:"fullyHealed"`
}

type profileRequest struct {
	UserID            string           `json:"userId"`
	Identity          string           `json:"identity"`
	PrimaryGoal       string           `json:"primaryGoal"`
	Experience        string           `json:"experience"`
	Equipment         []string         `json:"equipment"`
	SessionDurations  []int            `json:"sessionDurations"`
	HRTType           string           `json:"hrtType"`
	HRTMonths         int              `json:"hrtMonths"`
	HRTFrequency      string           `json:"hrtFrequency"`
	HRTDays           []int            `json:"hrtDays"`
	Binds             bool             `json:"binds"`
	BinderType        string           `json:"binderType"`
	BinderFrequency   string           `json:"binderFrequency"`
	BinderDurationHrs int              `json:"binderDurationHrs"`
	Surgeries         []surgeryRequest `json:"surgeries"`
	DysphoriaTriggers []string         `json:"dysphoriaTriggers"`
	PlanningAhead     bool             `json:"planningAhead"`
}

func (req profileRequest) toDomain() *domainprofile.Profile {
	days := make([]time.Weekday, len(req.HRTDays))
	for i, d := range req.HRTDays {
		days[i] = time.Weekday(d)
	}
	triggers := make([]domainprofile.DysphoriaTrigger, len(req.DysphoriaTriggers))
	for i, t := range req.DysphoriaTriggers {
		triggers[i] = domainprofile.DysphoriaTrigger(t)
	}
	surgeries := make([]domainprofile.Surgery, len(req.Surgeries))
	for i, s := range req.Surgeries {
		surgeries[i] = domainprofile.Surgery{
			Type:        domainprofile.SurgeryType(s.Type),
			Date:        s.Date,
			FullyHealed: s.FullyHealed,
		}
	}

	return &domainprofile.Profile{
		UserID:           req.UserID,
		Identity:         domainprofile.Identity(req.Identity),
		PrimaryGoal:      domainprofile.Goal(req.PrimaryGoal),
		Experience:       domainprofile.Experience(req.Experience),
		Equipment:        req.Equipment,
		SessionDurations: req.SessionDurations,
		HRT: domainprofile.HRTStatus{
			Type:      domainprofile.HRTType(req.HRTType),
			Months:    req.HRTMonths,
			Frequency: domainprofile.Frequency(req.HRTFrequency),
			Days:      days,
		},
		Binding: domainprofile.Binding{
			Binds:         req.Binds,
			Type:          domainprofile.BinderType(req.BinderType),
			Frequency:     domainprofile.Frequency(req.BinderFrequency),
			DurationHours: req.BinderDurationHrs,
		},
		Surgeries:         surgeries,
		DysphoriaTriggers: triggers,
		PlanningAhead:     req.PlanningAhead,
	}
}

// Create handles POST /profiles.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.CreateProfile(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// Get handles GET /profiles/{userID}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// Update handles PUT /profiles/{userID}.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	var req profileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), userID, req.toDomain())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}
