// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/waynenilsen/safeworkout/internal/api"
	"github.com/waynenilsen/safeworkout/internal/audit"
	"github.com/waynenilsen/safeworkout/internal/configstore"
	"github.com/waynenilsen/safeworkout/internal/domain/event"
	"github.com/waynenilsen/safeworkout/internal/planservice"
	"github.com/waynenilsen/safeworkout/internal/profile"
	"github.com/waynenilsen/safeworkout/internal/repository"
)

// Config holds server configuration.
type Config struct {
	Port int
	DB   *sql.DB
}

// Server represents the HTTP server.
type Server struct {
	config           Config
	httpServer       *http.Server
	handler          http.Handler
	profileRepo      *repository.ProfileRepository
	exerciseRepo     *repository.ExerciseRepository
	configRepo       *repository.ConfigRepository
	planRepo         *repository.PlanRepository
	savedWorkoutRepo *repository.SavedWorkoutRepository
	auditRepo        *repository.AuditRepository
	bus              *event.Bus
	configLoader     *configstore.Loader
	profileService   *profile.Service
	planService      *planservice.Service
}

// New creates a new Server instance, wiring repositories, the config
// loader, the event bus, the audit sink, and the plan/profile services
// together, then mounting the HTTP routes.
func New(cfg Config) *Server {
	profileRepo := repository.NewProfileRepository(cfg.DB)
	exerciseRepo := repository.NewExerciseRepository(cfg.DB)
	configRepo := repository.NewConfigRepository(cfg.DB)
	planRepo := repository.NewPlanRepository(cfg.DB)
	savedWorkoutRepo := repository.NewSavedWorkoutRepository(cfg.DB)
	auditRepo := repository.NewAuditRepository(cfg.DB)

	bus := event.NewBus()
	auditSink := audit.NewRepositorySink(auditRepo, log.Default())
	audit.Subscribe(bus, auditSink)

	configLoader := configstore.NewLoader(configRepo, log.Default())

	profileService := profile.NewService(profileRepo)
	planService := planservice.NewService(profileRepo, exerciseRepo, planRepo, configLoader, bus)

	s := &Server{
		config:           cfg,
		profileRepo:      profileRepo,
		exerciseRepo:     exerciseRepo,
		configRepo:       configRepo,
		planRepo:         planRepo,
		savedWorkoutRepo: savedWorkoutRepo,
		auditRepo:        auditRepo,
		bus:              bus,
		configLoader:     configLoader,
		profileService:   profileService,
		planService:      planService,
	}

	router := chi.NewRouter()
	s.registerRoutes(router)
	s.handler = router

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes mounts all API routes on the chi router.
func (s *Server) registerRoutes(r chi.Router) {
	profileHandler := api.NewProfileHandler(s.profileService)
	exerciseHandler := api.NewExerciseHandler(s.exerciseRepo)
	planHandler := api.NewPlanHandler(s.planService)
	savedWorkoutHandler := api.NewSavedWorkoutHandler(s.savedWorkoutRepo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/profiles", profileHandler.Create)
	r.Get("/profiles/{userID}", profileHandler.Get)
	r.Put("/profiles/{userID}", profileHandler.Update)

	r.Get("/exercises", exerciseHandler.List)

	r.Post("/plans/{userID}/generate", planHandler.Generate)
	r.Get("/plans/{userID}", planHandler.Get)
	r.Post("/plans/{userID}/days/{dayNumber}/regenerate", planHandler.RegenerateDay)
	r.Get("/plans/{userID}/saved-workouts", savedWorkoutHandler.List)
	r.Post("/plans/{userID}/saved-workouts", savedWorkoutHandler.Create)
}

// Handler returns the server's root HTTP handler, for use by in-process
// test transports.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the server's configured address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
