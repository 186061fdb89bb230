package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/colinjrbh317-maker/GymTrack/internal/importer"
	"github.com/colinjrbh317-maker/GymTrack/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	apiKey string
	whois  WhoIsClient
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale enables tailnet identity resolution. Must be called before
// the server starts accepting requests.
func (s *Server) SetTailscale(whois WhoIsClient) {
	s.whois = whois
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		// Calculator endpoints — pure, no storage
		r.Post("/calc/warmup", s.handleCalcWarmup)
		r.Post("/calc/plates", s.handleCalcPlates)
		r.Get("/calc/onerm", s.handleCalcOneRM)
		r.Post("/voice/parse", s.handleVoiceParse)

		// Exercise library
		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Get("/exercises/{id}/history", s.handleExerciseHistory)

		// Workout log
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/workouts/{id}/exercises", s.handleAddWorkoutExercise)

		// Per-slot operations
		r.Get("/workout-exercises/{id}/warmup-settings", s.handleGetWarmupSettings)
		r.Put("/workout-exercises/{id}/warmup-settings", s.handlePutWarmupSettings)
		r.Get("/workout-exercises/{id}/warmup", s.handleWarmupForSlot)
		r.Post("/workout-exercises/{id}/sets", s.handleLogSet)
		r.Post("/workout-exercises/{id}/voice", s.handleVoiceLog)

		r.Get("/stats", s.handleStats)
		r.Get("/import-logs", s.handleImportLogs)

		// History import (API key required)
		r.Route("/import", func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/", s.handleImport)
		})
	})
}

// newImporter builds a request-scoped importer for uploaded CSV exports.
func (s *Server) newImporter(unit string) *importer.Importer {
	return importer.New(s.db, s.log, parseUnit(unit), false)
}
