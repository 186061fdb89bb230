package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/models"
	"github.com/colinjrbh317-maker/GymTrack/internal/storage"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListExercises(r.Context(), userIDFromContext(r), r.URL.Query().Get("q"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Equipment  string `json:"equipment"`
		IsCompound *bool  `json:"is_compound"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Unless the client says otherwise, classify by name so compound lifts
	// get warm-ups suggested by default
	isCompound := calc.IsCompoundLift(req.Name)
	if req.IsCompound != nil {
		isCompound = *req.IsCompound
	}

	row := models.ExerciseRow{
		UserID:     userIDFromContext(r),
		Name:       req.Name,
		Equipment:  req.Equipment,
		IsCompound: isCompound,
	}
	id, err := s.db.CreateExercise(r.Context(), row)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	created, err := s.db.GetExercise(r.Context(), id, row.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	exerciseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QueryExerciseHistory(r.Context(), exerciseID, start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	for i := range rows {
		rows[i].EstimatedOneRM = calc.EstimateOneRM(rows[i].Weight, rows[i].Reps)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string     `json:"name"`
		StartedAt *time.Time `json:"started_at"`
		Notes     string     `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	row := models.WorkoutRow{
		ID:        uuid.New(),
		UserID:    userIDFromContext(r),
		Name:      req.Name,
		StartedAt: time.Now(),
		Notes:     req.Notes,
	}
	if req.StartedAt != nil {
		row.StartedAt = *req.StartedAt
	}

	if _, err := s.db.InsertWorkout(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), workoutID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	deleted, err := s.db.DeleteWorkout(r.Context(), workoutID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWorkoutExercise(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	var req struct {
		ExerciseID    int64   `json:"exercise_id"`
		Position      int     `json:"position"`
		WorkingWeight float64 `json:"working_weight"`
		Unit          string  `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.ExerciseID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise_id is required"})
		return
	}

	// Ownership check before writing under the workout
	if _, err := s.db.GetWorkout(r.Context(), workoutID, userIDFromContext(r)); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}

	row := models.WorkoutExerciseRow{
		ID:            uuid.New(),
		WorkoutID:     workoutID,
		ExerciseID:    req.ExerciseID,
		Position:      req.Position,
		WorkingWeight: req.WorkingWeight,
		Unit:          string(parseUnit(req.Unit)),
	}
	if err := s.db.InsertWorkoutExercise(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout exercise ID"})
		return
	}

	var req struct {
		Weight   float64  `json:"weight"`
		Reps     int      `json:"reps"`
		IsWarmup bool     `json:"is_warmup"`
		RPE      *float64 `json:"rpe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Reps <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be positive"})
		return
	}

	row, status, err := s.logSet(r, slotID, req.Weight, req.Reps, req.IsWarmup, req.RPE, models.SetSourceManual)
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), userIDFromContext(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	started := time.Now()

	imp := s.newImporter(r.URL.Query().Get("unit"))
	importErr := imp.ImportFile(r.Context(), r.Body, uid)
	stats := imp.Stats()

	durationMs := int(time.Since(started).Milliseconds())
	status := "success"
	var errMsg *string
	if importErr != nil {
		status = "error"
		msg := importErr.Error()
		errMsg = &msg
	}
	if _, err := s.db.InsertImportLog(r.Context(), storage.ImportLog{
		UserID:       uid,
		Source:       "csv-upload",
		Status:       status,
		Workouts:     stats.WorkoutsInserted,
		SetsInserted: stats.SetsInserted,
		DurationMs:   &durationMs,
		ErrorMessage: errMsg,
	}); err != nil {
		s.log.Error("failed to log import", "error", err)
	}

	if importErr != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": importErr.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// logSet verifies slot ownership, assigns the next set number, and inserts.
// Returns the created row or a status code and error for the response.
func (s *Server) logSet(r *http.Request, slotID uuid.UUID, weight float64, reps int, isWarmup bool, rpe *float64, source string) (*models.SetRow, int, error) {
	if _, err := s.db.GetWorkoutExercise(r.Context(), slotID, userIDFromContext(r)); err != nil {
		return nil, http.StatusNotFound, errNotFound
	}
	setNumber, err := s.db.NextSetNumber(r.Context(), slotID)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	row := models.SetRow{
		ID:                uuid.New(),
		WorkoutExerciseID: slotID,
		SetNumber:         setNumber,
		Weight:            weight,
		Reps:              reps,
		IsWarmup:          isWarmup,
		RPE:               rpe,
		Source:            source,
		LoggedAt:          time.Now(),
	}
	if err := s.db.InsertSet(r.Context(), row); err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &row, http.StatusCreated, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 90 days
		end = time.Now()
		start = end.AddDate(0, 0, -90)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
