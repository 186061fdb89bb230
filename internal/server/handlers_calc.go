package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/models"
)

var errNotFound = errors.New("not found")

// parseUnit maps a client-supplied unit string to a weight unit,
// defaulting to pounds.
func parseUnit(s string) calc.WeightUnit {
	if s == "kg" {
		return calc.Kilograms
	}
	return calc.Pounds
}

func (s *Server) handleCalcWarmup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkingWeight     float64  `json:"working_weight"`
		NumWarmups        int      `json:"num_warmups"`
		Unit              string   `json:"unit"`
		UseFineIncrements bool     `json:"use_fine_increments"`
		BarWeight         *float64 `json:"bar_weight"`
		EstimatedOneRM    *float64 `json:"estimated_one_rm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.NumWarmups < 1 || req.NumWarmups > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "num_warmups must be between 1 and 5"})
		return
	}

	sets := calc.GenerateWarmupSets(req.WorkingWeight, calc.WarmupSettings{
		NumberOfWarmups:   req.NumWarmups,
		Unit:              parseUnit(req.Unit),
		UseFineIncrements: req.UseFineIncrements,
		BarWeight:         req.BarWeight,
		EstimatedOneRM:    req.EstimatedOneRM,
	})
	writeJSON(w, http.StatusOK, map[string]any{"warmup_sets": sets})
}

func (s *Server) handleCalcPlates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetWeight float64   `json:"target_weight"`
		BarWeight    float64   `json:"bar_weight"`
		Plates       []float64 `json:"plates"`
		Unit         string    `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.TargetWeight <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target_weight must be positive"})
		return
	}

	result := calc.CalculatePlateLoading(req.TargetWeight, req.BarWeight, req.Plates, parseUnit(req.Unit))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCalcOneRM(w http.ResponseWriter, r *http.Request) {
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid weight"})
		return
	}
	reps, err := strconv.Atoi(r.URL.Query().Get("reps"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reps"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"weight":           weight,
		"reps":             reps,
		"estimated_one_rm": calc.EstimateOneRM(weight, reps),
	})
}

func (s *Server) handleGetWarmupSettings(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout exercise ID"})
		return
	}

	slot, err := s.db.GetWorkoutExercise(r.Context(), slotID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout exercise not found"})
		return
	}

	settings, err := s.db.GetWarmupSettings(r.Context(), slotID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if settings == nil {
		settings = defaultWarmupSettings(slot)
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutWarmupSettings(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout exercise ID"})
		return
	}
	if _, err := s.db.GetWorkoutExercise(r.Context(), slotID, userIDFromContext(r)); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout exercise not found"})
		return
	}

	var req struct {
		NumWarmups        int      `json:"num_warmups"`
		Unit              string   `json:"unit"`
		UseFineIncrements bool     `json:"use_fine_increments"`
		BarWeight         *float64 `json:"bar_weight"`
		EstimatedOneRM    *float64 `json:"estimated_one_rm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.NumWarmups < 1 || req.NumWarmups > 5 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "num_warmups must be between 1 and 5"})
		return
	}

	row := models.WarmupSettingsRow{
		WorkoutExerciseID: slotID,
		NumWarmups:        req.NumWarmups,
		Unit:              string(parseUnit(req.Unit)),
		UseFineIncrements: req.UseFineIncrements,
		BarWeight:         req.BarWeight,
		EstimatedOneRM:    req.EstimatedOneRM,
	}
	if err := s.db.UpsertWarmupSettings(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// handleWarmupForSlot generates warm-up sets for an exercise slot using its
// saved settings (or the defaults) and the slot's working weight.
func (s *Server) handleWarmupForSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout exercise ID"})
		return
	}

	slot, err := s.db.GetWorkoutExercise(r.Context(), slotID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout exercise not found"})
		return
	}

	settings, err := s.db.GetWarmupSettings(r.Context(), slotID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if settings == nil {
		settings = defaultWarmupSettings(slot)
	}

	sets := calc.GenerateWarmupSets(slot.WorkingWeight, settings.CalcSettings())
	writeJSON(w, http.StatusOK, map[string]any{
		"working_weight": slot.WorkingWeight,
		"settings":       settings,
		"warmup_sets":    sets,
	})
}

// defaultWarmupSettings is what a slot gets before the user configures
// anything: three warm-up sets in the slot's unit.
func defaultWarmupSettings(slot *models.WorkoutExerciseRow) *models.WarmupSettingsRow {
	return &models.WarmupSettingsRow{
		WorkoutExerciseID: slot.ID,
		NumWarmups:        3,
		Unit:              slot.Unit,
	}
}
