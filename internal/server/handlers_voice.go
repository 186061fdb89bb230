package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/models"
	"github.com/colinjrbh317-maker/GymTrack/internal/voice"
)

// handleVoiceParse runs the transcription parser without touching the DB, so
// clients can show what was understood before logging anything.
func (s *Server) handleVoiceParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	parsed := voice.ParseSetInput(req.Text)
	writeJSON(w, http.StatusOK, parsed)
}

// handleVoiceLog parses a transcription and logs it as a set against the
// exercise slot. Missing weight falls back to the slot's working weight;
// missing reps is an error the client must resolve.
func (s *Server) handleVoiceLog(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout exercise ID"})
		return
	}

	var req struct {
		Text     string `json:"text"`
		IsWarmup bool   `json:"is_warmup"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	parsed := voice.ParseSetInput(req.Text)
	if parsed.Reps == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "could not determine reps from transcription",
			"parsed": parsed,
		})
		return
	}

	weight := 0.0
	if parsed.Weight != nil {
		weight = *parsed.Weight
	} else {
		slot, err := s.db.GetWorkoutExercise(r.Context(), slotID, userIDFromContext(r))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout exercise not found"})
			return
		}
		weight = slot.WorkingWeight
	}

	row, status, err := s.logSet(r, slotID, weight, *parsed.Reps, req.IsWarmup, nil, models.SetSourceVoice)
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"parsed": parsed,
		"set":    row,
	})
}
