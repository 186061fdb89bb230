package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/voice"
)

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "local", DisplayName: "Local Dev User"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestHandleMeTailscaleUser verifies the /api/v1/me endpoint returns the
// Tailscale user identity when set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestHandleCalcWarmup verifies the warm-up endpoint generates the expected
// progression for a 225 lb working weight with three warm-up sets.
func TestHandleCalcWarmup(t *testing.T) {
	s := &Server{}
	body := `{"working_weight": 225, "num_warmups": 3, "unit": "lb"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/warmup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcWarmup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		WarmupSets []calc.WarmupSet `json:"warmup_sets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.WarmupSets) != 3 {
		t.Fatalf("got %d warmup sets, want 3", len(resp.WarmupSets))
	}
	wantWeights := []float64{90, 135, 170}
	for i, want := range wantWeights {
		if got := resp.WarmupSets[i].RoundedWeight; got != want {
			t.Errorf("set %d rounded weight = %v, want %v", i+1, got, want)
		}
	}
}

// TestHandleCalcWarmupBadCount verifies num_warmups outside 1..5 is rejected.
func TestHandleCalcWarmupBadCount(t *testing.T) {
	s := &Server{}
	body := `{"working_weight": 225, "num_warmups": 6}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/warmup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcWarmup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCalcPlates verifies the plate-loading endpoint for a standard
// two-plate bench target.
func TestHandleCalcPlates(t *testing.T) {
	s := &Server{}
	body := `{"target_weight": 225, "unit": "lb"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/plates", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcPlates(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result calc.PlateLoadingResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if result.AchievableWeight != 225 {
		t.Errorf("achievable weight = %v, want 225", result.AchievableWeight)
	}
}

// TestHandleCalcPlatesRejectsZero verifies non-positive targets get 400.
func TestHandleCalcPlatesRejectsZero(t *testing.T) {
	s := &Server{}
	body := `{"target_weight": 0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/plates", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcPlates(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCalcOneRM verifies the Epley estimate endpoint.
func TestHandleCalcOneRM(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calc/onerm?weight=300&reps=5", nil)
	rec := httptest.NewRecorder()

	s.handleCalcOneRM(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		EstimatedOneRM float64 `json:"estimated_one_rm"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.EstimatedOneRM != 350 {
		t.Errorf("estimated 1RM = %v, want 350", resp.EstimatedOneRM)
	}
}

// TestHandleCalcOneRMMissingParams verifies missing query params get 400.
func TestHandleCalcOneRMMissingParams(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/calc/onerm", nil)
	rec := httptest.NewRecorder()

	s.handleCalcOneRM(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleVoiceParse verifies the parse endpoint returns both fields for a
// fully specified transcription.
func TestHandleVoiceParse(t *testing.T) {
	s := &Server{}
	body := `{"text": "I did 135 for 12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleVoiceParse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var parsed voice.ParsedSetInput
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Weight == nil || *parsed.Weight != 135 {
		t.Errorf("weight = %v, want 135", parsed.Weight)
	}
	if parsed.Reps == nil || *parsed.Reps != 12 {
		t.Errorf("reps = %v, want 12", parsed.Reps)
	}
}

// TestHandleVoiceParseEmptyText verifies the parse endpoint rejects an
// empty transcription.
func TestHandleVoiceParseEmptyText(t *testing.T) {
	s := &Server{}
	body := `{"text": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleVoiceParse(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestParseUnit verifies unit parsing defaults to pounds.
func TestParseUnit(t *testing.T) {
	if got := parseUnit("kg"); got != calc.Kilograms {
		t.Errorf("parseUnit(kg) = %v, want kilograms", got)
	}
	if got := parseUnit("lb"); got != calc.Pounds {
		t.Errorf("parseUnit(lb) = %v, want pounds", got)
	}
	if got := parseUnit(""); got != calc.Pounds {
		t.Errorf("parseUnit(empty) = %v, want pounds", got)
	}
}

// TestParseTimeRangeDefault verifies the default 90-day window.
func TestParseTimeRangeDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange error: %v", err)
	}
	if !start.Before(end) {
		t.Error("start should be before end")
	}
	days := end.Sub(start).Hours() / 24
	if days < 89 || days > 91 {
		t.Errorf("default window = %v days, want ~90", days)
	}
}

// TestParseTimeRangeDateOnly verifies date-only params parse and the end
// date covers the whole day.
func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=2026-01-01&end=2026-01-31", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("parseTimeRange error: %v", err)
	}
	if start.Format("2006-01-02") != "2026-01-01" {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	if end.Format("2006-01-02") != "2026-02-01" {
		t.Errorf("end = %v, want end of Jan 31 (2026-02-01T00:00)", end)
	}
}

// TestParseTimeRangeBadInput verifies malformed params surface an error.
func TestParseTimeRangeBadInput(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=yesterday", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("expected error for malformed start param")
	}
}
