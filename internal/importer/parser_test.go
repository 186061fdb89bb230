package importer

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date;Workout Name;Duration;Exercise Name;Set Order;Weight;Reps;Notes
2026-03-02 17:30:00;Push Day;1h 5m;Bench Press;1;135;10;warmup
2026-03-02 17:30:00;Push Day;1h 5m;Bench Press;2;185;8;
2026-03-02 17:30:00;Push Day;1h 5m;Bench Press;3;185;8;
2026-03-02 17:30:00;Push Day;1h 5m;Overhead Press;1;95;10;
2026-03-02 17:30:00;Push Day;1h 5m;Overhead Press;2;95;9;felt heavy
2026-03-04 18:00:00;Pull Day;55m;Deadlift;1;225;5;
2026-03-04 18:00:00;Pull Day;55m;Deadlift;2;275;3;
`

// TestParseSessions verifies rows group into sessions by date and workout
// name, preserving set order and warmup flags.
func TestParseSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	push := sessions[0]
	if push.Name != "Push Day" {
		t.Errorf("name = %q, want %q", push.Name, "Push Day")
	}
	wantDate := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	if !push.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", push.Date, wantDate)
	}
	if len(push.Entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(push.Entries))
	}
	if !push.Entries[0].IsWarmup {
		t.Error("first bench set should be flagged as warmup")
	}
	if push.Entries[1].IsWarmup {
		t.Error("second bench set should not be a warmup")
	}
	if push.Entries[1].Weight != 185 || push.Entries[1].Reps != 8 {
		t.Errorf("set 2 = %v x %d, want 185 x 8", push.Entries[1].Weight, push.Entries[1].Reps)
	}
	if push.Entries[4].Notes != "felt heavy" {
		t.Errorf("notes = %q, want %q", push.Entries[4].Notes, "felt heavy")
	}

	pull := sessions[1]
	if pull.Name != "Pull Day" || len(pull.Entries) != 2 {
		t.Errorf("second session = %q with %d entries, want Pull Day with 2", pull.Name, len(pull.Entries))
	}
}

// TestParseSkipsMalformedRows verifies unparseable rows are dropped without
// failing the whole file.
func TestParseSkipsMalformedRows(t *testing.T) {
	csv := `Date;Workout Name;Duration;Exercise Name;Set Order;Weight;Reps;Notes
not-a-date;Push Day;1h;Bench Press;1;135;10;
2026-03-02 17:30:00;Push Day;1h;Bench Press;1;135;10;
2026-03-02 17:30:00;Push Day;1h;;2;135;10;
2026-03-02 17:30:00;Push Day;1h;Bench Press;3;135;zero;
`
	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if len(sessions[0].Entries) != 1 {
		t.Errorf("entries = %d, want 1 (bad date, empty exercise, bad reps all dropped)", len(sessions[0].Entries))
	}
}

// TestParseDateOnly verifies date-only exports (older app versions) parse.
func TestParseDateOnly(t *testing.T) {
	csv := `Date;Workout Name;Duration;Exercise Name;Set Order;Weight;Reps;Notes
2026-03-02;Legs;45m;Squat;1;225;5;
`
	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 1 || len(sessions[0].Entries) != 1 {
		t.Fatalf("sessions = %+v, want a single session with one entry", sessions)
	}
}

// TestParseEmpty verifies a header-only or empty file yields no sessions.
func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "Date;Workout Name;Duration;Exercise Name;Set Order;Weight;Reps;Notes\n"} {
		sessions, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if len(sessions) != 0 {
			t.Errorf("sessions = %d, want 0", len(sessions))
		}
	}
}
