package calc

import (
	"math"
	"testing"
)

// TestEstimateOneRM verifies the Epley estimate across normal and
// degenerate inputs.
func TestEstimateOneRM(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"single rep is the max itself", 200, 1, 200},
		{"200x10", 200, 10, 200 * (1 + 10.0/30)}, // ≈266.67
		{"100x5", 100, 5, 100 * (1 + 5.0/30)},    // ≈116.67
		{"zero weight", 0, 5, 0},
		{"zero reps", 200, 0, 0},
		{"negative weight", -100, 5, 0},
		{"negative reps", 200, -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateOneRM(tt.weight, tt.reps)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EstimateOneRM(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}
}

// TestIsCompoundLift verifies keyword matching is case-insensitive and
// substring-based, and that isolation movements are rejected.
func TestIsCompoundLift(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Incline Bench Press", true},
		{"Back Squat", true},
		{"SUMO DEADLIFT", true},
		{"Romanian Deadlift", true},
		{"RDL", true},
		{"Power Clean", true},
		{"Push Press", true},
		{"Thrusters", true},
		{"OHP", true},
		{"Lateral Raise", false},
		{"Bicep Curl", false},
		{"Leg Extension", false},
		{"Face Pull", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCompoundLift(tt.name); got != tt.want {
				t.Errorf("IsCompoundLift(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
