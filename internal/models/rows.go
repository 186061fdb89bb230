package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
)

// Set sources distinguish how a set entered the log.
const (
	SetSourceManual = "manual"
	SetSourceVoice  = "voice"
	SetSourceImport = "import"
)

// ExerciseRow is a row in the exercises library table.
type ExerciseRow struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	Name       string    `json:"name"`
	Equipment  string    `json:"equipment,omitempty"`
	IsCompound bool      `json:"is_compound"`
	CreatedAt  time.Time `json:"created_at"`
}

// WorkoutRow is a logged training session.
type WorkoutRow struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int        `json:"user_id"`
	Name       string     `json:"name"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// WorkoutExerciseRow is one exercise slot within a workout, carrying the
// working weight the warm-up calculator runs against.
type WorkoutExerciseRow struct {
	ID            uuid.UUID `json:"id"`
	WorkoutID     uuid.UUID `json:"workout_id"`
	ExerciseID    int64     `json:"exercise_id"`
	Position      int       `json:"position"`
	WorkingWeight float64   `json:"working_weight"`
	Unit          string    `json:"unit"`
}

// WarmupSettingsRow persists a user's warm-up preferences for one
// exercise-in-workout.
type WarmupSettingsRow struct {
	WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
	NumWarmups        int       `json:"num_warmups"`
	Unit              string    `json:"unit"`
	UseFineIncrements bool      `json:"use_fine_increments"`
	BarWeight         *float64  `json:"bar_weight,omitempty"`
	EstimatedOneRM    *float64  `json:"estimated_one_rm,omitempty"`
}

// CalcSettings converts the persisted row into calculator input.
func (r WarmupSettingsRow) CalcSettings() calc.WarmupSettings {
	return calc.WarmupSettings{
		NumberOfWarmups:   r.NumWarmups,
		Unit:              calc.WeightUnit(r.Unit),
		UseFineIncrements: r.UseFineIncrements,
		BarWeight:         r.BarWeight,
		EstimatedOneRM:    r.EstimatedOneRM,
	}
}

// SetRow is a logged set.
type SetRow struct {
	ID                uuid.UUID `json:"id"`
	WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
	SetNumber         int       `json:"set_number"`
	Weight            float64   `json:"weight"`
	Reps              int       `json:"reps"`
	IsWarmup          bool      `json:"is_warmup"`
	RPE               *float64  `json:"rpe,omitempty"`
	Source            string    `json:"source"`
	LoggedAt          time.Time `json:"logged_at"`
}

// SetHistoryRow is one point of an exercise's progression over time.
type SetHistoryRow struct {
	WorkoutID   uuid.UUID `json:"workout_id"`
	WorkoutName string    `json:"workout_name"`
	LoggedAt    time.Time `json:"logged_at"`
	Weight      float64   `json:"weight"`
	Reps        int       `json:"reps"`
	IsWarmup    bool      `json:"is_warmup"`
	// EstimatedOneRM is the Epley estimate for this set, filled at query time.
	EstimatedOneRM float64 `json:"estimated_one_rm"`
}
