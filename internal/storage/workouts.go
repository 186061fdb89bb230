package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/models"
)

// InsertWorkout inserts a workout row. Returns true if inserted, false if
// the ID already exists (idempotent re-import).
func (db *DB) InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, started_at, finished_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.Name, row.StartedAt, row.FinishedAt, row.Notes)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryWorkouts retrieves workouts in a time range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, started_at, finished_at, notes
		 FROM workouts
		 WHERE started_at >= $1 AND started_at < $2 AND user_id = $3
		 ORDER BY started_at DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		var row models.WorkoutRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Name, &row.StartedAt, &row.FinishedAt, &row.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// WorkoutExerciseDetail is an exercise slot joined with its library entry
// and logged sets.
type WorkoutExerciseDetail struct {
	models.WorkoutExerciseRow
	ExerciseName string          `json:"exercise_name"`
	IsCompound   bool            `json:"is_compound"`
	Sets         []models.SetRow `json:"sets"`
}

// WorkoutDetail is a workout with all exercise slots and their sets.
type WorkoutDetail struct {
	models.WorkoutRow
	Exercises []WorkoutExerciseDetail `json:"exercises"`
}

// GetWorkout retrieves a single workout with exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	detail := &WorkoutDetail{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, started_at, finished_at, notes
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID,
	).Scan(&detail.ID, &detail.UserID, &detail.Name, &detail.StartedAt, &detail.FinishedAt, &detail.Notes)
	if err != nil {
		return nil, fmt.Errorf("querying workout %s: %w", workoutID, err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT we.id, we.workout_id, we.exercise_id, we.position, we.working_weight, we.unit,
		        e.name, e.is_compound
		 FROM workout_exercises we
		 JOIN exercises e ON e.id = we.exercise_id
		 WHERE we.workout_id = $1
		 ORDER BY we.position`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ex WorkoutExerciseDetail
		if err := rows.Scan(&ex.ID, &ex.WorkoutID, &ex.ExerciseID, &ex.Position,
			&ex.WorkingWeight, &ex.Unit, &ex.ExerciseName, &ex.IsCompound); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		detail.Exercises = append(detail.Exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range detail.Exercises {
		sets, err := db.QuerySets(ctx, detail.Exercises[i].ID)
		if err != nil {
			return nil, err
		}
		detail.Exercises[i].Sets = sets
	}

	return detail, nil
}

// DeleteWorkout removes a workout and, via cascade, its exercise slots and
// sets. Returns true if a row was deleted.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting workout %s: %w", workoutID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertWorkoutExercise adds an exercise slot to a workout.
func (db *DB) InsertWorkoutExercise(ctx context.Context, row models.WorkoutExerciseRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_exercises (id, workout_id, exercise_id, position, working_weight, unit)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		row.ID, row.WorkoutID, row.ExerciseID, row.Position, row.WorkingWeight, row.Unit)
	if err != nil {
		return fmt.Errorf("inserting workout exercise: %w", err)
	}
	return nil
}

// GetWorkoutExercise retrieves an exercise slot, verifying ownership
// through the workout join.
func (db *DB) GetWorkoutExercise(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutExerciseRow, error) {
	var row models.WorkoutExerciseRow
	err := db.Pool.QueryRow(ctx,
		`SELECT we.id, we.workout_id, we.exercise_id, we.position, we.working_weight, we.unit
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.id = $1 AND w.user_id = $2`,
		id, userID,
	).Scan(&row.ID, &row.WorkoutID, &row.ExerciseID, &row.Position, &row.WorkingWeight, &row.Unit)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercise %s: %w", id, err)
	}
	return &row, nil
}
