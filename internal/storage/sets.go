package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/models"
)

// InsertSet logs a single set.
func (db *DB) InsertSet(ctx context.Context, row models.SetRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO sets (id, workout_exercise_id, set_number, weight, reps, is_warmup, rpe, source, logged_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		row.ID, row.WorkoutExerciseID, row.SetNumber, row.Weight, row.Reps,
		row.IsWarmup, row.RPE, row.Source, row.LoggedAt)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// InsertSets batch-inserts logged sets. Returns count inserted.
func (db *DB) InsertSets(ctx context.Context, rows []models.SetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO sets (id, workout_exercise_id, set_number, weight, reps, is_warmup, rpe, source, logged_at) VALUES `
	args := make([]any, 0, len(rows)*9)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 9
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
		))
		args = append(args, r.ID, r.WorkoutExerciseID, r.SetNumber, r.Weight, r.Reps,
			r.IsWarmup, r.RPE, r.Source, r.LoggedAt)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QuerySets returns the sets for one exercise slot in logged order.
func (db *DB) QuerySets(ctx context.Context, workoutExerciseID uuid.UUID) ([]models.SetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, workout_exercise_id, set_number, weight, reps, is_warmup, rpe, source, logged_at
		 FROM sets
		 WHERE workout_exercise_id = $1
		 ORDER BY set_number`,
		workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.SetRow
	for rows.Next() {
		var row models.SetRow
		if err := rows.Scan(&row.ID, &row.WorkoutExerciseID, &row.SetNumber, &row.Weight,
			&row.Reps, &row.IsWarmup, &row.RPE, &row.Source, &row.LoggedAt); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// NextSetNumber returns the next free set number for an exercise slot.
func (db *DB) NextSetNumber(ctx context.Context, workoutExerciseID uuid.UUID) (int, error) {
	var next int
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(set_number), 0) + 1 FROM sets WHERE workout_exercise_id = $1`,
		workoutExerciseID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("querying next set number: %w", err)
	}
	return next, nil
}

// QueryExerciseHistory returns a user's working sets for one library
// exercise over a time range, oldest first, for progression charts.
func (db *DB) QueryExerciseHistory(ctx context.Context, exerciseID int64, start, end time.Time, userID int) ([]models.SetHistoryRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.name, s.logged_at, s.weight, s.reps, s.is_warmup
		 FROM sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE we.exercise_id = $1 AND w.user_id = $2
		   AND s.logged_at >= $3 AND s.logged_at < $4
		 ORDER BY s.logged_at`,
		exerciseID, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []models.SetHistoryRow
	for rows.Next() {
		var row models.SetHistoryRow
		if err := rows.Scan(&row.WorkoutID, &row.WorkoutName, &row.LoggedAt,
			&row.Weight, &row.Reps, &row.IsWarmup); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
