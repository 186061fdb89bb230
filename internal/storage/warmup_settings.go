package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/colinjrbh317-maker/GymTrack/internal/models"
)

// UpsertWarmupSettings saves warm-up preferences for an exercise slot,
// replacing any previous row.
func (db *DB) UpsertWarmupSettings(ctx context.Context, row models.WarmupSettingsRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO warmup_settings (workout_exercise_id, num_warmups, unit, use_fine_increments, bar_weight, estimated_one_rm)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (workout_exercise_id) DO UPDATE SET
		   num_warmups = $2, unit = $3, use_fine_increments = $4,
		   bar_weight = $5, estimated_one_rm = $6`,
		row.WorkoutExerciseID, row.NumWarmups, row.Unit, row.UseFineIncrements,
		row.BarWeight, row.EstimatedOneRM)
	if err != nil {
		return fmt.Errorf("upserting warmup settings: %w", err)
	}
	return nil
}

// GetWarmupSettings returns the saved warm-up preferences for an exercise
// slot, or nil when the user never configured any.
func (db *DB) GetWarmupSettings(ctx context.Context, workoutExerciseID uuid.UUID) (*models.WarmupSettingsRow, error) {
	var row models.WarmupSettingsRow
	err := db.Pool.QueryRow(ctx,
		`SELECT workout_exercise_id, num_warmups, unit, use_fine_increments, bar_weight, estimated_one_rm
		 FROM warmup_settings
		 WHERE workout_exercise_id = $1`,
		workoutExerciseID,
	).Scan(&row.WorkoutExerciseID, &row.NumWarmups, &row.Unit, &row.UseFineIncrements,
		&row.BarWeight, &row.EstimatedOneRM)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying warmup settings: %w", err)
	}
	return &row, nil
}
