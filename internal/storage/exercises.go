package storage

import (
	"context"
	"fmt"

	"github.com/colinjrbh317-maker/GymTrack/internal/models"
)

// CreateExercise inserts a library exercise and returns its ID. Duplicate
// names per user are rejected by the unique constraint.
func (db *DB) CreateExercise(ctx context.Context, row models.ExerciseRow) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (user_id, name, equipment, is_compound)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		row.UserID, row.Name, row.Equipment, row.IsCompound,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}

// GetOrCreateExercise finds a library exercise by name or creates it,
// returning its ID. Used by importers, which see names before anything else.
func (db *DB) GetOrCreateExercise(ctx context.Context, userID int, name, equipment string, isCompound bool) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (user_id, name, equipment, is_compound)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, name) DO UPDATE
		   SET equipment = COALESCE(NULLIF(EXCLUDED.equipment, ''), exercises.equipment)
		 RETURNING id`,
		userID, name, equipment, isCompound,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get-or-create exercise %q: %w", name, err)
	}
	return id, nil
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id int64, userID int) (*models.ExerciseRow, error) {
	var row models.ExerciseRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, equipment, is_compound, created_at
		 FROM exercises
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&row.ID, &row.UserID, &row.Name, &row.Equipment, &row.IsCompound, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying exercise %d: %w", id, err)
	}
	return &row, nil
}

// ListExercises returns the user's exercise library, optionally filtered by
// a case-insensitive name substring.
func (db *DB) ListExercises(ctx context.Context, userID int, nameFilter string) ([]models.ExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, equipment, is_compound, created_at
		 FROM exercises
		 WHERE user_id = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY name`,
		userID, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		var row models.ExerciseRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.Name, &row.Equipment, &row.IsCompound, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
