package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's training log.
type DataStats struct {
	TotalExercises int64          `json:"total_exercises"`
	TotalWorkouts  int64          `json:"total_workouts"`
	TotalSets      int64          `json:"total_sets"`
	EarliestData   *time.Time     `json:"earliest_data"`
	LatestData     *time.Time     `json:"latest_data"`
	TopExercises   []ExerciseStat `json:"top_exercises"`
}

// ExerciseStat holds per-exercise volume totals.
type ExerciseStat struct {
	Name    string  `json:"name"`
	Sets    int64   `json:"sets"`
	Tonnage float64 `json:"tonnage"`
}

// GetDataStats returns aggregate statistics for a user's training log.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises WHERE user_id = $1`, userID,
	).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(started_at), MAX(started_at) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT e.name, COUNT(s.id), COALESCE(SUM(s.weight * s.reps), 0)
		 FROM sets s
		 JOIN workout_exercises we ON we.id = s.workout_exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 JOIN exercises e ON e.id = we.exercise_id
		 WHERE w.user_id = $1 AND NOT s.is_warmup
		 GROUP BY e.name
		 ORDER BY COUNT(s.id) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseStat
		if err := rows.Scan(&s.Name, &s.Sets, &s.Tonnage); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
