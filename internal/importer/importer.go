package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/models"
	"github.com/colinjrbh317-maker/GymTrack/internal/storage"
)

// workoutNamespace seeds deterministic workout IDs so re-importing the same
// export never duplicates sessions.
var workoutNamespace = uuid.MustParse("f1b9dc56-27c4-4a4d-9c6f-46fdd8a5a0d1")

// Stats tracks import progress across files.
type Stats struct {
	FilesProcessed   int
	FilesSkipped     int
	FilesErrored     int
	WorkoutsInserted int
	WorkoutsSkipped  int
	SetsInserted     int64
}

// Importer reads workout history CSV files and inserts them into the DB.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	unit   calc.WeightUnit
	dryRun bool
	stats  Stats
}

// New creates a new Importer. Exported weights are assumed to be in the
// given unit; the exports carry no unit column.
func New(db *storage.DB, log *slog.Logger, unit calc.WeightUnit, dryRun bool) *Importer {
	return &Importer{db: db, log: log, unit: unit, dryRun: dryRun}
}

// Stats returns the counters accumulated so far.
func (imp *Importer) Stats() Stats {
	return imp.stats
}

// ImportDir processes every .csv file under dir, skipping files the state
// DB has already seen with the same size and hash.
func (imp *Importer) ImportDir(ctx context.Context, dir string, state *StateDB, userID int) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			imp.stats.FilesErrored++
			imp.log.Warn("stat failed", "file", name, "error", err)
			continue
		}
		hash, err := HashFile(path)
		if err != nil {
			imp.stats.FilesErrored++
			imp.log.Warn("hash failed", "file", name, "error", err)
			continue
		}

		done, err := state.IsImported(name, info.Size(), hash)
		if err != nil {
			return &imp.stats, fmt.Errorf("checking state for %s: %w", name, err)
		}
		if done {
			imp.stats.FilesSkipped++
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			imp.stats.FilesErrored++
			imp.log.Warn("open failed", "file", name, "error", err)
			continue
		}
		err = imp.ImportFile(ctx, f, userID)
		f.Close()
		if err != nil {
			imp.stats.FilesErrored++
			imp.log.Warn("import failed", "file", name, "error", err)
			continue
		}
		imp.stats.FilesProcessed++

		if !imp.dryRun {
			if err := state.MarkImported(name, info.Size(), hash); err != nil {
				return &imp.stats, fmt.Errorf("recording state for %s: %w", name, err)
			}
		}
	}

	return &imp.stats, nil
}

// ImportFile parses one CSV export and inserts its sessions.
func (imp *Importer) ImportFile(ctx context.Context, r io.Reader, userID int) error {
	sessions, err := Parse(r)
	if err != nil {
		return fmt.Errorf("parsing CSV: %w", err)
	}

	for _, s := range sessions {
		if err := imp.importSession(ctx, s, userID); err != nil {
			return fmt.Errorf("importing session %q (%s): %w",
				s.Name, s.Date.Format("2006-01-02"), err)
		}
	}
	return nil
}

func (imp *Importer) importSession(ctx context.Context, s Session, userID int) error {
	workoutID := uuid.NewSHA1(workoutNamespace,
		fmt.Appendf(nil, "%d/%s/%s", userID, s.Date.Format("2006-01-02 15:04"), s.Name))

	if imp.dryRun {
		imp.stats.WorkoutsInserted++
		imp.stats.SetsInserted += int64(len(s.Entries))
		return nil
	}

	inserted, err := imp.db.InsertWorkout(ctx, models.WorkoutRow{
		ID:        workoutID,
		UserID:    userID,
		Name:      s.Name,
		StartedAt: s.Date,
	})
	if err != nil {
		return err
	}
	if !inserted {
		imp.stats.WorkoutsSkipped++
		return nil
	}
	imp.stats.WorkoutsInserted++

	// Group entries per exercise, preserving first-seen order
	type slot struct {
		id   uuid.UUID
		sets []models.SetRow
	}
	var order []string
	slots := map[string]*slot{}

	for _, entry := range s.Entries {
		sl, ok := slots[entry.Exercise]
		if !ok {
			exerciseID, err := imp.db.GetOrCreateExercise(ctx, userID, entry.Exercise, "",
				calc.IsCompoundLift(entry.Exercise))
			if err != nil {
				return err
			}
			sl = &slot{id: uuid.NewSHA1(workoutID, []byte(entry.Exercise))}
			slots[entry.Exercise] = sl
			order = append(order, entry.Exercise)

			if err := imp.db.InsertWorkoutExercise(ctx, models.WorkoutExerciseRow{
				ID:         sl.id,
				WorkoutID:  workoutID,
				ExerciseID: exerciseID,
				Position:   len(order),
				Unit:       string(imp.unit),
			}); err != nil {
				return err
			}
		}

		sl.sets = append(sl.sets, models.SetRow{
			ID:                uuid.New(),
			WorkoutExerciseID: sl.id,
			SetNumber:         entry.SetOrder,
			Weight:            entry.Weight,
			Reps:              entry.Reps,
			IsWarmup:          entry.IsWarmup,
			Source:            models.SetSourceImport,
			LoggedAt:          s.Date,
		})
	}

	for _, name := range order {
		n, err := imp.db.InsertSets(ctx, slots[name].sets)
		if err != nil {
			return err
		}
		imp.stats.SetsInserted += n
	}
	return nil
}
