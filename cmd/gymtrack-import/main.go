package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/config"
	"github.com/colinjrbh317-maker/GymTrack/internal/importer"
	"github.com/colinjrbh317-maker/GymTrack/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	importPath := flag.String("path", "", "path to directory of CSV exports (required)")
	unitFlag := flag.String("unit", "lb", "weight unit of the export files (lb or kg)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *importPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: gymtrack-import -config config.yaml -path /path/to/exports [-unit lb|kg] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Verify import directory exists
	info, err := os.Stat(*importPath)
	if err != nil || !info.IsDir() {
		log.Error("import path does not exist or is not a directory", "path", *importPath)
		os.Exit(1)
	}

	unit := calc.Pounds
	if *unitFlag == "kg" {
		unit = calc.Kilograms
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// State DB lives next to the exports so re-runs skip finished files
	state, err := importer.OpenStateDB(*importPath)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Run import
	started := time.Now()
	imp := importer.New(db, log, unit, *dryRun)
	stats, err := imp.ImportDir(ctx, *importPath, state, storage.DefaultUserID)

	recordImportLog(ctx, db, log, stats, started, err, *dryRun)

	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func recordImportLog(ctx context.Context, db *storage.DB, log *slog.Logger, stats *importer.Stats, started time.Time, runErr error, dryRun bool) {
	if dryRun {
		return
	}
	durationMs := int(time.Since(started).Milliseconds())
	status := "success"
	var errMsg *string
	if runErr != nil {
		status = "error"
		msg := runErr.Error()
		errMsg = &msg
	}
	if _, err := db.InsertImportLog(ctx, storage.ImportLog{
		UserID:       storage.DefaultUserID,
		Source:       "csv-dir",
		Status:       status,
		Workouts:     stats.WorkoutsInserted,
		SetsInserted: stats.SetsInserted,
		DurationMs:   &durationMs,
		ErrorMessage: errMsg,
	}); err != nil {
		log.Error("failed to record import log", "error", err)
	}
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"workouts_inserted", stats.WorkoutsInserted,
		"workouts_skipped", stats.WorkoutsSkipped,
		"sets_inserted", stats.SetsInserted,
	)
}
