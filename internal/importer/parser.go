// Package importer loads workout history exports into the database.
//
// The supported format is the semicolon-separated CSV that strength
// tracking apps export: one row per set, grouped into workouts by date and
// workout name.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Session is one workout reconstructed from the export, in file order.
type Session struct {
	Name    string
	Date    time.Time
	Entries []SetEntry
}

// SetEntry is one logged set within a session.
type SetEntry struct {
	Exercise string
	SetOrder int
	Weight   float64
	Reps     int
	IsWarmup bool
	Notes    string
}

// column indexes of the export header:
// Date;Workout Name;Duration;Exercise Name;Set Order;Weight;Reps;Notes
const (
	colDate = iota
	colWorkoutName
	colDuration
	colExerciseName
	colSetOrder
	colWeight
	colReps
	colNotes
	columnCount
)

// Parse reads a workout history CSV export and returns sessions in file
// order. Rows that do not parse as set data are skipped; only a malformed
// CSV structure is an error.
func Parse(r io.Reader) ([]Session, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	var sessions []Session
	var current *Session

	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		// Header row
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[colDate]), "date") {
				continue
			}
		}
		if len(record) < columnCount-1 {
			continue
		}

		date, err := parseExportDate(record[colDate])
		if err != nil {
			continue
		}
		name := strings.TrimSpace(record[colWorkoutName])

		// New session whenever date or workout name changes
		if current == nil || !current.Date.Equal(date) || current.Name != name {
			if current != nil {
				sessions = append(sessions, *current)
			}
			current = &Session{Name: name, Date: date}
		}

		order, _ := strconv.Atoi(strings.TrimSpace(record[colSetOrder]))
		weight, _ := strconv.ParseFloat(strings.TrimSpace(record[colWeight]), 64)
		reps, _ := strconv.Atoi(strings.TrimSpace(record[colReps]))
		notes := ""
		if len(record) > colNotes {
			notes = strings.TrimSpace(record[colNotes])
		}

		exercise := strings.TrimSpace(record[colExerciseName])
		if exercise == "" || reps <= 0 {
			continue
		}

		current.Entries = append(current.Entries, SetEntry{
			Exercise: exercise,
			SetOrder: order,
			Weight:   weight,
			Reps:     reps,
			IsWarmup: strings.EqualFold(notes, "warmup") || strings.EqualFold(notes, "warm-up"),
			Notes:    notes,
		})
	}

	if current != nil {
		sessions = append(sessions, *current)
	}
	return sessions, nil
}

// parseExportDate accepts the date formats seen across app versions.
func parseExportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}
