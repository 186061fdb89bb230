package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/colinjrbh317-maker/GymTrack/internal/calc"
	"github.com/colinjrbh317-maker/GymTrack/internal/models"
	"github.com/colinjrbh317-maker/GymTrack/internal/voice"
)

// defaultTimeRange returns start/end defaulting to the last 90 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

func parseUnit(s string) calc.WeightUnit {
	if s == "kg" {
		return calc.Kilograms
	}
	return calc.Pounds
}

// --- Tool definitions ---

var toolCalculateWarmupSets = mcp.NewTool("calculate_warmup_sets",
	mcp.WithDescription("Generate a warm-up progression for a working weight. Each set has a percentage, target reps, and a weight rounded to the plate increment, floored at the bar and optionally capped at 85% of an estimated 1RM."),
	mcp.WithNumber("working_weight", mcp.Required(), mcp.Description("The working set weight to warm up toward")),
	mcp.WithNumber("num_warmups", mcp.Description("Number of warm-up sets (1-5). Defaults to 3.")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to 'lb'."), mcp.Enum("lb", "kg")),
	mcp.WithBoolean("use_fine_increments", mcp.Description("Round to the finer plate increment (2.5 lb / 1.25 kg) instead of the default (5 lb / 2.5 kg)")),
	mcp.WithNumber("bar_weight", mcp.Description("Bar weight override. Defaults to 45 lb / 20 kg.")),
	mcp.WithNumber("estimated_one_rm", mcp.Description("When set, warm-up weights are capped at 85% of this estimate")),
)

var toolCalculatePlateLoading = mcp.NewTool("calculate_plate_loading",
	mcp.WithDescription("Compute which plates go on each side of the bar for a target weight, greedily using the heaviest plates first. Undershoots rather than exceeds the target."),
	mcp.WithNumber("target_weight", mcp.Required(), mcp.Description("Total bar weight to load")),
	mcp.WithNumber("bar_weight", mcp.Description("Bar weight. Defaults to 45 lb / 20 kg.")),
	mcp.WithString("unit", mcp.Description("Weight unit. Defaults to 'lb'."), mcp.Enum("lb", "kg")),
)

var toolEstimateOneRM = mcp.NewTool("estimate_one_rm",
	mcp.WithDescription("Estimate a one-rep max from a weight and rep count using the Epley formula."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps completed at that weight")),
)

var toolParseSetText = mcp.NewTool("parse_set_text",
	mcp.WithDescription("Parse a spoken set description (e.g. 'two twenty five for five', 'I did 135 for 12') into weight and reps. Handles number words, gym slang like 'two plates', and explicit units. Either field may come back null."),
	mcp.WithString("text", mcp.Required(), mcp.Description("The transcribed utterance")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query workouts in a time range. Returns workout summaries with name, start time, and notes."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Query an exercise's set history over time, including an Epley 1RM estimate per set. Useful for progression analysis."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (partial match, e.g. 'bench press')")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Log a completed set against a workout exercise slot. The set number is assigned automatically."),
	mcp.WithString("workout_exercise_id", mcp.Required(), mcp.Description("UUID of the exercise slot within a workout")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps completed")),
	mcp.WithBoolean("is_warmup", mcp.Description("Mark the set as a warm-up. Defaults to false.")),
)

// --- Tool handlers ---

func (h *handlers) calculateWarmupSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workingWeight, err := req.RequireFloat("working_weight")
	if err != nil {
		return mcp.NewToolResultError("working_weight parameter is required"), nil
	}

	settings := calc.WarmupSettings{
		NumberOfWarmups:   req.GetInt("num_warmups", 3),
		Unit:              parseUnit(req.GetString("unit", "lb")),
		UseFineIncrements: req.GetBool("use_fine_increments", false),
	}
	if settings.NumberOfWarmups < 1 || settings.NumberOfWarmups > 5 {
		return mcp.NewToolResultError("num_warmups must be between 1 and 5"), nil
	}
	if bar := req.GetFloat("bar_weight", 0); bar > 0 {
		settings.BarWeight = &bar
	}
	if oneRM := req.GetFloat("estimated_one_rm", 0); oneRM > 0 {
		settings.EstimatedOneRM = &oneRM
	}

	sets := calc.GenerateWarmupSets(workingWeight, settings)

	result, err := mcp.NewToolResultJSON(map[string]any{"warmup_sets": sets})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) calculatePlateLoading(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("target_weight")
	if err != nil {
		return mcp.NewToolResultError("target_weight parameter is required"), nil
	}
	if target <= 0 {
		return mcp.NewToolResultError("target_weight must be positive"), nil
	}

	unit := parseUnit(req.GetString("unit", "lb"))
	loading := calc.CalculatePlateLoading(target, req.GetFloat("bar_weight", 0), nil, unit)

	result, err := mcp.NewToolResultJSON(loading)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimateOneRM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"weight":           weight,
		"reps":             reps,
		"estimated_one_rm": calc.EstimateOneRM(weight, reps),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) parseSetText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(voice.ParseSetInput(text))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.db.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	matches, err := h.db.ListExercises(ctx, uid, name)
	if err != nil {
		h.log.Error("mcp get_exercise_history lookup", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultError("no exercise matches " + name), nil
	}
	exercise := matches[0]

	history, err := h.db.QueryExerciseHistory(ctx, exercise.ID, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	for i := range history {
		history[i].EstimatedOneRM = calc.EstimateOneRM(history[i].Weight, history[i].Reps)
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"exercise": exercise,
		"history":  history,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slotStr, err := req.RequireString("workout_exercise_id")
	if err != nil {
		return mcp.NewToolResultError("workout_exercise_id parameter is required"), nil
	}
	slotID, err := uuid.Parse(slotStr)
	if err != nil {
		return mcp.NewToolResultError("workout_exercise_id must be a UUID"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	if reps <= 0 {
		return mcp.NewToolResultError("reps must be positive"), nil
	}

	uid := UserIDFromContext(ctx)
	if _, err := h.db.GetWorkoutExercise(ctx, slotID, uid); err != nil {
		return mcp.NewToolResultError("workout exercise not found"), nil
	}

	setNumber, err := h.db.NextSetNumber(ctx, slotID)
	if err != nil {
		h.log.Error("mcp log_set next number", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	row := models.SetRow{
		ID:                uuid.New(),
		WorkoutExerciseID: slotID,
		SetNumber:         setNumber,
		Weight:            weight,
		Reps:              reps,
		IsWarmup:          req.GetBool("is_warmup", false),
		Source:            models.SetSourceManual,
		LoggedAt:          time.Now(),
	}
	if err := h.db.InsertSet(ctx, row); err != nil {
		h.log.Error("mcp log_set insert", "error", err)
		return mcp.NewToolResultError("insert failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(row)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
