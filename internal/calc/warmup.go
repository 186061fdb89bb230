package calc

import "math"

// WarmupSettings describes how a warm-up progression should be generated.
// Constructed by the caller per calculation; this package never persists it.
type WarmupSettings struct {
	NumberOfWarmups   int        `json:"number_of_warmups"`
	Unit              WeightUnit `json:"unit"`
	UseFineIncrements bool       `json:"use_fine_increments"`
	// BarWeight overrides the unit's standard bar weight when non-nil.
	BarWeight *float64 `json:"bar_weight,omitempty"`
	// EstimatedOneRM caps warm-up weights at 85% of the estimate when non-nil.
	EstimatedOneRM *float64 `json:"estimated_one_rm,omitempty"`
}

// WarmupSet is one step of a warm-up progression.
type WarmupSet struct {
	Percentage    float64 `json:"percentage"`
	TargetReps    int     `json:"target_reps"`
	RawWeight     float64 `json:"raw_weight"`
	RoundedWeight float64 `json:"rounded_weight"`
}

type warmupStep struct {
	percentage float64
	reps       int
}

// warmupSchemes maps the requested warm-up count to its progression,
// lightest set first.
var warmupSchemes = map[int][]warmupStep{
	1: {{0.60, 5}},
	2: {{0.50, 5}, {0.70, 3}},
	3: {{0.40, 5}, {0.60, 3}, {0.75, 2}},
	4: {{0.35, 6}, {0.50, 5}, {0.65, 3}, {0.75, 2}},
	5: {{0.25, 8}, {0.40, 6}, {0.55, 4}, {0.70, 2}, {0.80, 1}},
}

// GenerateWarmupSets derives a warm-up progression for the given working
// weight. Each set's weight is capped at 85% of the estimated 1RM when one
// is supplied, floored at the bar weight, and rounded to the unit's
// increment. Returns an empty slice for non-positive weight or a warm-up
// count outside 1..5.
func GenerateWarmupSets(workingWeight float64, settings WarmupSettings) []WarmupSet {
	scheme, ok := warmupSchemes[settings.NumberOfWarmups]
	if !ok || workingWeight <= 0 {
		return nil
	}

	increment := settings.Unit.DefaultIncrement()
	if settings.UseFineIncrements {
		increment = settings.Unit.FineIncrement()
	}

	barWeight := settings.Unit.BarWeight()
	if settings.BarWeight != nil {
		barWeight = *settings.BarWeight
	}

	sets := make([]WarmupSet, 0, len(scheme))
	for _, step := range scheme {
		raw := workingWeight * step.percentage

		weight := raw
		if settings.EstimatedOneRM != nil {
			if limit := *settings.EstimatedOneRM * 0.85; weight > limit {
				weight = limit
			}
		}
		if weight < barWeight {
			weight = barWeight
		}

		sets = append(sets, WarmupSet{
			Percentage:    step.percentage,
			TargetReps:    step.reps,
			RawWeight:     raw,
			RoundedWeight: roundToIncrement(weight, increment),
		})
	}
	return sets
}

// roundToIncrement snaps a weight to the nearest multiple of increment,
// rounding halves away from zero.
func roundToIncrement(weight, increment float64) float64 {
	if increment <= 0 {
		return weight
	}
	return math.Round(weight/increment) * increment
}
