package calc

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// PlateLoadingResult describes how to load a barbell for a target weight.
// PlatesPerSide only contains denominations with a non-zero count.
type PlateLoadingResult struct {
	PlatesPerSide    map[float64]int
	AchievableWeight float64
}

// plateLoadingJSON is the wire shape. encoding/json cannot marshal float
// map keys, so denominations travel as strings ("45", "2.5").
type plateLoadingJSON struct {
	PlatesPerSide    map[string]int `json:"plates_per_side"`
	AchievableWeight float64        `json:"achievable_weight"`
}

// MarshalJSON emits plate denominations as string keys.
func (r PlateLoadingResult) MarshalJSON() ([]byte, error) {
	wire := plateLoadingJSON{
		PlatesPerSide:    make(map[string]int, len(r.PlatesPerSide)),
		AchievableWeight: r.AchievableWeight,
	}
	for denom, count := range r.PlatesPerSide {
		wire.PlatesPerSide[strconv.FormatFloat(denom, 'f', -1, 64)] = count
	}
	return json.Marshal(wire)
}

// UnmarshalJSON restores the float-keyed map from the wire shape.
func (r *PlateLoadingResult) UnmarshalJSON(data []byte) error {
	var wire plateLoadingJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.AchievableWeight = wire.AchievableWeight
	r.PlatesPerSide = make(map[float64]int, len(wire.PlatesPerSide))
	for key, count := range wire.PlatesPerSide {
		denom, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return fmt.Errorf("invalid plate denomination %q: %w", key, err)
		}
		r.PlatesPerSide[denom] = count
	}
	return nil
}

// CalculatePlateLoading computes the per-side plate breakdown for a target
// weight using a greedy largest-first descent. barWeight and plates default
// to the unit's standards when zero/nil. The achievable weight never
// exceeds the target. Greedy matching undershoots on non-canonical plate
// sets; callers treat the achievable weight as authoritative.
func CalculatePlateLoading(targetWeight float64, barWeight float64, plates []float64, unit WeightUnit) PlateLoadingResult {
	if barWeight <= 0 {
		barWeight = unit.BarWeight()
	}
	if len(plates) == 0 {
		plates = unit.PlateDenominations()
	} else {
		sorted := make([]float64, len(plates))
		copy(sorted, plates)
		sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
		plates = sorted
	}

	weightToLoad := targetWeight - barWeight
	if weightToLoad < 0 {
		weightToLoad = 0
	}
	remaining := weightToLoad / 2

	perSide := make(map[float64]int)
	var loadedPerSide float64
	for _, denom := range plates {
		if denom <= 0 {
			continue
		}
		// Epsilon guards caller-supplied denominations that are not exactly
		// representable; the standard sets divide cleanly.
		count := int(math.Floor(remaining/denom + 1e-9))
		if count > 0 {
			perSide[denom] = count
			loadedPerSide += float64(count) * denom
			remaining -= float64(count) * denom
		}
	}

	return PlateLoadingResult{
		PlatesPerSide:    perSide,
		AchievableWeight: barWeight + 2*loadedPerSide,
	}
}
