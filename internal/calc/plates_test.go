package calc

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

// TestCalculatePlateLoadingTwoPlates verifies the canonical 225 lb case:
// (225-45)/2 = 90 per side = two 45s.
func TestCalculatePlateLoadingTwoPlates(t *testing.T) {
	result := CalculatePlateLoading(225, 0, nil, Pounds)

	want := map[float64]int{45: 2}
	if !reflect.DeepEqual(result.PlatesPerSide, want) {
		t.Errorf("plates = %v, want %v", result.PlatesPerSide, want)
	}
	if result.AchievableWeight != 225 {
		t.Errorf("achievable = %v, want 225", result.AchievableWeight)
	}
}

// TestCalculatePlateLoadingMixedDenominations verifies the greedy descent
// across multiple plate sizes.
func TestCalculatePlateLoadingMixedDenominations(t *testing.T) {
	// (185-45)/2 = 70 per side = 45 + 25
	result := CalculatePlateLoading(185, 0, nil, Pounds)

	want := map[float64]int{45: 1, 25: 1}
	if !reflect.DeepEqual(result.PlatesPerSide, want) {
		t.Errorf("plates = %v, want %v", result.PlatesPerSide, want)
	}
	if result.AchievableWeight != 185 {
		t.Errorf("achievable = %v, want 185", result.AchievableWeight)
	}
}

// TestCalculatePlateLoadingUndershoots verifies the algorithm never
// overshoots: an unreachable target settles on the closest weight below it.
func TestCalculatePlateLoadingUndershoots(t *testing.T) {
	// (227-45)/2 = 91 per side: 45×2 = 90, then 1 left with nothing smaller
	// than 2.5 → undershoot to 225
	result := CalculatePlateLoading(227, 0, nil, Pounds)

	if result.AchievableWeight > 227 {
		t.Fatalf("achievable %v overshoots target 227", result.AchievableWeight)
	}
	if result.AchievableWeight != 225 {
		t.Errorf("achievable = %v, want 225", result.AchievableWeight)
	}
}

// TestCalculatePlateLoadingKilograms verifies the kg bar and plate defaults.
func TestCalculatePlateLoadingKilograms(t *testing.T) {
	// (100-20)/2 = 40 per side = 25 + 15
	result := CalculatePlateLoading(100, 0, nil, Kilograms)

	want := map[float64]int{25: 1, 15: 1}
	if !reflect.DeepEqual(result.PlatesPerSide, want) {
		t.Errorf("plates = %v, want %v", result.PlatesPerSide, want)
	}
	if result.AchievableWeight != 100 {
		t.Errorf("achievable = %v, want 100", result.AchievableWeight)
	}
}

// TestCalculatePlateLoadingBelowBar verifies that targets at or below the
// bar weight produce an empty map and the bare bar.
func TestCalculatePlateLoadingBelowBar(t *testing.T) {
	for _, target := range []float64{45, 30, 0, -10} {
		result := CalculatePlateLoading(target, 0, nil, Pounds)
		if len(result.PlatesPerSide) != 0 {
			t.Errorf("target %v: plates = %v, want empty", target, result.PlatesPerSide)
		}
		if result.AchievableWeight != 45 {
			t.Errorf("target %v: achievable = %v, want 45 (bare bar)", target, result.AchievableWeight)
		}
	}
}

// TestCalculatePlateLoadingCustomBarAndPlates verifies caller-supplied bar
// weight and denominations, including unsorted input.
func TestCalculatePlateLoadingCustomBarAndPlates(t *testing.T) {
	// (150-35)/2 = 57.5 per side with {10, 25, 2.5} → 25×2 + 2.5×3 = 57.5
	result := CalculatePlateLoading(150, 35, []float64{10, 25, 2.5}, Pounds)

	want := map[float64]int{25: 2, 2.5: 3}
	if !reflect.DeepEqual(result.PlatesPerSide, want) {
		t.Errorf("plates = %v, want %v", result.PlatesPerSide, want)
	}
	if result.AchievableWeight != 150 {
		t.Errorf("achievable = %v, want 150", result.AchievableWeight)
	}
}

// TestCalculatePlateLoadingGreedyNonCanonical pins the accepted greedy
// limitation: with a non-canonical set the result is not the closest
// possible match, only what largest-first produces.
func TestCalculatePlateLoadingGreedyNonCanonical(t *testing.T) {
	// 30 per side with {20, 15}: greedy takes 20 and stops short, even
	// though 15+15 would be exact
	result := CalculatePlateLoading(105, 45, []float64{20, 15}, Pounds)

	want := map[float64]int{20: 1}
	if !reflect.DeepEqual(result.PlatesPerSide, want) {
		t.Errorf("plates = %v, want %v (greedy, not optimal)", result.PlatesPerSide, want)
	}
	if result.AchievableWeight != 85 {
		t.Errorf("achievable = %v, want 85", result.AchievableWeight)
	}
}

// TestPlateLoadingResultJSON verifies the result survives a JSON round
// trip: float denominations travel as string keys, since encoding/json
// rejects float map keys outright.
func TestPlateLoadingResultJSON(t *testing.T) {
	result := CalculatePlateLoading(150, 35, []float64{10, 25, 2.5}, Pounds)

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	for _, key := range []string{`"25"`, `"2.5"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshaled JSON %s missing string key %s", data, key)
		}
	}

	var decoded PlateLoadingResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(decoded, result) {
		t.Errorf("round trip = %+v, want %+v", decoded, result)
	}
}

// TestPlateLoadingResultJSONEmpty verifies an empty breakdown (bare bar)
// still marshals.
func TestPlateLoadingResultJSONEmpty(t *testing.T) {
	result := CalculatePlateLoading(45, 0, nil, Pounds)

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var decoded PlateLoadingResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(decoded.PlatesPerSide) != 0 {
		t.Errorf("plates = %v, want empty", decoded.PlatesPerSide)
	}
	if decoded.AchievableWeight != 45 {
		t.Errorf("achievable = %v, want 45", decoded.AchievableWeight)
	}
}
