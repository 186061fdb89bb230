package voice

import (
	"reflect"
	"testing"
)

func checkParse(t *testing.T, text string, wantWeight *float64, wantReps *int) {
	t.Helper()
	got := ParseSetInput(text)
	if (got.Weight == nil) != (wantWeight == nil) ||
		(got.Weight != nil && *got.Weight != *wantWeight) {
		t.Errorf("ParseSetInput(%q).Weight = %v, want %v", text, fmtPtr(got.Weight), fmtPtr(wantWeight))
	}
	if (got.Reps == nil) != (wantReps == nil) ||
		(got.Reps != nil && *got.Reps != *wantReps) {
		t.Errorf("ParseSetInput(%q).Reps = %v, want %v", text, fmtIntPtr(got.Reps), fmtIntPtr(wantReps))
	}
}

func fmtPtr(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func fmtIntPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func w(v float64) *float64 { return &v }
func r(v int) *int         { return &v }

// TestParseExplicitUnits verifies the primary path: a unit-suffixed weight
// and an explicit rep phrase.
func TestParseExplicitUnits(t *testing.T) {
	checkParse(t, "135 pounds for 12 reps", w(135), r(12))
	checkParse(t, "60 kg for 8 reps", w(60), r(8))
	checkParse(t, "102.5 kilos for 5", w(102.5), r(5))
	checkParse(t, "225lbs x 3", w(225), r(3))
}

// TestParseNumberWords verifies spelled-out numbers are normalized before
// extraction.
func TestParseNumberWords(t *testing.T) {
	checkParse(t, "one hundred pounds for five reps", w(100), r(5))
	checkParse(t, "squatted two hundred for three", w(200), r(3))
	checkParse(t, "twenty five kilos for ten", w(25), r(10))
}

// TestParsePlateSlang verifies the fixed plate table: one/two/three plates
// map to 135/225/315 regardless of any other numbers present.
func TestParsePlateSlang(t *testing.T) {
	checkParse(t, "two plates for ten", w(225), r(10))
	checkParse(t, "three plates for 2", w(315), r(2))
	checkParse(t, "just a plate for 15", w(135), r(15))
}

// TestParseBodyweight verifies "bodyweight" resolves to weight 0, which is
// distinct from an unparsed (nil) weight.
func TestParseBodyweight(t *testing.T) {
	checkParse(t, "bodyweight for fifteen reps", w(0), r(15))
	checkParse(t, "body weight pull ups for 12", w(0), r(12))
}

// TestParseBareNumbers verifies the positional heuristics when no unit or
// rep word is present: first number over 20 is the weight, "for N" is reps.
func TestParseBareNumbers(t *testing.T) {
	checkParse(t, "I did 135 for 12", w(135), r(12))
	checkParse(t, "did 225 for 5", w(225), r(5))
	checkParse(t, "185 times 8", w(185), r(8))
}

// TestParsePartial verifies that partial parses are returned as-is: nil
// fields, never errors.
func TestParsePartial(t *testing.T) {
	checkParse(t, "ten reps", nil, r(10))
	checkParse(t, "felt great today", nil, nil)
	checkParse(t, "", nil, nil)
}

// TestParseUnrecognizedUnit verifies that unit words outside the closed list
// get no special treatment: "kgs" is not a unit, so the bare 10 fails the
// over-20 weight heuristic and is claimed by the reps range heuristic.
func TestParseUnrecognizedUnit(t *testing.T) {
	checkParse(t, "10 kgs", nil, r(10))
	checkParse(t, "60 kg", w(60), nil)
}

// TestParseCombinedFallbackOverwrites pins a known quirk: the "did X for Y"
// fallback runs whenever either field is unresolved and assigns both, so a
// rep count found by an earlier rule can be clobbered. The mobile client
// relies on the current precedence, so this is pinned rather than fixed.
func TestParseCombinedFallbackOverwrites(t *testing.T) {
	// "3 reps" resolves reps=3 first; the weight heuristic finds nothing
	// over 20, so the fallback fires, sets weight=18 and rewrites reps to 2.
	checkParse(t, "3 reps did 18 for 2", w(18), r(2))
}

// TestParsePlateTokenLeaksIntoReps pins a second quirk: "three plates"
// normalizes to "3 plates", and the leftover "3" token is picked up by the
// reps range heuristic.
func TestParsePlateTokenLeaksIntoReps(t *testing.T) {
	checkParse(t, "three plates", w(315), r(3))
}

// TestParseRepsSkipsWeightValue verifies the reps fallback never reuses the
// number already consumed as the weight.
func TestParseRepsSkipsWeightValue(t *testing.T) {
	// 45 becomes the weight; the reps fallback must skip it and take 10
	checkParse(t, "45 10", w(45), r(10))
}

// TestParseDeterministic verifies parsing is pure: repeated calls on the
// same utterance produce deep-equal results.
func TestParseDeterministic(t *testing.T) {
	for _, text := range []string{
		"two plates for ten",
		"135 pounds for 12 reps",
		"bodyweight for fifteen reps",
	} {
		a := ParseSetInput(text)
		b := ParseSetInput(text)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("ParseSetInput(%q) not deterministic: %+v vs %+v", text, a, b)
		}
	}
}
