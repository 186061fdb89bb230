// Package voice extracts weight/rep pairs from transcribed gym speech.
//
// The parser is a fixed cascade of heuristics: number-word normalization,
// gym slang ("two plates", "bodyweight"), unit-suffixed weights, rep
// phrases, then a combined "did X for Y" fallback. Either field may come
// back unset, and ambiguous utterances resolve by rule order, not grammar.
package voice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParsedSetInput is the best-effort result of parsing one utterance.
// Both fields are independently optional; a partial parse is valid.
type ParsedSetInput struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
}

var (
	// numberRe matches integer or decimal tokens: "135", "102.5"
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// weightUnitRe matches a number followed by a weight unit word:
	// "135 lbs", "60kg", "225 pounds". The unit list is closed; "kgs" is
	// not in it, so "10 kgs" falls through to the positional heuristics.
	weightUnitRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:lbs|lb|pounds|pound|kg|kilos|kilo)\b`)

	// repsSuffixRe matches a number followed by a rep word: "12 reps"
	repsSuffixRe = regexp.MustCompile(`(\d+)\s*(?:reps|rep|repetitions|repetition)\b`)

	// repsPrefixRe matches a number preceded by a counting word:
	// "for 12", "times 8", "x 5"
	repsPrefixRe = regexp.MustCompile(`\b(?:for|times|time|x)\s*(\d+)\b`)

	// timesSuffixRe matches a number followed by "times": "8 times"
	timesSuffixRe = regexp.MustCompile(`(\d+)\s*times?\b`)

	// combinedRe matches the "did X for Y" phrase shape: first number is
	// the weight, second the reps
	combinedRe = regexp.MustCompile(`(?:i did |did )?(\d+(?:\.\d+)?)\s+(?:for|times|time)\s+(\d+)`)
)

// wordSub replaces one spelled-out number with its digits.
type wordSub struct {
	re     *regexp.Regexp
	digits string
}

// wordSubs is applied in order; compound phrases ("twenty five",
// "two hundred") must run before their components.
var wordSubs = buildWordSubs()

func buildWordSubs() []wordSub {
	ones := []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven",
		"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen", "twenty",
	}
	tens := []struct {
		word  string
		value int
	}{
		{"ninety", 90}, {"eighty", 80}, {"seventy", 70}, {"sixty", 60},
		{"fifty", 50}, {"forty", 40}, {"thirty", 30},
	}

	var subs []wordSub
	add := func(pattern string, value int) {
		subs = append(subs, wordSub{
			re:     regexp.MustCompile(`\b` + pattern + `\b`),
			digits: strconv.Itoa(value),
		})
	}

	// Hundreds first so "one hundred" does not decay into "1 100"
	add("three hundred", 300)
	add("two hundred", 200)
	add("one hundred", 100)
	add("hundred", 100)

	// Compounds twenty-one..twenty-five before "twenty" and the ones
	for v := 25; v >= 21; v-- {
		add(fmt.Sprintf("twenty[ -]%s", ones[v-20]), v)
	}

	for _, t := range tens {
		add(t.word, t.value)
	}
	for v := len(ones) - 1; v >= 0; v-- {
		add(ones[v], v)
	}
	return subs
}

// ParseSetInput extracts a candidate (weight, reps) pair from a single
// transcribed utterance. Rules run in fixed precedence order; earlier rules
// win per field. Unparseable fields are left nil — this function never
// fails, it only degrades.
func ParseSetInput(text string) ParsedSetInput {
	normalized := normalize(text)

	var result ParsedSetInput

	// Gym slang resolves weight before any numeric extraction. The plate
	// table is pounds-only slang: "a plate" is a 45 on each side of a 45 lb
	// bar, so one plate = 135, two = 225, three = 315.
	switch {
	case strings.Contains(normalized, "bodyweight") || strings.Contains(normalized, "body weight"):
		result.Weight = floatPtr(0)
	case strings.Contains(normalized, "plate"):
		switch {
		case strings.Contains(normalized, "two plate") || strings.Contains(normalized, "2 plate"):
			result.Weight = floatPtr(225)
		case strings.Contains(normalized, "three plate") || strings.Contains(normalized, "3 plate"):
			result.Weight = floatPtr(315)
		default:
			result.Weight = floatPtr(135)
		}
	}

	numbers := extractNumbers(normalized)

	if result.Weight == nil {
		if m := weightUnitRe.FindStringSubmatch(normalized); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				result.Weight = &v
			}
		}
	}
	if result.Weight == nil {
		// Working weights are rarely 20 or less in either unit
		for _, n := range numbers {
			if n > 20 {
				result.Weight = floatPtr(n)
				break
			}
		}
	}

	result.Reps = extractReps(normalized, numbers, result.Weight)

	// Combined "did X for Y" fallback. Fires whenever either field is
	// still missing and assigns both, clobbering a field an earlier rule
	// already resolved. Callers expect the overwrite; do not gate the
	// assignments individually.
	if result.Weight == nil || result.Reps == nil {
		if m := combinedRe.FindStringSubmatch(normalized); m != nil {
			if w, err := strconv.ParseFloat(m[1], 64); err == nil {
				result.Weight = &w
			}
			if r, err := strconv.Atoi(m[2]); err == nil {
				result.Reps = &r
			}
		}
	}

	return result
}

// normalize lowercases the utterance and rewrites spelled-out numbers as
// digits: "two twenty five for ten" -> "2 25 for 10".
func normalize(text string) string {
	s := strings.ToLower(text)
	for _, sub := range wordSubs {
		s = sub.re.ReplaceAllString(s, sub.digits)
	}
	return s
}

// extractNumbers returns every numeric token in left-to-right order.
func extractNumbers(s string) []float64 {
	var numbers []float64
	for _, tok := range numberRe.FindAllString(s, -1) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			numbers = append(numbers, v)
		}
	}
	return numbers
}

// extractReps resolves the rep count: explicit rep phrases first, then the
// first plausible count (1..50) that is not the already-resolved weight.
func extractReps(normalized string, numbers []float64, weight *float64) *int {
	for _, re := range []*regexp.Regexp{repsSuffixRe, repsPrefixRe, timesSuffixRe} {
		if m := re.FindStringSubmatch(normalized); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return &v
			}
		}
	}

	for _, n := range numbers {
		if n < 1 || n > 50 {
			continue
		}
		if weight != nil && n == *weight {
			continue
		}
		reps := int(n)
		return &reps
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
