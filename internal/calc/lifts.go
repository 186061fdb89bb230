package calc

import "strings"

// compoundKeywords are matched as substrings of a lowercased exercise name.
var compoundKeywords = []string{
	"squat",
	"bench",
	"deadlift",
	"overhead press",
	"ohp",
	"military press",
	"front squat",
	"back squat",
	"incline bench",
	"decline bench",
	"sumo deadlift",
	"romanian deadlift",
	"rdl",
	"clean",
	"snatch",
	"clean and jerk",
	"push press",
	"thruster",
}

// IsCompoundLift reports whether an exercise name looks like a multi-joint
// barbell movement. Callers use it to suggest enabling warm-ups by default.
func IsCompoundLift(exerciseName string) bool {
	name := strings.ToLower(exerciseName)
	for _, kw := range compoundKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
