package program

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	deloadMinimumWeeks = 8
	deloadEvery        = 4
	deloadSetFactor    = 0.6
	deloadRepFactor    = 0.7
	minSets            = 2
	maxSets            = 5

	secondsPerSet          = 45
	warmupMinutesEach      = 2
	cooldownMinutesEach    = 2
	minimumMainExercises   = 3
	defaultRestSeconds     = 60
	secondsPerMinute       = 60.0
	progressionPerWeekStep = 0.1
)

//nolint:gochecknoglobals // compiled once.
var numberPattern = regexp.MustCompile(`\d+`)

// IsDeload reports whether week is a reduced-volume week. Only programs of eight weeks or more deload, on every
// fourth week.
func IsDeload(timelineWeeks, week int) bool {
	return timelineWeeks >= deloadMinimumWeeks && week%deloadEvery == 0
}

// ApplyProgression returns the exercises with sets, reps and rest adjusted for the week.
//
// Deload weeks cut volume and skip every other adjustment. Other weeks apply the goal prescription followed by the
// experience clamp.
func ApplyProgression(exercises []Exercise, week int, experience Experience, goal Goal, deload bool) []Exercise {
	out := make([]Exercise, len(exercises))
	if deload {
		for i, ex := range exercises {
			ex.Sets = max(minSets, int(math.Floor(float64(ex.Sets)*deloadSetFactor)))
			ex.Reps = scaleReps(ex.Reps, deloadRepFactor)
			out[i] = ex
		}
		return out
	}

	factor := 1 + float64(week-1)*progressionPerWeekStep
	for i, ex := range exercises {
		switch goal {
		case GoalStrength:
			ex.Sets = min(maxSets, int(math.Floor(float64(ex.Sets)*factor)))
			ex.Reps, ex.Rest = "4-6", "120s"
		case GoalBuildMuscle:
			ex.Sets = min(4, int(math.Floor(float64(ex.Sets)+float64(week)*0.3))) //nolint:mnd // slow set growth
			ex.Reps, ex.Rest = "8-12", "75s"
		case GoalEndurance:
			ex.Sets = min(4, ex.Sets+int(math.Floor(float64(week)*0.2))) //nolint:mnd // slow set growth
			ex.Reps, ex.Rest = "15-20", "45s"
		case GoalFatLoss:
			ex.Reps, ex.Rest = "12-15", "45s"
		case GoalGeneralHealth:
		}

		switch experience {
		case ExperienceBeginner:
			ex.Sets = max(minSets, min(3, ex.Sets)) //nolint:mnd // beginner ceiling
		case ExperienceAdvanced:
			ex.Sets = min(maxSets, ex.Sets+1)
		case ExperienceIntermediate:
		}
		out[i] = ex
	}
	return out
}

// scaleReps multiplies every number in a rep spec such as "10-12" and floors the result.
func scaleReps(reps string, factor float64) string {
	return numberPattern.ReplaceAllStringFunc(reps, func(s string) string {
		n, err := strconv.Atoi(s)
		if err != nil {
			return s
		}
		return strconv.Itoa(int(math.Floor(float64(n) * factor)))
	})
}

// restSeconds parses a rest spec such as "75s". Unparseable or zero rests count as one minute.
func restSeconds(rest string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(rest), "s"))
	if err != nil || n == 0 {
		return defaultRestSeconds
	}
	return n
}

// ExerciseMinutes estimates the duration of an exercise from its sets and rest.
func ExerciseMinutes(ex Exercise) float64 {
	return float64(ex.Sets*secondsPerSet+(ex.Sets-1)*restSeconds(ex.Rest)) / secondsPerMinute
}

// FitToSession greedily keeps exercises in order while they fit the time left after the warm-up and cool-down.
// The first three exercises are kept even when they overflow the budget.
func FitToSession(exercises []Exercise, sessionMinutes, warmupCount, cooldownCount int) []Exercise {
	available := float64(sessionMinutes - warmupCount*warmupMinutesEach - cooldownCount*cooldownMinutesEach)
	var (
		total float64
		kept  = make([]Exercise, 0, len(exercises))
	)
	for _, ex := range exercises {
		minutes := ExerciseMinutes(ex)
		switch {
		case total+minutes <= available:
			kept = append(kept, ex)
			total += minutes
		case len(kept) < minimumMainExercises:
			kept = append(kept, ex)
		}
	}
	return kept
}
