package program

import "math/rand/v2"

// Split is the body-part grouping assigned to a workout day.
type Split string

const (
	SplitFullBody   Split = "Full Body"
	SplitPush       Split = "Push"
	SplitPull       Split = "Pull"
	SplitLegs       Split = "Legs"
	SplitUpper      Split = "Upper"
	SplitLower      Split = "Lower"
	SplitUpperPower Split = "Upper Power"
	SplitLowerPower Split = "Lower Power"
)

//nolint:gochecknoglobals // read-only rotation table.
var splitCycles = map[int][]Split{
	2: {SplitFullBody},
	3: {SplitPush, SplitPull, SplitLegs},
	4: {SplitUpper, SplitLower, SplitUpper, SplitLower},
	5: {SplitPush, SplitPull, SplitLegs, SplitUpperPower, SplitLowerPower},
	6: {SplitPush, SplitPull, SplitLegs, SplitPush, SplitPull, SplitLegs},
}

// SplitFor returns the split of the workoutIndex:th workout of a program with trainingDays per week.
// Unknown training day counts rotate like six days a week.
func SplitFor(trainingDays, workoutIndex int) Split {
	cycle, ok := splitCycles[trainingDays]
	if !ok {
		cycle = splitCycles[6]
	}
	return cycle[workoutIndex%len(cycle)]
}

// Base prescription of a freshly selected exercise.
const (
	baseSets = 3
	baseReps = "10-12"
	baseRest = "60s"

	pushCount       = 4
	upperCount      = 5
	lowerCount      = 5
	pullCount       = 4
	pullMinimum     = 3
	pullTopUp       = 2
	fullBodyUpper   = 2
	fullBodyLower   = 2
	fullBodyOverall = 1
)

// SelectExercises draws the main exercises of a workout day. Movements that conflict with the limitation are never
// drawn. Pools smaller than the requested count yield everything they have.
func SelectExercises(rng *rand.Rand, equipment Equipment, split Split, limitation Limitation) []Exercise {
	pool := poolFor(equipment)
	switch split {
	case SplitPush:
		return draw(rng, pool.Upper, pushCount, limitation)
	case SplitUpper, SplitUpperPower:
		return draw(rng, pool.Upper, upperCount, limitation)
	case SplitLegs, SplitLower, SplitLowerPower:
		return draw(rng, pool.Lower, lowerCount, limitation)
	case SplitPull:
		var pulls []Movement
		for _, m := range pool.Upper {
			if m.has(PatternPull) {
				pulls = append(pulls, m)
			}
		}
		selected := draw(rng, pulls, pullCount, limitation)
		if len(selected) < pullMinimum {
			selected = append(selected, draw(rng, bodyweightPool.Upper, pullTopUp, limitation)...)
		}
		return selected
	case SplitFullBody:
		fallthrough
	default:
		upper, lower := pool.Upper, pool.Lower
		if len(upper) == 0 {
			upper = bodyweightPool.Upper
		}
		if len(lower) == 0 {
			lower = bodyweightPool.Lower
		}
		selected := draw(rng, upper, fullBodyUpper, limitation)
		selected = append(selected, draw(rng, lower, fullBodyLower, limitation)...)
		return append(selected, draw(rng, bodyweightPool.FullBody, fullBodyOverall, limitation)...)
	}
}

// draw picks up to count allowed movements uniformly at random without replacement.
func draw(rng *rand.Rand, pool []Movement, count int, limitation Limitation) []Exercise {
	available := make([]Movement, 0, len(pool))
	for _, m := range pool {
		if limitation.allows(m.Patterns) {
			available = append(available, m)
		}
	}

	n := min(count, len(available))
	selected := make([]Exercise, 0, n)
	for range n {
		i := rng.IntN(len(available))
		m := available[i]
		available = append(available[:i], available[i+1:]...)
		selected = append(selected, Exercise{
			ID:           m.ID,
			Name:         m.Name,
			Sets:         baseSets,
			Reps:         baseReps,
			Rest:         baseRest,
			TimeSec:      0,
			MediaURL:     MediaURL(m.Name),
			Alternatives: SafeAlternatives(m, limitation),
			Notes:        "",
			IsWarmup:     false,
			IsCooldown:   false,
		})
	}
	return selected
}
