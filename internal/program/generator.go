// Package program generates a multi-week training and nutrition program from a user profile.
//
// The package is pure: it reads no clock and no global random source. Callers pass the start date and a
// [rand.Rand], so a program is reproducible from its seed.
package program

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	daysPerWeek   = 7
	weighInPeriod = 14
)

// WeeklyPattern returns which days of a week are workout days. Day 0 is always a workout day.
func WeeklyPattern(trainingDays int) [daysPerWeek]bool {
	pattern := [daysPerWeek]bool{true}
	var days []int
	switch trainingDays {
	case 2: //nolint:mnd // training days
		days = []int{0, 3}
	case 3: //nolint:mnd // training days
		days = []int{0, 2, 4}
	case 4: //nolint:mnd // training days
		days = []int{0, 1, 3, 4}
	case 5: //nolint:mnd // training days
		days = []int{0, 1, 2, 3, 4}
	case 6: //nolint:mnd // training days
		days = []int{0, 1, 2, 3, 4, 5}
	}
	for _, d := range days {
		pattern[d] = true
	}
	return pattern
}

// GenerateWorkout builds the workoutIndex:th workout of the program, which falls in the given week.
func GenerateWorkout(p Profile, week, workoutIndex int, rng *rand.Rand) Workout {
	split := SplitFor(p.TrainingDays, workoutIndex)
	deload := IsDeload(p.Timeline, week)

	selected := SelectExercises(rng, p.Equipment, split, p.Limitations.Type)
	progressed := ApplyProgression(selected, week, p.Experience, p.GoalType, deload)
	warmup := Warmup(p.Experience)
	cooldown := Cooldown()

	return Workout{
		ID:               fmt.Sprintf("workout_w%d_d%d", week, workoutIndex),
		Name:             fmt.Sprintf("Week %d - %s", week, split),
		Warmup:           warmup,
		Exercises:        FitToSession(progressed, p.MinutesPerSession, len(warmup), len(cooldown)),
		Cooldown:         cooldown,
		EstimatedMinutes: p.MinutesPerSession,
	}
}

// Generate builds the program for a validated profile starting on the calendar date of start.
func Generate(p Profile, start time.Time, rng *rand.Rand) Plan {
	startDate := FormatDate(start)
	totalDays := p.Timeline * daysPerWeek
	bank := FilterRecipes(Recipes(), p.FoodsDislike, allergyKeywords(p.Allergies), p.CookingTime)
	targets := ComputeTargets(p, p.Weight)
	pattern := WeeklyPattern(p.TrainingDays)

	plan := Plan{
		StartDate:     startDate,
		TimelineWeeks: p.Timeline,
		Days:          make([]DayPlan, 0, totalDays),
		WorkoutsByID:  make(map[string]Workout),
		RecipesBank:   bank,
	}

	workoutIndex := 0
	for dayIndex := range totalDays {
		day := DayPlan{
			Date:       AddDays(startDate, dayIndex),
			Type:       DayRest,
			WorkoutID:  "",
			MealIDs:    DailyMealIDs(bank, dayIndex, p.MealsPerDay),
			Targets:    targets,
			HasWeighIn: false,
		}
		if pattern[dayIndex%daysPerWeek] {
			w := GenerateWorkout(p, dayIndex/daysPerWeek+1, workoutIndex, rng)
			plan.WorkoutsByID[w.ID] = w
			day.Type = DayWorkout
			day.WorkoutID = w.ID
			workoutIndex++
		} else {
			day.HasWeighIn = dayIndex > 0 && (dayIndex+1)%weighInPeriod == 0
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

func allergyKeywords(a Allergies) string {
	if !a.HasAllergies {
		return ""
	}
	return a.Details
}
