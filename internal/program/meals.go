package program

import (
	"math/rand/v2"
	"strings"
)

// Cooking time caps in minutes per tolerance band.
const (
	maxCookingLow    = 15
	maxCookingMedium = 30
	maxCookingHigh   = 90
)

// Slot offsets keep consecutive days from repeating the same recipes.
const (
	lunchOffset       = 3
	dinnerOffset      = 7
	snackOffset       = 2
	secondSnackOffset = 5

	snackMealsPerDay       = 4
	secondSnackMealsPerDay = 5
)

// MaxCookingMinutes returns the longest recipe a cooking-time tolerance accepts.
func MaxCookingMinutes(c CookingTime) int {
	switch c {
	case CookingLow:
		return maxCookingLow
	case CookingMedium:
		return maxCookingMedium
	case CookingHigh:
		return maxCookingHigh
	default:
		return maxCookingHigh
	}
}

// FilterRecipes returns the recipes that fit the cooking-time tolerance and contain no disliked food or allergen.
//
// allergies is a comma-separated keyword list. Matching is a case-insensitive substring test on every ingredient.
func FilterRecipes(recipes []Meal, dislikes []string, allergies string, cooking CookingTime) []Meal {
	maxMinutes := MaxCookingMinutes(cooking)
	excluded := keywords(dislikes)
	excluded = append(excluded, keywords(strings.Split(allergies, ","))...)

	filtered := make([]Meal, 0, len(recipes))
	for _, r := range recipes {
		if r.CookingTime > maxMinutes || containsAny(r.Ingredients, excluded) {
			continue
		}
		filtered = append(filtered, cloneMeal(r))
	}
	return filtered
}

// keywords lowercases and trims the list, dropping blanks so that a stray comma does not exclude everything.
func keywords(list []string) []string {
	out := make([]string, 0, len(list))
	for _, k := range list {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(ingredients []string, excluded []string) bool {
	for _, ing := range ingredients {
		ing = strings.ToLower(ing)
		for _, k := range excluded {
			if strings.Contains(ing, k) {
				return true
			}
		}
	}
	return false
}

func ofType(bank []Meal, t MealType) []Meal {
	var out []Meal
	for _, m := range bank {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

// DailyMealIDs assigns the meals of the dayIndex:th program day. Meal types missing from the bank are skipped.
func DailyMealIDs(bank []Meal, dayIndex, mealsPerDay int) []string {
	ids := make([]string, 0, mealsPerDay)
	pick := func(t MealType, offset int) {
		if list := ofType(bank, t); len(list) > 0 {
			ids = append(ids, list[(dayIndex+offset)%len(list)].ID)
		}
	}

	pick(MealBreakfast, 0)
	pick(MealLunch, lunchOffset)
	pick(MealDinner, dinnerOffset)
	if mealsPerDay >= snackMealsPerDay {
		pick(MealSnack, snackOffset)
	}
	if mealsPerDay == secondSnackMealsPerDay && len(ofType(bank, MealSnack)) > 1 {
		pick(MealSnack, secondSnackOffset)
	}
	return ids
}

// Reroll replaces every meal of the list with a different recipe of the same type drawn from the bank. A meal
// without an alternative is kept. Ids missing from the bank are dropped.
func Reroll(mealIDs []string, bank []Meal, rng *rand.Rand) []string {
	out := make([]string, 0, len(mealIDs))
	for _, id := range mealIDs {
		current, ok := findMeal(bank, id)
		if !ok {
			continue
		}
		var alternatives []Meal
		for _, m := range ofType(bank, current.Type) {
			if m.ID != current.ID {
				alternatives = append(alternatives, m)
			}
		}
		if len(alternatives) == 0 {
			out = append(out, current.ID)
			continue
		}
		out = append(out, alternatives[rng.IntN(len(alternatives))].ID)
	}
	return out
}

func findMeal(bank []Meal, id string) (Meal, bool) {
	for _, m := range bank {
		if m.ID == id {
			return m, true
		}
	}
	return Meal{}, false
}
