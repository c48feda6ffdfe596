package program_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitquest/internal/program"
)

func mealIDs(meals []program.Meal) []string {
	ids := make([]string, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}
	return ids
}

func TestFilterRecipes(t *testing.T) {
	tests := []struct {
		name      string
		dislikes  []string
		allergies string
		cooking   program.CookingTime
		excluded  []string
		included  []string
	}{
		{
			name:     "35 minute recipe is too slow for medium",
			cooking:  program.CookingMedium,
			excluded: []string{"dn_1", "dn_4", "dn_slow_1"},
			included: []string{"dn_2", "dn_3"},
		},
		{
			name:     "35 minute recipe fits high",
			cooking:  program.CookingHigh,
			included: []string{"dn_1", "dn_4", "dn_slow_1"},
		},
		{
			name:     "low keeps quick recipes only",
			cooking:  program.CookingLow,
			excluded: []string{"ln_1", "ln_3", "dn_2"},
			included: []string{"bf_1", "bf_2", "ln_quick_1", "sn_2"},
		},
		{
			name:     "dislikes match ingredients case-insensitively",
			dislikes: []string{"CHICKEN"},
			cooking:  program.CookingHigh,
			excluded: []string{"ln_1", "dn_1", "dn_slow_1"},
			included: []string{"ln_2", "dn_2"},
		},
		{
			name:      "allergy keywords",
			allergies: "almond, Peanut",
			cooking:   program.CookingHigh,
			excluded:  []string{"bf_1", "bf_3", "sn_1", "sn_2", "bf_quick_1"},
			included:  []string{"bf_2", "sn_3"},
		},
		{
			name:      "blank allergy entries exclude nothing",
			allergies: " , ,",
			cooking:   program.CookingHigh,
			included:  mealIDs(program.Recipes()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mealIDs(program.FilterRecipes(program.Recipes(), tt.dislikes, tt.allergies, tt.cooking))
			for _, id := range tt.excluded {
				if slices.Contains(got, id) {
					t.Errorf("%s not excluded", id)
				}
			}
			for _, id := range tt.included {
				if !slices.Contains(got, id) {
					t.Errorf("%s not included", id)
				}
			}
		})
	}
}

func TestDailyMealIDs(t *testing.T) {
	bank := program.FilterRecipes(program.Recipes(), nil, "", program.CookingHigh)
	tests := []struct {
		day   int
		meals int
		want  []string
	}{
		{day: 0, meals: 3, want: []string{"bf_1", "ln_4", "dn_3"}},
		{day: 1, meals: 3, want: []string{"bf_2", "ln_quick_1", "dn_4"}},
		{day: 0, meals: 4, want: []string{"bf_1", "ln_4", "dn_3", "sn_3"}},
		{day: 1, meals: 5, want: []string{"bf_2", "ln_quick_1", "dn_4", "sn_1", "sn_1"}},
		{day: 2, meals: 2, want: []string{"bf_3", "ln_1", "dn_slow_1"}},
	}
	for _, tt := range tests {
		got := program.DailyMealIDs(bank, tt.day, tt.meals)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("DailyMealIDs(day %d, %d meals) mismatch (-want +got):\n%s", tt.day, tt.meals, diff)
		}
	}

	t.Run("missing meal types are skipped", func(t *testing.T) {
		onlyBreakfast := []program.Meal{bank[0]}
		if diff := cmp.Diff([]string{"bf_1"}, program.DailyMealIDs(onlyBreakfast, 3, 5)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestReroll(t *testing.T) {
	bank := program.FilterRecipes(program.Recipes(), nil, "", program.CookingHigh)
	current := []string{"bf_1", "ln_1", "dn_1", "sn_1"}

	got := program.Reroll(current, bank, newRand(9))
	if len(got) != len(current) {
		t.Fatalf("Reroll() returned %d meals, want %d", len(got), len(current))
	}
	for i, id := range got {
		if id == current[i] {
			t.Errorf("slot %d kept %s", i, id)
		}
		before, _ := findMeal(bank, current[i])
		after, _ := findMeal(bank, id)
		if before.Type != after.Type {
			t.Errorf("slot %d changed type from %s to %s", i, before.Type, after.Type)
		}
	}

	again := program.Reroll(current, bank, newRand(9))
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("same seed rerolled differently (-first +second):\n%s", diff)
	}

	t.Run("no alternative keeps the meal", func(t *testing.T) {
		single := []program.Meal{bank[0]}
		if diff := cmp.Diff([]string{"bf_1"}, program.Reroll([]string{"bf_1", "gone"}, single, newRand(1))); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func findMeal(bank []program.Meal, id string) (program.Meal, bool) {
	plan := program.Plan{RecipesBank: bank}
	return plan.Meal(id)
}
