package program

import (
	"regexp"
	"slices"
	"strings"
)

// ShoppingItem is one ingredient of the shopping list.
type ShoppingItem struct {
	Ingredient string
	Count      int
	Meals      []string
}

// ShoppingCategory groups shopping items in the order they were first needed.
type ShoppingCategory struct {
	Name  string
	Items []ShoppingItem
}

//nolint:gochecknoglobals // compiled once.
var quantityPattern = regexp.MustCompile(`(?i)\d+[a-z]*\s*`)

//nolint:gochecknoglobals // read-only keyword table, matched in order.
var shoppingCategories = []struct {
	name     string
	keywords []string
}{
	{"Proteins", []string{"chicken", "beef", "fish", "salmon", "turkey", "tuna", "egg", "tofu", "protein"}},
	{"Vegetables", []string{
		"spinach", "broccoli", "tomato", "lettuce", "cucumber", "pepper", "onion", "carrot", "mushroom", "asparagus",
		"zucchini", "bean", "pea", "vegetable", "greens",
	}},
	{"Fruits", []string{"banana", "apple", "berries", "berry", "fruit", "lemon"}},
	{"Grains & Carbs", []string{"rice", "pasta", "bread", "oat", "quinoa", "noodle", "toast", "potato", "naan"}},
	{"Dairy", []string{"milk", "yogurt", "cheese", "butter", "cream"}},
	{"Pantry", []string{"oil", "sauce", "spice", "salt", "pepper", "honey", "nut", "seed", "almond", "peanut"}},
}

const otherCategory = "Other"

// NormalizeIngredient strips quantities such as "200g" or "2 tbsp" counts from an ingredient.
func NormalizeIngredient(ingredient string) string {
	return strings.ToLower(strings.TrimSpace(quantityPattern.ReplaceAllString(ingredient, "")))
}

func categoryOf(ingredient string) string {
	for _, c := range shoppingCategories {
		for _, k := range c.keywords {
			if strings.Contains(ingredient, k) {
				return c.name
			}
		}
	}
	return otherCategory
}

// ShoppingList aggregates the ingredients of the meals planned for days consecutive days starting at from.
// Categories without items are omitted. A date outside the program yields an empty list.
func ShoppingList(plan Plan, from string, days int) []ShoppingCategory {
	start := plan.DayIndex(from)
	if start < 0 {
		return nil
	}
	end := min(start+days, len(plan.Days))

	items := make(map[string]*ShoppingItem)
	var order []string
	for _, day := range plan.Days[start:end] {
		for _, id := range day.MealIDs {
			meal, ok := plan.Meal(id)
			if !ok {
				continue
			}
			for _, ing := range meal.Ingredients {
				key := NormalizeIngredient(ing)
				item, seen := items[key]
				if !seen {
					item = &ShoppingItem{Ingredient: key, Count: 0, Meals: nil}
					items[key] = item
					order = append(order, key)
				}
				item.Count++
				if !slices.Contains(item.Meals, meal.Name) {
					item.Meals = append(item.Meals, meal.Name)
				}
			}
		}
	}

	byCategory := make(map[string][]ShoppingItem)
	for _, key := range order {
		c := categoryOf(key)
		byCategory[c] = append(byCategory[c], *items[key])
	}

	var out []ShoppingCategory
	for _, c := range shoppingCategories {
		if list := byCategory[c.name]; len(list) > 0 {
			out = append(out, ShoppingCategory{Name: c.name, Items: list})
		}
	}
	if list := byCategory[otherCategory]; len(list) > 0 {
		out = append(out, ShoppingCategory{Name: otherCategory, Items: list})
	}
	return out
}
