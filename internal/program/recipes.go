package program

import "slices"

// Recipes returns a copy of the recipe catalog.
func Recipes() []Meal {
	out := make([]Meal, len(recipeCatalog))
	for i, m := range recipeCatalog {
		out[i] = cloneMeal(m)
	}
	return out
}

func cloneMeal(m Meal) Meal {
	m.Ingredients = slices.Clone(m.Ingredients)
	m.Instructions = slices.Clone(m.Instructions)
	return m
}

//nolint:gochecknoglobals,mnd // read-only catalog.
var recipeCatalog = []Meal{
	{
		ID: "bf_1", Name: "Protein Power Oats", Type: MealBreakfast,
		Protein: 35, Carbs: 45, Fats: 12, Calories: 420, VeggieServings: 0, CookingTime: 10,
		Ingredients:  []string{"Oats 60g", "Protein powder 30g", "Banana", "Berries", "Almond butter 1 tbsp"},
		Instructions: []string{"Cook oats", "Mix in protein powder", "Top with banana and berries", "Add almond butter"},
	},
	{
		ID: "bf_2", Name: "Egg White Scramble", Type: MealBreakfast,
		Protein: 40, Carbs: 25, Fats: 15, Calories: 395, VeggieServings: 2, CookingTime: 15,
		Ingredients:  []string{"Egg whites 250ml", "Spinach", "Tomatoes", "Mushrooms", "Toast 2 slices"},
		Instructions: []string{"Sauté vegetables", "Add egg whites", "Scramble until cooked", "Serve with toast"},
	},
	{
		ID: "bf_3", Name: "Greek Yogurt Bowl", Type: MealBreakfast,
		Protein: 30, Carbs: 40, Fats: 10, Calories: 370, VeggieServings: 0, CookingTime: 5,
		Ingredients: []string{"Greek yogurt 250g", "Granola 40g", "Mixed berries", "Honey 1 tbsp", "Almonds"},
		Instructions: []string{
			"Layer yogurt in bowl", "Add granola", "Top with berries", "Drizzle honey", "Sprinkle almonds",
		},
	},
	{
		ID: "ln_1", Name: "Grilled Chicken Salad", Type: MealLunch,
		Protein: 45, Carbs: 30, Fats: 18, Calories: 465, VeggieServings: 3, CookingTime: 20,
		Ingredients: []string{
			"Chicken breast 200g", "Mixed greens", "Cherry tomatoes", "Cucumber", "Olive oil dressing", "Quinoa 50g",
		},
		Instructions: []string{"Grill chicken", "Cook quinoa", "Chop vegetables", "Assemble salad", "Add dressing"},
	},
	{
		ID: "ln_2", Name: "Turkey Wrap Power", Type: MealLunch,
		Protein: 38, Carbs: 45, Fats: 15, Calories: 475, VeggieServings: 2, CookingTime: 10,
		Ingredients: []string{"Whole wheat wrap", "Turkey breast 150g", "Lettuce", "Tomato", "Avocado", "Mustard"},
		Instructions: []string{
			"Layer turkey on wrap", "Add vegetables", "Spread mustard", "Roll tightly", "Slice in half",
		},
	},
	{
		ID: "ln_3", Name: "Salmon Rice Bowl", Type: MealLunch,
		Protein: 42, Carbs: 50, Fats: 20, Calories: 560, VeggieServings: 2, CookingTime: 25,
		Ingredients: []string{
			"Salmon fillet 180g", "Brown rice 80g", "Broccoli", "Carrots", "Soy sauce", "Sesame seeds",
		},
		Instructions: []string{"Bake salmon", "Cook rice", "Steam vegetables", "Assemble bowl", "Drizzle soy sauce"},
	},
	{
		ID: "ln_4", Name: "Beef Stir-Fry", Type: MealLunch,
		Protein: 40, Carbs: 45, Fats: 18, Calories: 510, VeggieServings: 3, CookingTime: 20,
		Ingredients: []string{
			"Lean beef 180g", "Bell peppers", "Snap peas", "Onions", "Rice noodles 80g", "Stir-fry sauce",
		},
		Instructions: []string{"Cook noodles", "Stir-fry beef", "Add vegetables", "Toss with sauce", "Combine all"},
	},
	{
		ID: "dn_1", Name: "Chicken & Sweet Potato", Type: MealDinner,
		Protein: 50, Carbs: 55, Fats: 16, Calories: 560, VeggieServings: 2, CookingTime: 35,
		Ingredients: []string{"Chicken breast 220g", "Sweet potato large", "Green beans", "Olive oil", "Spices"},
		Instructions: []string{
			"Bake sweet potato", "Grill chicken", "Steam green beans", "Season everything", "Plate and serve",
		},
	},
	{
		ID: "dn_2", Name: "Lean Beef Bowl", Type: MealDinner,
		Protein: 48, Carbs: 50, Fats: 20, Calories: 590, VeggieServings: 3, CookingTime: 30,
		Ingredients: []string{"Ground beef 200g", "Rice 80g", "Mixed vegetables", "Black beans", "Salsa"},
		Instructions: []string{
			"Cook beef", "Prepare rice", "Heat beans", "Steam vegetables", "Build bowl with toppings",
		},
	},
	{
		ID: "dn_3", Name: "Baked Fish & Veggies", Type: MealDinner,
		Protein: 45, Carbs: 40, Fats: 18, Calories: 510, VeggieServings: 3, CookingTime: 30,
		Ingredients: []string{"White fish 200g", "Asparagus", "Zucchini", "Baby potatoes", "Lemon", "Herbs"},
		Instructions: []string{
			"Prep vegetables", "Season fish", "Bake everything together", "Squeeze lemon", "Serve hot",
		},
	},
	{
		ID: "dn_4", Name: "Turkey Meatballs Pasta", Type: MealDinner,
		Protein: 42, Carbs: 60, Fats: 15, Calories: 565, VeggieServings: 2, CookingTime: 35,
		Ingredients: []string{
			"Ground turkey 200g", "Whole wheat pasta 80g", "Marinara sauce", "Spinach", "Parmesan",
		},
		Instructions: []string{
			"Form meatballs", "Bake meatballs", "Cook pasta", "Heat sauce with spinach", "Combine and top with cheese",
		},
	},
	{
		ID: "sn_1", Name: "Protein Smoothie", Type: MealSnack,
		Protein: 30, Carbs: 35, Fats: 8, Calories: 330, VeggieServings: 0, CookingTime: 5,
		Ingredients:  []string{"Protein powder 30g", "Banana", "Spinach handful", "Almond milk", "Ice"},
		Instructions: []string{"Add all ingredients to blender", "Blend until smooth", "Pour and enjoy"},
	},
	{
		ID: "sn_2", Name: "Apple & Nut Butter", Type: MealSnack,
		Protein: 8, Carbs: 30, Fats: 16, Calories: 290, VeggieServings: 0, CookingTime: 2,
		Ingredients:  []string{"Apple", "Almond butter 2 tbsp"},
		Instructions: []string{"Slice apple", "Serve with nut butter"},
	},
	{
		ID: "sn_3", Name: "Cottage Cheese Bowl", Type: MealSnack,
		Protein: 25, Carbs: 15, Fats: 5, Calories: 210, VeggieServings: 0, CookingTime: 3,
		Ingredients:  []string{"Cottage cheese 200g", "Berries", "Cinnamon"},
		Instructions: []string{"Scoop cottage cheese", "Top with berries", "Sprinkle cinnamon"},
	},
	{
		ID: "bf_quick_1", Name: "Quick Protein Toast", Type: MealBreakfast,
		Protein: 25, Carbs: 35, Fats: 12, Calories: 350, VeggieServings: 1, CookingTime: 5,
		Ingredients: []string{"Whole wheat toast 2 slices", "Peanut butter", "Banana", "Chia seeds"},
		Instructions: []string{
			"Toast bread", "Spread peanut butter", "Top with banana", "Sprinkle chia seeds",
		},
	},
	{
		ID: "ln_quick_1", Name: "Tuna Power Salad", Type: MealLunch,
		Protein: 35, Carbs: 20, Fats: 12, Calories: 340, VeggieServings: 3, CookingTime: 8,
		Ingredients: []string{"Canned tuna 200g", "Mixed greens", "Cherry tomatoes", "Cucumber", "Olive oil"},
		Instructions: []string{
			"Drain tuna", "Chop vegetables", "Mix in bowl", "Drizzle oil", "Toss together",
		},
	},
	{
		ID: "dn_slow_1", Name: "Slow-Cooked Chicken Curry", Type: MealDinner,
		Protein: 48, Carbs: 55, Fats: 18, Calories: 590, VeggieServings: 3, CookingTime: 60,
		Ingredients: []string{
			"Chicken thighs 250g", "Curry sauce", "Mixed vegetables", "Basmati rice 80g", "Naan bread",
		},
		Instructions: []string{
			"Marinate chicken", "Slow cook with curry sauce", "Add vegetables halfway", "Cook rice", "Serve with naan",
		},
	},
}
