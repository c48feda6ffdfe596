package program

import "time"

// DateLayout is the format of every date string in the save document.
const DateLayout = "2006-01-02"

// ActivityLevel is the self-reported daily activity of the user.
type ActivityLevel string

const (
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// Experience is the training experience tier.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Goal is the primary goal of the program.
type Goal string

const (
	GoalFatLoss       Goal = "fat loss"
	GoalBuildMuscle   Goal = "build muscle"
	GoalStrength      Goal = "strength"
	GoalEndurance     Goal = "endurance"
	GoalGeneralHealth Goal = "general health"
)

// Equipment is the equipment tier available for training.
type Equipment string

const (
	EquipmentNone      Equipment = "none"
	EquipmentDumbbells Equipment = "dumbbells"
	EquipmentHomeGym   Equipment = "home gym"
	EquipmentFullGym   Equipment = "full gym"
)

// Limitation is the injury limitation tag.
type Limitation string

const (
	LimitationNone  Limitation = "none"
	LimitationLower Limitation = "lower"
	LimitationUpper Limitation = "upper"
	LimitationBack  Limitation = "back"
	LimitationOther Limitation = "other"
)

// CookingTime is the cooking-time tolerance band.
type CookingTime string

const (
	CookingLow    CookingTime = "low"
	CookingMedium CookingTime = "medium"
	CookingHigh   CookingTime = "high"
)

// CoachTone selects the voice of the coach briefing.
type CoachTone string

const (
	CoachStrict      CoachTone = "strict"
	CoachFriendly    CoachTone = "friendly"
	CoachCompetitive CoachTone = "competitive"
)

// Sex of the user.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Limitations is the injury limitation with optional free-text detail.
type Limitations struct {
	Type    Limitation `json:"type"`
	Details string     `json:"details,omitempty"`
}

// Allergies is the allergy flag with the comma-separated allergen keywords.
type Allergies struct {
	HasAllergies bool   `json:"hasAllergies"`
	Details      string `json:"details,omitempty"`
}

// Profile is the validated onboarding data. It is never mutated after the program is generated.
type Profile struct {
	Age               int           `json:"age"`
	Sex               Sex           `json:"sex"`
	Height            float64       `json:"height"`
	Weight            float64       `json:"weight"`
	ActivityLevel     ActivityLevel `json:"activityLevel"`
	TypicalSleep      float64       `json:"typicalSleep"`
	Experience        Experience    `json:"experience"`
	GoalType          Goal          `json:"goalType"`
	Timeline          int           `json:"timeline"`
	TrainingDays      int           `json:"trainingDays"`
	MinutesPerSession int           `json:"minutesPerSession"`
	Equipment         Equipment     `json:"equipment"`
	Limitations       Limitations   `json:"limitations"`
	FoodsLike         []string      `json:"foodsLike"`
	FoodsDislike      []string      `json:"foodsDislike"`
	Allergies         Allergies     `json:"allergies"`
	CookingTime       CookingTime   `json:"cookingTime"`
	MealsPerDay       int           `json:"mealsPerDay"`
	CoachTone         CoachTone     `json:"coachTone"`
	Photo             string        `json:"photo,omitempty"`
}

// Targets are the numeric daily targets of a day.
type Targets struct {
	WaterMl         int     `json:"waterMl"`
	SleepHours      float64 `json:"sleepHours"`
	Steps           int     `json:"steps"`
	ProteinG        int     `json:"proteinG"`
	VeggiesServings int     `json:"veggiesServings"`
}

// DayKind tells whether a day is a workout or a rest day.
type DayKind string

const (
	DayWorkout DayKind = "workout"
	DayRest    DayKind = "rest"
)

// Exercise is a prescribed exercise inside a workout.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Sets         int      `json:"sets"`
	Reps         string   `json:"reps"`
	Rest         string   `json:"rest"`
	TimeSec      int      `json:"timeSec,omitempty"`
	MediaURL     string   `json:"mediaUrl"`
	Alternatives []string `json:"alternatives"`
	Notes        string   `json:"notes,omitempty"`
	IsWarmup     bool     `json:"isWarmup,omitempty"`
	IsCooldown   bool     `json:"isCooldown,omitempty"`
}

// Workout is a generated training session. Immutable once generated.
type Workout struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Warmup           []Exercise `json:"warmup"`
	Exercises        []Exercise `json:"exercises"`
	Cooldown         []Exercise `json:"cooldown"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
}

// MealType is the slot a recipe fills.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal is a recipe from the recipe catalog.
type Meal struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           MealType `json:"type"`
	Protein        int      `json:"protein"`
	Carbs          int      `json:"carbs"`
	Fats           int      `json:"fats"`
	Calories       int      `json:"calories"`
	VeggieServings int      `json:"veggieServings"`
	CookingTime    int      `json:"cookingTime"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
}

// DayPlan is one calendar day of the program.
//
// Only Targets (weigh-in repropagation) and MealIDs (reroll) change after generation.
type DayPlan struct {
	Date       string   `json:"date"`
	Type       DayKind  `json:"type"`
	WorkoutID  string   `json:"workoutId,omitempty"`
	MealIDs    []string `json:"mealIds"`
	Targets    Targets  `json:"targets"`
	HasWeighIn bool     `json:"hasWeighIn"`
}

// Plan is the generated multi-week program.
type Plan struct {
	StartDate     string             `json:"startDate"`
	TimelineWeeks int                `json:"timelineWeeks"`
	Days          []DayPlan          `json:"days"`
	WorkoutsByID  map[string]Workout `json:"workoutsById"`
	RecipesBank   []Meal             `json:"recipesBank"`
}

// DayIndex returns the index of date in the plan or -1.
func (p *Plan) DayIndex(date string) int {
	for i := range p.Days {
		if p.Days[i].Date == date {
			return i
		}
	}
	return -1
}

// Day returns the plan day for date.
func (p *Plan) Day(date string) (DayPlan, bool) {
	i := p.DayIndex(date)
	if i < 0 {
		return DayPlan{}, false
	}
	return p.Days[i], true
}

// Meal looks up a recipe of the program's recipe bank.
func (p *Plan) Meal(id string) (Meal, bool) {
	return findMeal(p.RecipesBank, id)
}

// FormatDate formats t as a save document date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns date shifted by n calendar days. Malformed dates are returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
