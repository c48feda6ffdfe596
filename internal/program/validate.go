package program

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/myrjola/fitquest/internal/errors"
)

// ErrInvalidProfile is wrapped by every [ValidationError].
var ErrInvalidProfile = errors.NewSentinel("invalid profile")

// Accepted profile ranges.
const (
	MinAge          = 13
	MaxAge          = 100
	MinHeight       = 100
	MaxHeight       = 250
	MinWeight       = 30
	MaxWeight       = 300
	MinSleep        = 3
	MaxSleep        = 14
	MinTrainingDays = 2
	MaxTrainingDays = 6
	MinMealsPerDay  = 2
	MaxMealsPerDay  = 5
	MinLikedFoods   = 5
)

//nolint:gochecknoglobals // read-only option sets.
var (
	Timelines       = []int{4, 8, 12}
	SessionLengths  = []int{20, 30, 45, 60}
	Sexes           = []Sex{SexMale, SexFemale, SexOther}
	ActivityLevels  = []ActivityLevel{ActivityLow, ActivityMedium, ActivityHigh}
	Experiences     = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	Goals           = []Goal{GoalFatLoss, GoalBuildMuscle, GoalStrength, GoalEndurance, GoalGeneralHealth}
	EquipmentTiers  = []Equipment{EquipmentNone, EquipmentDumbbells, EquipmentHomeGym, EquipmentFullGym}
	LimitationTypes = []Limitation{LimitationNone, LimitationLower, LimitationUpper, LimitationBack, LimitationOther}
	CookingTimes    = []CookingTime{CookingLow, CookingMedium, CookingHigh}
	CoachTones      = []CoachTone{CoachStrict, CoachFriendly, CoachCompetitive}
	FoodOptions     = []string{
		"chicken", "beef", "fish", "turkey", "eggs", "tofu", "rice", "pasta", "potatoes", "oats", "vegetables",
		"fruits", "nuts", "dairy", "beans",
	}
)

// FieldError describes one violated profile rule.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every violated rule of a profile.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidProfile
}

// Reason returns the reason the field was rejected or the empty string.
func (e *ValidationError) Reason(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Reason
		}
	}
	return ""
}

// Validate checks the profile against the accepted ranges. It returns a *ValidationError or nil.
func Validate(p Profile) error {
	var fields []FieldError
	add := func(field, format string, args ...any) {
		fields = append(fields, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}
	between := func(field string, v, lo, hi float64) {
		if math.IsNaN(v) || v < lo || v > hi {
			add(field, "must be between %g and %g", lo, hi)
		}
	}

	between("age", float64(p.Age), MinAge, MaxAge)
	between("height", p.Height, MinHeight, MaxHeight)
	between("weight", p.Weight, MinWeight, MaxWeight)
	between("typicalSleep", p.TypicalSleep, MinSleep, MaxSleep)
	between("trainingDays", float64(p.TrainingDays), MinTrainingDays, MaxTrainingDays)
	between("mealsPerDay", float64(p.MealsPerDay), MinMealsPerDay, MaxMealsPerDay)
	if !slices.Contains(Timelines, p.Timeline) {
		add("timeline", "must be one of %v", Timelines)
	}
	if !slices.Contains(SessionLengths, p.MinutesPerSession) {
		add("minutesPerSession", "must be one of %v", SessionLengths)
	}

	oneOf(&fields, "sex", p.Sex, Sexes)
	oneOf(&fields, "activityLevel", p.ActivityLevel, ActivityLevels)
	oneOf(&fields, "experience", p.Experience, Experiences)
	oneOf(&fields, "goalType", p.GoalType, Goals)
	oneOf(&fields, "equipment", p.Equipment, EquipmentTiers)
	oneOf(&fields, "limitations", p.Limitations.Type, LimitationTypes)
	oneOf(&fields, "cookingTime", p.CookingTime, CookingTimes)
	oneOf(&fields, "coachTone", p.CoachTone, CoachTones)

	if p.Limitations.Type == LimitationOther && strings.TrimSpace(p.Limitations.Details) == "" {
		add("limitations", "details are required")
	}
	if len(p.FoodsLike) < MinLikedFoods {
		add("foodsLike", "pick at least %d foods", MinLikedFoods)
	}
	if p.Allergies.HasAllergies && strings.TrimSpace(p.Allergies.Details) == "" {
		add("allergies", "details are required")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func oneOf[T ~string](fields *[]FieldError, field string, v T, allowed []T) {
	if !slices.Contains(allowed, v) {
		*fields = append(*fields, FieldError{Field: field, Reason: fmt.Sprintf("%q is not a valid option", v)})
	}
}
