package main

import (
	"net/http"
	"strings"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/program"
)

type setupOptions struct {
	Sexes          []program.Sex
	ActivityLevels []program.ActivityLevel
	Experiences    []program.Experience
	Goals          []program.Goal
	Timelines      []int
	SessionLengths []int
	EquipmentTiers []program.Equipment
	Limitations    []program.Limitation
	CookingTimes   []program.CookingTime
	CoachTones     []program.CoachTone
	Foods          []string
}

type setupTemplateData struct {
	BaseTemplateData
	Profile program.Profile
	// FoodsDislike is the comma separated dislike list as typed.
	FoodsDislike string
	// Errors maps a profile field to the reason it was rejected.
	Errors  map[string]string
	Options setupOptions
}

func newSetupOptions() setupOptions {
	return setupOptions{
		Sexes:          program.Sexes,
		ActivityLevels: program.ActivityLevels,
		Experiences:    program.Experiences,
		Goals:          program.Goals,
		Timelines:      program.Timelines,
		SessionLengths: program.SessionLengths,
		EquipmentTiers: program.EquipmentTiers,
		Limitations:    program.LimitationTypes,
		CookingTimes:   program.CookingTimes,
		CoachTones:     program.CoachTones,
		Foods:          program.FoodOptions,
	}
}

// defaultProfile prefills the onboarding form.
func defaultProfile() program.Profile {
	return program.Profile{
		Age:               30,
		Sex:               program.SexOther,
		Height:            170,
		Weight:            70,
		ActivityLevel:     program.ActivityMedium,
		TypicalSleep:      7,
		Experience:        program.ExperienceBeginner,
		GoalType:          program.GoalGeneralHealth,
		Timeline:          8,
		TrainingDays:      3,
		MinutesPerSession: 45,
		Equipment:         program.EquipmentNone,
		Limitations:       program.Limitations{Type: program.LimitationNone, Details: ""},
		FoodsLike:         nil,
		FoodsDislike:      nil,
		Allergies:         program.Allergies{HasAllergies: false, Details: ""},
		CookingTime:       program.CookingMedium,
		MealsPerDay:       3,
		CoachTone:         program.CoachFriendly,
		Photo:             "",
	}
}

func (app *application) setupGET(w http.ResponseWriter, r *http.Request) {
	data := setupTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Profile:          defaultProfile(),
		FoodsDislike:     "",
		Errors:           nil,
		Options:          newSetupOptions(),
	}
	app.render(w, r, http.StatusOK, "setup", data)
}

// setupPOST generates a new program from the onboarding form. Rule violations re-render the form with 422 while
// values that are not numbers at all are rejected with 400.
func (app *application) setupPOST(w http.ResponseWriter, r *http.Request) {
	profile, err := parseProfileForm(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	_, err = app.missions.Setup(r.Context(), profile)
	var validationErr *program.ValidationError
	if errors.As(err, &validationErr) {
		fieldErrors := make(map[string]string, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fieldErrors[f.Field] = f.Reason
		}
		data := setupTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Profile:          profile,
			FoodsDislike:     r.PostFormValue("foodsDislike"),
			Errors:           fieldErrors,
			Options:          newSetupOptions(),
		}
		app.render(w, r, http.StatusUnprocessableEntity, "setup", data)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.flash(r, "Your program is ready. Let's go!")
	redirect(w, r, "/")
}

func parseProfileForm(r *http.Request) (program.Profile, error) {
	if err := r.ParseForm(); err != nil {
		return program.Profile{}, errors.Wrap(err, "parse form")
	}

	var (
		p    program.Profile
		errs []error
	)
	integer := func(name string) int {
		i, err := formInt(r, name)
		errs = append(errs, err)
		return i
	}
	decimal := func(name string) float64 {
		f, err := formFloat(r, name)
		errs = append(errs, err)
		return f
	}
	text := func(name string) string {
		return strings.TrimSpace(r.PostFormValue(name))
	}

	p.Age = integer("age")
	p.Sex = program.Sex(text("sex"))
	p.Height = decimal("height")
	p.Weight = decimal("weight")
	p.ActivityLevel = program.ActivityLevel(text("activityLevel"))
	p.TypicalSleep = decimal("typicalSleep")
	p.Experience = program.Experience(text("experience"))
	p.GoalType = program.Goal(text("goalType"))
	p.Timeline = integer("timeline")
	p.TrainingDays = integer("trainingDays")
	p.MinutesPerSession = integer("minutesPerSession")
	p.Equipment = program.Equipment(text("equipment"))
	p.Limitations = program.Limitations{
		Type:    program.Limitation(text("limitations")),
		Details: text("limitationDetails"),
	}
	p.FoodsLike = r.PostForm["foodsLike"]
	for _, food := range strings.Split(text("foodsDislike"), ",") {
		if food = strings.TrimSpace(food); food != "" {
			p.FoodsDislike = append(p.FoodsDislike, food)
		}
	}
	p.Allergies = program.Allergies{
		HasAllergies: r.PostFormValue("allergies") == "on",
		Details:      text("allergyDetails"),
	}
	p.CookingTime = program.CookingTime(text("cookingTime"))
	p.MealsPerDay = integer("mealsPerDay")
	p.CoachTone = program.CoachTone(text("coachTone"))

	if err := errors.Join(errs...); err != nil {
		return program.Profile{}, err
	}
	return p, nil
}
