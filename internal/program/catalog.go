package program

import (
	"net/url"
	"slices"
	"strings"
)

// Pattern is a movement pattern used to match exercises against injury limitations.
type Pattern string

const (
	PatternHinge Pattern = "hinge"
	PatternJump  Pattern = "jump"
	PatternLunge Pattern = "lunge"
	PatternPress Pattern = "press"
	PatternPush  Pattern = "push"
	PatternPull  Pattern = "pull"
)

// avoids reports whether the limitation rules out the pattern.
func (l Limitation) avoids(p Pattern) bool {
	switch l {
	case LimitationBack:
		return p == PatternHinge
	case LimitationLower:
		return p == PatternJump || p == PatternLunge
	case LimitationUpper:
		return p == PatternPress || p == PatternPush
	case LimitationNone, LimitationOther:
		return false
	default:
		return false
	}
}

func (l Limitation) allows(patterns []Pattern) bool {
	for _, p := range patterns {
		if l.avoids(p) {
			return false
		}
	}
	return true
}

// Movement is a catalog entry for a main exercise.
type Movement struct {
	ID           string
	Name         string
	Patterns     []Pattern
	Alternatives []string
}

func (m Movement) has(p Pattern) bool {
	return slices.Contains(m.Patterns, p)
}

// Pool groups movements by body region.
type Pool struct {
	Upper    []Movement
	Lower    []Movement
	FullBody []Movement
}

const defaultMediaURL = "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop"

//nolint:gochecknoglobals // read-only catalog.
var exerciseMedia = map[string]string{
	"Jumping Jacks":     "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=400&h=300&fit=crop",
	"Arm Circles":       "https://images.unsplash.com/photo-1545205597-3d9d02c29597?w=400&h=300&fit=crop",
	"Leg Swings":        "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop",
	"High Knees":        "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop",
	"Push-ups":          "https://images.unsplash.com/photo-1571019613576-2b22c76fd955?w=400&h=300&fit=crop",
	"Squats":            "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=400&h=300&fit=crop",
	"Lunges":            "https://images.unsplash.com/photo-1611672585731-fa10603fb9e0?w=400&h=300&fit=crop",
	"Plank":             "https://images.unsplash.com/photo-1571019613576-2b22c76fd955?w=400&h=300&fit=crop",
	"Mountain Climbers": "https://images.unsplash.com/photo-1571019613576-2b22c76fd955?w=400&h=300&fit=crop",
	"Burpees":           "https://images.unsplash.com/photo-1518611012118-696072aa579a?w=400&h=300&fit=crop",
	"Pull-ups":          "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Dips":              "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Glute Bridges":     "https://images.unsplash.com/photo-1598971639058-fab3c3109a00?w=400&h=300&fit=crop",
	"Dumbbell Press":    "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Dumbbell Rows":     "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Goblet Squats":     "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=400&h=300&fit=crop",
	"Dumbbell Curls":    "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Shoulder Press":    "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Dumbbell Lunges":   "https://images.unsplash.com/photo-1611672585731-fa10603fb9e0?w=400&h=300&fit=crop",
	"Bench Press":       "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Barbell Squats":    "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=400&h=300&fit=crop",
	"Deadlifts":         "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Lat Pulldowns":     "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Leg Press":         "https://images.unsplash.com/photo-1574680096145-d05b474e2155?w=400&h=300&fit=crop",
	"Cable Rows":        "https://images.unsplash.com/photo-1541534741688-6078c6bfb5c5?w=400&h=300&fit=crop",
	"Cat-Cow Stretch":   "https://images.unsplash.com/photo-1599058917212-d750089bc07e?w=400&h=300&fit=crop",
	"Hamstring Stretch": "https://images.unsplash.com/photo-1599058917212-d750089bc07e?w=400&h=300&fit=crop",
	"Quad Stretch":      "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?w=400&h=300&fit=crop",
	"Shoulder Stretch":  "https://images.unsplash.com/photo-1545205597-3d9d02c29597?w=400&h=300&fit=crop",
}

// MediaURL returns the demo image of an exercise, falling back to a generic image.
func MediaURL(name string) string {
	if u, ok := exerciseMedia[name]; ok {
		return u
	}
	return defaultMediaURL + "&q=80&text=" + url.QueryEscape(name)
}

// ExerciseID derives the stable id of an exercise from its name.
func ExerciseID(name string) string {
	id := strings.ToLower(name)
	id = strings.NewReplacer(" ", "_", "-", "_", "&", "and").Replace(id)
	return id
}

func movement(name string, alternatives []string, patterns ...Pattern) Movement {
	return Movement{
		ID:           ExerciseID(name),
		Name:         name,
		Patterns:     patterns,
		Alternatives: alternatives,
	}
}

// Main lift catalog. Pattern tags are the structured form of the name-based rules the catalog was designed with:
// Burpees carry no jump tag and Leg Press carries the press tag.
//
//nolint:gochecknoglobals // read-only catalog.
var (
	bodyweightPool = Pool{
		Upper: []Movement{
			movement("Push-ups", []string{"Knee Push-ups", "Incline Push-ups", "Diamond Push-ups"}, PatternPush),
			movement("Dips", []string{"Bench Dips", "Chair Dips"}),
			movement("Pull-ups", []string{"Inverted Rows", "Assisted Pull-ups"}, PatternPull),
			movement("Plank", []string{"Knee Plank", "Side Plank"}),
		},
		Lower: []Movement{
			movement("Squats", []string{"Box Squats", "Jump Squats"}),
			movement("Lunges", []string{"Reverse Lunges", "Walking Lunges"}, PatternLunge),
			movement("Glute Bridges", []string{"Single-Leg Bridges", "Hip Thrusts"}),
		},
		FullBody: []Movement{
			movement("Burpees", []string{"Half Burpees", "Burpee Variations"}),
			movement("Mountain Climbers", []string{"Plank Jacks", "Running Planks"}),
		},
	}

	dumbbellPool = Pool{
		Upper: []Movement{
			movement("Dumbbell Press", []string{"Floor Press", "Incline DB Press"}, PatternPress),
			movement("Dumbbell Rows", []string{"Single-Arm Rows", "Bent-Over Rows"}, PatternPull),
			movement("Shoulder Press", []string{"Arnold Press", "Seated Press"}, PatternPress),
			movement("Dumbbell Curls", []string{"Hammer Curls", "Concentration Curls"}, PatternPull),
		},
		Lower: []Movement{
			movement("Goblet Squats", []string{"DB Squats", "Sumo Squats"}),
			movement("Dumbbell Lunges", []string{"Bulgarian Split Squats", "Walking Lunges"}, PatternLunge),
		},
		FullBody: nil,
	}

	gymPool = Pool{
		Upper: []Movement{
			movement("Bench Press", []string{"Incline Press", "Close-Grip Bench"}, PatternPress),
			movement("Lat Pulldowns", []string{"Pull-ups", "Wide-Grip Pulldowns"}, PatternPull),
			movement("Cable Rows", []string{"Barbell Rows", "T-Bar Rows"}, PatternPull),
		},
		Lower: []Movement{
			movement("Barbell Squats", []string{"Front Squats", "Safety Bar Squats"}),
			movement("Deadlifts", []string{"Romanian Deadlifts", "Trap Bar Deadlifts"}, PatternHinge),
			movement("Leg Press", []string{"Hack Squats", "Bulgarian Split Squats"}, PatternPress),
		},
		FullBody: nil,
	}
)

// alternativePatterns tags the named alternatives that appear in the catalog. Untagged names have no pattern.
//
//nolint:gochecknoglobals // read-only catalog.
var alternativePatterns = map[string][]Pattern{
	"Knee Push-ups":          {PatternPush},
	"Incline Push-ups":       {PatternPush},
	"Diamond Push-ups":       {PatternPush},
	"Inverted Rows":          {PatternPull},
	"Assisted Pull-ups":      {PatternPull},
	"Pull-ups":               {PatternPull},
	"Jump Squats":            {PatternJump},
	"Reverse Lunges":         {PatternLunge},
	"Walking Lunges":         {PatternLunge},
	"Bulgarian Split Squats": {PatternLunge},
	"Plank Jacks":            {PatternJump},
	"Floor Press":            {PatternPress},
	"Incline DB Press":       {PatternPress},
	"Arnold Press":           {PatternPress},
	"Seated Press":           {PatternPress},
	"Incline Press":          {PatternPress},
	"Close-Grip Bench":       {PatternPress},
	"Single-Arm Rows":        {PatternPull},
	"Bent-Over Rows":         {PatternPull, PatternHinge},
	"Barbell Rows":           {PatternPull, PatternHinge},
	"T-Bar Rows":             {PatternPull, PatternHinge},
	"Hammer Curls":           {PatternPull},
	"Concentration Curls":    {PatternPull},
	"Wide-Grip Pulldowns":    {PatternPull},
	"Romanian Deadlifts":     {PatternHinge},
	"Trap Bar Deadlifts":     {PatternHinge},
}

// SafeAlternatives returns the alternatives of m that the limitation allows, in catalog order.
func SafeAlternatives(m Movement, l Limitation) []string {
	safe := make([]string, 0, len(m.Alternatives))
	for _, name := range m.Alternatives {
		if l.allows(alternativePatterns[name]) {
			safe = append(safe, name)
		}
	}
	return safe
}

// poolFor returns the movements available for an equipment tier. Richer tiers replace the upper and lower
// movements of the bodyweight pool and keep its full body movements.
func poolFor(e Equipment) Pool {
	switch e {
	case EquipmentDumbbells:
		return Pool{Upper: dumbbellPool.Upper, Lower: dumbbellPool.Lower, FullBody: bodyweightPool.FullBody}
	case EquipmentHomeGym, EquipmentFullGym:
		return Pool{Upper: gymPool.Upper, Lower: gymPool.Lower, FullBody: bodyweightPool.FullBody}
	case EquipmentNone:
		return bodyweightPool
	default:
		return bodyweightPool
	}
}

func prescribed(name string, sets int, reps, rest string, alternatives ...string) Exercise {
	return Exercise{
		ID:           ExerciseID(name),
		Name:         name,
		Sets:         sets,
		Reps:         reps,
		Rest:         rest,
		TimeSec:      0,
		MediaURL:     MediaURL(name),
		Alternatives: alternatives,
		Notes:        "",
		IsWarmup:     false,
		IsCooldown:   false,
	}
}

//nolint:gochecknoglobals,mnd // read-only catalog.
var (
	warmups = map[Experience][]Exercise{
		ExperienceBeginner: {
			prescribed("Jumping Jacks", 1, "20", "30s", "High Knees", "Butt Kicks"),
			prescribed("Arm Circles", 1, "10 each direction", "20s", "Shoulder Rolls"),
			prescribed("Leg Swings", 1, "10 each leg", "20s", "Walking Lunges"),
		},
		ExperienceIntermediate: {
			prescribed("Jumping Jacks", 2, "30", "20s", "High Knees"),
			prescribed("High Knees", 2, "20", "20s", "Butt Kicks"),
			prescribed("Arm Circles", 1, "15 each direction", "15s", "Band Pull-Aparts"),
		},
		ExperienceAdvanced: {
			prescribed("Jumping Jacks", 2, "40", "15s", "Jump Rope"),
			prescribed("High Knees", 2, "30", "15s", "Butt Kicks"),
			prescribed("Burpees", 1, "10", "30s", "Mountain Climbers"),
		},
	}

	cooldowns = []Exercise{
		prescribed("Cat-Cow Stretch", 1, "10", "0s", "Child Pose"),
		prescribed("Hamstring Stretch", 1, "30s each leg", "0s", "Seated Forward Fold"),
		prescribed("Quad Stretch", 1, "30s each leg", "0s", "Standing Quad Stretch"),
		prescribed("Shoulder Stretch", 1, "30s each arm", "0s", "Chest Opener"),
	}
)

// Warmup returns a copy of the warm-up routine for an experience tier.
func Warmup(e Experience) []Exercise {
	list, ok := warmups[e]
	if !ok {
		list = warmups[ExperienceBeginner]
	}
	out := make([]Exercise, len(list))
	for i, ex := range list {
		ex.Alternatives = slices.Clone(ex.Alternatives)
		ex.IsWarmup = true
		out[i] = ex
	}
	return out
}

// Cooldown returns a copy of the cool-down routine.
func Cooldown() []Exercise {
	out := make([]Exercise, len(cooldowns))
	for i, ex := range cooldowns {
		ex.Alternatives = slices.Clone(ex.Alternatives)
		ex.IsCooldown = true
		out[i] = ex
	}
	return out
}

//nolint:gochecknoglobals // read-only catalog.
var restDayQuests = []string{
	"20-min Recovery Walk",
	"15-min Gentle Yoga Flow",
	"10-min Foam Rolling Session",
	"25-min Nature Walk",
	"Active Rest: Light Bike Ride",
	"Mobility & Breathing Practice",
	"Explore Quest: Walk Somewhere New",
}

// RestDayQuest returns the recovery quest of a rest day.
func RestDayQuest(weekNumber, dayInWeek int) string {
	n := len(restDayQuests)
	i := ((weekNumber*7+dayInWeek)%n + n) % n //nolint:mnd // days per week
	return restDayQuests[i]
}
