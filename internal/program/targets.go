package program

import "math"

// Mission is one of the seven daily trackable activities.
type Mission string

const (
	MissionWorkout  Mission = "workout"
	MissionWater    Mission = "water"
	MissionFood     Mission = "food"
	MissionSleep    Mission = "sleep"
	MissionSteps    Mission = "steps"
	MissionMobility Mission = "mobility"
	MissionWeighIn  Mission = "weighin"
)

// Missions lists every mission in display order.
//
//nolint:gochecknoglobals // read-only lookup table.
var Missions = []Mission{
	MissionWorkout, MissionWater, MissionFood, MissionSleep, MissionSteps, MissionMobility, MissionWeighIn,
}

// ParseMission returns the mission named s.
func ParseMission(s string) (Mission, bool) {
	for _, m := range Missions {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// MissionValues holds one value per mission. The field names form the save document contract.
type MissionValues[T any] struct {
	Workout  T `json:"workout"`
	Water    T `json:"water"`
	Food     T `json:"food"`
	Sleep    T `json:"sleep"`
	Steps    T `json:"steps"`
	Mobility T `json:"mobility"`
	WeighIn  T `json:"weighin"`
}

func (v *MissionValues[T]) field(m Mission) *T {
	switch m {
	case MissionWorkout:
		return &v.Workout
	case MissionWater:
		return &v.Water
	case MissionFood:
		return &v.Food
	case MissionSleep:
		return &v.Sleep
	case MissionSteps:
		return &v.Steps
	case MissionMobility:
		return &v.Mobility
	case MissionWeighIn:
		return &v.WeighIn
	default:
		return nil
	}
}

// Get returns the value for m or the zero value for an unknown mission.
func (v MissionValues[T]) Get(m Mission) T {
	if f := v.field(m); f != nil {
		return *f
	}
	var zero T
	return zero
}

// Set stores val for m. Unknown missions are ignored.
func (v *MissionValues[T]) Set(m Mission, val T) {
	if f := v.field(m); f != nil {
		*f = val
	}
}

// XPTable is the XP award per mission.
type XPTable = MissionValues[int]

// Target and XP constants.
const (
	waterMlPerKg = 35

	// Base XP awards before goal multipliers.
	baseXPWorkout  = 100
	baseXPWater    = 30
	baseXPFood     = 40
	baseXPSleep    = 35
	baseXPSteps    = 25
	baseXPMobility = 20
	baseXPWeighIn  = 50

	xpPerLevelUnit = 100
)

// ComputeTargets maps a profile and the current body weight to daily targets.
func ComputeTargets(p Profile, currentWeight float64) Targets {
	var waterMultiplier, stepsMultiplier float64
	switch p.ActivityLevel {
	case ActivityLow:
		waterMultiplier, stepsMultiplier = 1.0, 0.8
	case ActivityHigh:
		waterMultiplier, stepsMultiplier = 1.3, 1.2 //nolint:mnd // activity multipliers
	case ActivityMedium:
		waterMultiplier, stepsMultiplier = 1.15, 1.0 //nolint:mnd // activity multipliers
	default:
		waterMultiplier, stepsMultiplier = 1.15, 1.0 //nolint:mnd // unknown activity is treated as medium
	}

	sleepHours := 7.0
	switch {
	case p.Age < 25: //nolint:mnd // age band
		sleepHours = 8
	case p.Age < 50: //nolint:mnd // age band
		sleepHours = 7.5
	}

	baseSteps := 6000.0
	switch {
	case p.Age < 40: //nolint:mnd // age band
		baseSteps = 8000
	case p.Age < 60: //nolint:mnd // age band
		baseSteps = 7000
	}

	proteinMultiplier := 1.8
	switch p.GoalType {
	case GoalBuildMuscle:
		proteinMultiplier = 2.2
	case GoalFatLoss, GoalStrength:
		proteinMultiplier = 2.0
	case GoalEndurance, GoalGeneralHealth:
	}

	veggies := 4
	if p.GoalType == GoalFatLoss {
		veggies = 5
	}

	return Targets{
		WaterMl:         round(currentWeight * waterMlPerKg * waterMultiplier),
		SleepHours:      sleepHours,
		Steps:           round(baseSteps * stepsMultiplier),
		ProteinG:        round(currentWeight * proteinMultiplier),
		VeggiesServings: veggies,
	}
}

// ComputeXPValues returns the XP award table for the profile's goal.
func ComputeXPValues(p Profile) XPTable {
	workout, nutrition, recovery := 1.0, 1.0, 1.0
	switch p.GoalType {
	case GoalBuildMuscle:
		workout, nutrition, recovery = 1.2, 1.3, 1.1
	case GoalFatLoss:
		workout, nutrition, recovery = 1.1, 1.4, 1.0
	case GoalStrength:
		workout, nutrition, recovery = 1.3, 1.1, 1.2
	case GoalEndurance:
		workout, nutrition, recovery = 1.2, 1.1, 1.1
	case GoalGeneralHealth:
	}

	return XPTable{
		Workout:  round(baseXPWorkout * workout),
		Water:    round(baseXPWater * recovery),
		Food:     round(baseXPFood * nutrition),
		Sleep:    round(baseXPSleep * recovery),
		Steps:    baseXPSteps,
		Mobility: round(baseXPMobility * recovery),
		WeighIn:  baseXPWeighIn,
	}
}

// CalculateLevel returns the level for an XP total. The minimum level is 1.
func CalculateLevel(xpTotal int) int {
	if xpTotal <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(xpTotal)/xpPerLevelUnit))) + 1
}

// XPForNextLevel returns the XP total at which level is left behind.
func XPForNextLevel(level int) int {
	return level * level * xpPerLevelUnit
}

func round(f float64) int {
	return int(math.Round(f))
}
