package mission

import (
	"math"

	"github.com/myrjola/fitquest/internal/program"
)

const (
	maxStreakDays  = 100
	shoppingDays   = 7
	daysPerWeek    = 7
	percent        = 100
	weightDecimals = 10
	recentWeighIns = 5
)

// MissionStatus is one row of the day's mission list.
type MissionStatus struct {
	Mission   program.Mission
	Completed bool
	// XP is the earned XP of a completed mission and the award on offer otherwise.
	XP int
}

// DayView is everything shown about one calendar day.
type DayView struct {
	Date  string
	Today string
	// Editable is true only for today. Other days are read-only.
	Editable  bool
	InProgram bool
	// Week is the 1-based program week of the day and Day the 1-based day inside it. Both are zero outside the
	// program.
	Week      int
	Day       int
	Plan      program.DayPlan
	Log       DayLog
	Workout   *program.Workout
	RestQuest string
	Meals     []program.Meal
	Missions  []MissionStatus
	// WaterTargetMl is the target the water mission completes at.
	WaterTargetMl int
	// PrevDate and NextDate are the neighbouring program days or empty at the program edges.
	PrevDate string
	NextDate string
}

// ViewDay returns the view of date as seen on today.
func ViewDay(s SaveState, date, today string) DayView {
	v := DayView{
		Date:          date,
		Today:         today,
		Editable:      date == today,
		InProgram:     false,
		Week:          0,
		Day:           0,
		Plan:          program.DayPlan{},
		Log:           s.Log(date),
		Workout:       nil,
		RestQuest:     "",
		Meals:         nil,
		Missions:      nil,
		WaterTargetMl: defaultWaterTargetMl,
		PrevDate:      "",
		NextDate:      "",
	}

	i := s.Plan.DayIndex(date)
	if i >= 0 {
		day := s.Plan.Days[i]
		v.InProgram = true
		v.Week = i/daysPerWeek + 1
		v.Day = i%daysPerWeek + 1
		v.Plan = day
		v.WaterTargetMl = day.Targets.WaterMl
		if w, ok := s.Plan.WorkoutsByID[day.WorkoutID]; ok && day.Type == program.DayWorkout {
			v.Workout = &w
		} else {
			v.RestQuest = program.RestDayQuest(i/daysPerWeek, i%daysPerWeek)
		}
		for _, id := range day.MealIDs {
			if m, ok := s.Plan.Meal(id); ok {
				v.Meals = append(v.Meals, m)
			}
		}
		if i > 0 {
			v.PrevDate = s.Plan.Days[i-1].Date
		}
		if i < len(s.Plan.Days)-1 {
			v.NextDate = s.Plan.Days[i+1].Date
		}
	}

	xp := s.XPTable()
	for _, m := range program.Missions {
		done := v.Log.MissionCompleted.Get(m)
		// The weigh-in is offered only on weigh-in days but stays listed once recorded.
		if m == program.MissionWeighIn && !v.Plan.HasWeighIn && !done {
			continue
		}
		status := MissionStatus{Mission: m, Completed: done, XP: xp.Get(m)}
		if done {
			status.XP = v.Log.XPEarned.Get(m)
		}
		v.Missions = append(v.Missions, status)
	}
	return v
}

// Dashboard is the landing view of today.
type Dashboard struct {
	DayView
	Profile  program.Profile
	Settings Settings
	XPTotal  int
	Level    int
	// LevelXP is the XP gained inside the current level and LevelSpan the XP the level spans.
	LevelXP         int
	LevelSpan       int
	ProgressPercent int
	NextLevelXP     int
	StartWeight     float64
	CurrentWeight   float64
	WeightChange    float64
}

// ViewDashboard returns the dashboard of today.
func ViewDashboard(s SaveState, today string) Dashboard {
	level := program.CalculateLevel(s.XPTotal)
	floor := 0
	if level > 1 {
		floor = program.XPForNextLevel(level - 1)
	}
	next := program.XPForNextLevel(level)
	span := next - floor
	gained := max(0, s.XPTotal-floor)

	return Dashboard{
		DayView:         ViewDay(s, today, today),
		Profile:         s.Onboarding,
		Settings:        s.Settings,
		XPTotal:         s.XPTotal,
		Level:           level,
		LevelXP:         gained,
		LevelSpan:       span,
		ProgressPercent: min(percent, gained*percent/span),
		NextLevelXP:     next,
		StartWeight:     s.StartWeight(),
		CurrentWeight:   s.CurrentWeight(),
		WeightChange:    roundWeight(s.CurrentWeight() - s.StartWeight()),
	}
}

// Progress summarises the whole program.
type Progress struct {
	XPTotal           int
	Level             int
	Streak            int
	CompletedWorkouts int
	TotalDays         int
	AdherencePercent  int
	StartWeight       float64
	CurrentWeight     float64
	WeightChange      float64
	// RecentWeighIns lists the latest weight entries newest first.
	RecentWeighIns []WeightEntry
	// XPByMission sums the earned XP of each mission over every day.
	XPByMission program.XPTable
}

// ViewProgress returns the progress view as seen on today.
func ViewProgress(s SaveState, today string) Progress {
	p := Progress{
		XPTotal:           s.XPTotal,
		Level:             program.CalculateLevel(s.XPTotal),
		Streak:            Streak(s, today),
		CompletedWorkouts: 0,
		TotalDays:         len(s.Plan.Days),
		AdherencePercent:  0,
		StartWeight:       s.StartWeight(),
		CurrentWeight:     s.CurrentWeight(),
		WeightChange:      roundWeight(s.CurrentWeight() - s.StartWeight()),
		RecentWeighIns:    nil,
		XPByMission:       program.XPTable{},
	}

	for _, log := range s.LogsByDate {
		if workoutDone(log) {
			p.CompletedWorkouts++
		}
		for _, m := range program.Missions {
			p.XPByMission.Set(m, p.XPByMission.Get(m)+log.XPEarned.Get(m))
		}
	}
	if p.TotalDays > 0 {
		p.AdherencePercent = int(math.Round(float64(p.CompletedWorkouts) / float64(p.TotalDays) * percent))
	}

	for i := len(s.WeightHistory) - 1; i >= 0 && len(p.RecentWeighIns) < recentWeighIns; i-- {
		p.RecentWeighIns = append(p.RecentWeighIns, s.WeightHistory[i])
	}
	return p
}

// Streak counts the consecutive days ending today with a completed workout.
func Streak(s SaveState, today string) int {
	streak := 0
	for i := range maxStreakDays {
		log, ok := s.LogsByDate[program.AddDays(today, -i)]
		if !ok || !workoutDone(log) {
			break
		}
		streak++
	}
	return streak
}

// ShoppingList returns the ingredients of the meals planned for the week starting today.
func ShoppingList(s SaveState, today string) []program.ShoppingCategory {
	return program.ShoppingList(s.Plan, today, shoppingDays)
}

func workoutDone(log DayLog) bool {
	return log.WorkoutCompleted || log.MissionCompleted.Workout
}

func roundWeight(kg float64) float64 {
	return math.Round(kg*weightDecimals) / weightDecimals
}
