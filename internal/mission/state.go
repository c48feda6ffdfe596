// Package mission tracks the daily missions of a generated program and keeps the XP economy consistent.
//
// Every change to a [SaveState] goes through [Apply], which returns a new document and leaves its input untouched.
// The [Service] wraps Apply in a whole-document transaction against the store.
package mission

import (
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/myrjola/fitquest/internal/program"
)

const (
	// SaveVersion is the version of the save document format.
	SaveVersion = 5
	// SaveKey identifies the save document in the store.
	SaveKey = "fitquest_save_v5"
)

// ArcadeIntensity controls how loud the interface celebrates.
type ArcadeIntensity string

const (
	ArcadeLow    ArcadeIntensity = "low"
	ArcadeMedium ArcadeIntensity = "medium"
	ArcadeHigh   ArcadeIntensity = "high"
)

// ArcadeIntensities lists the valid intensities.
//
//nolint:gochecknoglobals // read-only option set.
var ArcadeIntensities = []ArcadeIntensity{ArcadeLow, ArcadeMedium, ArcadeHigh}

// Settings are the user adjustable settings.
type Settings struct {
	ArcadeIntensity ArcadeIntensity `json:"arcadeIntensity"`
}

// WeightEntry is one recorded body weight.
type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// DayLog is the runtime record of one calendar day. It exists only for days that have been interacted with.
//
// XPEarned of a mission is non-zero only when the mission is completed. Both are updated together.
type DayLog struct {
	Date             string                      `json:"date"`
	WaterMl          int                         `json:"waterMl"`
	SleepBed         string                      `json:"sleepBed,omitempty"`
	SleepWake        string                      `json:"sleepWake,omitempty"`
	SleepHours       *float64                    `json:"sleepHours,omitempty"`
	Steps            *int                        `json:"steps,omitempty"`
	Weight           *float64                    `json:"weight,omitempty"`
	WorkoutCompleted bool                        `json:"workoutCompleted"`
	MissionCompleted program.MissionValues[bool] `json:"missionCompleted"`
	XPEarned         program.XPTable             `json:"xpEarned"`
}

func newDayLog(date string) DayLog {
	return DayLog{
		Date:             date,
		WaterMl:          0,
		SleepBed:         "",
		SleepWake:        "",
		SleepHours:       nil,
		Steps:            nil,
		Weight:           nil,
		WorkoutCompleted: false,
		MissionCompleted: program.MissionValues[bool]{},
		XPEarned:         program.XPTable{},
	}
}

// SaveState is the aggregate root persisted as one document.
type SaveState struct {
	Version       int               `json:"version"`
	Onboarding    program.Profile   `json:"onboarding"`
	UserPhoto     string            `json:"userPhoto,omitempty"`
	Plan          program.Plan      `json:"plan"`
	LogsByDate    map[string]DayLog `json:"logsByDate"`
	XPTotal       int               `json:"xpTotal"`
	Level         int               `json:"level"`
	WeightHistory []WeightEntry     `json:"weightHistory"`
	Settings      Settings          `json:"settings"`
}

// NewSaveState generates the program for a validated profile and returns a fresh save starting today.
func NewSaveState(p program.Profile, today time.Time, rng *rand.Rand) SaveState {
	plan := program.Generate(p, today, rng)
	return SaveState{
		Version:       SaveVersion,
		Onboarding:    p,
		UserPhoto:     p.Photo,
		Plan:          plan,
		LogsByDate:    make(map[string]DayLog),
		XPTotal:       0,
		Level:         1,
		WeightHistory: []WeightEntry{{Date: plan.StartDate, Weight: p.Weight}},
		Settings:      Settings{ArcadeIntensity: ArcadeMedium},
	}
}

// Clone returns a copy that shares no mutable state with s.
//
// Workouts, recipes and the pointer fields of day logs are never mutated in place, so they are shared.
func (s SaveState) Clone() SaveState {
	c := s
	c.Plan.Days = slices.Clone(s.Plan.Days)
	c.Plan.WorkoutsByID = maps.Clone(s.Plan.WorkoutsByID)
	c.LogsByDate = maps.Clone(s.LogsByDate)
	if c.LogsByDate == nil {
		c.LogsByDate = make(map[string]DayLog)
	}
	c.WeightHistory = slices.Clone(s.WeightHistory)
	return c
}

// Log returns the log of date or an empty log.
func (s SaveState) Log(date string) DayLog {
	if log, ok := s.LogsByDate[date]; ok {
		return log
	}
	return newDayLog(date)
}

// XPTable returns the XP award table of the save's profile.
func (s SaveState) XPTable() program.XPTable {
	return program.ComputeXPValues(s.Onboarding)
}

// StartWeight returns the first recorded weight.
func (s SaveState) StartWeight() float64 {
	if len(s.WeightHistory) == 0 {
		return s.Onboarding.Weight
	}
	return s.WeightHistory[0].Weight
}

// CurrentWeight returns the latest recorded weight.
func (s SaveState) CurrentWeight() float64 {
	if len(s.WeightHistory) == 0 {
		return s.Onboarding.Weight
	}
	return s.WeightHistory[len(s.WeightHistory)-1].Weight
}
