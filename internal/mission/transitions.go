package mission

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/myrjola/fitquest/internal/program"
	"github.com/myrjola/fitquest/internal/ptr"
)

// Reason tells why a transition was declined.
type Reason string

const (
	ReasonNotToday        Reason = "date is not today"
	ReasonAlreadyComplete Reason = "mission already complete"
	ReasonNotComplete     Reason = "mission not complete"
	ReasonNeedsData       Reason = "mission completes by logging its data"
	ReasonUnknownMission  Reason = "unknown mission"
	ReasonInvalidInput    Reason = "invalid input"
	ReasonNoPlanDay       Reason = "date outside program"
)

const (
	// defaultWaterTargetMl applies to dates outside the program.
	defaultWaterTargetMl = 2000

	// maxWaterAdditionMl bounds a single water log.
	maxWaterAdditionMl = 5000

	minWeighInKg = 30
	maxWeighInKg = 300

	clockLayout = "15:04"
)

// Result describes the outcome of a transition.
type Result struct {
	Applied bool
	// Reason is set when the transition was declined.
	Reason Reason
	// XPDelta is the change of the XP total.
	XPDelta int
}

func declined(r Reason) Result {
	return Result{Applied: false, Reason: r, XPDelta: 0}
}

func applied(xpDelta int) Result {
	return Result{Applied: true, Reason: "", XPDelta: xpDelta}
}

// Operation is a transition of the save document. Operations are logged with their parameters.
type Operation interface {
	slog.LogValuer
	apply(s *SaveState, today string) Result
}

// Apply runs op against s on the calendar date today.
//
// The input is never modified. A declined operation returns s itself together with the reason, so callers can
// skip persisting it.
func Apply(s SaveState, today string, op Operation) (SaveState, Result) {
	next := s.Clone()
	res := op.apply(&next, today)
	if !res.Applied {
		return s, res
	}
	next.Level = program.CalculateLevel(next.XPTotal)
	return next, res
}

// complete marks m done on date and awards the XP of the current XP table.
func complete(s *SaveState, date string, m program.Mission) int {
	log := s.Log(date)
	xp := s.XPTable().Get(m)
	log.MissionCompleted.Set(m, true)
	log.XPEarned.Set(m, xp)
	if m == program.MissionWorkout {
		log.WorkoutCompleted = true
	}
	s.LogsByDate[date] = log
	s.XPTotal += xp
	return xp
}

func completed(s *SaveState, date string, m program.Mission) bool {
	return s.Log(date).MissionCompleted.Get(m)
}

// repropagate overwrites the targets of every program day on or after from with targets for weight.
func repropagate(s *SaveState, from string, weight float64) {
	targets := program.ComputeTargets(s.Onboarding, weight)
	for i := range s.Plan.Days {
		if s.Plan.Days[i].Date >= from {
			s.Plan.Days[i].Targets = targets
		}
	}
}

// Complete marks a mission that has no data of its own done. Water, sleep, steps and weigh-in complete through
// [AddWater], [LogSleep], [LogSteps] and [WeighIn].
type Complete struct {
	Date    string
	Mission program.Mission
}

func (op Complete) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "complete"), slog.String("date", op.Date),
		slog.String("mission", string(op.Mission)))
}

func (op Complete) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	switch op.Mission {
	case program.MissionWorkout, program.MissionFood, program.MissionMobility:
	case program.MissionWater, program.MissionSleep, program.MissionSteps, program.MissionWeighIn:
		return declined(ReasonNeedsData)
	default:
		return declined(ReasonUnknownMission)
	}
	if completed(s, op.Date, op.Mission) {
		return declined(ReasonAlreadyComplete)
	}
	return applied(complete(s, op.Date, op.Mission))
}

// Undo reverts a completed mission, returning exactly the XP it earned and clearing the data it recorded.
type Undo struct {
	Date    string
	Mission program.Mission
}

func (op Undo) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "undo"), slog.String("date", op.Date),
		slog.String("mission", string(op.Mission)))
}

func (op Undo) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	if !slices.Contains(program.Missions, op.Mission) {
		return declined(ReasonUnknownMission)
	}
	if !completed(s, op.Date, op.Mission) {
		return declined(ReasonNotComplete)
	}

	log := s.Log(op.Date)
	xp := log.XPEarned.Get(op.Mission)
	s.XPTotal -= xp
	log.XPEarned.Set(op.Mission, 0)
	log.MissionCompleted.Set(op.Mission, false)

	switch op.Mission {
	case program.MissionWorkout:
		log.WorkoutCompleted = false
	case program.MissionWater:
		log.WaterMl = 0
	case program.MissionSleep:
		log.SleepBed, log.SleepWake, log.SleepHours = "", "", nil
	case program.MissionSteps:
		log.Steps = nil
	case program.MissionWeighIn:
		log.Weight = nil
		undoWeighIn(s, op.Date)
	case program.MissionFood, program.MissionMobility:
	}
	s.LogsByDate[op.Date] = log
	return applied(-xp)
}

// undoWeighIn drops the weight recorded on date and restores the targets derived from the previous weight.
func undoWeighIn(s *SaveState, date string) {
	// Only one weigh-in per day is accepted, so the last entry of the day is the one to remove. The starting weight
	// at index 0 is kept even when the program started today.
	for i := len(s.WeightHistory) - 1; i > 0; i-- {
		if s.WeightHistory[i].Date == date {
			s.WeightHistory = slices.Delete(s.WeightHistory, i, i+1)
			break
		}
	}

	weight := s.Onboarding.Weight
	for i, e := range s.WeightHistory {
		if i == 0 || e.Date < date {
			weight = e.Weight
		}
	}
	repropagate(s, date, weight)
}

// AddWater adds drunk water to the day. The water mission completes once the day's target is reached. A single
// addition is at most 5000 ml.
type AddWater struct {
	Date string
	Ml   int
}

func (op AddWater) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "add_water"), slog.String("date", op.Date), slog.Int("ml", op.Ml))
}

func (op AddWater) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	if op.Ml <= 0 || op.Ml > maxWaterAdditionMl {
		return declined(ReasonInvalidInput)
	}

	log := s.Log(op.Date)
	log.WaterMl += op.Ml
	s.LogsByDate[op.Date] = log

	target := defaultWaterTargetMl
	if day, ok := s.Plan.Day(op.Date); ok {
		target = day.Targets.WaterMl
	}
	if log.WaterMl >= target && !log.MissionCompleted.Water {
		return applied(complete(s, op.Date, program.MissionWater))
	}
	return applied(0)
}

// LogSleep records last night's bed and wake times as "HH:MM" and completes the sleep mission.
type LogSleep struct {
	Date string
	Bed  string
	Wake string
}

func (op LogSleep) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "log_sleep"), slog.String("date", op.Date),
		slog.String("bed", op.Bed), slog.String("wake", op.Wake))
}

func (op LogSleep) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	hours, ok := SleepHours(op.Bed, op.Wake)
	if !ok {
		return declined(ReasonInvalidInput)
	}
	if completed(s, op.Date, program.MissionSleep) {
		return declined(ReasonAlreadyComplete)
	}

	log := s.Log(op.Date)
	log.SleepBed, log.SleepWake, log.SleepHours = op.Bed, op.Wake, ptr.Ref(hours)
	s.LogsByDate[op.Date] = log
	return applied(complete(s, op.Date, program.MissionSleep))
}

// SleepHours returns the hours between bed and wake rounded to a tenth. A wake time before the bed time is on the
// next day.
func SleepHours(bed, wake string) (float64, bool) {
	b, err := time.Parse(clockLayout, bed)
	if err != nil {
		return 0, false
	}
	w, err := time.Parse(clockLayout, wake)
	if err != nil {
		return 0, false
	}
	d := w.Sub(b)
	if d < 0 {
		d += 24 * time.Hour
	}
	return math.Round(d.Hours()*10) / 10, true //nolint:mnd // one decimal
}

// LogSteps records the day's step count and completes the steps mission.
type LogSteps struct {
	Date  string
	Steps int
}

func (op LogSteps) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "log_steps"), slog.String("date", op.Date),
		slog.Int("steps", op.Steps))
}

func (op LogSteps) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	if op.Steps < 0 {
		return declined(ReasonInvalidInput)
	}
	if completed(s, op.Date, program.MissionSteps) {
		return declined(ReasonAlreadyComplete)
	}

	log := s.Log(op.Date)
	log.Steps = ptr.Ref(op.Steps)
	s.LogsByDate[op.Date] = log
	return applied(complete(s, op.Date, program.MissionSteps))
}

// WeighIn records the body weight in kilograms. The targets of the day and every later program day are recomputed
// from the new weight.
type WeighIn struct {
	Date   string
	Weight float64
}

func (op WeighIn) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "weigh_in"), slog.String("date", op.Date),
		slog.Float64("weight", op.Weight))
}

func (op WeighIn) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	if op.Weight < minWeighInKg || op.Weight > maxWeighInKg || math.IsNaN(op.Weight) {
		return declined(ReasonInvalidInput)
	}
	if completed(s, op.Date, program.MissionWeighIn) {
		return declined(ReasonAlreadyComplete)
	}

	log := s.Log(op.Date)
	log.Weight = ptr.Ref(op.Weight)
	s.LogsByDate[op.Date] = log
	s.WeightHistory = append(s.WeightHistory, WeightEntry{Date: op.Date, Weight: op.Weight})
	repropagate(s, op.Date, op.Weight)
	return applied(complete(s, op.Date, program.MissionWeighIn))
}

// RerollMeals swaps every meal of the day for another recipe of the same type.
type RerollMeals struct {
	Date string
	Rand *rand.Rand
}

func (op RerollMeals) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "reroll_meals"), slog.String("date", op.Date))
}

func (op RerollMeals) apply(s *SaveState, today string) Result {
	if op.Date != today {
		return declined(ReasonNotToday)
	}
	i := s.Plan.DayIndex(op.Date)
	if i < 0 {
		return declined(ReasonNoPlanDay)
	}
	s.Plan.Days[i].MealIDs = program.Reroll(s.Plan.Days[i].MealIDs, s.Plan.RecipesBank, op.Rand)
	return applied(0)
}

// SetArcadeIntensity updates the arcade intensity setting. It is not bound to a date.
type SetArcadeIntensity struct {
	Intensity ArcadeIntensity
}

func (op SetArcadeIntensity) LogValue() slog.Value {
	return slog.GroupValue(slog.String("op", "set_arcade_intensity"),
		slog.String("intensity", string(op.Intensity)))
}

func (op SetArcadeIntensity) apply(s *SaveState, _ string) Result {
	if !slices.Contains(ArcadeIntensities, op.Intensity) {
		return declined(ReasonInvalidInput)
	}
	s.Settings.ArcadeIntensity = op.Intensity
	return applied(0)
}
