package mission_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
)

const (
	firstDay   = "2026-03-02"
	weighInDay = "2026-03-15"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1)) //nolint:gosec // deterministic test randomness
}

func testProfile() program.Profile {
	return program.Profile{
		Age:               30,
		Sex:               program.SexFemale,
		Height:            170,
		Weight:            70,
		ActivityLevel:     program.ActivityMedium,
		TypicalSleep:      7.5,
		Experience:        program.ExperienceIntermediate,
		GoalType:          program.GoalBuildMuscle,
		Timeline:          4,
		TrainingDays:      3,
		MinutesPerSession: 45,
		Equipment:         program.EquipmentDumbbells,
		Limitations:       program.Limitations{Type: program.LimitationNone, Details: ""},
		FoodsLike:         []string{"chicken", "rice", "eggs", "oats", "fish"},
		FoodsDislike:      nil,
		Allergies:         program.Allergies{HasAllergies: false, Details: ""},
		CookingTime:       program.CookingHigh,
		MealsPerDay:       4,
		CoachTone:         program.CoachFriendly,
		Photo:             "",
	}
}

// newState returns a fresh save whose program starts on firstDay.
func newState() mission.SaveState {
	return mission.NewSaveState(testProfile(), time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), newRand(1))
}

// mustApply fails the test unless op is applied.
func mustApply(t *testing.T, s mission.SaveState, today string, op mission.Operation) (mission.SaveState, int) {
	t.Helper()
	next, res := mission.Apply(s, today, op)
	if !res.Applied {
		t.Fatalf("Apply(%v) declined: %s", op.LogValue(), res.Reason)
	}
	return next, res.XPDelta
}

func TestNewSaveState(t *testing.T) {
	s := newState()
	if s.Version != mission.SaveVersion || s.XPTotal != 0 || s.Level != 1 {
		t.Errorf("got version %d, xp %d, level %d, want %d, 0, 1", s.Version, s.XPTotal, s.Level, mission.SaveVersion)
	}
	want := []mission.WeightEntry{{Date: firstDay, Weight: 70}}
	if diff := cmp.Diff(want, s.WeightHistory); diff != "" {
		t.Errorf("WeightHistory mismatch (-want +got):\n%s", diff)
	}
	if got := len(s.Plan.Days); got != 28 {
		t.Errorf("got %d program days, want 28", got)
	}
	if s.Settings.ArcadeIntensity != mission.ArcadeMedium {
		t.Errorf("got arcade intensity %q, want medium", s.Settings.ArcadeIntensity)
	}
}

func TestApply_completeUndoRoundTrip(t *testing.T) {
	wantXP := map[program.Mission]int{
		program.MissionWorkout:  120,
		program.MissionFood:     52,
		program.MissionMobility: 22,
	}
	for m, xp := range wantXP {
		t.Run(string(m), func(t *testing.T) {
			before := newState()
			before.XPTotal = 40

			done, delta := mustApply(t, before, firstDay, mission.Complete{Date: firstDay, Mission: m})
			if delta != xp || done.XPTotal != 40+xp {
				t.Errorf("complete: got delta %d total %d, want %d and %d", delta, done.XPTotal, xp, 40+xp)
			}
			log := done.LogsByDate[firstDay]
			if !log.MissionCompleted.Get(m) || log.XPEarned.Get(m) != xp {
				t.Errorf("complete: log %+v does not record %s", log, m)
			}
			if m == program.MissionWorkout && !log.WorkoutCompleted {
				t.Error("complete: workoutCompleted not set")
			}

			undone, delta := mustApply(t, done, firstDay, mission.Undo{Date: firstDay, Mission: m})
			if delta != -xp || undone.XPTotal != 40 {
				t.Errorf("undo: got delta %d total %d, want %d and 40", delta, undone.XPTotal, -xp)
			}
			log = undone.LogsByDate[firstDay]
			if log.MissionCompleted.Get(m) || log.XPEarned.Get(m) != 0 || log.WorkoutCompleted {
				t.Errorf("undo: log %+v still records %s", log, m)
			}

			// The input documents are never modified.
			if before.XPTotal != 40 || len(before.LogsByDate) != 0 {
				t.Errorf("input state was mutated: xp %d, %d logs", before.XPTotal, len(before.LogsByDate))
			}
			if !done.LogsByDate[firstDay].MissionCompleted.Get(m) {
				t.Error("undo mutated the completed state")
			}
		})
	}
}

func TestApply_declined(t *testing.T) {
	completed := newState()
	completed, _ = mustApply(t, completed, firstDay, mission.Complete{Date: firstDay, Mission: program.MissionFood})

	tests := []struct {
		name  string
		state mission.SaveState
		today string
		op    mission.Operation
		want  mission.Reason
	}{
		{
			name:  "complete a past day",
			state: newState(),
			today: "2026-03-03",
			op:    mission.Complete{Date: firstDay, Mission: program.MissionWorkout},
			want:  mission.ReasonNotToday,
		},
		{
			name:  "complete a future day",
			state: newState(),
			today: firstDay,
			op:    mission.Complete{Date: "2026-03-03", Mission: program.MissionWorkout},
			want:  mission.ReasonNotToday,
		},
		{
			name:  "complete twice",
			state: completed,
			today: firstDay,
			op:    mission.Complete{Date: firstDay, Mission: program.MissionFood},
			want:  mission.ReasonAlreadyComplete,
		},
		{
			name:  "complete water without water",
			state: newState(),
			today: firstDay,
			op:    mission.Complete{Date: firstDay, Mission: program.MissionWater},
			want:  mission.ReasonNeedsData,
		},
		{
			name:  "complete weigh-in without weight",
			state: newState(),
			today: firstDay,
			op:    mission.Complete{Date: firstDay, Mission: program.MissionWeighIn},
			want:  mission.ReasonNeedsData,
		},
		{
			name:  "complete unknown mission",
			state: newState(),
			today: firstDay,
			op:    mission.Complete{Date: firstDay, Mission: "yoga"},
			want:  mission.ReasonUnknownMission,
		},
		{
			name:  "undo incomplete mission",
			state: newState(),
			today: firstDay,
			op:    mission.Undo{Date: firstDay, Mission: program.MissionWorkout},
			want:  mission.ReasonNotComplete,
		},
		{
			name:  "undo a past day",
			state: completed,
			today: "2026-03-03",
			op:    mission.Undo{Date: firstDay, Mission: program.MissionFood},
			want:  mission.ReasonNotToday,
		},
		{
			name:  "add no water",
			state: newState(),
			today: firstDay,
			op:    mission.AddWater{Date: firstDay, Ml: 0},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "add more water than one log allows",
			state: newState(),
			today: firstDay,
			op:    mission.AddWater{Date: firstDay, Ml: 5001},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "add water that would overflow the log",
			state: newState(),
			today: firstDay,
			op:    mission.AddWater{Date: firstDay, Ml: math.MaxInt},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "negative steps",
			state: newState(),
			today: firstDay,
			op:    mission.LogSteps{Date: firstDay, Steps: -1},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "malformed bed time",
			state: newState(),
			today: firstDay,
			op:    mission.LogSleep{Date: firstDay, Bed: "25:00", Wake: "07:00"},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "weight out of range",
			state: newState(),
			today: firstDay,
			op:    mission.WeighIn{Date: firstDay, Weight: 12},
			want:  mission.ReasonInvalidInput,
		},
		{
			name:  "reroll outside the program",
			state: newState(),
			today: "2027-01-01",
			op:    mission.RerollMeals{Date: "2027-01-01", Rand: newRand(2)},
			want:  mission.ReasonNoPlanDay,
		},
		{
			name:  "unknown arcade intensity",
			state: newState(),
			today: firstDay,
			op:    mission.SetArcadeIntensity{Intensity: "extreme"},
			want:  mission.ReasonInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := mission.Apply(tt.state, tt.today, tt.op)
			want := mission.Result{Applied: false, Reason: tt.want, XPDelta: 0}
			if diff := cmp.Diff(want, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.state, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("declined transition changed the state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_waterAutoCompletion(t *testing.T) {
	s := newState()
	target := s.Plan.Days[0].Targets.WaterMl
	if target != 2818 {
		t.Fatalf("got water target %d, want 2818", target)
	}

	var (
		delta    int
		awarded  int
		complete int
	)
	for range 3 {
		s, delta = mustApply(t, s, firstDay, mission.AddWater{Date: firstDay, Ml: 1000})
		awarded += delta
		if s.LogsByDate[firstDay].MissionCompleted.Water {
			complete++
		}
	}
	if awarded != 33 || s.XPTotal != 33 {
		t.Errorf("got %d XP awarded and total %d, want 33", awarded, s.XPTotal)
	}
	if complete != 1 {
		t.Errorf("water completed after %d of 3 additions, want only the last", complete)
	}

	s, delta = mustApply(t, s, firstDay, mission.AddWater{Date: firstDay, Ml: 500})
	if delta != 0 || s.XPTotal != 33 || s.LogsByDate[firstDay].WaterMl != 3500 {
		t.Errorf("extra water: got delta %d, total %d, water %d, want 0, 33, 3500",
			delta, s.XPTotal, s.LogsByDate[firstDay].WaterMl)
	}

	s, _ = mustApply(t, s, firstDay, mission.Undo{Date: firstDay, Mission: program.MissionWater})
	if got := s.LogsByDate[firstDay]; got.WaterMl != 0 || got.MissionCompleted.Water || s.XPTotal != 0 {
		t.Errorf("undo water: got water %d, completed %v, total %d", got.WaterMl, got.MissionCompleted.Water, s.XPTotal)
	}
}

func TestApply_waterOutsideProgram(t *testing.T) {
	s := newState()
	const day = "2027-01-01"
	s, delta := mustApply(t, s, day, mission.AddWater{Date: day, Ml: 1999})
	if delta != 0 {
		t.Errorf("got %d XP below the default target", delta)
	}
	if _, delta = mustApply(t, s, day, mission.AddWater{Date: day, Ml: 1}); delta != 33 {
		t.Errorf("got %d XP at the default target, want 33", delta)
	}
}

func TestApply_weighInRepropagation(t *testing.T) {
	before := newState()
	original := before.Plan.Days[0].Targets
	want := program.ComputeTargets(testProfile(), 75)

	after, delta := mustApply(t, before, weighInDay, mission.WeighIn{Date: weighInDay, Weight: 75})
	if delta != 50 {
		t.Errorf("got %d XP, want 50", delta)
	}
	for i, day := range after.Plan.Days {
		wantTargets := original
		if day.Date >= weighInDay {
			wantTargets = want
		}
		if diff := cmp.Diff(wantTargets, day.Targets); diff != "" {
			t.Errorf("day %d (%s) targets mismatch (-want +got):\n%s", i, day.Date, diff)
		}
		if diff := cmp.Diff(original, before.Plan.Days[i].Targets); diff != "" {
			t.Errorf("input day %d targets were mutated:\n%s", i, diff)
		}
	}
	wantHistory := []mission.WeightEntry{{Date: firstDay, Weight: 70}, {Date: weighInDay, Weight: 75}}
	if diff := cmp.Diff(wantHistory, after.WeightHistory); diff != "" {
		t.Errorf("WeightHistory mismatch (-want +got):\n%s", diff)
	}
	if got := after.LogsByDate[weighInDay].Weight; got == nil || *got != 75 {
		t.Errorf("got logged weight %v, want 75", got)
	}

	undone, delta := mustApply(t, after, weighInDay, mission.Undo{Date: weighInDay, Mission: program.MissionWeighIn})
	if delta != -50 || undone.XPTotal != 0 {
		t.Errorf("undo: got delta %d total %d", delta, undone.XPTotal)
	}
	if diff := cmp.Diff(before.Plan.Days, undone.Plan.Days); diff != "" {
		t.Errorf("undo did not restore the targets (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before.WeightHistory, undone.WeightHistory); diff != "" {
		t.Errorf("undo did not restore the weight history (-want +got):\n%s", diff)
	}
	if undone.LogsByDate[weighInDay].Weight != nil {
		t.Error("undo kept the logged weight")
	}

	if _, res := mission.Apply(after, weighInDay, mission.WeighIn{Date: weighInDay, Weight: 74}); res.Applied {
		t.Error("second weigh-in on the same day was applied")
	}
}

func TestApply_undoWeighInOnStartDay(t *testing.T) {
	s := newState()
	s, _ = mustApply(t, s, firstDay, mission.WeighIn{Date: firstDay, Weight: 71})
	s, _ = mustApply(t, s, firstDay, mission.Undo{Date: firstDay, Mission: program.MissionWeighIn})

	want := []mission.WeightEntry{{Date: firstDay, Weight: 70}}
	if diff := cmp.Diff(want, s.WeightHistory); diff != "" {
		t.Errorf("WeightHistory mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(program.ComputeTargets(testProfile(), 70), s.Plan.Days[0].Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_sleepAndSteps(t *testing.T) {
	s := newState()
	s, delta := mustApply(t, s, firstDay, mission.LogSleep{Date: firstDay, Bed: "22:15", Wake: "06:30"})
	if delta != 39 {
		t.Errorf("sleep: got %d XP, want 39", delta)
	}
	log := s.LogsByDate[firstDay]
	if log.SleepHours == nil || *log.SleepHours != 8.3 || log.SleepBed != "22:15" || log.SleepWake != "06:30" {
		t.Errorf("sleep: got log %+v", log)
	}

	s, delta = mustApply(t, s, firstDay, mission.LogSteps{Date: firstDay, Steps: 9000})
	if delta != 25 || s.LogsByDate[firstDay].Steps == nil || *s.LogsByDate[firstDay].Steps != 9000 {
		t.Errorf("steps: got delta %d, log %+v", delta, s.LogsByDate[firstDay])
	}
	if _, res := mission.Apply(s, firstDay, mission.LogSteps{Date: firstDay, Steps: 100}); res.Applied {
		t.Error("steps logged twice")
	}

	s, _ = mustApply(t, s, firstDay, mission.Undo{Date: firstDay, Mission: program.MissionSleep})
	s, _ = mustApply(t, s, firstDay, mission.Undo{Date: firstDay, Mission: program.MissionSteps})
	log = s.LogsByDate[firstDay]
	if log.SleepHours != nil || log.SleepBed != "" || log.SleepWake != "" || log.Steps != nil || s.XPTotal != 0 {
		t.Errorf("undo: got log %+v and total %d", log, s.XPTotal)
	}
}

func TestSleepHours(t *testing.T) {
	tests := []struct {
		bed, wake string
		want      float64
		ok        bool
	}{
		{bed: "23:00", wake: "07:00", want: 8, ok: true},
		{bed: "22:15", wake: "06:30", want: 8.3, ok: true},
		{bed: "01:00", wake: "06:20", want: 5.3, ok: true},
		{bed: "07:00", wake: "07:00", want: 0, ok: true},
		{bed: "23:00", wake: "7am", want: 0, ok: false},
	}
	for _, tt := range tests {
		got, ok := mission.SleepHours(tt.bed, tt.wake)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SleepHours(%q, %q) = %v, %v, want %v, %v", tt.bed, tt.wake, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApply_rerollMeals(t *testing.T) {
	before := newState()
	oldMeals := slices.Clone(before.Plan.Days[0].MealIDs)

	after, delta := mustApply(t, before, firstDay, mission.RerollMeals{Date: firstDay, Rand: newRand(7)})
	if delta != 0 || after.XPTotal != 0 {
		t.Errorf("reroll changed XP: delta %d total %d", delta, after.XPTotal)
	}

	newMeals := after.Plan.Days[0].MealIDs
	if len(newMeals) != len(oldMeals) {
		t.Fatalf("got %d meals, want %d", len(newMeals), len(oldMeals))
	}
	for i := range newMeals {
		was, _ := after.Plan.Meal(oldMeals[i])
		is, _ := after.Plan.Meal(newMeals[i])
		if was.Type != is.Type {
			t.Errorf("slot %d changed type from %s to %s", i, was.Type, is.Type)
		}
	}
	if diff := cmp.Diff(oldMeals, before.Plan.Days[0].MealIDs); diff != "" {
		t.Errorf("input meals were mutated:\n%s", diff)
	}
	if diff := cmp.Diff(before.Plan.Days[1:], after.Plan.Days[1:]); diff != "" {
		t.Errorf("reroll changed other days (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before.Plan.Days[0].Targets, after.Plan.Days[0].Targets); diff != "" {
		t.Errorf("reroll changed targets:\n%s", diff)
	}
}

func TestApply_level(t *testing.T) {
	s := newState()
	s.XPTotal = 390
	s.Level = program.CalculateLevel(s.XPTotal)

	s, _ = mustApply(t, s, firstDay, mission.Complete{Date: firstDay, Mission: program.MissionWorkout})
	if s.XPTotal != 510 || s.Level != 3 {
		t.Errorf("got total %d level %d, want 510 and 3", s.XPTotal, s.Level)
	}
	s, _ = mustApply(t, s, firstDay, mission.Undo{Date: firstDay, Mission: program.MissionWorkout})
	if s.XPTotal != 390 || s.Level != 2 {
		t.Errorf("got total %d level %d, want 390 and 2", s.XPTotal, s.Level)
	}
}

func TestApply_setArcadeIntensity(t *testing.T) {
	s, _ := mustApply(t, newState(), "2030-01-01", mission.SetArcadeIntensity{Intensity: mission.ArcadeHigh})
	if s.Settings.ArcadeIntensity != mission.ArcadeHigh {
		t.Errorf("got %q, want high", s.Settings.ArcadeIntensity)
	}
}
