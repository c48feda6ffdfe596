package program_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitquest/internal/program"
)

func TestComputeTargets(t *testing.T) {
	tests := []struct {
		name   string
		age    int
		level  program.ActivityLevel
		goal   program.Goal
		weight float64
		want   program.Targets
	}{
		{
			name:   "medium activity adult building muscle",
			age:    30,
			level:  program.ActivityMedium,
			goal:   program.GoalBuildMuscle,
			weight: 70,
			want:   program.Targets{WaterMl: 2818, SleepHours: 7.5, Steps: 8000, ProteinG: 154, VeggiesServings: 4},
		},
		{
			name:   "low activity young adult losing fat",
			age:    20,
			level:  program.ActivityLow,
			goal:   program.GoalFatLoss,
			weight: 80,
			want:   program.Targets{WaterMl: 2800, SleepHours: 8, Steps: 6400, ProteinG: 160, VeggiesServings: 5},
		},
		{
			name:   "high activity senior",
			age:    65,
			level:  program.ActivityHigh,
			goal:   program.GoalGeneralHealth,
			weight: 60,
			want:   program.Targets{WaterMl: 2730, SleepHours: 7, Steps: 7200, ProteinG: 108, VeggiesServings: 4},
		},
		{
			name:   "strength in the middle age band",
			age:    45,
			level:  program.ActivityMedium,
			goal:   program.GoalStrength,
			weight: 100,
			want:   program.Targets{WaterMl: 4025, SleepHours: 7.5, Steps: 7000, ProteinG: 200, VeggiesServings: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			p.Age = tt.age
			p.ActivityLevel = tt.level
			p.GoalType = tt.goal
			got := program.ComputeTargets(p, tt.weight)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputeTargets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeXPValues(t *testing.T) {
	tests := []struct {
		goal program.Goal
		want program.XPTable
	}{
		{
			goal: program.GoalBuildMuscle,
			want: program.XPTable{Workout: 120, Water: 33, Food: 52, Sleep: 39, Steps: 25, Mobility: 22, WeighIn: 50},
		},
		{
			goal: program.GoalFatLoss,
			want: program.XPTable{Workout: 110, Water: 30, Food: 56, Sleep: 35, Steps: 25, Mobility: 20, WeighIn: 50},
		},
		{
			goal: program.GoalStrength,
			want: program.XPTable{Workout: 130, Water: 36, Food: 44, Sleep: 42, Steps: 25, Mobility: 24, WeighIn: 50},
		},
		{
			goal: program.GoalEndurance,
			want: program.XPTable{Workout: 120, Water: 33, Food: 44, Sleep: 39, Steps: 25, Mobility: 22, WeighIn: 50},
		},
		{
			goal: program.GoalGeneralHealth,
			want: program.XPTable{Workout: 100, Water: 30, Food: 40, Sleep: 35, Steps: 25, Mobility: 20, WeighIn: 50},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			p := validProfile()
			p.GoalType = tt.goal
			if diff := cmp.Diff(tt.want, program.ComputeXPValues(p)); diff != "" {
				t.Errorf("ComputeXPValues() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{xp: -50, want: 1},
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 399, want: 2},
		{xp: 400, want: 3},
		{xp: 10000, want: 11},
	}
	for _, tt := range tests {
		if got := program.CalculateLevel(tt.xp); got != tt.want {
			t.Errorf("CalculateLevel(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}

	t.Run("monotonic", func(t *testing.T) {
		prev := program.CalculateLevel(0)
		for xp := 1; xp <= 20000; xp++ {
			level := program.CalculateLevel(xp)
			if level < prev {
				t.Fatalf("CalculateLevel(%d) = %d, less than %d", xp, level, prev)
			}
			prev = level
		}
	})

	t.Run("next level threshold", func(t *testing.T) {
		for level := 1; level <= 20; level++ {
			threshold := program.XPForNextLevel(level)
			if got := program.CalculateLevel(threshold - 1); got != level {
				t.Errorf("CalculateLevel(%d) = %d, want %d", threshold-1, got, level)
			}
			if got := program.CalculateLevel(threshold); got != level+1 {
				t.Errorf("CalculateLevel(%d) = %d, want %d", threshold, got, level+1)
			}
		}
	})
}

func TestMissionValues(t *testing.T) {
	var v program.MissionValues[bool]
	for _, m := range program.Missions {
		v.Set(m, true)
		if !v.Get(m) {
			t.Errorf("Get(%s) = false after Set", m)
		}
	}
	v.Set("unknown", true)
	if v.Get("unknown") {
		t.Error("Get(unknown) = true, want false")
	}

	if _, ok := program.ParseMission("weighin"); !ok {
		t.Error("ParseMission(weighin) not ok")
	}
	if _, ok := program.ParseMission("nap"); ok {
		t.Error("ParseMission(nap) ok")
	}
}
