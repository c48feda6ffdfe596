package mission_test

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
	"github.com/myrjola/fitquest/internal/sqlite"
	"github.com/myrjola/fitquest/internal/testhelpers"
)

func newTestService(t *testing.T, now time.Time) (*mission.Service, *sqlite.Database) {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	clock := func() time.Time { return now }
	return mission.NewService(db, logger, clock, newRand(3)), db
}

func TestService_lifecycle(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t, time.Date(2026, 3, 2, 21, 45, 0, 0, time.UTC))

	if _, err := svc.Load(ctx); !errors.Is(err, mission.ErrNoActiveState) {
		t.Fatalf("Load before setup = %v, want ErrNoActiveState", err)
	}

	created, err := svc.Setup(ctx, testProfile())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	loaded, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(created, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("stored save mismatch (-want +got):\n%s", diff)
	}
	if svc.Today() != firstDay || loaded.Plan.StartDate != firstDay {
		t.Errorf("got today %s and start %s, want %s", svc.Today(), loaded.Plan.StartDate, firstDay)
	}

	res, err := svc.Apply(ctx, mission.Complete{Date: firstDay, Mission: program.MissionWorkout})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if diff := cmp.Diff(mission.Result{Applied: true, Reason: "", XPDelta: 120}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	res, err = svc.Apply(ctx, mission.Complete{Date: firstDay, Mission: program.MissionWorkout})
	if err != nil {
		t.Fatalf("Apply twice: %v", err)
	}
	if res.Applied || res.Reason != mission.ReasonAlreadyComplete {
		t.Errorf("second completion: got %+v", res)
	}

	dashboard, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dashboard.XPTotal != 120 || dashboard.Level != 2 || !dashboard.Missions[0].Completed {
		t.Errorf("got dashboard xp %d level %d workout %+v", dashboard.XPTotal, dashboard.Level, dashboard.Missions[0])
	}

	if err = svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err = svc.Dashboard(ctx); !errors.Is(err, mission.ErrNoActiveState) {
		t.Errorf("Dashboard after reset = %v, want ErrNoActiveState", err)
	}
	if _, err = svc.Apply(ctx, mission.AddWater{Date: firstDay, Ml: 250}); !errors.Is(err, mission.ErrNoActiveState) {
		t.Errorf("Apply after reset = %v, want ErrNoActiveState", err)
	}
}

func TestService_Setup_invalidProfile(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	p := testProfile()
	p.Age = 7
	p.MealsPerDay = 9

	_, err := svc.Setup(t.Context(), p)
	var validationErr *program.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Setup = %v, want a validation error", err)
	}
	if validationErr.Reason("age") == "" || validationErr.Reason("mealsPerDay") == "" {
		t.Errorf("got fields %+v, want age and mealsPerDay", validationErr.Fields)
	}
	if _, err = svc.Load(t.Context()); !errors.Is(err, mission.ErrNoActiveState) {
		t.Errorf("an invalid profile was stored: %v", err)
	}
}

func TestService_unreadableSave(t *testing.T) {
	tests := []struct {
		name     string
		version  int
		document string
	}{
		{name: "malformed json", version: mission.SaveVersion, document: "{not json"},
		{name: "old version", version: 4, document: `{"version":4}`},
		{name: "version mismatch inside document", version: mission.SaveVersion, document: `{"version":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			svc, db := newTestService(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
			if _, err := db.ReadWrite.ExecContext(ctx,
				"INSERT INTO save_states (key, version, document) VALUES (?, ?, ?)",
				mission.SaveKey, tt.version, tt.document); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if _, err := svc.Load(ctx); !errors.Is(err, mission.ErrNoActiveState) {
				t.Errorf("Load = %v, want ErrNoActiveState", err)
			}
		})
	}
}

func TestService_ExportAndSnapshot(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	if _, err := svc.Setup(ctx, testProfile()); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	document, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var exported struct {
		Version int               `json:"version"`
		XPTotal int               `json:"xpTotal"`
		Plan    map[string]any    `json:"plan"`
		Logs    map[string]any    `json:"logsByDate"`
		Weights []json.RawMessage `json:"weightHistory"`
	}
	if err = json.Unmarshal(document, &exported); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if exported.Version != 5 || exported.Plan["startDate"] != firstDay || len(exported.Weights) != 1 {
		t.Errorf("got export %+v", exported)
	}

	path := filepath.Join(t.TempDir(), "backup.sqlite3")
	if err = svc.Snapshot(ctx, path); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err = svc.Snapshot(ctx, path); !errors.Is(err, sqlite.ErrSnapshotExists) {
		t.Errorf("second Snapshot = %v, want ErrSnapshotExists", err)
	}
}

func TestService_Workout(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	state, err := svc.Setup(ctx, testProfile())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	id := state.Plan.Days[0].WorkoutID
	w, ok, err := svc.Workout(ctx, id)
	if err != nil || !ok || w.ID != id {
		t.Errorf("Workout(%q) = %v, %v, %v", id, w.ID, ok, err)
	}
	if _, ok, _ = svc.Workout(ctx, "workout_w9_d99"); ok {
		t.Error("found a workout that is not in the program")
	}
}

func TestParseMission(t *testing.T) {
	if m, err := mission.ParseMission("weighin"); err != nil || m != program.MissionWeighIn {
		t.Errorf("ParseMission(weighin) = %q, %v", m, err)
	}
	if _, err := mission.ParseMission("yoga"); !errors.Is(err, mission.ErrUnknownMission) {
		t.Errorf("ParseMission(yoga) = %v, want ErrUnknownMission", err)
	}
}

func TestService_RerollMeals(t *testing.T) {
	ctx := t.Context()
	svc, _ := newTestService(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	if _, err := svc.Setup(ctx, testProfile()); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	res, err := svc.RerollMeals(ctx, firstDay)
	if err != nil {
		t.Fatalf("RerollMeals: %v", err)
	}
	if !res.Applied || res.XPDelta != 0 {
		t.Errorf("got %+v, want an applied reroll without XP", res)
	}

	res, err = svc.RerollMeals(ctx, "2026-03-03")
	if err != nil {
		t.Fatalf("RerollMeals tomorrow: %v", err)
	}
	if res.Applied || res.Reason != mission.ReasonNotToday {
		t.Errorf("got %+v, want declined with ReasonNotToday", res)
	}
}
