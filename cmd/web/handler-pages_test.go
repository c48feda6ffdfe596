package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/myrjola/fitquest/internal/mission"
)

type exportedSave struct {
	Version int `json:"version"`
	Plan    struct {
		Days []struct {
			Date      string `json:"date"`
			WorkoutID string `json:"workoutId"`
		} `json:"days"`
		WorkoutsByID map[string]struct {
			Name      string            `json:"name"`
			Warmup    []json.RawMessage `json:"warmup"`
			Exercises []json.RawMessage `json:"exercises"`
			Cooldown  []json.RawMessage `json:"cooldown"`
		} `json:"workoutsById"`
	} `json:"plan"`
}

func Test_application_pages(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()
	today := todayOf(t, setUpProgram(t, client))

	var save exportedSave
	t.Run("Export the save document", func(t *testing.T) {
		resp, err := client.Get(ctx, "/api/save")
		if err != nil {
			t.Fatalf("Failed to export save: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Disposition"); !strings.Contains(got, "fitquest_save_v5.json") {
			t.Errorf("Expected a save file download, got %q", got)
		}
		if err = json.NewDecoder(resp.Body).Decode(&save); err != nil {
			t.Fatalf("Failed to decode save: %v", err)
		}
		if save.Version != 5 {
			t.Errorf("Expected save version 5, got %d", save.Version)
		}
		if len(save.Plan.Days) != 28 {
			t.Errorf("Expected a 4 week program, got %d days", len(save.Plan.Days))
		}
		if save.Plan.Days[0].Date != today {
			t.Errorf("Expected the program to start today %s, got %s", today, save.Plan.Days[0].Date)
		}

		stored, err := server.SaveDocument(ctx, mission.SaveKey)
		if err != nil {
			t.Fatalf("Failed to read stored save: %v", err)
		}
		var storedSave exportedSave
		if err = json.Unmarshal([]byte(stored), &storedSave); err != nil {
			t.Fatalf("Failed to decode stored save: %v", err)
		}
		if len(storedSave.Plan.Days) != len(save.Plan.Days) {
			t.Errorf("Expected the export to match the stored save, got %d and %d days",
				len(save.Plan.Days), len(storedSave.Plan.Days))
		}
	})

	t.Run("Workout page", func(t *testing.T) {
		if len(save.Plan.Days) == 0 {
			t.Skip("no exported save")
		}
		id := save.Plan.Days[0].WorkoutID
		workout := save.Plan.WorkoutsByID[id]
		doc, err := client.GetDoc(ctx, "/workouts/"+id)
		if err != nil {
			t.Fatalf("Failed to get workout: %v", err)
		}
		if got := strings.TrimSpace(doc.Find("h1").Text()); got != workout.Name {
			t.Errorf("Expected heading %q, got %q", workout.Name, got)
		}
		sections := []struct {
			selector string
			want     int
		}{
			{".warmup li.exercise", len(workout.Warmup)},
			{".main li.exercise", len(workout.Exercises)},
			{".cooldown li.exercise", len(workout.Cooldown)},
		}
		for _, s := range sections {
			if got := doc.Find(s.selector).Length(); got != s.want || got == 0 {
				t.Errorf("Expected %d exercises in %s, got %d", s.want, s.selector, got)
			}
		}

		resp, err := client.Get(ctx, "/workouts/w_nope")
		if err != nil {
			t.Fatalf("Failed to get unknown workout: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
		}
	})

	t.Run("Progress page", func(t *testing.T) {
		if _, err := client.PostForm(ctx, "/days/"+today+"/missions/workout/complete", nil); err != nil {
			t.Fatalf("Failed to complete workout: %v", err)
		}
		doc, err := client.GetDoc(ctx, "/progress")
		if err != nil {
			t.Fatalf("Failed to get progress: %v", err)
		}
		if got := doc.Find("[data-streak]").AttrOr("data-streak", ""); got != "1" {
			t.Errorf("Expected a streak of 1, got %q", got)
		}
		// The 110 XP fat-loss workout crosses the 100 XP threshold of level 2.
		if got := doc.Find("[data-level]").AttrOr("data-level", ""); got != "2" {
			t.Errorf("Expected level 2, got %q", got)
		}
		if got := doc.Find("table.xp-by-mission tr").Length(); got != 7 {
			t.Errorf("Expected a row per mission, got %d", got)
		}
		if text := doc.Find(`tr[data-mission="workout"] td`).Text(); text == "0 XP" {
			t.Errorf("Expected workout XP to be counted, got %q", text)
		}
	})

	t.Run("Shopping list", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/shopping-list")
		if err != nil {
			t.Fatalf("Failed to get shopping list: %v", err)
		}
		if doc.Find("section.shopping-category").Length() == 0 {
			t.Error("Expected at least one shopping category")
		}
		if doc.Find("li.shopping-item").Length() == 0 {
			t.Error("Expected shopping items")
		}
	})

	t.Run("Settings", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/settings")
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if got := doc.Find("select#arcadeIntensity option[selected]").AttrOr("value", ""); got != "medium" {
			t.Errorf("Expected default intensity medium, got %q", got)
		}

		if _, err = client.PostForm(ctx, "/settings", url.Values{"arcadeIntensity": {"high"}}); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		doc, err = client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}
		if doc.Find("section.hero.arcade-high").Length() != 1 {
			t.Error("Expected the dashboard to use the high arcade intensity")
		}

		resp, err := client.Post(ctx, "/settings", url.Values{"arcadeIntensity": {"ludicrous"}})
		if err != nil {
			t.Fatalf("Failed to post settings: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		doc, err := client.PostForm(ctx, "/settings/reset", nil)
		if err != nil {
			t.Fatalf("Failed to reset: %v", err)
		}
		if doc.Url.Path != "/setup" {
			t.Errorf("Expected redirect to /setup, got %s", doc.Url.Path)
		}
		resp, err := client.Get(ctx, "/api/save")
		if err != nil {
			t.Fatalf("Failed to export save: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status %d after reset, got %d", http.StatusNotFound, resp.StatusCode)
		}
		if _, err = server.SaveDocument(ctx, mission.SaveKey); err == nil {
			t.Error("Expected the stored save to be deleted")
		}
	})
}

func Test_application_unreadableSave(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()
	setUpProgram(t, client)

	if err := server.OverwriteSave(ctx, mission.SaveKey, `{"version":`); err != nil {
		t.Fatalf("Failed to corrupt save: %v", err)
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get dashboard: %v", err)
	}
	if doc.Url.Path != "/setup" {
		t.Errorf("Expected an unreadable save to start onboarding, got %s", doc.Url.Path)
	}
}

func Test_application_dayPage(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()
	dashboard := setUpProgram(t, client)
	tomorrow := dashboard.Find(".day-nav a").AttrOr("href", "")

	doc, err := client.GetDoc(ctx, tomorrow)
	if err != nil {
		t.Fatalf("Failed to get day page: %v", err)
	}
	if got := doc.Find("h1").AttrOr("data-date", ""); "/days/"+got != tomorrow {
		t.Errorf("Expected day page for %s, got %s", tomorrow, got)
	}
	if got := strings.TrimSpace(doc.Find("h1").Text()); got != "Week 1, day 2" {
		t.Errorf("Expected %q, got %q", "Week 1, day 2", got)
	}
	if doc.Find(`a[rel="prev"]`).Length() != 1 || doc.Find(`a[rel="next"]`).Length() != 1 {
		t.Error("Expected links to the neighbouring days")
	}

	resp, err := client.Get(ctx, "/days/1999-01-01")
	if err != nil {
		t.Fatalf("Failed to get day outside the program: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
