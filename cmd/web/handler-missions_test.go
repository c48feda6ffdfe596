package main

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/myrjola/fitquest/internal/e2etest"
)

func Test_application_missions(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()
	today := todayOf(t, setUpProgram(t, client))
	dayURL := "/days/" + today

	t.Run("Complete and undo a mission", func(t *testing.T) {
		doc, err := client.PostForm(ctx, dayURL+"/missions/food/complete", nil)
		if err != nil {
			t.Fatalf("Failed to complete mission: %v", err)
		}
		if doc.Url.Path != "/" {
			t.Errorf("Expected redirect to the dashboard, got %s", doc.Url.Path)
		}
		if flash := doc.Find(".flash").Text(); !strings.HasPrefix(strings.TrimSpace(flash), "+") {
			t.Errorf("Expected XP award flash, got %q", flash)
		}
		if got := e2etest.MissionCompleted(doc, "food"); got != "true" {
			t.Errorf("Expected food mission completed, got %q", got)
		}
		if doc.Find(`form[action="`+dayURL+`/missions/food/undo"]`).Length() != 1 {
			t.Error("Expected an undo form for the completed mission")
		}

		doc, err = client.PostForm(ctx, dayURL+"/missions/food/complete", nil)
		if err != nil {
			t.Fatalf("Failed to complete mission again: %v", err)
		}
		if flash := doc.Find(".flash").Text(); !strings.Contains(flash, "Nothing changed") {
			t.Errorf("Expected a declined transition, got %q", flash)
		}

		doc, err = client.PostForm(ctx, dayURL+"/missions/food/undo", nil)
		if err != nil {
			t.Fatalf("Failed to undo mission: %v", err)
		}
		if flash := doc.Find(".flash").Text(); !strings.HasPrefix(strings.TrimSpace(flash), "-") {
			t.Errorf("Expected XP removal flash, got %q", flash)
		}
		if got := e2etest.MissionCompleted(doc, "food"); got != "false" {
			t.Errorf("Expected food mission open again, got %q", got)
		}
		if got := e2etest.XPTotal(doc); got != "0" {
			t.Errorf("Expected XP back at 0, got %q", got)
		}
	})

	t.Run("Log water through the form", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}
		doc, err = client.SubmitForm(ctx, doc, dayURL+"/water", map[string]string{"Water (ml)": "500"})
		if err != nil {
			t.Fatalf("Failed to submit water form: %v", err)
		}
		if got := doc.Find("dd[data-water]").AttrOr("data-water", ""); got != "500" {
			t.Errorf("Expected 500 ml logged, got %q", got)
		}
	})

	t.Run("Log sleep and steps", func(t *testing.T) {
		doc, err := client.PostForm(ctx, dayURL+"/sleep", url.Values{"bed": {"23:00"}, "wake": {"07:30"}})
		if err != nil {
			t.Fatalf("Failed to log sleep: %v", err)
		}
		if !strings.Contains(doc.Find(".day-log").Text(), "8.5 h") {
			t.Errorf("Expected 8.5 hours of sleep in the log, got %q", doc.Find(".day-log").Text())
		}

		doc, err = client.PostForm(ctx, dayURL+"/steps", url.Values{"steps": {"12000"}})
		if err != nil {
			t.Fatalf("Failed to log steps: %v", err)
		}
		if !strings.Contains(doc.Find(".day-log").Text(), "12000") {
			t.Errorf("Expected steps in the log, got %q", doc.Find(".day-log").Text())
		}
	})

	t.Run("Weigh in", func(t *testing.T) {
		doc, err := client.PostForm(ctx, dayURL+"/weighin", url.Values{"weight": {"69,5"}})
		if err != nil {
			t.Fatalf("Failed to weigh in: %v", err)
		}
		if got := e2etest.MissionCompleted(doc, "weighin"); got != "true" {
			t.Errorf("Expected weigh-in listed as completed, got %q", got)
		}
		if !strings.Contains(doc.Find(".weight").Text(), "69.5 kg") {
			t.Errorf("Expected current weight 69.5 kg, got %q", doc.Find(".weight").Text())
		}
	})

	t.Run("Reroll meals", func(t *testing.T) {
		doc, err := client.PostForm(ctx, dayURL+"/meals/reroll", nil)
		if err != nil {
			t.Fatalf("Failed to reroll meals: %v", err)
		}
		if flash := strings.TrimSpace(doc.Find(".flash").Text()); flash != "Saved." {
			t.Errorf("Expected %q, got %q", "Saved.", flash)
		}
		if doc.Find("li.meal").Length() == 0 {
			t.Error("Expected meals after reroll")
		}
	})

	t.Run("Other days are read-only", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}
		tomorrow, ok := doc.Find(".day-nav a").Attr("href")
		if !ok {
			t.Fatal("Expected a link to tomorrow")
		}

		doc, err = client.PostForm(ctx, tomorrow+"/missions/food/complete", nil)
		if err != nil {
			t.Fatalf("Failed to post for tomorrow: %v", err)
		}
		if doc.Url.Path != tomorrow {
			t.Errorf("Expected redirect to %s, got %s", tomorrow, doc.Url.Path)
		}
		if flash := doc.Find(".flash").Text(); !strings.Contains(flash, "date is not today") {
			t.Errorf("Expected the transition to be declined, got %q", flash)
		}
		if got := doc.Find(".missions form").Length(); got != 0 {
			t.Errorf("Expected no mission forms on a read-only day, got %d", got)
		}
		if got := e2etest.MissionCompleted(doc, "food"); got != "false" {
			t.Errorf("Expected tomorrow's food mission untouched, got %q", got)
		}
	})

	t.Run("Today's day page redirects to the dashboard", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, dayURL)
		if err != nil {
			t.Fatalf("Failed to get day page: %v", err)
		}
		if doc.Url.Path != "/" {
			t.Errorf("Expected redirect to the dashboard, got %s", doc.Url.Path)
		}
	})

	tests := []struct {
		name   string
		path   string
		values url.Values
		want   int
	}{
		{"unknown mission", dayURL + "/missions/yoga/complete", nil, http.StatusNotFound},
		{"malformed date", "/days/2026-13-45/water", url.Values{"ml": {"250"}}, http.StatusNotFound},
		{"water not a number", dayURL + "/water", url.Values{"ml": {"lots"}}, http.StatusBadRequest},
		{"negative water", dayURL + "/water", url.Values{"ml": {"-5"}}, http.StatusBadRequest},
		{"invalid sleep", dayURL + "/sleep", url.Values{"bed": {"late"}, "wake": {"07:00"}}, http.StatusBadRequest},
		{"negative steps", dayURL + "/steps", url.Values{"steps": {"-1"}}, http.StatusBadRequest},
		{"weight not a number", dayURL + "/weighin", url.Values{"weight": {"heavy"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Post(ctx, tt.path, tt.values)
			if err != nil {
				t.Fatalf("Failed to post: %v", err)
			}
			_ = resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func Test_application_missionsWithoutSave(t *testing.T) {
	ctx := t.Context()
	server := startTestServer(t)
	client := server.Client()

	doc, err := client.PostForm(ctx, "/days/2026-03-02/missions/food/complete", nil)
	if err != nil {
		t.Fatalf("Failed to post: %v", err)
	}
	if doc.Url.Path != "/setup" {
		t.Errorf("Expected redirect to /setup, got %s", doc.Url.Path)
	}
	if _, err = e2etest.FindForm(doc, "/setup"); err != nil {
		t.Errorf("Setup form missing: %v", err)
	}
}
