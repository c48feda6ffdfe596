package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/myrjola/fitquest/internal/e2etest"
	"github.com/myrjola/fitquest/internal/logging"
	"github.com/myrjola/fitquest/internal/testhelpers"
)

// TestMissionFlow sets up a program, completes a mission and undoes it again.
func TestMissionFlow(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/setup")
	if err != nil {
		return fmt.Errorf("get setup page: %w", err)
	}
	if _, err = e2etest.FindForm(doc, "/setup"); err != nil {
		return fmt.Errorf("find setup form: %w", err)
	}

	profile := url.Values{
		"age": {"30"}, "sex": {"other"}, "height": {"170"}, "weight": {"70"}, "activityLevel": {"medium"},
		"typicalSleep": {"7"}, "experience": {"beginner"}, "goalType": {"general health"}, "timeline": {"4"},
		"trainingDays": {"3"}, "minutesPerSession": {"30"}, "equipment": {"none"}, "limitations": {"none"},
		"foodsLike": {"chicken", "rice", "eggs", "oats", "vegetables"}, "cookingTime": {"low"},
		"mealsPerDay": {"3"}, "coachTone": {"friendly"},
	}
	if doc, err = client.PostForm(ctx, "/setup", profile); err != nil {
		return fmt.Errorf("submit setup: %w", err)
	}
	today, err := e2etest.Today(doc)
	if err != nil {
		return err
	}

	missionURL := "/days/" + today + "/missions/food"
	if doc, err = client.PostForm(ctx, missionURL+"/complete", nil); err != nil {
		return fmt.Errorf("complete mission: %w", err)
	}
	if got := e2etest.MissionCompleted(doc, "food"); got != "true" {
		return fmt.Errorf("food mission not completed: %q", got)
	}
	if doc, err = client.PostForm(ctx, missionURL+"/undo", nil); err != nil {
		return fmt.Errorf("undo mission: %w", err)
	}
	if got := e2etest.XPTotal(doc); got != "0" {
		return fmt.Errorf("XP not restored after undo: %q", got)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestMissionFlow(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing mission flow", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
