package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitquest/internal/e2etest"
	"github.com/myrjola/fitquest/internal/logging"
	"github.com/myrjola/fitquest/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	setupTimeout            = 30 * time.Second
	scenarioTimeout         = 30 * time.Second
	numClients              = 10
	scenariosPerClient      = 20
	maxConcurrentOperations = 20
	baseWaterMl             = 100
	waterRangeMl            = 400
	successRateThreshold    = 95.0
	expectedArgsCount       = 2
	percentageMultiplier    = 100
)

// stressProfile is the onboarding form the stress test generates its program from.
func stressProfile() url.Values {
	return url.Values{
		"age":               {"35"},
		"sex":               {"male"},
		"height":            {"180"},
		"weight":            {"85"},
		"activityLevel":     {"medium"},
		"typicalSleep":      {"7"},
		"experience":        {"intermediate"},
		"goalType":          {"build muscle"},
		"timeline":          {"8"},
		"trainingDays":      {"4"},
		"minutesPerSession": {"60"},
		"equipment":         {"full gym"},
		"limitations":       {"none"},
		"foodsLike":         {"chicken", "beef", "rice", "eggs", "oats", "potatoes"},
		"cookingTime":       {"medium"},
		"mealsPerDay":       {"4"},
		"coachTone":         {"competitive"},
	}
}

// SetUpProgram generates the program every scenario plays against and returns today's date.
func SetUpProgram(ctx context.Context, client *e2etest.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	doc, err := client.PostForm(ctx, "/setup", stressProfile())
	if err != nil {
		return "", fmt.Errorf("submit setup: %w", err)
	}
	return e2etest.Today(doc)
}

// DayScenario plays one visit: read the dashboard, log water, toggle the mobility mission and browse the other
// pages.
func DayScenario(ctx context.Context, client *e2etest.Client, today string, iteration int) error {
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get dashboard: %w", err)
	}

	dayURL := "/days/" + today
	ml := baseWaterMl + iteration*37%waterRangeMl //nolint:mnd // spread the amounts a bit.
	if _, err = client.PostForm(ctx, dayURL+"/water", url.Values{"ml": {strconv.Itoa(ml)}}); err != nil {
		return fmt.Errorf("log water: %w", err)
	}

	// Other clients toggle the same mission so either transition may be declined.
	if _, err = client.PostForm(ctx, dayURL+"/missions/mobility/complete", nil); err != nil {
		return fmt.Errorf("complete mobility: %w", err)
	}
	if _, err = client.PostForm(ctx, dayURL+"/missions/mobility/undo", nil); err != nil {
		return fmt.Errorf("undo mobility: %w", err)
	}

	pages := []string{"/progress", "/shopping-list"}
	if href, ok := doc.Find(".workout a").Attr("href"); ok {
		pages = append(pages, href)
	}
	for _, page := range pages {
		if _, err = client.GetDoc(ctx, page); err != nil {
			return fmt.Errorf("get %s: %w", page, err)
		}
	}
	return nil
}

// RunLoadTest runs the day scenario from several clients with their own sessions.
func RunLoadTest(ctx context.Context, baseURL, today string, logger *slog.Logger) error {
	total := numClients * scenariosPerClient
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test",
		slog.Int("clients", numClients), slog.Int("scenarios", total))

	var successCount, failureCount atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for c := range numClients {
		client, err := e2etest.NewClient(baseURL)
		if err != nil {
			return fmt.Errorf("create client %d: %w", c, err)
		}
		for i := range scenariosPerClient {
			g.Go(func() error {
				scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
				defer cancel()

				if err := DayScenario(scenarioCtx, client, today, c*scenariosPerClient+i); err != nil {
					failureCount.Add(1)
					// Log individual failures but don't stop the entire test
					logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
						slog.Int("client", c), slog.Any("error", err))
					return nil
				}
				successCount.Add(1)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount.Load()),
		slog.Int64("failed", failureCount.Load()),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>",
			slog.String("warning", "replaces the program of the instance"))
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))

	baseURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		baseURL = "http://" + hostname
	}
	client, err := e2etest.NewClient(baseURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	today, err := SetUpProgram(ctx, client)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to set up program", slog.Any("error", err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Program set up", slog.String("today", today),
		slog.Duration("setup_duration", time.Since(start)))

	loadTestStart := time.Now()
	if err = RunLoadTest(ctx, baseURL, today, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Duration("load_test_duration", time.Since(loadTestStart)))
}
