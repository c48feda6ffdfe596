package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/fatih/color"
	"github.com/myrjola/fitquest/internal/envstruct"
	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/logging"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/sqlite"
	"github.com/spf13/cobra"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. The --db flag overrides it.
	SqliteURL string `env:"FITQUEST_SQLITE_URL" envDefault:"./fitquest.sqlite3"`
	// Timezone is the IANA time zone that decides when a new day starts.
	Timezone string `env:"FITQUEST_TIMEZONE" envDefault:"Local"`
	// Seed seeds program generation and meal rerolls. Zero picks a random seed.
	Seed int `env:"FITQUEST_SEED" envDefault:"0"`
}

// cli holds the persistent flags shared by every command.
type cli struct {
	lookupEnv func(string) (string, bool)
	dbPath    string
	date      string
	verbose   bool
}

//nolint:gochecknoglobals // shared palette.
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	c := &cli{lookupEnv: lookupEnv, dbPath: "", date: "", verbose: false}

	root := &cobra.Command{
		Use:   "fitquest",
		Short: "fitquest plays your daily fitness missions from the terminal",
		Long: "fitquest generates a training and meal program from your profile and tracks the daily missions " +
			"that earn XP: workout, water, food, sleep, steps, mobility and weigh-in.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "Path to SQLite database (default $FITQUEST_SQLITE_URL)")
	root.PersistentFlags().StringVar(&c.date, "date", "", "Date YYYY-MM-DD of the mission (default today)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		c.setupCmd(),
		c.todayCmd(),
		c.dayCmd(),
		c.completeCmd(),
		c.undoCmd(),
		c.waterCmd(),
		c.sleepCmd(),
		c.stepsCmd(),
		c.weighInCmd(),
		c.rerollCmd(),
		c.workoutCmd(),
		c.progressCmd(),
		c.shoppingCmd(),
		c.intensityCmd(),
		c.exportCmd(),
		c.resetCmd(),
	)
	return root
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))
}

// withService opens the database and runs fn with a mission service on top of it.
func (c *cli) withService(cmd *cobra.Command, fn func(ctx context.Context, svc *mission.Service) error) error {
	var cfg config
	if err := envstruct.Populate(&cfg, c.lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	if c.dbPath != "" {
		cfg.SqliteURL = c.dbPath
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.Wrap(err, "load timezone", slog.String("timezone", cfg.Timezone))
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	logger := c.logger(cmd)

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()

	clock := func() time.Time {
		return time.Now().In(location)
	}
	err = fn(ctx, mission.NewService(db, logger, clock, newRand(cfg.Seed)))
	if errors.Is(err, mission.ErrNoActiveState) {
		return errors.New("no program yet, run 'fitquest setup --profile <file>' first")
	}
	return err
}

// missionDate returns the --date flag or today.
func (c *cli) missionDate(svc *mission.Service) (string, error) {
	if c.date == "" {
		return svc.Today(), nil
	}
	return parseDate(c.date)
}

func newRand(seed int) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not used for security.
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))) //nolint:gosec // not used for security.
}

// printResult reports a transition outcome. A declined transition is not an error.
func printResult(cmd *cobra.Command, res mission.Result) {
	out := cmd.OutOrStdout()
	switch {
	case !res.Applied:
		fmt.Fprintln(out, red("Nothing changed: "+string(res.Reason)+"."))
	case res.XPDelta > 0:
		fmt.Fprintln(out, green(fmt.Sprintf("+%d XP", res.XPDelta)))
	case res.XPDelta < 0:
		fmt.Fprintln(out, yellow(fmt.Sprintf("%d XP", res.XPDelta)))
	default:
		fmt.Fprintln(out, "Saved.")
	}
}
