package main

import (
	"context"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/myrjola/fitquest/internal/envstruct"
	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/flightrecorder"
	"github.com/myrjola/fitquest/internal/logging"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/sqlite"
	"github.com/yuin/goldmark"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	templateFS     fs.FS
	missions       *mission.Service
	markdown       goldmark.Markdown
	// recorder snapshots an execution trace when a request times out. Nil disables it.
	recorder *flightrecorder.Recorder
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITQUEST_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITQUEST_SQLITE_URL" envDefault:"./fitquest.sqlite3"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"FITQUEST_TEMPLATE_PATH" envDefault:""`
	// Timezone is the IANA time zone that decides when a new day starts.
	Timezone string `env:"FITQUEST_TIMEZONE" envDefault:"Local"`
	// Seed seeds program generation and meal rerolls. Zero picks a random seed.
	Seed int `env:"FITQUEST_SEED" envDefault:"0"`
	// SecureCookies sets the Secure flag of the session cookie. Disable it only for plain HTTP in tests.
	SecureCookies bool `env:"FITQUEST_SECURE_COOKIES" envDefault:"true"`
	// TracesDir receives execution traces of timed out requests. Empty disables the flight recorder.
	TracesDir string `env:"FITQUEST_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	var location *time.Location
	if location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return errors.Wrap(err, "load timezone", slog.String("timezone", cfg.Timezone))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	clock := func() time.Time {
		return time.Now().In(location)
	}

	sessionStore := sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	defer sessionStore.StopCleanup()

	var recorder *flightrecorder.Recorder
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(logger, flightrecorder.Config{Dir: cfg.TracesDir}); err != nil {
			return errors.Wrap(err, "create flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(sessionStore, cfg.SecureCookies),
		templateFS:     os.DirFS(htmlTemplatePath),
		missions:       mission.NewService(db, logger, clock, newRand(cfg.Seed)),
		markdown:       goldmark.New(),
		recorder:       recorder,
	}

	var handler http.Handler
	if handler, err = app.routes(); err != nil {
		return errors.Wrap(err, "configure routes")
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// newRand returns the random source of the mission service. A zero seed draws the seed from the runtime's
// cryptographically seeded generator.
func newRand(seed int) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // not used for security.
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed))) //nolint:gosec // not used for security.
}

func initializeSessionManager(store scs.Store, secure bool) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = 12 * time.Hour //nolint:mnd // half a day
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = secure
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
