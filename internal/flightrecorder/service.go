// Package flightrecorder keeps a rolling execution trace in memory and writes it to disk when a request runs out
// of time.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync"
	"time"

	"github.com/myrjola/fitquest/internal/errors"
)

const (
	defaultWindow   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024 // 64MB
	defaultCooldown = 30 * time.Minute
	dirPerm         = 0o750
)

// Config configures a [Recorder]. Zero values pick the defaults.
type Config struct {
	// Dir receives the snapshot files. It is created when missing.
	Dir string
	// Window is the minimum age of trace events kept in memory.
	Window time.Duration
	// MaxBytes bounds the in-memory trace buffer.
	MaxBytes uint64
	// Cooldown is the minimum time between two snapshots.
	Cooldown time.Duration
}

// Recorder snapshots the flight recorder trace at most once per cooldown.
type Recorder struct {
	logger   *slog.Logger
	recorder *trace.FlightRecorder
	dir      string
	cooldown time.Duration
	now      func() time.Time

	mu           sync.Mutex
	lastSnapshot time.Time
}

// New creates a stopped recorder writing into cfg.Dir.
func New(logger *slog.Logger, cfg Config) (*Recorder, error) {
	if cfg.Dir == "" {
		return nil, errors.New("traces directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, dirPerm); err != nil {
		return nil, errors.Wrap(err, "create traces directory", slog.String("dir", cfg.Dir))
	}
	if stat, err := os.Stat(cfg.Dir); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("traces path is not a directory: %s", cfg.Dir)
	}

	window := cfg.Window
	if window == 0 {
		window = defaultWindow
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	cooldown := cfg.Cooldown
	if cooldown == 0 {
		cooldown = defaultCooldown
	}

	return &Recorder{
		logger:       logger,
		recorder:     trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: window, MaxBytes: maxBytes}),
		dir:          cfg.Dir,
		cooldown:     cooldown,
		now:          time.Now,
		mu:           sync.Mutex{},
		lastSnapshot: time.Time{},
	}, nil
}

// Start begins recording.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.recorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("dir", r.dir), slog.Duration("cooldown", r.cooldown))
	return nil
}

// Stop ends recording.
func (r *Recorder) Stop(ctx context.Context) {
	r.recorder.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Snapshot writes the recorded trace to a file named after label. It returns the file path and false when the
// snapshot was skipped because of the cooldown or an error, which is logged.
func (r *Recorder) Snapshot(ctx context.Context, label string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if !r.lastSnapshot.IsZero() && now.Sub(r.lastSnapshot) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace snapshot during cooldown",
			slog.Time("last_snapshot", r.lastSnapshot))
		return "", false
	}
	r.lastSnapshot = now

	path := filepath.Join(r.dir, fmt.Sprintf("timeout-%s-%s.trace", now.UTC().Format("20060102-150405"), label))
	if err := r.writeTo(path); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to write trace snapshot", errors.SlogError(err))
		return "", false
	}
	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace snapshot", slog.String("file", path))
	return path, true
}

func (r *Recorder) writeTo(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create trace file", slog.String("file", path))
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	if _, err = r.recorder.WriteTo(file); err != nil {
		return errors.Wrap(err, "write trace", slog.String("file", path))
	}
	return nil
}
