package mission

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/logging"
	"github.com/myrjola/fitquest/internal/program"
	"github.com/myrjola/fitquest/internal/sqlite"
)

// ErrUnknownMission is returned when a mission name is not one of the seven missions.
var ErrUnknownMission = errors.NewSentinel("unknown mission")

// Service runs the mission transitions against the stored save document.
//
// The service owns the clock that defines today and the random source of program generation and meal rerolls.
type Service struct {
	repo   *saveRepository
	db     *sqlite.Database
	logger *slog.Logger
	now    func() time.Time
	// mu guards rng, which is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a mission service. The calendar date of now() is today.
func NewService(db *sqlite.Database, logger *slog.Logger, now func() time.Time, rng *rand.Rand) *Service {
	return &Service{
		repo:   newSaveRepository(db, logger),
		db:     db,
		logger: logger,
		now:    now,
		mu:     sync.Mutex{},
		rng:    rng,
	}
}

// ParseMission returns the mission named name or ErrUnknownMission.
func ParseMission(name string) (program.Mission, error) {
	m, ok := program.ParseMission(name)
	if !ok {
		return "", errors.Wrap(ErrUnknownMission, "parse mission", slog.String("mission", name))
	}
	return m, nil
}

// Today returns the current calendar date.
func (s *Service) Today() string {
	return program.FormatDate(s.now())
}

// Setup validates the profile, generates its program and replaces any previous save with it.
func (s *Service) Setup(ctx context.Context, p program.Profile) (SaveState, error) {
	if err := program.Validate(p); err != nil {
		return SaveState{}, err
	}

	s.mu.Lock()
	state := NewSaveState(p, s.now(), s.rng)
	s.mu.Unlock()

	if err := s.repo.Set(ctx, state); err != nil {
		return SaveState{}, errors.Wrap(err, "store new save state")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated program",
		slog.String("start_date", state.Plan.StartDate),
		slog.Int("timeline_weeks", state.Plan.TimelineWeeks),
		slog.Int("workouts", len(state.Plan.WorkoutsByID)),
		slog.Int("recipes", len(state.Plan.RecipesBank)))
	return state, nil
}

// Load returns the stored save document or ErrNoActiveState.
func (s *Service) Load(ctx context.Context) (SaveState, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return SaveState{}, fmt.Errorf("load save state: %w", err)
	}
	return state, nil
}

// Apply runs op against the stored save document on today's date and persists the result in one transaction.
// A declined transition is not an error, it is reported through [Result].
func (s *Service) Apply(ctx context.Context, op Operation) (Result, error) {
	// The lock also covers the random source some operations draw from.
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithAttrs(ctx, slog.Any("operation", op))
	today := s.Today()
	var (
		res   Result
		level int
		total int
	)
	err := s.repo.Update(ctx, func(state *SaveState) (bool, error) {
		var next SaveState
		next, res = Apply(*state, today, op)
		if !res.Applied {
			return false, nil
		}
		*state = next
		level, total = next.Level, next.XPTotal
		return true, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("apply %T: %w", op, err)
	}

	if !res.Applied {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "declined transition", slog.String("reason", string(res.Reason)))
		return res, nil
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "applied transition",
		slog.Int("xp_delta", res.XPDelta),
		slog.Int("xp_total", total),
		slog.Int("level", level))
	return res, nil
}

// RerollMeals swaps the meals of date using the service's random source.
func (s *Service) RerollMeals(ctx context.Context, date string) (Result, error) {
	return s.Apply(ctx, RerollMeals{Date: date, Rand: s.rng})
}

// Dashboard returns today's dashboard.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return ViewDashboard(state, s.Today()), nil
}

// Day returns the view of date.
func (s *Service) Day(ctx context.Context, date string) (DayView, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return DayView{}, err
	}
	return ViewDay(state, date, s.Today()), nil
}

// Progress returns the progress summary.
func (s *Service) Progress(ctx context.Context) (Progress, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return Progress{}, err
	}
	return ViewProgress(state, s.Today()), nil
}

// ShoppingList returns the shopping list for the coming week.
func (s *Service) ShoppingList(ctx context.Context) ([]program.ShoppingCategory, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ShoppingList(state, s.Today()), nil
}

// Workout returns a workout of the program. The boolean is false when the program has no such workout.
func (s *Service) Workout(ctx context.Context, id string) (program.Workout, bool, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return program.Workout{}, false, err
	}
	w, ok := state.Plan.WorkoutsByID[id]
	return w, ok, nil
}

// Export returns the save document as indented JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	document, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal save state: %w", err)
	}
	return document, nil
}

// Snapshot writes a copy of the whole database to a new file at path.
func (s *Service) Snapshot(ctx context.Context, path string) error {
	if err := s.db.Snapshot(ctx, path); err != nil {
		return errors.Wrap(err, "snapshot database", slog.String("path", path))
	}
	return nil
}

// Reset deletes the save document. The next load reports ErrNoActiveState.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "reset save state")
	return nil
}
