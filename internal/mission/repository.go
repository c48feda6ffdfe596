package mission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/sqlite"
)

// ErrNoActiveState is returned when no program has been set up yet or the stored save cannot be read.
var ErrNoActiveState = errors.NewSentinel("no active save state")

// saveRepository stores the save document as one row of save_states.
type saveRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
	key    string
}

func newSaveRepository(db *sqlite.Database, logger *slog.Logger) *saveRepository {
	return &saveRepository{
		db:     db,
		logger: logger,
		key:    SaveKey,
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get returns the stored save document. A missing or unreadable document is reported as ErrNoActiveState.
func (r *saveRepository) Get(ctx context.Context) (SaveState, error) {
	return r.get(ctx, r.db.ReadOnly)
}

func (r *saveRepository) get(ctx context.Context, q queryer) (SaveState, error) {
	var (
		version  int
		document string
	)
	err := q.QueryRowContext(ctx, `SELECT version, document FROM save_states WHERE key = ?`, r.key).
		Scan(&version, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveState{}, ErrNoActiveState
	}
	if err != nil {
		return SaveState{}, fmt.Errorf("query save state: %w", err)
	}

	var s SaveState
	if err = json.Unmarshal([]byte(document), &s); err != nil || version != SaveVersion || s.Version != SaveVersion {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "ignoring unreadable save state",
			slog.Int("version", version), slog.Any("error", err))
		return SaveState{}, ErrNoActiveState
	}
	if s.LogsByDate == nil {
		s.LogsByDate = make(map[string]DayLog)
	}
	return s, nil
}

// Set replaces the stored save document.
func (r *saveRepository) Set(ctx context.Context, s SaveState) error {
	return r.set(ctx, r.db.ReadWrite, s)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *saveRepository) set(ctx context.Context, e execer, s SaveState) error {
	document, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal save state: %w", err)
	}
	_, err = e.ExecContext(ctx, `
		INSERT INTO save_states (key, version, document) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			version = excluded.version,
			document = excluded.document,
			updated_at = STRFTIME('%Y-%m-%dT%H:%M:%fZ')`,
		r.key, s.Version, string(document))
	if err != nil {
		return fmt.Errorf("upsert save state: %w", err)
	}
	return nil
}

// Update reads the save document, applies updateFn and writes the result back in one immediate transaction.
// Nothing is written when updateFn reports no change.
func (r *saveRepository) Update(ctx context.Context, updateFn func(s *SaveState) (bool, error)) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.db.Rollback(ctx, tx)

	s, err := r.get(ctx, tx)
	if err != nil {
		return err
	}
	updated, err := updateFn(&s)
	if err != nil {
		return fmt.Errorf("update save state: %w", err)
	}
	if !updated {
		return nil
	}
	if err = r.set(ctx, tx, s); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete removes the save document.
func (r *saveRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM save_states WHERE key = ?`, r.key); err != nil {
		return fmt.Errorf("delete save state: %w", err)
	}
	return nil
}
