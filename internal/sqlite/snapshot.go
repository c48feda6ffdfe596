package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ErrSnapshotExists is returned when the snapshot target already exists.
var ErrSnapshotExists = errors.New("snapshot file already exists")

// Snapshot writes a transactionally consistent copy of the database to a new file at path.
//
// The copy is a standalone SQLite database that can be opened with [NewDatabase] or the sqlite3 shell.
func (db *Database) Snapshot(ctx context.Context, path string) error {
	start := time.Now()
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve snapshot path: %w", err)
	}
	if _, err = os.Stat(abs); err == nil {
		return fmt.Errorf("%w: %s", ErrSnapshotExists, abs)
	}

	if _, err = db.ReadWrite.ExecContext(ctx, "VACUUM INTO ?", abs); err != nil {
		return fmt.Errorf("vacuum into %s: %w", abs, err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "wrote database snapshot",
		slog.String("path", abs), slog.Duration("duration", time.Since(start)))
	return nil
}
