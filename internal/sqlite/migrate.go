package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// migrateTo makes the live schema match schemaDefinition.
//
// The target schema is created in an attached scratch database named schemaTarget and the two sqlite_schema tables
// are diffed. Tables missing from the target are dropped, new ones created and changed ones rebuilt with the
// generalised ALTER TABLE procedure, see https://www.sqlite.org/lang_altertable.html#otheralter. Indexes and
// triggers are then dropped and recreated where they differ.
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) error {
	start := time.Now()

	detach, err := db.attachSchemaTarget(ctx, schemaDefinition)
	if err != nil {
		return fmt.Errorf("attach schema target: %w", err)
	}
	defer detach()

	// Foreign keys cannot be toggled inside a transaction.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign keys: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = ON"); fkErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to re-enable foreign keys", slog.Any("error", fkErr))
		}
	}()

	tx, err := db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer db.Rollback(ctx, tx)

	if err = db.migrateTables(ctx, tx); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	for _, typ := range []string{"trigger", "index"} {
		if err = db.migrateObjects(ctx, tx, typ); err != nil {
			return fmt.Errorf("migrate %ss: %w", typ, err)
		}
	}
	if _, err = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

// attachSchemaTarget creates the target schema in a scratch in-memory database and attaches it as schemaTarget.
// The returned function detaches it.
func (db *Database) attachSchemaTarget(ctx context.Context, schemaDefinition string) (func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	target, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open schema target: %w", err)
	}
	// The shared cache keeps the scratch database alive while it is attached.
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target", slog.Any("error", closeErr))
		}
	}()
	if _, err = target.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, fmt.Errorf("create target schema: %w", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", dsn); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(ctx, "DETACH DATABASE schemaTarget"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach schema target", slog.Any("error", detachErr))
		}
	}, nil
}

// schemaObject is a row of sqlite_schema present in both the live and the target schema.
type schemaObject struct {
	name    string
	liveSQL string
	newSQL  string
}

const (
	// Objects of type ? that only exist in the live schema.
	deletedObjectsQuery = `SELECT live.name
FROM sqlite_schema AS live
         LEFT JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = ?
  AND target.type IS NULL
  AND live.name NOT LIKE 'sqlite_%'
  AND live.name NOT LIKE '_litestream_%'`

	// Creation SQL of objects of type ? that only exist in the target schema.
	newObjectsQuery = `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN sqlite_schema AS live ON live.name = target.name AND live.type = target.type
WHERE target.type = ?
  AND live.type IS NULL
  AND target.name NOT LIKE 'sqlite_%'`

	// Objects of type ? whose SQL differs. Renamed tables get quoted names, so quotes are ignored.
	changedObjectsQuery = `SELECT live.name, live.sql, target.sql
FROM sqlite_schema AS live
         JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = ?
  AND live.name NOT LIKE 'sqlite_%'
  AND live.name NOT LIKE '_litestream_%'
  AND REPLACE(live.sql, '"', '') <> REPLACE(target.sql, '"', '')`

	commonColumnsQuery = `SELECT '"' || target.name || '"'
FROM PRAGMA_TABLE_INFO(:table_name) AS live
         JOIN PRAGMA_TABLE_INFO(:table_name, 'schemaTarget') AS target ON target.name = live.name`
)

func (db *Database) migrateTables(ctx context.Context, tx *sql.Tx) error {
	deleted, err := queryStrings(ctx, tx, deletedObjectsQuery, "table")
	if err != nil {
		return fmt.Errorf("query deleted tables: %w", err)
	}
	for _, table := range deleted {
		if err = db.exec(ctx, tx, "dropping table", fmt.Sprintf("DROP TABLE %s", table)); err != nil {
			return err
		}
	}

	created, err := queryStrings(ctx, tx, newObjectsQuery, "table")
	if err != nil {
		return fmt.Errorf("query new tables: %w", err)
	}
	for _, createSQL := range created {
		if err = db.exec(ctx, tx, "creating table", createSQL); err != nil {
			return err
		}
	}

	changed, err := queryChanged(ctx, tx, "table")
	if err != nil {
		return fmt.Errorf("query changed tables: %w", err)
	}
	for _, table := range changed {
		if err = db.rebuildTable(ctx, tx, table); err != nil {
			return fmt.Errorf("rebuild %s: %w", table.name, err)
		}
	}
	return nil
}

// rebuildTable creates the new definition under a temporary name, copies the common columns over and swaps the
// tables.
func (db *Database) rebuildTable(ctx context.Context, tx *sql.Tx, table schemaObject) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrating table", slog.String("table", table.name),
		slog.String("live_sql", table.liveSQL), slog.String("new_sql", table.newSQL))

	tempName := table.name + "_migration_temp"
	if err := db.exec(ctx, tx, "creating temporary table",
		strings.Replace(table.newSQL, table.name, tempName, 1)); err != nil {
		return err
	}

	columns, err := queryStrings(ctx, tx, commonColumnsQuery, sql.Named("table_name", table.name))
	if err != nil {
		return fmt.Errorf("query common columns: %w", err)
	}
	common := strings.Join(columns, ", ")

	statements := []string{
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", tempName, common, common, table.name),
		fmt.Sprintf("DROP TABLE %s", table.name),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", tempName, table.name),
	}
	for _, stmt := range statements {
		if err = db.exec(ctx, tx, "rebuilding table", stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateObjects synchronises indexes or triggers with the target schema.
func (db *Database) migrateObjects(ctx context.Context, tx *sql.Tx, typ string) error {
	keyword := strings.ToUpper(typ)

	deleted, err := queryStrings(ctx, tx, deletedObjectsQuery, typ)
	if err != nil {
		return fmt.Errorf("query deleted: %w", err)
	}
	for _, name := range deleted {
		if err = db.exec(ctx, tx, "dropping "+typ, fmt.Sprintf("DROP %s %s", keyword, name)); err != nil {
			return err
		}
	}

	created, err := queryStrings(ctx, tx, newObjectsQuery, typ)
	if err != nil {
		return fmt.Errorf("query new: %w", err)
	}
	for _, createSQL := range created {
		if err = db.exec(ctx, tx, "creating "+typ, createSQL); err != nil {
			return err
		}
	}

	changed, err := queryChanged(ctx, tx, typ)
	if err != nil {
		return fmt.Errorf("query changed: %w", err)
	}
	for _, obj := range changed {
		if err = db.exec(ctx, tx, "dropping changed "+typ, fmt.Sprintf("DROP %s %s", keyword, obj.name)); err != nil {
			return err
		}
		if err = db.exec(ctx, tx, "recreating "+typ, obj.newSQL); err != nil {
			return err
		}
	}
	return nil
}

func (db *Database) exec(ctx context.Context, tx *sql.Tx, msg string, query string) error {
	db.logger.LogAttrs(ctx, slog.LevelInfo, msg, slog.String("query", query))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s %q: %w", msg, query, err)
	}
	return nil
}

// queryStrings returns the single column result of query.
func queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()
	var results []string
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		results = append(results, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return results, nil
}

func queryChanged(ctx context.Context, tx *sql.Tx, typ string) (_ []schemaObject, err error) {
	rows, err := tx.QueryContext(ctx, changedObjectsQuery, typ)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()
	var changed []schemaObject
	for rows.Next() {
		var obj schemaObject
		if err = rows.Scan(&obj.name, &obj.liveSQL, &obj.newSQL); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		changed = append(changed, obj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return changed, nil
}
