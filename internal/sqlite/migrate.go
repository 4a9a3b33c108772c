package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type schemaType string

const (
	schemaTypeTable   schemaType = "table"
	schemaTypeTrigger schemaType = "trigger"
	schemaTypeIndex   schemaType = "index"
)

// migrateTo makes the live schema match schemaDefinition declaratively.
//
// The target schema is created in an attached in-memory database and diffed against the live one:
//
//  1. tables missing from the target are dropped,
//  2. new tables are created,
//  3. changed tables are rebuilt with the 12-step procedure https://www.sqlite.org/lang_altertable.html#otheralter,
//  4. triggers and indexes are synchronised.
//
// Inspired by https://david.rothlis.net/declarative-schema-migration-for-sqlite/
func (db *Database) migrateTo(ctx context.Context, schemaDefinition string) (err error) {
	start := time.Now()

	detach, err := db.attachSchemaTarget(ctx, schemaDefinition)
	if err != nil {
		return fmt.Errorf("attach schema target database: %w", err)
	}
	defer detach()

	// Foreign keys cannot be toggled inside a transaction. ReadWrite has a single connection so the pragma
	// applies to the transaction below.
	if _, err = db.ReadWrite.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return fmt.Errorf("disable foreign key validation: %w", err)
	}
	defer func() {
		if _, fkErr := db.ReadWrite.ExecContext(context.WithoutCancel(ctx), "PRAGMA foreign_keys = ON"); fkErr != nil {
			err = errors.Join(err, fmt.Errorf("re-enable foreign key validation: %w", fkErr))
		}
	}()

	var tx *sql.Tx
	if tx, err = db.ReadWrite.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer db.rollback(ctx, tx)()

	if err = db.migrateTables(ctx, tx); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	// Rebuilt tables lose their triggers and indexes so these are synchronised after the tables.
	for _, typ := range []schemaType{schemaTypeTrigger, schemaTypeIndex} {
		if err = db.migrateSchema(ctx, tx, typ); err != nil {
			return fmt.Errorf("migrate %ss: %w", typ, err)
		}
	}

	if _, err = tx.ExecContext(ctx, "PRAGMA foreign_key_check"); err != nil {
		return fmt.Errorf("foreign key check: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	db.logger.LogAttrs(ctx, slog.LevelInfo, "migrated database", slog.Duration("duration", time.Since(start)))
	return nil
}

// attachSchemaTarget attaches an in-memory database initialised with the target schema as schemaTarget.
// The returned function detaches it and must be called after the migration.
func (db *Database) attachSchemaTarget(ctx context.Context, schemaDefinition string) (func(), error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", rand.Text())
	target, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open schema target database: %w", err)
	}
	// The shared cache keeps the in-memory database alive while it is attached.
	defer func() {
		if closeErr := target.Close(); closeErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to close schema target database",
				slog.Any("error", closeErr))
		}
	}()
	if _, err = target.ExecContext(ctx, schemaDefinition); err != nil {
		return nil, fmt.Errorf("create target schema: %w", err)
	}
	if _, err = db.ReadWrite.ExecContext(ctx, "ATTACH DATABASE ? AS schemaTarget", dsn); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	return func() {
		if _, detachErr := db.ReadWrite.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE schemaTarget"); detachErr != nil {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to detach schema target database",
				slog.Any("error", detachErr))
		}
	}, nil
}

// rollback returns a function rolling back tx unless it is already committed.
func (db *Database) rollback(ctx context.Context, tx *sql.Tx) func() {
	return func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction",
				slog.Any("error", fmt.Errorf("rollback transaction: %w", err)))
		}
	}
}

// migrateTables drops, creates and rebuilds tables so that they match the target schema.
func (db *Database) migrateTables(ctx context.Context, tx *sql.Tx) error {
	removed, err := db.queryRemoved(ctx, tx, schemaTypeTable)
	if err != nil {
		return err
	}
	for _, table := range removed {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "dropping table", slog.String("table", table))
		if _, err = tx.ExecContext(ctx, "DROP TABLE "+table); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}

	added, err := db.queryAdded(ctx, tx, schemaTypeTable)
	if err != nil {
		return err
	}
	for _, createSQL := range added {
		db.logger.LogAttrs(ctx, slog.LevelInfo, "creating table", slog.String("query", createSQL))
		if _, err = tx.ExecContext(ctx, createSQL); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	changed, err := db.queryChanged(ctx, tx, schemaTypeTable)
	if err != nil {
		return err
	}
	for _, table := range changed {
		if err = db.rebuildTable(ctx, tx, table); err != nil {
			return fmt.Errorf("rebuild table %s: %w", table.name, err)
		}
	}
	return nil
}

// rebuildTable creates the new table under a temporary name, copies the common columns, drops the old
// table and renames the new one into place.
func (db *Database) rebuildTable(ctx context.Context, tx *sql.Tx, table changedSchema) error {
	logger := db.logger.With(slog.String("table", table.name))
	logger.LogAttrs(ctx, slog.LevelInfo, "migrating table",
		slog.String("live_sql", table.liveSQL), slog.String("new_sql", table.newSQL))

	tempName := table.name + "_migration_temp"
	columns, err := db.queryStrings(ctx, tx, `SELECT '"' || target.name || '"'
FROM PRAGMA_TABLE_INFO(:table_name) AS live
JOIN PRAGMA_TABLE_INFO(:table_name, 'schemaTarget') AS target ON target.name = live.name`,
		sql.Named("table_name", table.name))
	if err != nil {
		return fmt.Errorf("query common columns: %w", err)
	}
	common := strings.Join(columns, ", ")

	steps := []string{
		strings.Replace(table.newSQL, table.name, tempName, 1),
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;", tempName, common, common, table.name),
		fmt.Sprintf("DROP TABLE %s;", table.name),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", tempName, table.name),
	}
	for _, query := range steps {
		logger.LogAttrs(ctx, slog.LevelInfo, "executing", slog.String("query", query))
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("exec %q: %w", query, err)
		}
	}
	return nil
}

// migrateSchema synchronises all entities of typ between the live and the target schema.
func (db *Database) migrateSchema(ctx context.Context, tx *sql.Tx, typ schemaType) error {
	logger := db.logger.With(slog.String("schemaType", string(typ)))
	keyword := strings.ToUpper(string(typ))

	removed, err := db.queryRemoved(ctx, tx, typ)
	if err != nil {
		return err
	}
	for _, name := range removed {
		logger.LogAttrs(ctx, slog.LevelInfo, "dropping", slog.String("name", name))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP %s %s;", keyword, name)); err != nil {
			return fmt.Errorf("drop %s %s: %w", typ, name, err)
		}
	}

	added, err := db.queryAdded(ctx, tx, typ)
	if err != nil {
		return err
	}
	for _, createSQL := range added {
		logger.LogAttrs(ctx, slog.LevelInfo, "creating", slog.String("query", createSQL))
		if _, err = tx.ExecContext(ctx, createSQL); err != nil {
			return fmt.Errorf("create %s: %w", typ, err)
		}
	}

	changed, err := db.queryChanged(ctx, tx, typ)
	if err != nil {
		return err
	}
	for _, c := range changed {
		logger.LogAttrs(ctx, slog.LevelInfo, "recreating",
			slog.String("name", c.name), slog.String("live_sql", c.liveSQL), slog.String("new_sql", c.newSQL))
		if _, err = tx.ExecContext(ctx, fmt.Sprintf("DROP %s %s;", keyword, c.name)); err != nil {
			return fmt.Errorf("drop changed %s %s: %w", typ, c.name, err)
		}
		if _, err = tx.ExecContext(ctx, c.newSQL); err != nil {
			return fmt.Errorf("create changed %s %s: %w", typ, c.name, err)
		}
	}
	return nil
}

// queryRemoved returns the names of live entities of typ missing from the target schema.
func (db *Database) queryRemoved(ctx context.Context, tx *sql.Tx, typ schemaType) ([]string, error) {
	names, err := db.queryStrings(ctx, tx, `SELECT live.name
FROM sqlite_schema AS live
         LEFT JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = ?
  AND target.type IS NULL
  AND live.name NOT LIKE 'sqlite_%'`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("query removed %ss: %w", typ, err)
	}
	return names, nil
}

// queryAdded returns the create statements of target entities of typ missing from the live schema.
func (db *Database) queryAdded(ctx context.Context, tx *sql.Tx, typ schemaType) ([]string, error) {
	statements, err := db.queryStrings(ctx, tx, `SELECT target.sql
FROM schemaTarget.sqlite_schema AS target
         LEFT JOIN sqlite_schema AS live ON live.name = target.name AND live.type = target.type
WHERE target.type = ?
  AND live.type IS NULL
  AND target.sql IS NOT NULL
  AND target.name NOT LIKE 'sqlite_%'`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("query added %ss: %w", typ, err)
	}
	return statements, nil
}

type changedSchema struct {
	name    string
	liveSQL string
	newSQL  string
}

// queryChanged returns the entities of typ whose definition differs between the live and the target schema.
func (db *Database) queryChanged(ctx context.Context, tx *sql.Tx, typ schemaType) (_ []changedSchema, err error) {
	// Renamed tables get their name quoted in sqlite_schema, so quotes are ignored in the diff.
	rows, err := tx.QueryContext(ctx, `SELECT live.name, live.sql, target.sql
FROM sqlite_schema AS live
         JOIN schemaTarget.sqlite_schema AS target ON live.name = target.name AND live.type = target.type
WHERE live.type = ?
  AND live.name NOT LIKE 'sqlite_%'
  AND REPLACE(live.sql, '"', '') <> REPLACE(target.sql, '"', '')`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("query changed %ss: %w", typ, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var changed []changedSchema
	for rows.Next() {
		var c changedSchema
		if err = rows.Scan(&c.name, &c.liveSQL, &c.newSQL); err != nil {
			return nil, fmt.Errorf("scan changed %s: %w", typ, err)
		}
		changed = append(changed, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return changed, nil
}

// queryStrings returns the single string column of a query.
func (db *Database) queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) (_ []string, err error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var results []string
	for rows.Next() {
		var result string
		if err = rows.Scan(&result); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
