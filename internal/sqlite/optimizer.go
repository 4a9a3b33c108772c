package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/gymplanner/internal/errors"
)

// optimizeInterval is how often the long-lived connection runs PRAGMA optimize.
const optimizeInterval = time.Hour

// initOptimizer runs the optimize recommended when opening a long-lived connection.
// See https://www.sqlite.org/pragma.html#pragma_optimize.
func (db *Database) initOptimizer(ctx context.Context) error {
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize = 0x10002;"); err != nil {
		return errors.Wrap(err, "init optimize database")
	}
	return nil
}

// startDatabaseOptimizer runs optimize every optimizeInterval until ctx is done.
func (db *Database) startDatabaseOptimizer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(optimizeInterval):
		}
		start := time.Now()
		if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			err = errors.Wrap(err, "optimize database")
			db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database", errors.SlogError(err))
			continue
		}
		db.logger.LogAttrs(ctx, slog.LevelInfo, "optimized database", slog.Duration("duration", time.Since(start)))
	}
}
