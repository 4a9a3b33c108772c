package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/myrjola/gymplanner/internal/sqlite"
)

// sqliteExerciseRepository is the SQLite-backed catalog source.
type sqliteExerciseRepository struct {
	baseRepository
}

// newSQLiteExerciseRepository creates a new SQLite exercise repository.
func newSQLiteExerciseRepository(db *sqlite.Database, logger *slog.Logger) *sqliteExerciseRepository {
	return &sqliteExerciseRepository{
		baseRepository: newBaseRepository(db, logger),
	}
}

// List returns the catalog in insertion order with muscle groups in their catalog order.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT e.id, e.name, e.equipment, e.equipment_category, e.is_compound, e.description_markdown,
		       emg.muscle_group
		FROM exercises e
		LEFT JOIN exercise_muscle_groups emg ON emg.exercise_id = e.id
		ORDER BY e.id, emg.position`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var (
		exercises []Exercise
		lastID    int64 = -1
	)
	for rows.Next() {
		var (
			id          int64
			ex          Exercise
			isCompound  int
			muscleGroup sql.NullString
		)
		if err = rows.Scan(&id, &ex.Name, &ex.Equipment, &ex.EquipmentCategory, &isCompound,
			&ex.DescriptionMarkdown, &muscleGroup); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		if id != lastID {
			ex.Compound = isCompound == 1
			exercises = append(exercises, ex)
			lastID = id
		}
		if muscleGroup.Valid {
			last := &exercises[len(exercises)-1]
			last.MuscleGroups = append(last.MuscleGroups, muscleGroup.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// Count returns the number of exercises in the catalog.
func (r *sqliteExerciseRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.ReadOnly.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}

// Seed inserts the exercises when the catalog is empty. It reports whether anything was inserted.
func (r *sqliteExerciseRepository) Seed(ctx context.Context, exercises []Exercise) (bool, error) {
	seeded := false
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
			return fmt.Errorf("count exercises: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, ex := range exercises {
			if err := insertExercise(ctx, tx, ex); err != nil {
				return err
			}
		}
		seeded = len(exercises) > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed exercises: %w", err)
	}
	if seeded {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "seeded exercise catalog", slog.Int("exercises", len(exercises)))
	}
	return seeded, nil
}

func insertExercise(ctx context.Context, tx *sql.Tx, ex Exercise) error {
	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO exercises (name, equipment, equipment_category, is_compound, description_markdown)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		ex.Name, ex.Equipment, ex.EquipmentCategory, boolToInt(ex.Compound), ex.DescriptionMarkdown,
	).Scan(&id); err != nil {
		return fmt.Errorf("insert exercise %s: %w", ex.Name, err)
	}
	for position, muscle := range ex.MuscleGroups {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_muscle_groups (exercise_id, position, muscle_group)
			VALUES (?, ?, ?)`, id, position, muscle); err != nil {
			return fmt.Errorf("insert muscle group %s for exercise %s: %w", muscle, ex.Name, err)
		}
	}
	return nil
}
