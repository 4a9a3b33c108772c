package sqlite

import (
	"log/slog"
	"testing"

	"github.com/myrjola/gymplanner/internal/testhelpers"
)

func TestDatabase_migrate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name              string
		schemaDefinitions []string
		testQueries       []string
		wantErr           bool
	}{
		{
			name:              "empty schema",
			schemaDefinitions: []string{""},
			testQueries:       []string{"SELECT * FROM sqlite_schema"},
			wantErr:           false,
		},
		{
			name:              "create table",
			schemaDefinitions: []string{"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)"},
			testQueries: []string{
				"INSERT INTO exercises (name) VALUES ('Plank')",
				"SELECT * FROM exercises",
			},
			wantErr: false,
		},
		{
			name: "drop table",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)",
				"", // drop table
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     true,
		},
		{
			name: "add column",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)",
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     false,
		},
		{
			name: "remove column",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY)",
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     true,
		},
		{
			name: "create index",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT); CREATE INDEX exercises_name ON exercises (name)",
			},
			testQueries: []string{"DROP INDEX exercises_name"},
			wantErr:     false,
		},
		{
			name: "drop index",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT); CREATE INDEX exercises_name ON exercises (name)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)",
			},
			testQueries: []string{"DROP INDEX exercises_name"},
			wantErr:     true,
		},
		{
			name: "update index",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT); CREATE INDEX exercises_name ON exercises (name)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT); CREATE INDEX exercises_name ON exercises (id, name)",
			},
			testQueries: []string{"DROP INDEX exercises_name"},
			wantErr:     false,
		},
		{
			name: "create trigger",
			schemaDefinitions: []string{
				`CREATE TABLE exercises ( id   INTEGER PRIMARY KEY, name TEXT );
                 CREATE TRIGGER exercises_guard AFTER INSERT ON exercises BEGIN SELECT RAISE ( FAIL, 'fail' ); END;`,
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     true,
		},
		{
			name: "delete trigger",
			schemaDefinitions: []string{
				`CREATE TABLE exercises ( id   INTEGER PRIMARY KEY, name TEXT );
                 CREATE TRIGGER exercises_guard AFTER INSERT ON exercises BEGIN SELECT RAISE ( FAIL, 'fail' ); END;`,
				"CREATE TABLE exercises ( id   INTEGER PRIMARY KEY, name TEXT )",
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     false,
		},
		{
			name: "add constraint",
			schemaDefinitions: []string{
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT)",
				"CREATE TABLE exercises (id INTEGER PRIMARY KEY, name TEXT NOT NULL)",
			},
			testQueries: []string{"INSERT INTO exercises (id) VALUES (1)"},
			wantErr:     true,
		},
		{
			name: "catalog schema is idempotent",
			schemaDefinitions: []string{schemaDefinition, schemaDefinition},
			testQueries: []string{
				"INSERT INTO exercises (name, equipment) VALUES ('Plank', 'Bodyweight')",
				"INSERT INTO exercise_muscle_groups (exercise_id, position, muscle_group) VALUES (1, 0, 'Core')",
			},
			wantErr: false,
		},
		{
			name:              "muscle groups reference exercises",
			schemaDefinitions: []string{schemaDefinition},
			testQueries: []string{
				"INSERT INTO exercise_muscle_groups (exercise_id, position, muscle_group) VALUES (42, 0, 'Core')",
			},
			wantErr: true,
		},
		{
			name: "update trigger",
			schemaDefinitions: []string{
				`CREATE TABLE exercises ( id   INTEGER PRIMARY KEY, name TEXT );
                 CREATE TRIGGER exercises_guard AFTER INSERT ON exercises BEGIN SELECT RAISE ( FAIL, 'fail' ); END;`,
				`CREATE TABLE exercises ( id   INTEGER PRIMARY KEY, name TEXT );
                 CREATE TRIGGER exercises_guard AFTER INSERT ON exercises BEGIN SELECT 1; END;`,
			},
			testQueries: []string{"INSERT INTO exercises (name) VALUES ('Plank')"},
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := t.Context()
			logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
			db, err := connect(ctx, ":memory:", logger)
			if err != nil {
				t.Fatalf("Failed to connect to database: %v", err)
			}
			defer func(db *Database) {
				err = db.Close()
				if err != nil {
					t.Errorf("Failed to close database: %v", err)
				}
			}(db)

			for _, schemaDefinition := range tt.schemaDefinitions {
				logger.LogAttrs(ctx, slog.LevelInfo, "migrating", slog.String("schema", schemaDefinition))
				err = db.migrateTo(ctx, schemaDefinition)
				if err != nil {
					t.Fatalf("Failed to migrate: %v", err)
				}
			}

			for _, query := range tt.testQueries {
				logger.LogAttrs(ctx, slog.LevelInfo, "executing", slog.String("query", query))
				_, err = db.ReadWrite.ExecContext(ctx, query)
				if tt.wantErr && err == nil {
					t.Errorf("Expected error for query %q, but got none", query)
				}
				if !tt.wantErr && err != nil {
					t.Errorf("Unexpected error for query %q: %v", query, err)
				}
			}
		})
	}
}
