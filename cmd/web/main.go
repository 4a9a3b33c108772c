package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/myrjola/gymplanner/internal/envstruct"
	"github.com/myrjola/gymplanner/internal/errors"
	"github.com/myrjola/gymplanner/internal/flightrecorder"
	"github.com/myrjola/gymplanner/internal/logging"
	"github.com/myrjola/gymplanner/internal/sqlite"
	"github.com/myrjola/gymplanner/internal/workout"
	"github.com/yuin/goldmark"
)

type application struct {
	logger         *slog.Logger
	templateFS     fs.FS
	markdown       goldmark.Markdown
	workoutService *workout.Service
	// catalogDB is set when the catalog is served from the database.
	catalogDB *sqlite.Database
	// flightRecorder is nil unless a traces directory is configured.
	flightRecorder *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"GYMPLANNER_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"GYMPLANNER_SQLITE_URL" envDefault:"./gymplanner.sqlite3"`
	// CatalogPath is an optional JSON or YAML exercise catalog. The database catalog is used when empty.
	CatalogPath string `env:"GYMPLANNER_CATALOG_PATH" envDefault:""`
	// EquipmentPath is an optional YAML equipment-category table replacing the built-in one.
	EquipmentPath string `env:"GYMPLANNER_EQUIPMENT_PATH" envDefault:""`
	// Seed makes plan generation deterministic when non-zero.
	Seed uint64 `env:"GYMPLANNER_SEED" envDefault:"0"`
	// TemplatePath is the path to the directory containing the HTML templates.
	TemplatePath string `env:"GYMPLANNER_TEMPLATE_PATH" envDefault:""`
	// TracesDir enables the flight recorder. Execution traces of timed out requests are written here.
	TracesDir string `env:"GYMPLANNER_TRACES_DIR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	var htmlTemplatePath string
	if htmlTemplatePath, err = resolveAndVerifyTemplatePath(cfg.TemplatePath); err != nil {
		return errors.Wrap(err, "resolve template path")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var catalog []workout.Exercise
	if catalog, err = loadCatalog(ctx, cfg.CatalogPath, db, logger); err != nil {
		return errors.Wrap(err, "load catalog", slog.String("path", cfg.CatalogPath))
	}
	var categories []workout.EquipmentCategory
	if categories, err = loadEquipmentCategories(cfg.EquipmentPath); err != nil {
		return errors.Wrap(err, "load equipment categories", slog.String("path", cfg.EquipmentPath))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "loaded catalog",
		slog.Int("exercises", len(catalog)), slog.Int("equipment_categories", len(categories)))

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			MinAge:          0,
			MaxBytes:        0,
			Cooldown:        0,
			TracesDirectory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	app := application{
		logger:         logger,
		templateFS:     os.DirFS(htmlTemplatePath),
		markdown:       newMarkdown(),
		workoutService: workout.NewService(catalog, categories, logger, cfg.Seed),
		flightRecorder: recorder,
	}
	if cfg.CatalogPath == "" {
		app.catalogDB = db
	}

	handler := app.routes()
	if err = app.configureAndStartServer(ctx, cfg.Addr, handler); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// loadCatalog reads the catalog file when a path is configured and falls back to the database catalog.
func loadCatalog(
	ctx context.Context,
	path string,
	db *sqlite.Database,
	logger *slog.Logger,
) ([]workout.Exercise, error) {
	if path != "" {
		catalog, err := workout.LoadCatalogFile(ctx, path, logger)
		if err != nil {
			return nil, errors.Wrap(err, "load catalog file")
		}
		return catalog, nil
	}
	catalog, err := workout.LoadDatabaseCatalog(ctx, db, logger)
	if err != nil {
		return nil, errors.Wrap(err, "load database catalog")
	}
	return catalog, nil
}

func loadEquipmentCategories(path string) ([]workout.EquipmentCategory, error) {
	if path == "" {
		return workout.DefaultEquipmentCategories(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open equipment file")
	}
	defer func() { _ = f.Close() }()
	categories, err := workout.LoadEquipmentCategories(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse equipment file")
	}
	return categories, nil
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
