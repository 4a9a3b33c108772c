package workout

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/gymplanner/internal/logging"
	"github.com/myrjola/gymplanner/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

// Service generates plans from a shared read-only catalog.
//
// Every plan request gets its own Planner, so a Service is safe for concurrent use.
type Service struct {
	catalog    []Exercise
	categories []EquipmentCategory
	resolver   *EquipmentResolver
	logger     *slog.Logger
	// seed makes every generated plan deterministic when non-zero.
	seed uint64
	now  func() time.Time
}

// NewService creates a new workout service. The catalog may be empty, in which case plan generation
// fails with ErrEmptyCatalog.
func NewService(catalog []Exercise, categories []EquipmentCategory, logger *slog.Logger, seed uint64) *Service {
	return &Service{
		catalog:    slices.Clone(catalog),
		categories: slices.Clone(categories),
		resolver:   NewEquipmentResolver(categories),
		logger:     logger,
		seed:       seed,
		now:        time.Now,
	}
}

// LoadDatabaseCatalog seeds an empty database with the default catalog and returns the stored catalog.
func LoadDatabaseCatalog(ctx context.Context, db *sqlite.Database, logger *slog.Logger) ([]Exercise, error) {
	repo := newSQLiteExerciseRepository(db, logger)
	if _, err := repo.Seed(ctx, DefaultCatalog()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	catalog, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	return catalog, nil
}

// StoredExerciseCount returns the number of exercises stored in the database catalog.
func StoredExerciseCount(ctx context.Context, db *sqlite.Database, logger *slog.Logger) (int, error) {
	count, err := newSQLiteExerciseRepository(db, logger).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	return count, nil
}

// GeneratePlan builds a weekly plan for the profile with a fresh planner.
func (s *Service) GeneratePlan(ctx context.Context, profile Profile) (Plan, error) {
	planner, err := NewPlanner(s.catalog, s.resolver, s.newRand(), s.logger)
	if err != nil {
		return Plan{}, fmt.Errorf("new planner: %w", err)
	}

	id := uuid.NewString()
	ctx = logging.WithAttrs(ctx, slog.String("plan_id", id))
	planner.SetUser(profile.Clone())

	weekly, err := planner.Plan(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("plan week: %w", err)
	}

	plan := Plan{
		ID:            id,
		CreatedAt:     s.now(),
		Sessions:      weekly.Sessions,
		TotalCalories: weekly.TotalCalories(),
		Warnings:      weekly.Warnings,
		Analysis:      AnalyzeProfile(profile),
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated plan",
		slog.Int("sessions", len(plan.Sessions)),
		slog.Int("requested_days", len(profile.WorkoutDays)),
		slog.Int("total_calories", plan.TotalCalories))
	return plan, nil
}

// GeneratePlans builds independent plans concurrently. The plans are returned in profile order.
func (s *Service) GeneratePlans(ctx context.Context, profiles []Profile) ([]Plan, error) {
	plans := make([]Plan, len(profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, profile := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck // cancellation from a sibling failure
			}
			plan, err := s.GeneratePlan(ctx, profile)
			if err != nil {
				return fmt.Errorf("profile %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate plans: %w", err)
	}
	return plans, nil
}

// Exercises returns a copy of the catalog.
func (s *Service) Exercises() []Exercise {
	return slices.Clone(s.catalog)
}

// EquipmentCategories returns a copy of the equipment-category table.
func (s *Service) EquipmentCategories() []EquipmentCategory {
	return slices.Clone(s.categories)
}

// newRand returns the random source of one planner.
func (s *Service) newRand() *rand.Rand {
	if s.seed != 0 {
		return rand.New(rand.NewPCG(s.seed, s.seed)) //nolint:gosec // exercise shuffling is not security sensitive
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // exercise shuffling is not security sensitive
}
