package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/gymplanner/internal/e2etest"
	"github.com/myrjola/gymplanner/internal/logging"
	"github.com/myrjola/gymplanner/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	scenarioTimeout         = 10 * time.Second
	maxConcurrentOperations = 20
	defaultNumPlans         = 200
	successRateThreshold    = 95.0
	minArgsCount            = 2
	maxArgsCount            = 3
	percentageMultiplier    = 100
)

//nolint:gochecknoglobals // read-only scenario inputs
var (
	weekdays        = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	equipmentChoice = []string{
		"Free Weights", "Support & Benches", "Bodyweight Tools", "Cables & Resistance", "Machines",
		"Cardio Equipment", "Specialty Equipment",
	}
	priorityLevels = []string{"High", "Medium", "Low"}
	muscles        = []string{"Chest", "Back", "Shoulders", "Arms", "Legs", "Glutes", "Core", "Cardio"}
)

type planSummary struct {
	Sessions []struct {
		Day string `json:"day"`
	} `json:"sessions"`
}

// randomProfile builds a plausible profile request body.
func randomProfile(rng *rand.Rand) map[string]any {
	days := make([]string, 0, len(weekdays))
	for _, d := range weekdays {
		if rng.IntN(2) == 0 {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		days = append(days, weekdays[rng.IntN(len(weekdays))])
	}
	equipment := []string{"Bodyweight"}
	for _, e := range equipmentChoice {
		if rng.IntN(3) == 0 { //nolint:mnd // one in three
			equipment = append(equipment, e)
		}
	}
	priorities := make(map[string]string, len(muscles))
	for _, m := range muscles {
		priorities[m] = priorityLevels[rng.IntN(len(priorityLevels))]
	}
	return map[string]any{
		"height":                150 + rng.IntN(50), //nolint:mnd // 150-199 cm
		"weight":                50 + rng.IntN(60),  //nolint:mnd // 50-109 kg
		"age":                   18 + rng.IntN(50),  //nolint:mnd // 18-67 years
		"gender":                []string{"Male", "Female"}[rng.IntN(2)],
		"intensity":             1 + rng.IntN(10), //nolint:mnd // 1-10
		"availableDays":         days,
		"availableEquipment":    equipment,
		"muscleGroupPriorities": priorities,
	}
}

// PlanScenario requests one plan and checks that every requested day got a session.
func PlanScenario(ctx context.Context, client *e2etest.Client, profile map[string]any) error {
	var plan planSummary
	status, err := client.PostJSON(ctx, "/api/plans", profile, &plan)
	if err != nil {
		return fmt.Errorf("post plan: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	days, _ := profile["availableDays"].([]string)
	if len(plan.Sessions) != len(days) {
		return fmt.Errorf("expected %d sessions, got %d", len(days), len(plan.Sessions))
	}
	return nil
}

// RunLoadTest generates numPlans plans concurrently and fails when too many of them fail.
func RunLoadTest(ctx context.Context, client *e2etest.Client, numPlans int, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("num_plans", numPlans))

	var (
		successCount, failureCount int64
		slowest                    atomic.Int64
		rng                        = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // load data
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for i := range numPlans {
		profile := randomProfile(rng)
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			start := time.Now()
			if err := PlanScenario(scenarioCtx, client, profile); err != nil {
				atomic.AddInt64(&failureCount, 1)
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.Int("plan_index", i),
					slog.Any("error", err))
				return nil
			}
			elapsed := int64(time.Since(start))
			for {
				current := slowest.Load()
				if elapsed <= current || slowest.CompareAndSwap(current, elapsed) {
					break
				}
			}

			atomic.AddInt64(&successCount, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount) / float64(numPlans) * percentageMultiplier

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount),
		slog.Int64("failed", failureCount),
		slog.Float64("success_rate", successRate),
		slog.Duration("slowest", time.Duration(slowest.Load())))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}

	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < minArgsCount || len(os.Args) > maxArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> [plans]")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		numPlans = defaultNumPlans
		start    = time.Now()
		err      error
	)
	if len(os.Args) == maxArgsCount {
		if numPlans, err = strconv.Atoi(os.Args[2]); err != nil || numPlans <= 0 {
			logger.LogAttrs(ctx, slog.LevelError, "plans must be a positive number", slog.String("plans", os.Args[2]))
			os.Exit(1)
		}
	}

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}
	client := e2etest.NewClient(url)

	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	if err = RunLoadTest(ctx, client, numPlans, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)),
		slog.Int("plans", numPlans))
}
