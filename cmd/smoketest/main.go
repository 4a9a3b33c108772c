package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/myrjola/gymplanner/internal/e2etest"
	"github.com/myrjola/gymplanner/internal/logging"
	"github.com/myrjola/gymplanner/internal/testhelpers"
)

type exerciseCount struct {
	Count int `json:"count"`
}

type planSummary struct {
	ID       string `json:"id"`
	Sessions []struct {
		Day       string `json:"day"`
		Exercises []struct {
			Exercise string `json:"exercise"`
		} `json:"exercises"`
	} `json:"sessions"`
}

// TestPlanning checks that the catalog is loaded and that a default profile gets a three day plan.
func TestPlanning(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	var exercises exerciseCount
	status, err := client.GetJSON(ctx, "/api/exercises", &exercises)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}
	if status != http.StatusOK || exercises.Count == 0 {
		return fmt.Errorf("unexpected exercise listing: status %d, count %d", status, exercises.Count)
	}

	var plan planSummary
	if status, err = client.PostJSON(ctx, "/api/plans", `{}`, &plan); err != nil {
		return fmt.Errorf("generate plan: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected plan status: %d", status)
	}
	if len(plan.Sessions) != 3 { //nolint:mnd // default profile trains three days.
		return fmt.Errorf("expected 3 sessions for the default profile, got %d", len(plan.Sessions))
	}
	for _, s := range plan.Sessions {
		if len(s.Exercises) == 0 {
			return fmt.Errorf("session on %s has no exercises", s.Day)
		}
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home page: %w", err)
	}
	if _, err = e2etest.FindForm(doc, "/plans"); err != nil {
		return errors.Join(errors.New("home page has no plan form"), err)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		err      error
		start    = time.Now()
	)
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
	if err = TestPlanning(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing planning", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
