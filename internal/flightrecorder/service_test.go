package flightrecorder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myrjola/gymplanner/internal/flightrecorder"
	"github.com/myrjola/gymplanner/internal/testhelpers"
)

func TestNew(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "traces")
		if _, err := flightrecorder.New(flightrecorder.Config{Logger: logger, TracesDirectory: dir}); err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
			t.Errorf("Expected traces directory to exist, stat error %v", err)
		}
	})

	t.Run("rejects file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := flightrecorder.New(flightrecorder.Config{Logger: logger, TracesDirectory: path}); err == nil {
			t.Error("Expected error for a file path")
		}
	})

	t.Run("requires directory", func(t *testing.T) {
		if _, err := flightrecorder.New(flightrecorder.Config{Logger: logger}); err == nil {
			t.Error("Expected error without traces directory")
		}
	})
}

func TestService_CaptureTrace(t *testing.T) {
	ctx := t.Context()
	dir := t.TempDir()
	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		TracesDirectory: dir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer service.Stop(ctx)

	path := service.CaptureTrace(ctx, "timeout")
	if path == "" {
		t.Fatal("Expected a trace to be written")
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "timeout-") || !strings.HasSuffix(name, ".trace") {
		t.Errorf("Unexpected trace file name %q", name)
	}
	if stat, err := os.Stat(path); err != nil || stat.Size() == 0 {
		t.Errorf("Expected non-empty trace file, stat error %v", err)
	}

	if again := service.CaptureTrace(ctx, "timeout"); again != "" {
		t.Errorf("Expected capture within cooldown to be skipped, got %q", again)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected one trace file, got %d", len(entries))
	}
}
