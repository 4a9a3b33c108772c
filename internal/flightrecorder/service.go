// Package flightrecorder keeps a rolling execution trace and writes it to disk when a request runs too long.
package flightrecorder

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/myrjola/gymplanner/internal/errors"
)

const (
	defaultMinAge   = 30 * time.Second
	defaultMaxBytes = 16 * 1024 * 1024 // 16MB
	defaultCooldown = 10 * time.Minute
)

// Service wraps a runtime/trace flight recorder.
type Service struct {
	logger          *slog.Logger
	flightRecorder  *trace.FlightRecorder
	tracesDirectory string
	cooldown        time.Duration
	lastCapture     atomic.Int64 // Unix nanoseconds of the last capture.
}

// Config configures the flight recorder. Zero values select the defaults.
type Config struct {
	Logger          *slog.Logger
	MinAge          time.Duration
	MaxBytes        uint64
	Cooldown        time.Duration
	TracesDirectory string
}

// New creates the traces directory if needed and prepares a stopped recorder.
func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.TracesDirectory == "" {
		return nil, errors.New("traces directory is required")
	}

	stat, err := os.Stat(cfg.TracesDirectory)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = os.MkdirAll(cfg.TracesDirectory, 0o700); err != nil { //nolint:mnd // owner only
			return nil, errors.Wrap(err, "create traces directory")
		}
	case err != nil:
		return nil, errors.Wrap(err, "stat traces directory")
	case !stat.IsDir():
		return nil, errors.New("traces path is not a directory", slog.String("path", cfg.TracesDirectory))
	}

	return &Service{
		logger: cfg.Logger,
		flightRecorder: trace.NewFlightRecorder(trace.FlightRecorderConfig{
			MinAge:   cmp.Or(cfg.MinAge, defaultMinAge),
			MaxBytes: cmp.Or(cfg.MaxBytes, uint64(defaultMaxBytes)),
		}),
		tracesDirectory: cfg.TracesDirectory,
		cooldown:        cmp.Or(cfg.Cooldown, defaultCooldown),
		lastCapture:     atomic.Int64{},
	}, nil
}

// Start begins recording.
func (s *Service) Start(ctx context.Context) error {
	if err := s.flightRecorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("traces_directory", s.tracesDirectory),
		slog.Duration("cooldown", s.cooldown))
	return nil
}

// Stop ends recording.
func (s *Service) Stop(ctx context.Context) {
	s.flightRecorder.Stop()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// CaptureTrace writes the recorded window to <reason>-<timestamp>.trace in the traces directory.
// Captures within the cooldown of the previous one are skipped. It returns the written path or "" when skipped.
func (s *Service) CaptureTrace(ctx context.Context, reason string) string {
	now := time.Now()
	last := s.lastCapture.Load()
	if last > 0 && now.Sub(time.Unix(0, last)) < s.cooldown {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture due to cooldown",
			slog.Time("last_capture", time.Unix(0, last)))
		return ""
	}
	if !s.lastCapture.CompareAndSwap(last, now.UnixNano()) {
		return ""
	}

	filename := fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405.000"))
	fPath := filepath.Join(s.tracesDirectory, filename)

	file, err := os.Create(fPath)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to create trace file",
			slog.String("file", fPath), errors.SlogError(err))
		return ""
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to close trace file",
				slog.String("file", fPath), errors.SlogError(closeErr))
		}
	}()

	written, err := s.flightRecorder.WriteTo(file)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to write trace",
			slog.String("file", fPath), errors.SlogError(err))
		return ""
	}

	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace",
		slog.String("file", fPath), slog.String("reason", reason), slog.Int64("bytes", written))
	return fPath
}
