package workout

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed exercise_database.json
var defaultCatalogJSON []byte

// CatalogFormat is the encoding of a catalog source.
type CatalogFormat string

const (
	CatalogFormatJSON CatalogFormat = "json"
	CatalogFormatYAML CatalogFormat = "yaml"
)

// catalogFormatFromPath infers the format from the file extension.
func catalogFormatFromPath(path string) (CatalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return CatalogFormatJSON, nil
	case ".yaml", ".yml":
		return CatalogFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported catalog file extension %q", ErrCatalogLoad, filepath.Ext(path))
	}
}

// LoadCatalogFile reads an exercise catalog from a JSON or YAML file.
func LoadCatalogFile(ctx context.Context, path string, logger *slog.Logger) ([]Exercise, error) {
	format, err := catalogFormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadCatalog(ctx, f, format, logger)
}

// LoadCatalog decodes an array of exercise records.
//
// Records without a name, muscle groups or equipment are skipped with a warning, as are repeated names.
// A malformed source or one without a single valid record is an error wrapping ErrCatalogLoad.
func LoadCatalog(ctx context.Context, r io.Reader, format CatalogFormat, logger *slog.Logger) ([]Exercise, error) {
	var records []Exercise
	switch format {
	case CatalogFormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: decode json: %w", ErrCatalogLoad, err)
		}
	case CatalogFormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decode yaml: %w", ErrCatalogLoad, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrCatalogLoad, format)
	}

	catalog := make([]Exercise, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, ex := range records {
		ex.Name = strings.TrimSpace(ex.Name)
		if reason := invalidRecordReason(ex); reason != "" {
			logger.LogAttrs(ctx, slog.LevelWarn, "skipping catalog record",
				slog.Int("index", i), slog.String("name", ex.Name), slog.String("reason", reason))
			continue
		}
		if _, ok := seen[ex.Name]; ok {
			logger.LogAttrs(ctx, slog.LevelWarn, "skipping catalog record",
				slog.Int("index", i), slog.String("name", ex.Name), slog.String("reason", "duplicate name"))
			continue
		}
		seen[ex.Name] = struct{}{}
		catalog = append(catalog, ex)
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, ErrEmptyCatalog)
	}
	return catalog, nil
}

func invalidRecordReason(ex Exercise) string {
	switch {
	case ex.Name == "":
		return "missing exercise name"
	case len(ex.MuscleGroups) == 0:
		return "missing muscle groups"
	case strings.TrimSpace(ex.Equipment) == "":
		return "missing equipment"
	default:
		return ""
	}
}

// DefaultCatalog returns the built-in exercise catalog.
func DefaultCatalog() []Exercise {
	catalog, err := LoadCatalog(context.Background(), bytes.NewReader(defaultCatalogJSON), CatalogFormatJSON,
		slog.New(slog.DiscardHandler))
	if err != nil {
		panic(fmt.Sprintf("embedded exercise_database.json is invalid: %v", err))
	}
	return catalog
}
