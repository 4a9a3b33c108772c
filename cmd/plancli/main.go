// Command plancli generates weekly workout plans for profile files and prints them as text.
//
// Usage:
//
//	plancli [-catalog catalog.yaml] [-equipment equipment.yaml] [-seed 42] [-v] profile.json [profile.yaml ...]
//
// Without profile files a single plan is generated for the default profile.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/myrjola/gymplanner/internal/errors"
	"github.com/myrjola/gymplanner/internal/logging"
	"github.com/myrjola/gymplanner/internal/workout"
	"gopkg.in/yaml.v3"
)

type options struct {
	catalogPath   string
	equipmentPath string
	seed          uint64
	verbose       bool
	profilePaths  []string
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("plancli", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.catalogPath, "catalog", "", "JSON or YAML exercise catalog (default: built-in catalog)")
	fs.StringVar(&opts.equipmentPath, "equipment", "", "YAML equipment-category table (default: built-in table)")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible plans (0 picks a random seed)")
	fs.BoolVar(&opts.verbose, "v", false, "log planner decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("parse flags: %w", err)
	}
	opts.profilePaths = fs.Args()
	return opts, nil
}

// namedProfile is a profile together with where it came from.
type namedProfile struct {
	name    string
	profile workout.Profile
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(stderr, level, nil)

	catalog := workout.DefaultCatalog()
	if opts.catalogPath != "" {
		if catalog, err = workout.LoadCatalogFile(ctx, opts.catalogPath, logger); err != nil {
			return errors.Wrap(err, "load catalog", slog.String("path", opts.catalogPath))
		}
	}
	categories := workout.DefaultEquipmentCategories()
	if opts.equipmentPath != "" {
		if categories, err = readEquipmentCategories(opts.equipmentPath); err != nil {
			return errors.Wrap(err, "load equipment categories", slog.String("path", opts.equipmentPath))
		}
	}

	profiles, err := readProfiles(opts.profilePaths)
	if err != nil {
		return err
	}
	input := make([]workout.Profile, 0, len(profiles))
	for _, p := range profiles {
		input = append(input, p.profile)
	}

	svc := workout.NewService(catalog, categories, logger, opts.seed)
	plans, err := svc.GeneratePlans(ctx, input)
	if err != nil {
		return errors.Wrap(err, "generate plans")
	}

	var buf bytes.Buffer
	for i, plan := range plans {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeReport(&buf, profiles[i].name, profiles[i].profile, plan)
	}
	if _, err = buf.WriteTo(stdout); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}

func readProfiles(paths []string) ([]namedProfile, error) {
	if len(paths) == 0 {
		profile, err := workout.ProfileRequest{}.Profile()
		if err != nil {
			return nil, errors.Wrap(err, "default profile")
		}
		return []namedProfile{{name: "default profile", profile: profile}}, nil
	}
	profiles := make([]namedProfile, 0, len(paths))
	for _, path := range paths {
		req, err := readProfileRequest(path)
		if err != nil {
			return nil, errors.Wrap(err, "read profile", slog.String("path", path))
		}
		profile, err := req.Profile()
		if err != nil {
			return nil, errors.Wrap(err, "validate profile", slog.String("path", path))
		}
		profiles = append(profiles, namedProfile{name: filepath.Base(path), profile: profile})
	}
	return profiles, nil
}

// readProfileRequest decodes a JSON or YAML profile file chosen by extension.
func readProfileRequest(path string) (workout.ProfileRequest, error) {
	var req workout.ProfileRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, errors.Wrap(err, "read file")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err = json.Unmarshal(data, &req); err != nil {
			return req, errors.Wrap(err, "decode JSON")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, errors.Wrap(err, "decode YAML")
		}
	default:
		return req, errors.New("unsupported profile format", slog.String("ext", filepath.Ext(path)))
	}
	return req, nil
}

func readEquipmentCategories(path string) ([]workout.EquipmentCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer func() { _ = f.Close() }()
	categories, err := workout.LoadEquipmentCategories(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode file")
	}
	return categories, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := logging.NewLogger(os.Stderr, slog.LevelInfo, nil)

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.LogAttrs(ctx, slog.LevelError, "failure generating plans", errors.SlogError(err))
		cancel()
		os.Exit(1)
	}
}
