// Package workout generates personalized weekly workout plans from an exercise catalog and a user profile.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// Plan generation constants.
const (
	MinCompoundMovementMuscles = 2
	MinExercisesPerDay         = 5
	PrimaryExercisesPerDay     = 4
	MaxExerciseRepeatsPerWeek  = 2

	// Session time budget in minutes including transition buffers.
	MinSessionMinutes       = 45
	MaxSessionMinutes       = 90
	TransitionBufferMinutes = 2

	// singleDayMinExercises is how many exercises the single-day fallback takes even when they cover no
	// new muscle group.
	singleDayMinExercises = 3
)

var (
	// ErrEmptyCatalog is returned when there are no exercises to plan with.
	ErrEmptyCatalog = errors.New("no exercises available")
	// ErrCatalogLoad is returned when the exercise catalog source cannot be read.
	ErrCatalogLoad = errors.New("load exercise catalog")
	// ErrInvalidProfile is returned when a profile cannot be planned for.
	ErrInvalidProfile = errors.New("invalid profile")
)

// defaultRotation is the primary muscle rotation used when the profile sets no priorities.
//
//nolint:gochecknoglobals // read-only lookup table
var defaultRotation = []string{MuscleChest, MuscleBack, MuscleShoulders, MuscleArms, MuscleLegs, MuscleCore}

// plannerState is the cross-day accumulator of one plan generation.
type plannerState struct {
	// lastTrained maps a weekday to the muscle groups trained that day.
	lastTrained map[string][]string
	// exerciseCount maps an exercise name to how many times it has been used this week.
	exerciseCount map[string]int
}

func newPlannerState() *plannerState {
	return &plannerState{
		lastTrained:   make(map[string][]string),
		exerciseCount: make(map[string]int),
	}
}

// commit records a finalized session for the recency and repeat filters of later days.
func (s *plannerState) commit(session Session) {
	s.lastTrained[session.Day] = session.Muscles()
	for _, a := range session.Exercises {
		s.exerciseCount[a.Exercise.Name]++
	}
}

// Planner builds weekly plans for one user at a time.
//
// A Planner owns mutable state and its random source so it must not be shared between concurrent
// requests. The catalog is only read.
type Planner struct {
	catalog  []Exercise
	resolver *EquipmentResolver
	rng      *rand.Rand
	logger   *slog.Logger
	profile  Profile
	state    *plannerState
}

// NewPlanner constructs a planner over a non-empty catalog.
func NewPlanner(catalog []Exercise, resolver *EquipmentResolver, rng *rand.Rand, logger *slog.Logger) (*Planner, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if resolver == nil {
		resolver = NewEquipmentResolver(DefaultEquipmentCategories())
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // exercise shuffling is not security sensitive
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{
		catalog:  catalog,
		resolver: resolver,
		rng:      rng,
		logger:   logger,
		profile:  Profile{}, //nolint:exhaustruct // bound by SetUser
		state:    newPlannerState(),
	}, nil
}

// SetUser binds a profile to the planner and clears the state of any previous plan.
func (p *Planner) SetUser(profile Profile) {
	p.profile = profile
	p.state = newPlannerState()
}

// Plan generates the weekly plan for the bound profile.
//
// Days that yield no exercises are left out of the plan, so the plan may have fewer sessions than
// the profile has workout days.
func (p *Planner) Plan(ctx context.Context) (WeeklyPlan, error) {
	if len(p.catalog) == 0 {
		return WeeklyPlan{}, ErrEmptyCatalog
	}
	if len(p.profile.WorkoutDays) == 0 {
		return WeeklyPlan{}, fmt.Errorf("%w: no workout days", ErrInvalidProfile)
	}
	p.state = newPlannerState()

	var plan WeeklyPlan
	available := filterEquipment(p.catalog, p.resolver.Expand(p.profile.Equipment))
	if len(available) < MinExercisesPerDay {
		msg := fmt.Sprintf("only %d exercises match the available equipment", len(available))
		plan.Warnings = append(plan.Warnings, msg)
		p.logger.LogAttrs(ctx, slog.LevelWarn, "few exercises available with current equipment",
			slog.Int("available", len(available)))
	}

	if len(p.profile.WorkoutDays) == 1 {
		p.planSingleDay(ctx, &plan, available)
		return plan, nil
	}

	allMuscles, high := p.targetMuscles()
	composer := dayComposer{available: available, state: p.state, rng: p.rng}

	for i, day := range p.profile.WorkoutDays {
		primary := allMuscles[i%len(allMuscles)]
		if i >= len(allMuscles) {
			primary = high[i%len(high)]
		}
		secondary := slices.DeleteFunc(slices.Clone(allMuscles), func(m string) bool { return m == primary })

		exercises := composer.compose(dayRequest{
			day:       day,
			primary:   primary,
			secondary: secondary,
			goal:      p.profile.Goal,
		})
		if len(exercises) == 0 {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("no exercises available for %s", day))
			p.logger.LogAttrs(ctx, slog.LevelWarn, "dropping day without exercises", slog.String("day", day))
			continue
		}

		session := p.newSession(day, primary+" Day", exercises)
		p.state.commit(session)
		plan.Sessions = append(plan.Sessions, session)
		p.logger.LogAttrs(ctx, slog.LevelDebug, "composed day",
			slog.String("day", day),
			slog.String("primary", primary),
			slog.Int("exercises", len(exercises)),
			slog.Int("duration_minutes", session.DurationMinutes))
	}

	return plan, nil
}

// planSingleDay appends the compound-focused session for profiles with one workout day.
func (p *Planner) planSingleDay(ctx context.Context, plan *WeeklyPlan, available []Exercise) {
	day := p.profile.WorkoutDays[0]
	selected := p.composeSingleDay(available)
	if len(selected) == 0 {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("no exercises available for %s", day))
		p.logger.LogAttrs(ctx, slog.LevelWarn, "dropping day without exercises", slog.String("day", day))
		return
	}

	exercises := make([]Assignment, 0, len(selected))
	for _, ex := range selected {
		exercises = append(exercises, assign(ex, p.profile.Goal))
	}
	session := p.newSession(day, DeriveName(exercises), exercises)
	p.state.commit(session)
	plan.Sessions = append(plan.Sessions, session)
	p.logger.LogAttrs(ctx, slog.LevelDebug, "composed single day",
		slog.String("day", day),
		slog.String("name", session.Name),
		slog.Int("exercises", len(exercises)))
}

// composeSingleDay prefers compound exercises and falls back to a greedy pick that widens muscle coverage.
func (p *Planner) composeSingleDay(available []Exercise) []Exercise {
	compounds := shuffle(p.rng, filterCompounds(available))
	if len(compounds) > 0 {
		return compounds[:min(MinExercisesPerDay, len(compounds))]
	}

	var (
		selected []Exercise
		covered  = make(map[string]struct{})
	)
	for _, ex := range shuffle(p.rng, available) {
		if len(selected) >= MinExercisesPerDay {
			break
		}
		addsNew := false
		for _, m := range ex.MuscleGroups {
			if _, ok := covered[m]; !ok {
				addsNew = true
			}
		}
		if !addsNew && len(selected) >= singleDayMinExercises {
			continue
		}
		for _, m := range ex.MuscleGroups {
			covered[m] = struct{}{}
		}
		selected = append(selected, ex)
	}
	return selected
}

// targetMuscles returns the week's target muscles flattened High, Medium, Low together with the
// high-priority muscles used to cycle primaries once every target had a day.
func (p *Planner) targetMuscles() ([]string, []string) {
	high := p.profile.musclesByPriority(PriorityHigh)
	var all []string
	all = append(all, high...)
	all = append(all, p.profile.musclesByPriority(PriorityMedium)...)
	all = append(all, p.profile.musclesByPriority(PriorityLow)...)

	if len(all) == 0 {
		all = slices.Clone(defaultRotation)
	}
	if len(high) == 0 {
		high = all
	}
	return all, high
}

// newSession classifies the exercises and computes the session stats.
func (p *Planner) newSession(day, name string, exercises []Assignment) Session {
	sessionType := ClassifyType(exercises)
	duration, calories := sessionStats(exercises, sessionType, p.profile.WeightKg)
	return Session{
		Day:             day,
		Name:            name,
		Exercises:       exercises,
		Type:            sessionType,
		DurationMinutes: duration,
		Calories:        calories,
	}
}
