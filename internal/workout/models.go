package workout

import (
	"slices"
	"strings"
	"time"
)

// Well-known muscle group tags used by the catalog and the profile priorities.
const (
	MuscleChest      = "Chest"
	MuscleBack       = "Back"
	MuscleShoulders  = "Shoulders"
	MuscleArms       = "Arms"
	MuscleBiceps     = "Biceps"
	MuscleTriceps    = "Triceps"
	MuscleLegs       = "Legs"
	MuscleQuads      = "Quads"
	MuscleHamstrings = "Hamstrings"
	MuscleGlutes     = "Glutes"
	MuscleCalves     = "Calves"
	MuscleCore       = "Core"
	MuscleCardio     = "Cardio"
)

// EquipmentBodyweight is the requirement every user can satisfy.
const EquipmentBodyweight = "Bodyweight"

// Exercise is an immutable catalog entry, e.g. Bench Press or Plank.
type Exercise struct {
	Name         string   `json:"exercise" yaml:"exercise"`
	MuscleGroups []string `json:"muscle_groups" yaml:"muscle_groups"`
	// Equipment is a free-text requirement such as "Barbell + Bench".
	Equipment string `json:"equipment" yaml:"equipment"`
	// Compound marks exercises flagged compound by the catalog even when they list a single muscle group.
	Compound            bool   `json:"is_compound,omitempty" yaml:"is_compound,omitempty"`
	EquipmentCategory   string `json:"equipment_category,omitempty" yaml:"equipment_category,omitempty"`
	DescriptionMarkdown string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsCompound reports whether the exercise trains two or more muscle groups or is flagged compound.
func (e Exercise) IsCompound() bool {
	return e.Compound || len(e.MuscleGroups) >= MinCompoundMovementMuscles
}

// targetsAny reports whether the exercise trains at least one of the given muscles.
func (e Exercise) targetsAny(muscles []string) bool {
	for _, m := range e.MuscleGroups {
		if slices.Contains(muscles, m) {
			return true
		}
	}
	return false
}

// Assignment is an exercise selected for a day together with its assigned duration.
type Assignment struct {
	Exercise        Exercise
	DurationMinutes int
}

// Priority is how much a user wants to focus a muscle group.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// ParsePriority parses "High", "Medium" or "Low". Unknown values fall back to PriorityMedium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Goal is the training-intensity tier chosen by the user.
type Goal int

const (
	GoalEndurance Goal = iota + 1
	GoalLightBuild
	GoalMuscleBuild
	GoalStrengthBuild
	GoalStrength
)

// Goals lists the goal tiers from lightest to heaviest.
func Goals() []Goal {
	return []Goal{GoalEndurance, GoalLightBuild, GoalMuscleBuild, GoalStrengthBuild, GoalStrength}
}

// GoalFromIntensity maps a 1-10 training intensity to a goal tier.
func GoalFromIntensity(intensity int) Goal {
	switch {
	case intensity <= 2: //nolint:mnd // intensity bands
		return GoalEndurance
	case intensity <= 4: //nolint:mnd // intensity bands
		return GoalLightBuild
	case intensity <= 6: //nolint:mnd // intensity bands
		return GoalMuscleBuild
	case intensity <= 8: //nolint:mnd // intensity bands
		return GoalStrengthBuild
	default:
		return GoalStrength
	}
}

func (g Goal) String() string {
	switch g {
	case GoalEndurance:
		return "Endurance"
	case GoalLightBuild:
		return "Light Build"
	case GoalMuscleBuild:
		return "Muscle Build"
	case GoalStrengthBuild:
		return "Strength Build"
	case GoalStrength:
		return "Strength"
	default:
		return "Unknown"
	}
}

// Description summarises the rep, set and rest scheme of the goal.
func (g Goal) Description() string {
	switch g {
	case GoalEndurance:
		return "High reps, 3-4 sets, 30-60sec rest"
	case GoalLightBuild:
		return "12-15 reps, 3-4 sets, 60-90sec rest"
	case GoalMuscleBuild:
		return "8-12 reps, 3-4 sets, 90-120sec rest"
	case GoalStrengthBuild:
		return "6-10 reps, 2-3 sets, 120-180sec rest"
	case GoalStrength:
		return "4-6 reps, 2 sets, 3-4min rest"
	default:
		return "Unknown goal"
	}
}

// representativeIntensity is the intensity used for activity banding when the profile has none.
func (g Goal) representativeIntensity() int {
	switch g {
	case GoalEndurance:
		return 2 //nolint:mnd // upper bound of the endurance band
	case GoalLightBuild:
		return 4 //nolint:mnd // upper bound of the light build band
	case GoalMuscleBuild:
		return 6 //nolint:mnd // upper bound of the muscle build band
	case GoalStrengthBuild:
		return 8 //nolint:mnd // upper bound of the strength build band
	case GoalStrength:
		return 10 //nolint:mnd // top of the scale
	default:
		return 4 //nolint:mnd // same as light build
	}
}

// Profile is the constraint bundle that drives plan generation. It is not modified by the planner.
type Profile struct {
	HeightCm float64
	WeightKg float64
	Age      int
	Gender   string
	// WorkoutDays are weekday names in the order the user picked them.
	WorkoutDays []string
	Equipment   []string
	Priorities  map[string]Priority
	Goal        Goal
	// Intensity is the optional 1-10 training intensity. Zero means derive it from Goal.
	Intensity int
}

// musclesByPriority returns the muscles of the given tier ordered by name.
func (p Profile) musclesByPriority(level Priority) []string {
	var muscles []string
	for muscle, l := range p.Priorities {
		if l == level {
			muscles = append(muscles, muscle)
		}
	}
	slices.Sort(muscles)
	return muscles
}

// SessionType is the inferred character of a session.
type SessionType string

const (
	SessionTypeStrength SessionType = "Strength"
	SessionTypeCardio   SessionType = "Cardio"
	SessionTypeMixed    SessionType = "Mixed"
	SessionTypeFullBody SessionType = "Full Body"
)

// Session is one day of the weekly plan.
type Session struct {
	Day       string
	Name      string
	Exercises []Assignment
	Type      SessionType
	// DurationMinutes is the sum of the assigned exercise durations without transition buffers.
	DurationMinutes int
	Calories        int
}

// Muscles returns the distinct muscle groups trained in the session in first-seen order.
func (s Session) Muscles() []string {
	var muscles []string
	for _, a := range s.Exercises {
		for _, m := range a.Exercise.MuscleGroups {
			if !slices.Contains(muscles, m) {
				muscles = append(muscles, m)
			}
		}
	}
	return muscles
}

// WeeklyPlan is the ordered list of generated sessions.
type WeeklyPlan struct {
	Sessions []Session
	// Warnings describe degraded coverage, e.g. too little equipment.
	Warnings []string
}

// TotalCalories sums the calories of all sessions.
func (wp WeeklyPlan) TotalCalories() int {
	total := 0
	for _, s := range wp.Sessions {
		total += s.Calories
	}
	return total
}

// Analysis holds body metrics derived from a profile.
type Analysis struct {
	BMI                float64
	BMIStatus          string
	BMR                float64
	DailyCalories      int
	WeeklyCalorieBurn  int
	ActivityMultiplier float64
	TrainingIntensity  int
	GoalDescription    string
}

// Plan is a generated weekly plan as returned by the Service.
type Plan struct {
	ID            string
	CreatedAt     time.Time
	Sessions      []Session
	TotalCalories int
	Warnings      []string
	Analysis      Analysis
}
