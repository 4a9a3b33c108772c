package workout

import (
	"fmt"
	"maps"
	"math"
	"strings"
)

// Profile defaults applied by ProfileRequest.Profile to fields left out of a request.
const (
	DefaultHeightCm = 170
	DefaultWeightKg = 70
	DefaultAge      = 25
	DefaultGender   = "Male"
	DefaultGoal     = GoalLightBuild
	maxIntensity    = 10
)

// Accepted body metric ranges. Values outside them make BMI and calorie estimates meaningless.
const (
	MinHeightCm = 50
	MaxHeightCm = 300
	MinWeightKg = 20
	MaxWeightKg = 500
	MinAge      = 1
	MaxAge      = 120
)

// checkRange rejects non-finite values and values outside [lo, hi].
func checkRange(field string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidProfile, field)
	}
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %g outside %g-%g", ErrInvalidProfile, field, v, lo, hi)
	}
	return nil
}

// DefaultWorkoutDays are used when a request names no days.
func DefaultWorkoutDays() []string {
	return []string{"Monday", "Wednesday", "Friday"}
}

// PriorityMuscles lists the muscle groups a user can prioritise, in display order.
func PriorityMuscles() []string {
	return []string{
		MuscleChest, MuscleBack, MuscleShoulders, MuscleArms,
		MuscleLegs, MuscleGlutes, MuscleCore, MuscleCardio,
	}
}

// DefaultPriorities are used when a request sets no muscle priorities.
func DefaultPriorities() map[string]Priority {
	priorities := make(map[string]Priority)
	for _, muscle := range PriorityMuscles() {
		priorities[muscle] = PriorityMedium
	}
	return priorities
}

// ProfileRequest is a partially filled profile as submitted by a client or read from a profile file.
type ProfileRequest struct {
	Height    *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Weight    *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Age       *int     `json:"age,omitempty" yaml:"age,omitempty"`
	Gender    string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	Intensity int      `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	// Goal is a goal name such as "Muscle Build". Intensity takes precedence when both are set.
	Goal                  string            `json:"goal,omitempty" yaml:"goal,omitempty"`
	AvailableDays         []string          `json:"availableDays,omitempty" yaml:"available_days,omitempty"`
	AvailableEquipment    []string          `json:"availableEquipment,omitempty" yaml:"available_equipment,omitempty"`
	MuscleGroupPriorities map[string]string `json:"muscleGroupPriorities,omitempty" yaml:"muscle_group_priorities,omitempty"`
}

// Profile validates the request and fills in the defaults of missing fields.
func (r ProfileRequest) Profile() (Profile, error) {
	p := Profile{
		HeightCm:    DefaultHeightCm,
		WeightKg:    DefaultWeightKg,
		Age:         DefaultAge,
		Gender:      DefaultGender,
		WorkoutDays: DefaultWorkoutDays(),
		Equipment:   []string{EquipmentBodyweight},
		Priorities:  DefaultPriorities(),
		Goal:        DefaultGoal,
		Intensity:   0,
	}

	if r.Height != nil {
		if err := checkRange("height", *r.Height, MinHeightCm, MaxHeightCm); err != nil {
			return Profile{}, err
		}
		p.HeightCm = *r.Height
	}
	if r.Weight != nil {
		if err := checkRange("weight", *r.Weight, MinWeightKg, MaxWeightKg); err != nil {
			return Profile{}, err
		}
		p.WeightKg = *r.Weight
	}
	if r.Age != nil {
		if *r.Age < MinAge || *r.Age > MaxAge {
			return Profile{}, fmt.Errorf("%w: age %d outside %d-%d", ErrInvalidProfile, *r.Age, MinAge, MaxAge)
		}
		p.Age = *r.Age
	}
	if g := strings.TrimSpace(r.Gender); g != "" {
		p.Gender = g
	}

	switch {
	case r.Intensity < 0 || r.Intensity > maxIntensity:
		return Profile{}, fmt.Errorf("%w: intensity %d outside 1-10", ErrInvalidProfile, r.Intensity)
	case r.Intensity > 0:
		p.Intensity = r.Intensity
		p.Goal = GoalFromIntensity(r.Intensity)
	case strings.TrimSpace(r.Goal) != "":
		goal, err := ParseGoal(r.Goal)
		if err != nil {
			return Profile{}, err
		}
		p.Goal = goal
	}

	if days := nonEmpty(r.AvailableDays); len(days) > 0 {
		p.WorkoutDays = days
	}
	if equipment := nonEmpty(r.AvailableEquipment); len(equipment) > 0 {
		p.Equipment = equipment
	}

	priorities := make(map[string]Priority, len(r.MuscleGroupPriorities))
	for muscle, level := range r.MuscleGroupPriorities {
		muscle = strings.TrimSpace(muscle)
		if muscle == "" || strings.TrimSpace(level) == "" {
			continue
		}
		priorities[muscle] = ParsePriority(level)
	}
	if len(priorities) > 0 {
		p.Priorities = priorities
	}

	return p, nil
}

// ParseGoal parses a goal name case-insensitively, ignoring spaces, e.g. "Strength Build" or "strengthbuild".
func ParseGoal(s string) (Goal, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for g := GoalEndurance; g <= GoalStrength; g++ {
		if strings.ToLower(strings.ReplaceAll(g.String(), " ", "")) == key {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, s)
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.WorkoutDays = append([]string(nil), p.WorkoutDays...)
	c.Equipment = append([]string(nil), p.Equipment...)
	c.Priorities = maps.Clone(p.Priorities)
	return c
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
