package workout_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplanner/internal/ptr"
	"github.com/myrjola/gymplanner/internal/workout"
)

func TestProfileRequest_Profile(t *testing.T) {
	defaults := workout.Profile{
		HeightCm:    workout.DefaultHeightCm,
		WeightKg:    workout.DefaultWeightKg,
		Age:         workout.DefaultAge,
		Gender:      workout.DefaultGender,
		WorkoutDays: workout.DefaultWorkoutDays(),
		Equipment:   []string{workout.EquipmentBodyweight},
		Priorities:  workout.DefaultPriorities(),
		Goal:        workout.GoalLightBuild,
		Intensity:   0,
	}

	tests := []struct {
		name    string
		req     workout.ProfileRequest
		want    func() workout.Profile
		wantErr error
	}{
		{
			name: "empty request gets defaults",
			req:  workout.ProfileRequest{},
			want: func() workout.Profile { return defaults },
		},
		{
			name: "explicit fields",
			req: workout.ProfileRequest{
				Height:                ptr.Ref(182.5),
				Weight:                ptr.Ref(90.0),
				Age:                   ptr.Ref(41),
				Gender:                "Female",
				Intensity:             7,
				AvailableDays:         []string{"Tuesday", " ", "Saturday"},
				AvailableEquipment:    []string{"Free Weights"},
				MuscleGroupPriorities: map[string]string{"Chest": "High", "Back": "low", "Core": "", "Legs": "whatever"},
			},
			want: func() workout.Profile {
				return workout.Profile{
					HeightCm:    182.5,
					WeightKg:    90,
					Age:         41,
					Gender:      "Female",
					WorkoutDays: []string{"Tuesday", "Saturday"},
					Equipment:   []string{"Free Weights"},
					Priorities: map[string]workout.Priority{
						"Chest": workout.PriorityHigh,
						"Back":  workout.PriorityLow,
						"Legs":  workout.PriorityMedium,
					},
					Goal:      workout.GoalStrengthBuild,
					Intensity: 7,
				}
			},
		},
		{
			name: "goal by name",
			req:  workout.ProfileRequest{Goal: "strength build"},
			want: func() workout.Profile {
				p := defaults
				p.Goal = workout.GoalStrengthBuild
				return p
			},
		},
		{
			name:    "unknown goal",
			req:     workout.ProfileRequest{Goal: "bulk"},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "intensity out of range",
			req:     workout.ProfileRequest{Intensity: 11},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "non-positive weight",
			req:     workout.ProfileRequest{Weight: ptr.Ref(0.0)},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "NaN height",
			req:     workout.ProfileRequest{Height: ptr.Ref(math.NaN())},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "infinite weight",
			req:     workout.ProfileRequest{Weight: ptr.Ref(math.Inf(1))},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "tiny height",
			req:     workout.ProfileRequest{Height: ptr.Ref(1e-300)},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "huge weight",
			req:     workout.ProfileRequest{Weight: ptr.Ref(1e308)},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name:    "age above range",
			req:     workout.ProfileRequest{Age: ptr.Ref(121)},
			wantErr: workout.ErrInvalidProfile,
		},
		{
			name: "range bounds are accepted",
			req: workout.ProfileRequest{
				Height: ptr.Ref(float64(workout.MaxHeightCm)),
				Weight: ptr.Ref(float64(workout.MinWeightKg)),
				Age:    ptr.Ref(workout.MaxAge),
			},
			want: func() workout.Profile {
				p := defaults
				p.HeightCm = workout.MaxHeightCm
				p.WeightKg = workout.MinWeightKg
				p.Age = workout.MaxAge
				return p
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Profile()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Profile() error = %v, want %v", err, tt.wantErr)
			}
			if tt.want == nil {
				return
			}
			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("Profile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGoalFromIntensity(t *testing.T) {
	want := map[int]workout.Goal{
		1: workout.GoalEndurance, 2: workout.GoalEndurance,
		3: workout.GoalLightBuild, 4: workout.GoalLightBuild,
		5: workout.GoalMuscleBuild, 6: workout.GoalMuscleBuild,
		7: workout.GoalStrengthBuild, 8: workout.GoalStrengthBuild,
		9: workout.GoalStrength, 10: workout.GoalStrength,
	}
	for intensity, goal := range want {
		if got := workout.GoalFromIntensity(intensity); got != goal {
			t.Errorf("GoalFromIntensity(%d) = %s, want %s", intensity, got, goal)
		}
	}
}

func TestExerciseMinutes(t *testing.T) {
	want := map[workout.Goal]int{
		workout.GoalEndurance:     9,
		workout.GoalLightBuild:    10,
		workout.GoalMuscleBuild:   11,
		workout.GoalStrengthBuild: 13,
		workout.GoalStrength:      12,
		workout.Goal(0):           10,
	}
	for goal, minutes := range want {
		if got := workout.ExerciseMinutes(goal); got != minutes {
			t.Errorf("ExerciseMinutes(%s) = %d, want %d", goal, got, minutes)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]workout.Priority{
		"High": workout.PriorityHigh, " high ": workout.PriorityHigh,
		"Low": workout.PriorityLow, "Medium": workout.PriorityMedium, "unknown": workout.PriorityMedium,
	} {
		if got := workout.ParsePriority(in); got != want {
			t.Errorf("ParsePriority(%q) = %s, want %s", in, got, want)
		}
	}
}
