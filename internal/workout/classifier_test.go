package workout_test

import (
	"testing"

	"github.com/myrjola/gymplanner/internal/workout"
)

func assignments(muscleGroups ...[]string) []workout.Assignment {
	out := make([]workout.Assignment, 0, len(muscleGroups))
	for _, mg := range muscleGroups {
		out = append(out, workout.Assignment{Exercise: workout.Exercise{MuscleGroups: mg}, DurationMinutes: 10})
	}
	return out
}

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name      string
		exercises []workout.Assignment
		want      workout.SessionType
	}{
		{
			name:      "cardio only",
			exercises: assignments([]string{"Cardio"}, []string{"Cardio"}),
			want:      workout.SessionTypeCardio,
		},
		{
			name:      "cardio and strength",
			exercises: assignments([]string{"Cardio"}, []string{"Chest"}),
			want:      workout.SessionTypeMixed,
		},
		{
			name:      "cardio tag on a strength movement",
			exercises: assignments([]string{"Cardio", "Quads"}, []string{"Chest"}, []string{"Back"}),
			want:      workout.SessionTypeMixed,
		},
		{
			name: "upper and lower body with four groups",
			exercises: assignments(
				[]string{"Chest", "Triceps"}, []string{"Quads"}, []string{"Hamstrings"}, []string{"Back"},
			),
			want: workout.SessionTypeFullBody,
		},
		{
			name:      "upper and lower body with three groups",
			exercises: assignments([]string{"Chest"}, []string{"Quads"}, []string{"Glutes"}),
			want:      workout.SessionTypeStrength,
		},
		{
			name:      "upper body only",
			exercises: assignments([]string{"Chest"}, []string{"Back"}, []string{"Shoulders"}, []string{"Biceps"}),
			want:      workout.SessionTypeStrength,
		},
		{
			name:      "empty",
			exercises: nil,
			want:      workout.SessionTypeStrength,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.ClassifyType(tt.exercises); got != tt.want {
				t.Errorf("ClassifyType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name      string
		exercises []workout.Assignment
		want      string
	}{
		{
			name:      "cardio with several strength groups",
			exercises: assignments([]string{"Cardio"}, []string{"Chest"}, []string{"Back"}, []string{"Core"}),
			want:      "Full Body + Cardio",
		},
		{
			name:      "cardio with few strength groups",
			exercises: assignments([]string{"Cardio"}, []string{"Chest"}),
			want:      "Cardio Day",
		},
		{
			name:      "anatomical tags roll up",
			exercises: assignments([]string{"Biceps"}, []string{"Triceps"}, []string{"Chest"}),
			want:      "Arm Day",
		},
		{
			name:      "legs roll up from quads and hamstrings",
			exercises: assignments([]string{"Quads"}, []string{"Hamstrings"}, []string{"Glutes"}),
			want:      "Leg Day",
		},
		{
			name:      "ties go to the first group in table order",
			exercises: assignments([]string{"Core"}, []string{"Back"}, []string{"Chest"}),
			want:      "Chest Day",
		},
		{
			name:      "unmapped dominant group",
			exercises: assignments([]string{"Calves"}, []string{"Calves"}, []string{"Chest"}),
			want:      "Strength Training",
		},
		{
			name:      "empty",
			exercises: nil,
			want:      "Strength Training",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workout.DeriveName(tt.exercises); got != tt.want {
				t.Errorf("DeriveName() = %q, want %q", got, tt.want)
			}
		})
	}
}
