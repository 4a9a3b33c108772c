package main

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/myrjola/gymplanner/internal/workout"
)

// writeReport prints a plan in the layout of a printed training sheet.
func writeReport(buf *bytes.Buffer, name string, profile workout.Profile, plan workout.Plan) {
	fmt.Fprintf(buf, "=== %s ===\n", name)

	fmt.Fprintf(buf, "Age: %d, Gender: %s\n", profile.Age, profile.Gender)
	fmt.Fprintf(buf, "Height: %.0f cm, Weight: %.1f kg, BMI: %.1f\n",
		profile.HeightCm, profile.WeightKg, plan.Analysis.BMI)
	fmt.Fprintf(buf, "Daily calories: %d\n", plan.Analysis.DailyCalories)
	fmt.Fprintf(buf, "Workout days: %s\n", strings.Join(profile.WorkoutDays, ", "))
	fmt.Fprintf(buf, "Goal: %s\n", profile.Goal)
	if len(profile.Priorities) > 0 {
		muscles := slices.Sorted(maps.Keys(profile.Priorities))
		parts := make([]string, 0, len(muscles))
		for _, m := range muscles {
			parts = append(parts, m+"="+profile.Priorities[m].String())
		}
		fmt.Fprintf(buf, "Priorities: %s\n", strings.Join(parts, ", "))
	}

	for _, s := range plan.Sessions {
		fmt.Fprintf(buf, "\n%s: %s\n", s.Day, s.Name)
		fmt.Fprintf(buf, "  Type: %s, %d min, %d kcal\n", s.Type, s.DurationMinutes, s.Calories)
		for _, a := range s.Exercises {
			fmt.Fprintf(buf, "  - %s (%d min) [%s]\n",
				a.Exercise.Name, a.DurationMinutes, strings.Join(a.Exercise.MuscleGroups, ", "))
		}
	}

	if len(plan.Warnings) > 0 {
		buf.WriteString("\nWarnings:\n")
		for _, w := range plan.Warnings {
			fmt.Fprintf(buf, "  ! %s\n", w)
		}
	}

	a := plan.Analysis
	buf.WriteString("\nAnalysis:\n")
	fmt.Fprintf(buf, "  BMI: %.1f (%s)\n", a.BMI, a.BMIStatus)
	fmt.Fprintf(buf, "  BMR: %.0f kcal\n", a.BMR)
	fmt.Fprintf(buf, "  Daily calories: %d kcal\n", a.DailyCalories)
	fmt.Fprintf(buf, "  Estimated weekly burn: %d kcal\n", a.WeeklyCalorieBurn)
	fmt.Fprintf(buf, "  Goal: %s\n", a.GoalDescription)
	fmt.Fprintf(buf, "  Planned weekly calories: %d kcal\n", plan.TotalCalories)

	buf.WriteString("\n=== PLAN SUMMARY ===\n")
	for _, s := range plan.Sessions {
		fmt.Fprintf(buf, "%s: %s (%d min, %d exercises)\n", s.Day, s.Name, s.DurationMinutes, len(s.Exercises))
	}
}
