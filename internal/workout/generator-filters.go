package workout

import (
	"slices"
)

// Filters narrow a candidate list. Every filter is a pure function of its arguments and never
// mutates the input slice. Recency and repeat filters return their input unchanged when filtering
// would leave nothing, so generation always degrades towards "any equipment-compatible exercise".

// filterEquipment keeps the exercises whose requirement is satisfied by the expanded equipment set.
func filterEquipment(list []Exercise, expanded map[string]struct{}) []Exercise {
	var filtered []Exercise
	for _, ex := range list {
		if HasEquipment(ex.Equipment, expanded) {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}

// filterCompounds keeps the compound exercises.
func filterCompounds(list []Exercise) []Exercise {
	var filtered []Exercise
	for _, ex := range list {
		if ex.IsCompound() {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}

// expandMuscles maps the umbrella groups of the profile form to the anatomical tags used by the catalog.
func expandMuscles(muscles []string) []string {
	expanded := make([]string, 0, len(muscles))
	for _, muscle := range muscles {
		switch muscle {
		case MuscleArms:
			expanded = append(expanded, MuscleBiceps, MuscleTriceps)
		case MuscleLegs:
			expanded = append(expanded, MuscleQuads, MuscleHamstrings)
		default:
			expanded = append(expanded, muscle)
		}
	}
	return expanded
}

// filterMuscles keeps the exercises targeting at least one of the target muscles after expansion.
func filterMuscles(list []Exercise, targets []string) []Exercise {
	expanded := expandMuscles(targets)
	var filtered []Exercise
	for _, ex := range list {
		if ex.targetsAny(expanded) {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}

// avoidRecent drops exercises that train a muscle group trained on the calendar day before day.
func avoidRecent(list []Exercise, day string, lastTrained map[string][]string) []Exercise {
	prev, ok := previousDay(day)
	if !ok {
		return list
	}
	recent := lastTrained[prev]
	if len(recent) == 0 {
		return list
	}

	var filtered []Exercise
	for _, ex := range list {
		if !ex.targetsAny(recent) {
			filtered = append(filtered, ex)
		}
	}
	if len(filtered) == 0 {
		return list
	}
	return filtered
}

// limitRepeats drops exercises already used MaxExerciseRepeatsPerWeek times this week.
func limitRepeats(list []Exercise, exerciseCount map[string]int) []Exercise {
	var filtered []Exercise
	for _, ex := range list {
		if exerciseCount[ex.Name] < MaxExerciseRepeatsPerWeek {
			filtered = append(filtered, ex)
		}
	}
	if len(filtered) == 0 {
		return list
	}
	return filtered
}

// excludeNames drops exercises whose name is in selected.
func excludeNames(list []Exercise, selected []Assignment) []Exercise {
	var filtered []Exercise
	for _, ex := range list {
		if !slices.ContainsFunc(selected, func(a Assignment) bool { return a.Exercise.Name == ex.Name }) {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}

// weekdays lists the canonical weekday names in calendar order starting on Monday.
//
//nolint:gochecknoglobals // read-only lookup table
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Weekdays returns the weekday names in calendar order starting on Monday.
func Weekdays() []string {
	return slices.Clone(weekdays)
}

// IsWeekday reports whether day is one of the seven canonical weekday names.
func IsWeekday(day string) bool {
	return slices.Contains(weekdays, day)
}

// previousDay returns the calendar predecessor of day. Monday and unknown names have none.
func previousDay(day string) (string, bool) {
	idx := slices.Index(weekdays, day)
	if idx <= 0 {
		return "", false
	}
	return weekdays[idx-1], true
}
