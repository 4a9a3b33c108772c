package workout

import (
	"slices"
)

//nolint:gochecknoglobals // read-only lookup tables
var (
	upperBodyMuscles = []string{MuscleChest, MuscleBack, MuscleShoulders, MuscleArms, MuscleBiceps, MuscleTriceps}
	lowerBodyMuscles = []string{MuscleLegs, MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves}

	// dayNames maps the dominant profile-level muscle group to a session name. The order breaks ties.
	dayNames = []struct {
		muscle string
		name   string
	}{
		{MuscleChest, "Chest Day"},
		{MuscleBack, "Back Day"},
		{MuscleShoulders, "Shoulder Day"},
		{MuscleArms, "Arm Day"},
		{MuscleLegs, "Leg Day"},
		{MuscleGlutes, "Glute Day"},
		{MuscleCore, "Core Day"},
	}
)

const (
	// FullBodyMinMuscleGroups is how many distinct muscle groups a full body session trains at least.
	FullBodyMinMuscleGroups = 4
	fullBodyCardioName      = "Full Body + Cardio"
	cardioDayName           = "Cardio Day"
	strengthTrainingName    = "Strength Training"
)

// muscleTally counts the muscle tags of a day's exercises.
type muscleTally struct {
	cardioExercises   int
	strengthExercises int
	// counts holds the non-cardio tag occurrences.
	counts map[string]int
	// order lists the keys of counts in first-seen order.
	order []string
}

func tallyMuscles(exercises []Assignment) muscleTally {
	t := muscleTally{counts: make(map[string]int)}
	for _, a := range exercises {
		isCardio := false
		for _, muscle := range a.Exercise.MuscleGroups {
			if muscle == MuscleCardio {
				isCardio = true
				continue
			}
			if _, seen := t.counts[muscle]; !seen {
				t.order = append(t.order, muscle)
			}
			t.counts[muscle]++
		}
		if isCardio {
			t.cardioExercises++
		} else {
			t.strengthExercises++
		}
	}
	return t
}

// ClassifyType infers the session type from the muscles trained.
func ClassifyType(exercises []Assignment) SessionType {
	t := tallyMuscles(exercises)

	if t.cardioExercises > 0 && t.strengthExercises > 0 {
		return SessionTypeMixed
	}
	if t.cardioExercises > t.strengthExercises {
		return SessionTypeCardio
	}

	var hasUpper, hasLower bool
	for _, muscle := range t.order {
		hasUpper = hasUpper || slices.Contains(upperBodyMuscles, muscle)
		hasLower = hasLower || slices.Contains(lowerBodyMuscles, muscle)
	}
	if hasUpper && hasLower && len(t.counts) >= FullBodyMinMuscleGroups {
		return SessionTypeFullBody
	}
	return SessionTypeStrength
}

// DeriveName names a session after its dominant muscle group.
//
// Ties go to the group listed first in the Chest, Back, Shoulders, Arms, Legs, Glutes, Core order.
// Groups outside that list can only win when no listed group is trained, which yields
// "Strength Training".
func DeriveName(exercises []Assignment) string {
	t := tallyMuscles(exercises)

	if t.cardioExercises > 0 && len(t.counts) > 2 {
		return fullBodyCardioName
	}
	if t.cardioExercises > 0 {
		return cardioDayName
	}

	profileCounts := make(map[string]int, len(t.counts))
	for muscle, count := range t.counts {
		profileCounts[profileMuscle(muscle)] += count
	}

	name, best := strengthTrainingName, 0
	for _, dn := range dayNames {
		if c := profileCounts[dn.muscle]; c > best {
			name, best = dn.name, c
		}
	}
	for muscle, c := range profileCounts {
		if c > best && !slices.ContainsFunc(dayNames, func(dn struct{ muscle, name string }) bool {
			return dn.muscle == muscle
		}) {
			// An unmapped group dominates, e.g. Calves.
			return strengthTrainingName
		}
	}
	return name
}

// profileMuscle maps anatomical tags back to the umbrella groups of the profile form.
func profileMuscle(muscle string) string {
	switch muscle {
	case MuscleBiceps, MuscleTriceps:
		return MuscleArms
	case MuscleQuads, MuscleHamstrings:
		return MuscleLegs
	default:
		return muscle
	}
}
