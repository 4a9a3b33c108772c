package workout

import (
	"math/rand/v2"
)

// dayRequest describes what a single day should train.
type dayRequest struct {
	day       string
	primary   string
	secondary []string
	goal      Goal
}

// dayComposer selects the exercises of one day. It reads the planner state but never writes it.
type dayComposer struct {
	// available is the equipment-filtered catalog.
	available []Exercise
	state     *plannerState
	rng       *rand.Rand
}

// compose builds the exercise list of a day with durations assigned from the goal.
func (c dayComposer) compose(req dayRequest) []Assignment {
	selected := make([]Assignment, 0, MinExercisesPerDay)

	primary := filterMuscles(c.available, []string{req.primary})
	primary = avoidRecent(primary, req.day, c.state.lastTrained)
	primary = limitRepeats(primary, c.state.exerciseCount)
	selected = c.fill(selected, primary, PrimaryExercisesPerDay, req.goal)

	if len(selected) < MinExercisesPerDay {
		secondary := filterMuscles(c.available, req.secondary)
		secondary = limitRepeats(secondary, c.state.exerciseCount)
		selected = c.fill(selected, excludeNames(secondary, selected), MinExercisesPerDay, req.goal)
	}

	selected = c.ensureMin(selected, MinExercisesPerDay, req.goal)
	return c.limitTime(selected, MinSessionMinutes, MaxSessionMinutes, req.goal)
}

// fill shuffles candidates and appends them until selected holds upTo exercises.
func (c dayComposer) fill(selected []Assignment, candidates []Exercise, upTo int, goal Goal) []Assignment {
	for _, ex := range c.shuffled(candidates) {
		if len(selected) >= upTo {
			break
		}
		selected = append(selected, assign(ex, goal))
	}
	return selected
}

// ensureMin tops up selected from the whole equipment-filtered catalog until it holds minCount exercises.
func (c dayComposer) ensureMin(selected []Assignment, minCount int, goal Goal) []Assignment {
	if len(selected) >= minCount {
		return selected
	}
	return c.fill(selected, c.backfillCandidates(selected), minCount, goal)
}

// limitTime keeps the session, including transition buffers, within [minMinutes, maxMinutes].
//
// Short sessions are extended from the equipment-filtered catalog. Long sessions are trimmed from the
// end but never below MinExercisesPerDay exercises.
func (c dayComposer) limitTime(selected []Assignment, minMinutes, maxMinutes int, goal Goal) []Assignment {
	total := bufferedMinutes(selected)

	if total < minMinutes {
		for _, ex := range c.shuffled(c.backfillCandidates(selected)) {
			if total >= minMinutes {
				break
			}
			a := assign(ex, goal)
			selected = append(selected, a)
			total += a.DurationMinutes + TransitionBufferMinutes
		}
	}

	for total > maxMinutes && len(selected) > MinExercisesPerDay {
		last := selected[len(selected)-1]
		total -= last.DurationMinutes + TransitionBufferMinutes
		selected = selected[:len(selected)-1]
	}
	return selected
}

// backfillCandidates returns the not yet selected exercises that pass the repeat filter.
func (c dayComposer) backfillCandidates(selected []Assignment) []Exercise {
	return excludeNames(limitRepeats(c.available, c.state.exerciseCount), selected)
}

// shuffled returns a uniformly shuffled copy of list.
func (c dayComposer) shuffled(list []Exercise) []Exercise {
	return shuffle(c.rng, list)
}

func shuffle(rng *rand.Rand, list []Exercise) []Exercise {
	out := make([]Exercise, len(list))
	copy(out, list)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// assign pairs the exercise with the per-exercise minutes of the goal.
func assign(ex Exercise, goal Goal) Assignment {
	return Assignment{Exercise: ex, DurationMinutes: ExerciseMinutes(goal)}
}

// ExerciseMinutes is the time one exercise takes for the goal, covering its sets and rest between sets.
func ExerciseMinutes(goal Goal) int {
	switch goal {
	case GoalEndurance:
		return 9 //nolint:mnd // 45 min for 5 exercises
	case GoalLightBuild:
		return 10 //nolint:mnd // 50 min for 5 exercises
	case GoalMuscleBuild:
		return 11 //nolint:mnd // 55 min for 5 exercises
	case GoalStrengthBuild:
		return 13 //nolint:mnd // 65 min for 5 exercises
	case GoalStrength:
		return 12 //nolint:mnd // 60 min for 5 exercises, fewer sets than strength build
	default:
		return 10 //nolint:mnd // same as light build
	}
}

// bufferedMinutes is the session time including a transition buffer after every exercise.
func bufferedMinutes(selected []Assignment) int {
	total := 0
	for _, a := range selected {
		total += a.DurationMinutes + TransitionBufferMinutes
	}
	return total
}
