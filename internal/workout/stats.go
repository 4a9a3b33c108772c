package workout

import (
	"math"
	"strings"
)

// MET returns the metabolic equivalent used to estimate the calorie burn of a session type.
func MET(t SessionType) float64 {
	switch t {
	case SessionTypeCardio:
		return 8.0 //nolint:mnd // MET table
	case SessionTypeMixed:
		return 6.5 //nolint:mnd // MET table
	case SessionTypeFullBody:
		return 5.5 //nolint:mnd // MET table
	case SessionTypeStrength:
		return 5.0 //nolint:mnd // MET table
	default:
		return 5.0 //nolint:mnd // same as strength
	}
}

// SessionCalories estimates the calories burnt in a session, truncated to whole calories.
func SessionCalories(t SessionType, weightKg float64, durationMinutes int) int {
	return int(MET(t) * weightKg * float64(durationMinutes) / 60) //nolint:mnd // minutes per hour
}

// sessionStats returns the plain sum of exercise durations and the calorie estimate.
// Transition buffers only count towards the time budget and are not part of the duration.
func sessionStats(exercises []Assignment, t SessionType, weightKg float64) (int, int) {
	duration := 0
	for _, a := range exercises {
		duration += a.DurationMinutes
	}
	return duration, SessionCalories(t, weightKg, duration)
}

// BMI bands.
const (
	bmiUnderweight = 18.5
	bmiNormal      = 25
	bmiOverweight  = 30
)

// AnalyzeProfile derives body metrics and calorie estimates from the profile. It is a pure function.
func AnalyzeProfile(p Profile) Analysis {
	bmi := BMI(p.WeightKg, p.HeightCm)
	bmr := BMR(p)
	intensity := p.trainingIntensity()
	multiplier := ActivityMultiplier(intensity)

	return Analysis{
		BMI:                bmi,
		BMIStatus:          BMIStatus(bmi),
		BMR:                bmr,
		DailyCalories:      int(bmr * multiplier),
		WeeklyCalorieBurn:  len(p.WorkoutDays) * (200 + 50*intensity), //nolint:mnd // coarse burn per training day
		ActivityMultiplier: multiplier,
		TrainingIntensity:  intensity,
		GoalDescription:    p.Goal.Description(),
	}
}

// BMI is the body mass index. It returns 0 for a non-positive height.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100 //nolint:mnd // cm per m
	return weightKg / math.Pow(heightM, 2)
}

// BMIStatus labels a body mass index.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < bmiUnderweight:
		return "Underweight"
	case bmi < bmiNormal:
		return "Normal weight"
	case bmi < bmiOverweight:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMR is the basal metabolic rate in kcal per day using the Mifflin-St Jeor equation.
func BMR(p Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age) //nolint:mnd // Mifflin-St Jeor
	if strings.EqualFold(strings.TrimSpace(p.Gender), "male") {
		return bmr + 5 //nolint:mnd // Mifflin-St Jeor male offset
	}
	return bmr - 161 //nolint:mnd // Mifflin-St Jeor female offset
}

// ActivityMultiplier maps a 1-10 training intensity to the multiplier applied to BMR.
func ActivityMultiplier(intensity int) float64 {
	switch {
	case intensity >= 8: //nolint:mnd // intensity bands
		return 1.9 //nolint:mnd // very active
	case intensity >= 6: //nolint:mnd // intensity bands
		return 1.725 //nolint:mnd // active
	case intensity >= 4: //nolint:mnd // intensity bands
		return 1.55 //nolint:mnd // moderately active
	case intensity >= 2: //nolint:mnd // intensity bands
		return 1.375 //nolint:mnd // lightly active
	default:
		return 1.2 //nolint:mnd // sedentary
	}
}

// trainingIntensity is the explicit intensity or the representative intensity of the goal.
func (p Profile) trainingIntensity() int {
	if p.Intensity > 0 {
		return p.Intensity
	}
	return p.Goal.representativeIntensity()
}
