package main

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/myrjola/gymplanner/internal/workout"
)

type analysisResponse struct {
	BMI                float64 `json:"bmi"`
	BMIStatus          string  `json:"bmiStatus"`
	BMR                int     `json:"bmr"`
	DailyCalories      int     `json:"dailyCalories"`
	WeeklyBurn         int     `json:"weeklyBurn"`
	ActivityMultiplier float64 `json:"activityMultiplier"`
	TrainingIntensity  int     `json:"trainingIntensity"`
	GoalDescription    string  `json:"goalDescription"`
}

func newAnalysisResponse(a workout.Analysis) analysisResponse {
	return analysisResponse{
		BMI:                roundTenth(a.BMI),
		BMIStatus:          a.BMIStatus,
		BMR:                int(math.Round(a.BMR)),
		DailyCalories:      a.DailyCalories,
		WeeklyBurn:         a.WeeklyCalorieBurn,
		ActivityMultiplier: a.ActivityMultiplier,
		TrainingIntensity:  a.TrainingIntensity,
		GoalDescription:    a.GoalDescription,
	}
}

type assignmentResponse struct {
	Exercise     string   `json:"exercise"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    string   `json:"equipment"`
	Duration     int      `json:"duration"`
}

type sessionResponse struct {
	Day       string               `json:"day"`
	Name      string               `json:"name"`
	Type      string               `json:"type"`
	Duration  int                  `json:"duration"`
	Calories  int                  `json:"calories"`
	Muscles   []string             `json:"muscles"`
	Exercises []assignmentResponse `json:"exercises"`
}

type planResponse struct {
	ID             string            `json:"id"`
	CreatedAt      time.Time         `json:"createdAt"`
	WeeklyCalories int               `json:"weeklyCalories"`
	Warnings       []string          `json:"warnings"`
	Analysis       analysisResponse  `json:"analysis"`
	Sessions       []sessionResponse `json:"sessions"`
}

func newPlanResponse(plan workout.Plan) planResponse {
	resp := planResponse{
		ID:             plan.ID,
		CreatedAt:      plan.CreatedAt,
		WeeklyCalories: plan.TotalCalories,
		Warnings:       append([]string{}, plan.Warnings...),
		Analysis:       newAnalysisResponse(plan.Analysis),
		Sessions:       make([]sessionResponse, 0, len(plan.Sessions)),
	}
	for _, s := range plan.Sessions {
		session := sessionResponse{
			Day:       s.Day,
			Name:      s.Name,
			Type:      string(s.Type),
			Duration:  s.DurationMinutes,
			Calories:  s.Calories,
			Muscles:   s.Muscles(),
			Exercises: make([]assignmentResponse, 0, len(s.Exercises)),
		}
		for _, a := range s.Exercises {
			session.Exercises = append(session.Exercises, assignmentResponse{
				Exercise:     a.Exercise.Name,
				MuscleGroups: a.Exercise.MuscleGroups,
				Equipment:    a.Exercise.Equipment,
				Duration:     a.DurationMinutes,
			})
		}
		resp.Sessions = append(resp.Sessions, session)
	}
	return resp
}

// decodeProfile reads a JSON profile request from the body. It writes a 400 response and returns false on failure.
func (app *application) decodeProfile(w http.ResponseWriter, r *http.Request) (workout.Profile, bool) {
	var req workout.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "invalid profile body", slog.Any("error", err))
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		writeJSONError(w, http.StatusBadRequest, msg)
		return workout.Profile{}, false
	}
	profile, err := req.Profile()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return workout.Profile{}, false
	}
	return profile, true
}

// analysisPOST returns the body metrics of the submitted profile.
func (app *application) analysisPOST(w http.ResponseWriter, r *http.Request) {
	profile, ok := app.decodeProfile(w, r)
	if !ok {
		return
	}
	resp := struct {
		Analysis analysisResponse `json:"analysis"`
	}{
		Analysis: newAnalysisResponse(workout.AnalyzeProfile(profile)),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.serverError(w, r, err)
	}
}

// plansAPIPOST generates a weekly plan for the submitted profile.
func (app *application) plansAPIPOST(w http.ResponseWriter, r *http.Request) {
	profile, ok := app.decodeProfile(w, r)
	if !ok {
		return
	}
	plan, err := app.workoutService.GeneratePlan(r.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, workout.ErrEmptyCatalog):
			writeJSONError(w, http.StatusServiceUnavailable, workout.ErrEmptyCatalog.Error())
		case errors.Is(err, workout.ErrInvalidProfile):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			app.serverError(w, r, err)
		}
		return
	}
	if err = writeJSON(w, http.StatusOK, newPlanResponse(plan)); err != nil {
		app.serverError(w, r, err)
	}
}
