package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/myrjola/gymplanner/internal/ptr"
	"github.com/myrjola/gymplanner/internal/workout"
)

type homeTemplateData struct {
	BaseTemplateData
	Weekdays  []string
	Equipment []string
	Muscles   []string
	Goals     []string
	Defaults  workout.Profile
	// Error is shown above the form when a submitted profile was rejected.
	Error string
}

func (app *application) newHomeTemplateData(r *http.Request) homeTemplateData {
	var goals []string
	for _, g := range workout.Goals() {
		goals = append(goals, g.String())
	}
	defaults, _ := workout.ProfileRequest{}.Profile() //nolint:errcheck // the zero request is always valid
	return homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Weekdays:         workout.Weekdays(),
		Equipment:        app.equipmentChoices(),
		Muscles:          workout.PriorityMuscles(),
		Goals:            goals,
		Defaults:         defaults,
		Error:            "",
	}
}

// equipmentChoices returns Bodyweight followed by the equipment category names.
func (app *application) equipmentChoices() []string {
	choices := []string{workout.EquipmentBodyweight}
	for _, c := range app.workoutService.EquipmentCategories() {
		choices = append(choices, c.Name)
	}
	return choices
}

// home renders the profile form.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "home", app.newHomeTemplateData(r))
}

type planTemplateData struct {
	BaseTemplateData
	Plan workout.Plan
	// BMI is rounded to one decimal for display.
	BMI float64
	BMR int
}

// plansPOST generates a plan from the submitted form and renders it.
func (app *application) plansPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.rejectForm(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	req, err := parseProfileForm(r)
	if err != nil {
		app.rejectForm(w, r, http.StatusBadRequest, err.Error())
		return
	}
	profile, err := req.Profile()
	if err != nil {
		app.rejectForm(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := app.workoutService.GeneratePlan(r.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, workout.ErrEmptyCatalog):
			app.rejectForm(w, r, http.StatusServiceUnavailable, workout.ErrEmptyCatalog.Error())
		case errors.Is(err, workout.ErrInvalidProfile):
			app.rejectForm(w, r, http.StatusBadRequest, err.Error())
		default:
			app.serverError(w, r, err)
		}
		return
	}

	data := planTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Plan:             plan,
		BMI:              roundTenth(plan.Analysis.BMI),
		BMR:              int(math.Round(plan.Analysis.BMR)),
	}
	app.render(w, r, http.StatusOK, "plan", data)
}

// rejectForm renders the profile form again with an error message.
func (app *application) rejectForm(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := app.newHomeTemplateData(r)
	data.Error = message
	app.render(w, r, status, "home", data)
}

// parseProfileForm maps the profile form onto a request. Blank fields are left to the profile defaults.
func parseProfileForm(r *http.Request) (workout.ProfileRequest, error) {
	var (
		req workout.ProfileRequest
		err error
	)
	if req.Height, err = parseOptionalFloat(r.PostForm.Get("height"), "height"); err != nil {
		return req, err
	}
	if req.Weight, err = parseOptionalFloat(r.PostForm.Get("weight"), "weight"); err != nil {
		return req, err
	}
	if age := strings.TrimSpace(r.PostForm.Get("age")); age != "" {
		var n int
		if n, err = strconv.Atoi(age); err != nil {
			return req, errors.New("age must be a whole number")
		}
		req.Age = ptr.Ref(n)
	}
	if intensity := strings.TrimSpace(r.PostForm.Get("intensity")); intensity != "" {
		if req.Intensity, err = strconv.Atoi(intensity); err != nil {
			return req, errors.New("intensity must be a whole number")
		}
	}
	req.Gender = strings.TrimSpace(r.PostForm.Get("gender"))
	req.Goal = strings.TrimSpace(r.PostForm.Get("goal"))
	req.AvailableDays = r.PostForm["days"]
	req.AvailableEquipment = r.PostForm["equipment"]

	for _, muscle := range workout.PriorityMuscles() {
		if level := r.PostForm.Get("priority-" + muscle); level != "" {
			if req.MuscleGroupPriorities == nil {
				req.MuscleGroupPriorities = make(map[string]string)
			}
			req.MuscleGroupPriorities[muscle] = level
		}
	}
	return req, nil
}

func parseOptionalFloat(value, field string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil //nolint:nilnil // blank means default
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	return ptr.Ref(f), nil
}
