package main

import (
	"net/http"

	"github.com/myrjola/gymplanner/internal/workout"
)

type exerciseResponse struct {
	Name              string   `json:"name"`
	MuscleGroups      []string `json:"muscleGroups"`
	Equipment         string   `json:"equipment"`
	IsCompound        bool     `json:"isCompound"`
	EquipmentCategory string   `json:"equipmentCategory,omitempty"`
	Description       string   `json:"description,omitempty"`
}

type exercisesResponse struct {
	Count     int                `json:"count"`
	Exercises []exerciseResponse `json:"exercises"`
}

func newExerciseResponse(ex workout.Exercise) exerciseResponse {
	return exerciseResponse{
		Name:              ex.Name,
		MuscleGroups:      ex.MuscleGroups,
		Equipment:         ex.Equipment,
		IsCompound:        ex.IsCompound(),
		EquipmentCategory: ex.EquipmentCategory,
		Description:       ex.DescriptionMarkdown,
	}
}

// exercisesGET lists the exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	catalog := app.workoutService.Exercises()
	resp := exercisesResponse{
		Count:     len(catalog),
		Exercises: make([]exerciseResponse, 0, len(catalog)),
	}
	for _, ex := range catalog {
		resp.Exercises = append(resp.Exercises, newExerciseResponse(ex))
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.serverError(w, r, err)
	}
}

type equipmentResponse struct {
	Categories []workout.EquipmentCategory `json:"categories"`
}

// equipmentGET lists the equipment categories a profile can select.
func (app *application) equipmentGET(w http.ResponseWriter, r *http.Request) {
	resp := equipmentResponse{Categories: app.workoutService.EquipmentCategories()}
	if resp.Categories == nil {
		resp.Categories = []workout.EquipmentCategory{}
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		app.serverError(w, r, err)
	}
}
