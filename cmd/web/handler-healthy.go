package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/gymplanner/internal/errors"
	"github.com/myrjola/gymplanner/internal/ptr"
	"github.com/myrjola/gymplanner/internal/workout"
)

type healthResponse struct {
	Status    string `json:"status"`
	Exercises int    `json:"exercises"`
	// StoredExercises is only reported when the catalog comes from the database.
	StoredExercises *int `json:"storedExercises,omitempty"`
}

// healthy reports that the server is up together with the size of the loaded catalog.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	body := healthResponse{
		Status:          "ok",
		Exercises:       len(app.workoutService.Exercises()),
		StoredExercises: nil,
	}
	if app.catalogDB != nil {
		stored, err := workout.StoredExerciseCount(r.Context(), app.catalogDB, app.logger)
		if err != nil {
			app.logger.LogAttrs(r.Context(), slog.LevelError, "count stored exercises", errors.SlogError(err))
			writeJSONError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		body.StoredExercises = ptr.Ref(stored)
	}
	if err := writeJSON(w, http.StatusOK, body); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write health response", errors.SlogError(err))
	}
}
