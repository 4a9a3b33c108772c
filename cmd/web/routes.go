package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(limitBody(app.timeout(next)))))))
		}
		api = func(next http.Handler) http.Handler {
			return shared(noCache(next))
		}
	)

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/exercises", api(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/equipment", api(http.HandlerFunc(app.equipmentGET)))
	mux.Handle("POST /api/analysis", api(http.HandlerFunc(app.analysisPOST)))
	mux.Handle("POST /api/plans", api(http.HandlerFunc(app.plansAPIPOST)))

	mux.Handle("POST /plans", shared(noCache(http.HandlerFunc(app.plansPOST))))

	// Home route (most specific)
	mux.Handle("GET /{$}", shared(http.HandlerFunc(app.home)))

	// Everything else gets the custom 404 page.
	mux.Handle("/", shared(http.HandlerFunc(app.notFound)))

	return mux
}
