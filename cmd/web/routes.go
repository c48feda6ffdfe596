package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return secureHeaders(app.crossOriginProtection(commonContext(app.timeout(next))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(app.recoverPanic(shared(next)))
		}
		session = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(app.recoverPanic(noCache(app.sessionManager.LoadAndSave(shared(next)))))
		}
	)

	mux.Handle("GET /{$}", session(http.HandlerFunc(app.dashboardGET)))
	mux.Handle("GET /days/{date}", session(http.HandlerFunc(app.dayGET)))

	mux.Handle("GET /setup", session(http.HandlerFunc(app.setupGET)))
	mux.Handle("POST /setup", session(http.HandlerFunc(app.setupPOST)))

	mux.Handle("POST /days/{date}/missions/{mission}/complete", session(http.HandlerFunc(app.missionCompletePOST)))
	mux.Handle("POST /days/{date}/missions/{mission}/undo", session(http.HandlerFunc(app.missionUndoPOST)))
	mux.Handle("POST /days/{date}/water", session(http.HandlerFunc(app.waterPOST)))
	mux.Handle("POST /days/{date}/sleep", session(http.HandlerFunc(app.sleepPOST)))
	mux.Handle("POST /days/{date}/steps", session(http.HandlerFunc(app.stepsPOST)))
	mux.Handle("POST /days/{date}/weighin", session(http.HandlerFunc(app.weighInPOST)))
	mux.Handle("POST /days/{date}/meals/reroll", session(http.HandlerFunc(app.mealsRerollPOST)))

	mux.Handle("GET /workouts/{id}", session(http.HandlerFunc(app.workoutGET)))
	mux.Handle("GET /progress", session(http.HandlerFunc(app.progressGET)))
	mux.Handle("GET /shopping-list", session(http.HandlerFunc(app.shoppingListGET)))

	mux.Handle("GET /settings", session(http.HandlerFunc(app.settingsGET)))
	mux.Handle("POST /settings", session(http.HandlerFunc(app.settingsPOST)))
	mux.Handle("POST /settings/reset", session(http.HandlerFunc(app.resetPOST)))

	mux.Handle("GET /api/save", noSession(noCache(http.HandlerFunc(app.saveExportGET))))
	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("POST "+reportsPath, noSession(http.HandlerFunc(app.reports)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler(session)
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
