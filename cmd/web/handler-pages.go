package main

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
)

type workoutTemplateData struct {
	BaseTemplateData
	Workout program.Workout
}

func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	workout, ok, err := app.missions.Workout(r.Context(), r.PathValue("id"))
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	if !ok {
		app.notFound(w, r)
		return
	}
	data := workoutTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Workout:          workout,
	}
	app.render(w, r, http.StatusOK, "workout", data)
}

type progressTemplateData struct {
	BaseTemplateData
	mission.Progress
	Missions []program.Mission
}

func (app *application) progressGET(w http.ResponseWriter, r *http.Request) {
	progress, err := app.missions.Progress(r.Context())
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	data := progressTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Progress:         progress,
		Missions:         program.Missions,
	}
	app.render(w, r, http.StatusOK, "progress", data)
}

type shoppingListTemplateData struct {
	BaseTemplateData
	Categories []program.ShoppingCategory
}

func (app *application) shoppingListGET(w http.ResponseWriter, r *http.Request) {
	categories, err := app.missions.ShoppingList(r.Context())
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	data := shoppingListTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Categories:       categories,
	}
	app.render(w, r, http.StatusOK, "shopping-list", data)
}

type settingsTemplateData struct {
	BaseTemplateData
	Settings    mission.Settings
	Intensities []mission.ArcadeIntensity
}

func (app *application) settingsGET(w http.ResponseWriter, r *http.Request) {
	state, err := app.missions.Load(r.Context())
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	data := settingsTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Settings:         state.Settings,
		Intensities:      mission.ArcadeIntensities,
	}
	app.render(w, r, http.StatusOK, "settings", data)
}

func (app *application) settingsPOST(w http.ResponseWriter, r *http.Request) {
	intensity := mission.ArcadeIntensity(r.PostFormValue("arcadeIntensity"))
	if !slices.Contains(mission.ArcadeIntensities, intensity) {
		app.badRequest(w, r, fmt.Errorf("unknown arcade intensity %q", intensity))
		return
	}
	if _, err := app.missions.Apply(r.Context(), mission.SetArcadeIntensity{Intensity: intensity}); err != nil {
		app.loadError(w, r, err)
		return
	}
	app.flash(r, "Settings saved.")
	redirect(w, r, "/settings")
}

func (app *application) resetPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.missions.Reset(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.flash(r, "Progress reset. Set up a new program to start over.")
	redirect(w, r, "/setup")
}

// saveExportGET downloads the save document as JSON.
func (app *application) saveExportGET(w http.ResponseWriter, r *http.Request) {
	document, err := app.missions.Export(r.Context())
	if errors.Is(err, mission.ErrNoActiveState) {
		http.Error(w, "no save state", http.StatusNotFound)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+mission.SaveKey+`.json"`)
	_, _ = w.Write(document)
}
