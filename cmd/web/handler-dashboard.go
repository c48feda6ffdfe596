package main

import (
	"net/http"

	"github.com/myrjola/fitquest/internal/mission"
)

type dashboardTemplateData struct {
	BaseTemplateData
	mission.Dashboard
	// Briefing is the coach's markdown message of the day.
	Briefing string
}

func (app *application) dashboardGET(w http.ResponseWriter, r *http.Request) {
	dashboard, err := app.missions.Dashboard(r.Context())
	if err != nil {
		app.loadError(w, r, err)
		return
	}

	data := dashboardTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Dashboard:        dashboard,
		Briefing:         coachBriefing(dashboard),
	}
	app.render(w, r, http.StatusOK, "dashboard", data)
}

type dayTemplateData struct {
	BaseTemplateData
	mission.DayView
}

// dayGET shows any day of the program. Only today accepts transitions.
func (app *application) dayGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	if date == app.missions.Today() {
		redirect(w, r, "/")
		return
	}

	day, err := app.missions.Day(r.Context(), date)
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	if !day.InProgram {
		app.notFound(w, r)
		return
	}

	data := dayTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		DayView:          day,
	}
	app.render(w, r, http.StatusOK, "day", data)
}
