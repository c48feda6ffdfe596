package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
)

// finishTransition flashes the outcome of a transition and sends the user back to the day.
func (app *application) finishTransition(
	w http.ResponseWriter,
	r *http.Request,
	date string,
	res mission.Result,
	err error,
) {
	if err != nil {
		app.loadError(w, r, err)
		return
	}
	app.flash(r, transitionMessage(res))
	redirect(w, r, app.dayPath(date))
}

func transitionMessage(res mission.Result) string {
	switch {
	case !res.Applied:
		return fmt.Sprintf("Nothing changed: %s.", res.Reason)
	case res.XPDelta > 0:
		return fmt.Sprintf("+%d XP", res.XPDelta)
	case res.XPDelta < 0:
		return fmt.Sprintf("%d XP", res.XPDelta)
	default:
		return "Saved."
	}
}

func (app *application) missionCompletePOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	m, ok := app.parseMissionParam(w, r)
	if !ok {
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.Complete{Date: date, Mission: m})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) missionUndoPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	m, ok := app.parseMissionParam(w, r)
	if !ok {
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.Undo{Date: date, Mission: m})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) waterPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	ml, err := formInt(r, "ml")
	if err != nil || ml <= 0 {
		app.badRequest(w, r, errors.Join(err, errors.New("water must be a positive amount")))
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.AddWater{Date: date, Ml: ml})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) sleepPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	bed := strings.TrimSpace(r.PostFormValue("bed"))
	wake := strings.TrimSpace(r.PostFormValue("wake"))
	if _, valid := mission.SleepHours(bed, wake); !valid {
		app.badRequest(w, r, fmt.Errorf("invalid sleep times bed=%q wake=%q", bed, wake))
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.LogSleep{Date: date, Bed: bed, Wake: wake})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) stepsPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	steps, err := formInt(r, "steps")
	if err != nil || steps < 0 {
		app.badRequest(w, r, errors.Join(err, errors.New("steps must not be negative")))
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.LogSteps{Date: date, Steps: steps})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) weighInPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	weight, err := formFloat(r, "weight")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	res, err := app.missions.Apply(r.Context(), mission.WeighIn{Date: date, Weight: weight})
	app.finishTransition(w, r, date, res, err)
}

func (app *application) mealsRerollPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}
	res, err := app.missions.RerollMeals(r.Context(), date)
	app.finishTransition(w, r, date, res, err)
}
