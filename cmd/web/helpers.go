package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/fitquest/internal/contexthelpers"
	"github.com/myrjola/fitquest/internal/errors"
	"github.com/myrjola/fitquest/internal/mission"
	"github.com/myrjola/fitquest/internal/program"
)

type errorTemplateData struct {
	BaseTemplateData
	TraceID string
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	app.logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(err))

	// The error page must not depend on the session, which may be the thing that failed.
	data := errorTemplateData{
		BaseTemplateData: BaseTemplateData{CurrentPath: contexthelpers.CurrentPath(ctx), Flash: ""},
		TraceID:          contexthelpers.TraceID(ctx),
	}
	buf, renderErr := app.renderToBuf(ctx, "error", data)
	if renderErr != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to render error page", errors.SlogError(renderErr))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = buf.WriteTo(w)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", app.newBaseTemplateData(r))
}

// badRequest responds 400 to a malformed form value.
func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "bad request", slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

// loadError handles an error from the mission service. A missing save sends the user to onboarding.
func (app *application) loadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, mission.ErrNoActiveState) {
		redirect(w, r, "/setup")
		return
	}
	app.serverError(w, r, err)
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseDateParam parses the "date" path parameter from the request URL.
// Returns the date in save document format and true if successful.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseDateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date, err := time.Parse(program.DateLayout, r.PathValue("date"))
	if err != nil {
		app.notFound(w, r)
		return "", false
	}
	return program.FormatDate(date), true
}

// parseMissionParam parses the "mission" path parameter from the request URL.
// On failure, sends HTTP 404 response automatically.
func (app *application) parseMissionParam(w http.ResponseWriter, r *http.Request) (program.Mission, bool) {
	m, err := mission.ParseMission(r.PathValue("mission"))
	if err != nil {
		app.notFound(w, r)
		return "", false
	}
	return m, true
}

// formInt parses the integer form value name.
func formInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.PostFormValue(name))
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse form value %s=%q: %w", name, v, err)
	}
	return i, nil
}

// formFloat parses the decimal form value name. A decimal comma is accepted.
func formFloat(r *http.Request, name string) (float64, error) {
	v := strings.ReplaceAll(strings.TrimSpace(r.PostFormValue(name)), ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse form value %s=%q: %w", name, v, err)
	}
	return f, nil
}

// dayPath is where a transition on date returns to. Today lives on the dashboard.
func (app *application) dayPath(date string) string {
	if date == app.missions.Today() {
		return "/"
	}
	return "/days/" + date
}
