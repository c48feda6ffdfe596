package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// maxReportBytes bounds the body of a browser report.
const maxReportBytes = 64 * 1024

// reports logs the CSP violation and Reporting API reports browsers send to the endpoints named in
// secureHeaders. Legacy report-uri bodies are a single object and Reporting API bodies are an array of reports.
func (app *application) reports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	switch contentType {
	case "", "application/csp-report", "application/json", "application/reports+json":
	default:
		app.logger.LogAttrs(ctx, slog.LevelWarn, "report with unexpected content type",
			slog.String("content_type", contentType))
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxReportBytes))
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "failed to read report body", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var payload any
	if err = json.Unmarshal(body, &payload); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "failed to parse report",
			slog.Any("error", err), slog.String("body", string(body)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	app.logger.LogAttrs(ctx, slog.LevelWarn, "browser report received",
		slog.Any("payload", payload),
		slog.String("user_agent", r.Header.Get("User-Agent")))
	w.WriteHeader(http.StatusNoContent)
}
