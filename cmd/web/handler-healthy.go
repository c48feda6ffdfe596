package main

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	// Today is the calendar date the mission transitions accept.
	Today string `json:"today"`
}

// healthy reports that the server is up together with the date it considers today.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Today: app.missions.Today()})
}
