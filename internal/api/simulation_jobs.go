package api

import (
	"encoding/json"
	"net/http"

	"github.com/gridironlabs/nflsim/internal/core"
)

// SimulationJobRoutes serves the single-flight background job lifecycle:
// start, poll, and cancel, backed by the process-wide jobs.Registry.
type SimulationJobRoutes struct {
	app *App
}

func NewSimulationJobRoutes(app *App) *SimulationJobRoutes {
	return &SimulationJobRoutes{app: app}
}

func (jr *SimulationJobRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/simulation-jobs", jr.handleStart)
	mux.HandleFunc("GET /v1/simulation-jobs/{id}", jr.handleGet)
	mux.HandleFunc("DELETE /v1/simulation-jobs/{id}", jr.handleCancel)
}

// handleStart godoc
// @Summary Start a simulation job
// @Description Register and launch a background Monte Carlo simulation run
// @Tags simulation
// @Accept json
// @Produce json
// @Param body body simulateRequest true "Simulation parameters"
// @Success 200 {object} jobs.Job
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /simulation-jobs [post]
func (jr *SimulationJobRoutes) handleStart(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}
	if req.NumSimulations < 1 || req.NumSimulations > 1_000_000 {
		writeError(w, core.NewValidationError("num_simulations", "must be between 1 and 1000000"))
		return
	}

	teams, err := jr.app.Store.Teams()
	if err != nil {
		writeError(w, err)
		return
	}
	games, err := jr.app.effectiveSchedule()
	if err != nil {
		writeError(w, err)
		return
	}

	job, err := jr.app.Jobs.Start(req.NumSimulations, req.RandomSeed, games, teams)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleGet godoc
// @Summary Get a simulation job
// @Description Fetch the current state of a background simulation job
// @Tags simulation
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} jobs.Job
// @Failure 404 {object} ErrorResponse
// @Router /simulation-jobs/{id} [get]
func (jr *SimulationJobRoutes) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := jr.app.Jobs.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleCancel godoc
// @Summary Cancel a simulation job
// @Description Cooperatively cancel a pending or running simulation job
// @Tags simulation
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} jobs.Job
// @Failure 404 {object} ErrorResponse
// @Router /simulation-jobs/{id} [delete]
func (jr *SimulationJobRoutes) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := jr.app.Jobs.Cancel(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}
