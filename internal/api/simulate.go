package api

import (
	"encoding/json"
	"net/http"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/montecarlo"
)

// SimulateRoutes serves the legacy synchronous simulation endpoint: it runs
// a full Monte Carlo pass on the request goroutine and returns the result
// in the same response. Prefer /simulation-jobs for anything large enough
// to want progress reporting or cancellation.
type SimulateRoutes struct {
	app *App
}

func NewSimulateRoutes(app *App) *SimulateRoutes {
	return &SimulateRoutes{app: app}
}

func (sr *SimulateRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/simulate", sr.handleSimulate)
}

// simulateRequest is the request body shared by /simulate and
// /simulation-jobs.
// @Description Request body for a Monte Carlo simulation run
type simulateRequest struct {
	NumSimulations int    `json:"num_simulations"`
	RandomSeed     *int64 `json:"random_seed,omitempty"`
}

// handleSimulate godoc
// @Summary Run a synchronous simulation
// @Description Run num_simulations trials and return the aggregated result inline
// @Tags simulation
// @Accept json
// @Produce json
// @Param body body simulateRequest true "Simulation parameters"
// @Success 200 {object} core.SimulationResult
// @Failure 400 {object} ErrorResponse
// @Router /simulate [post]
func (sr *SimulateRoutes) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}

	teams, err := sr.app.Store.Teams()
	if err != nil {
		writeError(w, err)
		return
	}
	games, err := sr.app.effectiveSchedule()
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := montecarlo.Simulate(games, teams, req.NumSimulations, req.RandomSeed, nil, nil)
	if err != nil {
		if core.IsValidation(err) {
			writeError(w, err)
			return
		}
		writeInternalServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
