package api

import (
	"encoding/json"
	"net/http"

	"github.com/gridironlabs/nflsim/internal/core"
)

// OverrideRoutes serves the user override store: a substitute outcome for
// a specific game, applied before simulation and persisted across restarts.
type OverrideRoutes struct {
	app *App
}

func NewOverrideRoutes(app *App) *OverrideRoutes {
	return &OverrideRoutes{app: app}
}

func (or *OverrideRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/override", or.handleSetOverride)
}

// overrideRequest is the request body for POST /override.
// @Description Set or clear a game override
type overrideRequest struct {
	GameID       core.GameID `json:"game_id"`
	HomeScore    *int        `json:"home_score,omitempty"`
	AwayScore    *int        `json:"away_score,omitempty"`
	IsOverridden bool        `json:"is_overridden"`
}

// okResponse is the body returned by successful mutating endpoints.
// @Description A trivial success acknowledgement
type okResponse struct {
	OK bool `json:"ok"`
}

// handleSetOverride godoc
// @Summary Set or clear a game override
// @Description Stamp a substitute outcome onto a game, or clear its override when is_overridden is false
// @Tags override
// @Accept json
// @Produce json
// @Param body body overrideRequest true "Override parameters"
// @Success 200 {object} okResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /override [post]
func (or *OverrideRoutes) handleSetOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "malformed request body")
		return
	}
	if req.GameID == "" {
		writeError(w, core.NewValidationError("game_id", "required"))
		return
	}

	games, err := or.app.effectiveSchedule()
	if err != nil {
		writeError(w, err)
		return
	}
	found := false
	for _, g := range games {
		if g.ID == req.GameID {
			found = true
			break
		}
	}
	if !found {
		writeNotFound(w, "game")
		return
	}

	if !req.IsOverridden {
		if err := or.app.Overrides.Clear(req.GameID); err != nil {
			writeInternalServerError(w, err)
			return
		}
		or.app.invalidateScheduleDerived(r.Context())
		writeJSON(w, http.StatusOK, okResponse{OK: true})
		return
	}

	if req.HomeScore == nil || req.AwayScore == nil {
		writeError(w, core.NewValidationError("home_score", "home_score and away_score are required when is_overridden is true"))
		return
	}

	if _, err := or.app.Overrides.Set(req.GameID, *req.HomeScore, *req.AwayScore); err != nil {
		writeError(w, err)
		return
	}
	or.app.invalidateScheduleDerived(r.Context())
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
