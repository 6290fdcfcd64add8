package api

import "net/http"

// TeamRoutes serves the 32-team roster.
type TeamRoutes struct {
	app *App
}

func NewTeamRoutes(app *App) *TeamRoutes {
	return &TeamRoutes{app: app}
}

func (tr *TeamRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/teams", tr.handleListTeams)
}

// handleListTeams godoc
// @Summary List teams
// @Description List all 32 teams, grouped by conference and division
// @Tags teams
// @Produce json
// @Success 200 {array} core.Team
// @Failure 500 {object} ErrorResponse
// @Router /teams [get]
func (tr *TeamRoutes) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := tr.app.Store.Teams()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}
