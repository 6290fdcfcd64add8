package api

import "net/http"

// StandingsRoutes serves the current standings built from completed and
// overridden games only (no simulation involved — every unresolved game is
// simply absent from the record).
type StandingsRoutes struct {
	app *App
}

func NewStandingsRoutes(app *App) *StandingsRoutes {
	return &StandingsRoutes{app: app}
}

func (sr *StandingsRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/standings", sr.handleListStandings)
}

// handleListStandings godoc
// @Summary List standings
// @Description List every team's current win/loss/tie record and point totals
// @Tags standings
// @Produce json
// @Success 200 {array} core.Standing
// @Failure 500 {object} ErrorResponse
// @Router /standings [get]
func (sr *StandingsRoutes) handleListStandings(w http.ResponseWriter, r *http.Request) {
	result, err := sr.app.listCached(r.Context(), "standings", nil, func() (any, error) {
		table, teams, err := sr.app.standingsTable()
		if err != nil {
			return nil, err
		}

		out := make([]any, 0, len(teams))
		for _, team := range teams {
			out = append(out, table.Record(team.ID))
		}
		return out, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
