package api

import (
	"net/http"

	"github.com/gridironlabs/nflsim/internal/core"
)

// ScheduleRoutes serves the current season's schedule, with results and
// overrides already folded in.
type ScheduleRoutes struct {
	app *App
}

func NewScheduleRoutes(app *App) *ScheduleRoutes {
	return &ScheduleRoutes{app: app}
}

func (sr *ScheduleRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/schedule", sr.handleListSchedule)
}

// handleListSchedule godoc
// @Summary List schedule
// @Description List the current season's games, optionally filtered by week
// @Tags schedule
// @Produce json
// @Param week query integer false "Filter by week number"
// @Success 200 {array} core.Game
// @Failure 500 {object} ErrorResponse
// @Router /schedule [get]
func (sr *ScheduleRoutes) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	weekParam := r.URL.Query().Get("week")
	params := map[string]string{}
	if weekParam != "" {
		params["week"] = weekParam
	}

	result, err := sr.app.listCached(r.Context(), "schedule", params, func() (any, error) {
		games, err := sr.app.effectiveSchedule()
		if err != nil {
			return nil, err
		}
		if weekParam == "" {
			return games, nil
		}

		week := getIntQuery(r, "week", 0)
		filtered := make([]core.Game, 0, len(games))
		for _, g := range games {
			if g.Week == week {
				filtered = append(filtered, g)
			}
		}
		return filtered, nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
