// Package api provides HTTP handlers for the NFL Monte Carlo Simulator API
//
// @title NFL Monte Carlo Simulator API
// @description.markdown
// @version 1.0
// @BasePath /v1
//
// @contact.name API Support
// @contact.url https://github.com/gridironlabs/nflsim
//
// @license.name MPL-2.0
// @license.url https://opensource.org/license/mpl-2-0
//
// @tag.name teams
// @tag.description The 32-team, 8-division roster
//
// @tag.name schedule
// @tag.description Regular-season games, results, and overrides folded in
//
// @tag.name standings
// @tag.description Current win/loss/tie records and point totals
//
// @tag.name simulation
// @tag.description Monte Carlo simulation, synchronous and job-based
//
// @tag.name override
// @tag.description User-supplied substitute outcomes
//
// @tag.name health
// @tag.description Liveness probe
package api

import (
	_ "expvar"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	docs "github.com/gridironlabs/nflsim/internal/docs"
)

// Server wraps the assembled mux. It implements http.Handler so it can be
// wrapped by middleware directly.
type Server struct {
	mux *http.ServeMux
}

// NewServer wires every resource's routes, plus the teacher-carried-over
// health check, Swagger UI, and expvar metrics endpoints, into one mux.
func NewServer(app *App) *Server {
	return newServer(
		NewTeamRoutes(app),
		NewScheduleRoutes(app),
		NewStandingsRoutes(app),
		NewSimulateRoutes(app),
		NewSimulationJobRoutes(app),
		NewOverrideRoutes(app),
	)
}

func newServer(registrars ...Registrar) *Server {
	docs.SwaggerInfo.BasePath = "/v1"

	mux := http.NewServeMux()
	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	mux.HandleFunc("GET /v1/health", handleHealth)
	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})
	mux.Handle("GET /debug/vars", http.DefaultServeMux)

	return &Server{mux: mux}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
