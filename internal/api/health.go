package api

import "net/http"

// HealthResponse is the liveness probe body.
// @Description Liveness probe response
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth godoc
// @Summary Health check
// @Description Check if the API server is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
