package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a permissive-read CORS middleware: any origin may GET/POST
// the JSON API, matching the teacher's read-heavy public-API posture.
// Grounded on albapepper-scoracle-data's internal/api/server.go CORS setup.
func CORS() func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
	})
	return c.Handler
}
