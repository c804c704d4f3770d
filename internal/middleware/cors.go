package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps the router with the browser origin policy. An empty origin list
// allows any origin without credentials.
func CORS(origins []string, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           600,
	}
	if len(origins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.New(opts).Handler(next)
}
