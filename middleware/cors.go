package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS envuelve h con la política cross-origin para origins. Un único "*"
// permite cualquier origen sin credenciales.
func CORS(origins []string, h http.Handler) http.Handler {
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: !allowAll,
		MaxAge:           600,
	}
	if allowAll {
		opts.AllowedOrigins = []string{"*"}
	}
	return cors.New(opts).Handler(h)
}
