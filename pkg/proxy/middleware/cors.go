package middleware

import (
	"net/http"

	"aircause/backend/pkg/config"

	"github.com/rs/cors"
)

// CORSMiddleware adds Cross-Origin Resource Sharing headers and answers
// preflight requests. With the default configuration every origin is
// allowed. When CORS is disabled the handler is returned unchanged.
//
// Example usage:
//
//	handler = CORSMiddleware(cfg.Server.CORS)(handler)
func CORSMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		MaxAge:           cfg.MaxAge,
		AllowCredentials: cfg.AllowCredentials,
	})
	return c.Handler
}
