package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the browser client on the configured origins; credentials are off for the wildcard
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(CORSOptions(allowedOrigins))
}

func CORSOptions(allowedOrigins []string) cors.Options {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	allowCreds := true
	for _, o := range allowedOrigins {
		if o == "*" {
			allowCreds = false
			break
		}
	}

	return cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "X-Poll-Interval", "Retry-After"},
		AllowCredentials: allowCreds,
		MaxAge:           300,
	}
}
