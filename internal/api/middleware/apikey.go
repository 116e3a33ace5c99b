package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"os"
)

// APIKeyMiddleware guards mutating routes with the X-API-Key header,
// checked against the INTERNAL_API_KEY environment variable. When no key is
// configured the guard is disabled.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			respondUnauthorized(w, "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			respondUnauthorized(w, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // Nothing useful to do if the error write itself fails
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"details": detail,
	})
}
