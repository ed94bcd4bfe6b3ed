package middleware

import (
	"crypto/subtle"
	"net/http"
)

const apiKeyHeader = "X-ApiKey"

// APIKey returns middleware that guards a handler with a shared key
// carried in the X-ApiKey header. An empty configured key disables the
// check. The comparison is constant time.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
