package middleware

import (
	"net/http"

	"github.com/Bahjat/adzip-report/internal/platform/requestid"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID is middleware that assigns a unique request ID to each
// request. If the incoming request already carries an X-Request-ID
// header, that value is reused; otherwise a new UUID v4 is generated.
// The ID is echoed on the response so callers can correlate.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
