package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vocadrill/backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a correlation ID, reusing the client's
// X-Request-Id when one is supplied. The ID goes into the context for the
// request logger and is echoed back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
