package middleware

import (
	"net/http"

	"ihavefood/internal/contextKey"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID injects an identifier for traceability if the caller did not provide one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(contextKey.WithRequestID(r.Context(), rid)))
	})
}
