package middleware

import (
	"net/http"
	"strings"
	"time"

	"ihavefood/internal/contextKey"

	"github.com/rs/zerolog/log"
)

func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := wrap(w)

		next.ServeHTTP(rec, r)

		rid, _ := contextKey.RequestIDFromContext(r.Context())
		log.Info().
			Int("status", rec.statusCode()).
			Int("bytes", rec.bytes).
			Dur("dur", time.Since(start).Truncate(time.Millisecond)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Str("xff", strings.TrimSpace(r.Header.Get("X-Forwarded-For"))).
			Str("ua", r.UserAgent()).
			Str("request_id", rid).
			Msg("request")
	})
}
