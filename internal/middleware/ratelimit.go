package middleware

import (
	"net"
	"net/http"
	"time"

	"ihavefood/internal/metrics"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const visitorIdle = 3 * time.Minute

// RateLimiter keeps one token bucket per client ip. Idle buckets expire
// from the cache.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	visitors *cache.Cache
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: cache.New(visitorIdle, time.Minute),
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.visitors.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.visitors.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.visitors.Add(key, lim, cache.DefaultExpiration); err != nil {
		// Another request created it first.
		if v, ok := l.visitors.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

func (l *RateLimiter) Allow(r *http.Request) bool {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return l.limiter(ip).Allow()
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r) {
			metrics.LoginRateLimitedTotal.Inc()
			log.Warn().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Msg("login rate limited")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
