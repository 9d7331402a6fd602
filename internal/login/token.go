package login

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenSummary struct {
	Subject   string
	ExpiresAt time.Time
}

// summarizeToken reads claims without verifying the signature. The result
// is only ever logged.
func summarizeToken(raw string) (tokenSummary, bool) {
	if raw == "" {
		return tokenSummary{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return tokenSummary{}, false
	}
	var summary tokenSummary
	if sub, err := claims.GetSubject(); err == nil {
		summary.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		summary.ExpiresAt = exp.Time
	}
	return summary, true
}
