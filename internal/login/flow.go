// Package login sequences a sign-in submission: one call to the identity
// backend, then navigation on success.
package login

import (
	"context"
	"errors"
	"time"

	"ihavefood/internal/contextKey"
	"ihavefood/internal/identity"
	"ihavefood/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Authenticator validates credentials against an identity backend.
type Authenticator interface {
	Login(ctx context.Context, creds identity.Credentials) (identity.Response, error)
}

type Flow struct {
	auth Authenticator
}

func NewFlow(auth Authenticator) *Flow {
	return &Flow{auth: auth}
}

// Submit makes exactly one attempt. Concurrent submissions are independent;
// nothing here orders or de-duplicates them.
func (f *Flow) Submit(ctx context.Context, creds identity.Credentials, nav Navigator) (identity.Response, error) {
	rid, _ := contextKey.RequestIDFromContext(ctx)
	start := time.Now()

	resp, err := f.auth.Login(ctx, creds)
	outcome := Outcome(err)
	metrics.IdentityRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		log.Warn().
			Err(err).
			Str("outcome", outcome).
			Str("identifier", creds.Identifier).
			Str("request_id", rid).
			Msg("login failed")
		return identity.Response{}, err
	}

	event := log.Debug().
		Str("identifier", creds.Identifier).
		Str("request_id", rid)
	if summary, ok := summarizeToken(resp.Token()); ok {
		event = event.Str("subject", summary.Subject).Time("expires", summary.ExpiresAt)
	}
	event.Msg("login succeeded")

	nav.Navigate(RootRoute)
	return resp, nil
}

// Outcome labels err for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, identity.ErrAuthRejected):
		return metrics.OutcomeRejected
	case errors.Is(err, identity.ErrParse):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeNetworkError
	}
}
