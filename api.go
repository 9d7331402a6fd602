package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ihavefood/internal/identity"
	"ihavefood/internal/login"
	"ihavefood/internal/metrics"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/rs/zerolog/log"
)

type loginInput struct {
	Body struct {
		Identifier string `json:"identifier" minLength:"1" maxLength:"320" doc:"Email address or username"`
		Password   string `json:"password" minLength:"1" maxLength:"1024"`
	}
}

type loginOutput struct {
	Body struct {
		Redirect string `json:"redirect" doc:"Route the page should navigate to"`
	}
}

type readyOutput struct {
	Body struct {
		Status    string    `json:"status"`
		CheckedAt time.Time `json:"checkedAt"`
	}
}

func registerAPI(api huma.API, a *app) {
	group := huma.NewGroup(api, "/api")

	loginGroup := huma.NewGroup(group)
	loginGroup.UseMiddleware(rateLimitMiddleware(api, a))
	huma.Post(loginGroup, "/login", a.apiLogin, func(op *huma.Operation) {
		op.OperationID = "login"
		op.Summary = "Sign in with email and password"
		op.Errors = []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusBadGateway}
	})

	huma.Get(group, "/ready", a.apiReady, func(op *huma.Operation) {
		op.OperationID = "ready"
		op.Summary = "Identity backend reachability"
	})
}

// apiLogin backs the script-enhanced form. The page performs the
// navigation the response names.
func (a *app) apiLogin(ctx context.Context, in *loginInput) (*loginOutput, error) {
	creds := identity.NewCredentials(strings.TrimSpace(in.Body.Identifier), in.Body.Password)
	if creds.Identifier == "" {
		return nil, huma.Error422UnprocessableEntity(msgMissingCredentials)
	}

	nav := &login.RecordingNavigator{}
	if _, err := a.flow.Submit(ctx, creds, nav); err != nil {
		status, message := loginFailure(err)
		return nil, huma.NewError(status, message)
	}

	out := &loginOutput{}
	out.Body.Redirect = nav.Route()
	return out, nil
}

func (a *app) apiReady(ctx context.Context, _ *struct{}) (*readyOutput, error) {
	checkedAt, err := a.ready.Check(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("identity backend not ready")
		return nil, huma.Error503ServiceUnavailable("identity backend unreachable")
	}
	out := &readyOutput{}
	out.Body.Status = "ok"
	out.Body.CheckedAt = checkedAt
	return out, nil
}

func rateLimitMiddleware(api huma.API, a *app) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		req, _ := humachi.Unwrap(ctx)
		if !a.limiter.Allow(req) {
			metrics.LoginRateLimitedTotal.Inc()
			log.Warn().Str("remote", req.RemoteAddr).Msg("login rate limited")
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "Too many sign-in attempts, try again shortly.")
			return
		}
		next(ctx)
	}
}
