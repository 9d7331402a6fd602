package main

import (
	"errors"
	"net/http"
	"strings"

	"ihavefood/internal/identity"
	"ihavefood/internal/login"
	"ihavefood/internal/session"
	"ihavefood/internal/web"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidForm        = "Invalid form submission."
	msgMissingCredentials = "Email and password are required."
	msgUnreachable        = "Unable to reach the sign-in service."
	msgBadResponse        = "Unexpected response from the sign-in service."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

func extractCredentials(r *http.Request) (loginForm, error) {
	if err := r.ParseForm(); err != nil {
		return loginForm{}, err
	}
	return loginForm{
		Identifier: strings.TrimSpace(r.FormValue("email")),
		Password:   r.FormValue("password"),
	}, nil
}

// handleLoginPost serves browsers without script: the outcome travels to
// the next GET /login as a flash.
func (a *app) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	form, err := extractCredentials(r)
	if err != nil {
		log.Debug().Err(err).Msg("login form parse failed")
		a.redirectToLogin(w, r, "", msgInvalidForm)
		return
	}
	if err := validate.Struct(form); err != nil {
		a.redirectToLogin(w, r, form.Identifier, msgMissingCredentials)
		return
	}

	creds := identity.NewCredentials(form.Identifier, form.Password)
	if _, err := a.flow.Submit(r.Context(), creds, login.RedirectNavigator{W: w, R: r}); err != nil {
		_, message := loginFailure(err)
		a.redirectToLogin(w, r, form.Identifier, message)
	}
}

func (a *app) redirectToLogin(w http.ResponseWriter, r *http.Request, identifier, message string) {
	a.sessions.PutFlash(r.Context(), session.Flash{Message: message, Identifier: identifier})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *app) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	page := web.LoginPage{}
	if flash, ok := a.sessions.PopFlash(r.Context()); ok {
		page.Error = flash.Message
		page.Identifier = flash.Identifier
	}
	web.RenderLogin(w, http.StatusOK, page)
}

func handleHome(w http.ResponseWriter, r *http.Request) {
	web.RenderHome(w)
}

// loginFailure maps a flow error to the status and text shown to the user.
func loginFailure(err error) (int, string) {
	var authErr *identity.AuthError
	switch {
	case errors.As(err, &authErr):
		status := authErr.Status
		switch {
		case status >= 500:
			status = http.StatusBadGateway
		case status < 400:
			status = http.StatusUnauthorized
		}
		return status, authErr.DisplayMessage()
	case errors.Is(err, identity.ErrParse):
		return http.StatusBadGateway, msgBadResponse
	default:
		return http.StatusBadGateway, msgUnreachable
	}
}
