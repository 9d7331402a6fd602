// Package web renders the server-side pages and serves their static assets.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

const (
	cacheControlValue = "no-store, no-cache, must-revalidate, max-age=0"
	pragmaValue       = "no-cache"
	expiresValue      = "0"
)

var (
	loginTemplate = mustPage("login.html")
	homeTemplate  = mustPage("home.html")
)

func mustPage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFiles, "templates/layout.html", "templates/"+name))
}

// LoginPage is the data behind the sign-in form. Error fills the reserved
// error paragraph under the button.
type LoginPage struct {
	Identifier string
	Error      string
}

func RenderLogin(w http.ResponseWriter, status int, page LoginPage) {
	setNoCacheHeaders(w)
	render(w, status, loginTemplate, page)
}

func RenderHome(w http.ResponseWriter) {
	render(w, http.StatusOK, homeTemplate, nil)
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("template", tmpl.Name()).Msg("render page")
		http.Error(w, "Page unavailable.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("write page")
	}
}

func setNoCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", cacheControlValue)
	w.Header().Set("Pragma", pragmaValue)
	w.Header().Set("Expires", expiresValue)
}

// StaticHandler serves the embedded assets under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFiles))
}
