package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ihavefood/internal/config"
	"ihavefood/internal/identity"
)

func newTestRouter(t *testing.T, serverURL string) http.Handler {
	t.Helper()
	t.Setenv(config.SERVER_URL, serverURL)
	t.Setenv(config.IDENTITY_BACKEND, config.BackendHTTP)
	t.Setenv(config.LOGIN_RATE_LIMIT, "100")
	t.Setenv(config.LOGIN_RATE_BURST, "100")
	settings := config.NewSettingType(false)
	auth, err := newAuthenticator(settings)
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	return getFrontendRouter(newApp(settings, auth))
}

func TestGetFrontendRouterHealth(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/health", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body := rec.Body.String(); body != "ok\n" {
		t.Fatalf("expected body %q, got %q", "ok\n", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestGetFrontendRouterRoot(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>IHAVEFOOD</title>") {
		t.Fatalf("expected layout title, got %q", rec.Body.String())
	}
}

func TestGetFrontendRouterLoginPage(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/login", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Sign In", `name="email"`, `name="password"`, `id="signin-error"`, "/static/login.js"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected login page to contain %q", want)
		}
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-store") {
		t.Fatalf("expected no-store cache control, got %q", cc)
	}
}

func TestGetFrontendRouterStatic(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/static/login.js", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "preventDefault") {
		t.Fatalf("expected login script body")
	}
}

func TestGetFrontendRouterMetrics(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "http://example.com/login", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("expected http metrics in exposition")
	}
}

func TestGetFrontendRouterNotFound(t *testing.T) {
	handler := newTestRouter(t, "http://identity.invalid")
	req := httptest.NewRequest(http.MethodGet, "http://example.com/not-found", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestGetFrontendRouterReady(t *testing.T) {
	identitySrv := httptest.NewServer(http.NotFoundHandler())
	defer identitySrv.Close()
	handler := newTestRouter(t, identitySrv.URL)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/api/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestGetFrontendRouterNotReady(t *testing.T) {
	identitySrv := httptest.NewServer(http.NotFoundHandler())
	url := identitySrv.URL
	identitySrv.Close()
	handler := newTestRouter(t, url)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/api/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestNewAuthenticatorBackends(t *testing.T) {
	t.Setenv(config.IDENTITY_BACKEND, config.BackendLDAP)
	if _, err := newAuthenticator(config.NewSettingType(false)); err != nil {
		t.Fatalf("expected ldap backend: %v", err)
	}

	t.Setenv(config.IDENTITY_BACKEND, "kerberos")
	if _, err := newAuthenticator(config.NewSettingType(false)); err == nil {
		t.Fatalf("expected unknown backend to fail")
	}

	t.Setenv(config.IDENTITY_BACKEND, config.BackendHTTP)
	t.Setenv(config.SERVER_URL, "http://gateway:8080/")
	auth, err := newAuthenticator(config.NewSettingType(false))
	if err != nil {
		t.Fatalf("expected http backend: %v", err)
	}
	if _, ok := auth.(*identity.Client); !ok {
		t.Fatalf("expected identity client, got %T", auth)
	}
}
