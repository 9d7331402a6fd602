package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ihavefood/internal/config"
	"ihavefood/internal/health"
	"ihavefood/internal/identity"
	"ihavefood/internal/ldap"
	"ihavefood/internal/login"
	"ihavefood/internal/middleware"
	"ihavefood/internal/session"
	"ihavefood/internal/web"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// authenticator is an identity backend that can also be probed for readiness.
type authenticator interface {
	login.Authenticator
	health.Prober
}

type app struct {
	settings *config.SettingsType
	sessions *session.Manager
	flow     *login.Flow
	ready    *health.Checker
	limiter  *middleware.RateLimiter
}

func newApp(settings *config.SettingsType, auth authenticator) *app {
	return &app{
		settings: settings,
		sessions: session.NewManager(settings.IsTrue(config.SESSION_COOKIE_SECURE) || settings.IsTrue(config.TLS_ENABLED)),
		flow:     login.NewFlow(auth),
		ready:    health.NewChecker(auth, settings.GetDuration(config.HEALTH_CACHE_TTL, 15*time.Second)),
		limiter: middleware.NewRateLimiter(
			settings.GetFloat(config.LOGIN_RATE_LIMIT, 3),
			settings.GetInt(config.LOGIN_RATE_BURST, 5),
		),
	}
}

func newAuthenticator(settings *config.SettingsType) (authenticator, error) {
	switch backend := settings.Get(config.IDENTITY_BACKEND); backend {
	case config.BackendHTTP, "":
		if !settings.Has(config.SERVER_URL) {
			log.Warn().Msg("SERVER_URL is empty, login requests will fail")
		}
		return identity.NewClient(&http.Client{}, settings.Get(config.SERVER_URL)), nil
	case config.BackendLDAP:
		return ldap.NewAuthenticator(settings), nil
	default:
		return nil, fmt.Errorf("unknown identity backend %q", backend)
	}
}

func getFrontendRouter(a *app) http.Handler {

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.LogRequests)
	router.Use(middleware.Instrument)
	router.Use(a.sessions.LoadAndSave)

	router.Handle("/static/*", web.StaticHandler())
	router.Get("/", handleHome)
	router.Get("/login", a.handleLoginGet)
	router.With(a.limiter.Middleware).Post("/login", a.handleLoginPost)
	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok\n")); err != nil {
			log.Error().Err(err).Msg("failed to write health response")
		}
	})

	apiCfg := huma.DefaultConfig("IHAVEFOOD", "1.0.0")
	apiCfg.OpenAPIPath = ""
	apiCfg.DocsPath = ""
	apiCfg.SchemasPath = ""
	api := humachi.New(router, apiCfg)
	registerAPI(api, a)

	return router
}

func configureLogging(settings *config.SettingsType) {
	zerolog.SetGlobalLevel(settings.LogLevel())
	if settings.Get(config.LOG_FORMAT) == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

type Server struct {
	httpServer *http.Server
	settings   *config.SettingsType
}

func NewServer(settings *config.SettingsType, handler http.Handler) *Server {
	return &Server{
		settings: settings,
		httpServer: &http.Server{
			Addr:         settings.Get(config.LISTEN_ADDR),
			Handler:      handler,
			TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS12},
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  2 * time.Minute,
		},
	}
}

func (s *Server) Start() error {
	if !s.settings.IsTrue(config.TLS_ENABLED) {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Starting IHAVEFOOD web")
		return s.httpServer.ListenAndServe()
	}

	certPath := s.settings.Get(config.TLS_CERT_FILE)
	keyPath := s.settings.Get(config.TLS_KEY_FILE)
	if err := ensureTLSCert(certPath, keyPath); err != nil {
		return fmt.Errorf("failed to ensure TLS certs: %w", err)
	}
	log.Info().Str("addr", s.httpServer.Addr).Msg("Starting IHAVEFOOD web with TLS")
	return s.httpServer.ListenAndServeTLS(certPath, keyPath)
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}

func main() {
	settings := config.NewSettingType(os.Getenv("PRINT_SETTINGS") == "true")
	configureLogging(settings)

	auth, err := newAuthenticator(settings)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid identity configuration")
	}

	s := NewServer(settings, getFrontendRouter(newApp(settings, auth)))

	done := make(chan bool, 1)
	go s.GracefulShutdown(done)

	if err := s.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
