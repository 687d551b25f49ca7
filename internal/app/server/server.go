package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/forms"
	"hrconsole/internal/domain/importer"
	"hrconsole/internal/domain/session"
	"hrconsole/internal/platform/config"
	"hrconsole/internal/platform/crypto"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/platform/storage"
	companieshandler "hrconsole/internal/transport/http/handlers/companies"
	directoryhandler "hrconsole/internal/transport/http/handlers/directory"
	employeeshandler "hrconsole/internal/transport/http/handlers/employees"
	importshandler "hrconsole/internal/transport/http/handlers/imports"
	reportshandler "hrconsole/internal/transport/http/handlers/reports"
	sessionhandler "hrconsole/internal/transport/http/handlers/session"
	"hrconsole/internal/transport/http/middleware"
	"hrconsole/internal/upstream"
)

// App is the wired console: every collaborator built, the session restored,
// and the router ready to serve. Tests construct one against a fake
// upstream; Run builds one from the environment and listens.
type App struct {
	Config   config.Config
	Client   *upstream.Client
	Cache    *cache.Cache
	Sessions *session.Store
	Router   http.Handler
}

func New(cfg config.Config, store storage.Store, registry *prometheus.Registry) (*App, error) {
	client := upstream.New(cfg.UpstreamBaseURL, time.Duration(cfg.RequestTimeoutSec)*time.Second)
	m := metrics.New(registry)

	entityCache := cache.New(client, store, m)
	sessions := session.NewStore(store, entityCache)
	if err := sessions.Restore(); err != nil {
		return nil, err
	}
	// A restored session must re-arm the bearer token, or the first fetch
	// after a restart hits the upstream unauthenticated.
	if token := sessions.Token(); token != "" {
		client.SetToken(token)
	}

	app := &App{
		Config:   cfg,
		Client:   client,
		Cache:    entityCache,
		Sessions: sessions,
	}
	app.Router = app.buildRouter(m, registry)
	return app, nil
}

func (a *App) buildRouter(m *metrics.Metrics, registry *prometheus.Registry) http.Handler {
	cfg := a.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Session(a.Sessions))
	router.Use(middleware.Logger(m))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, "/api/v1/imports"))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled && registry != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	departmentsForm := forms.NewDepartments(a.Client, a.Cache)
	shiftsForm := forms.NewShifts(a.Client, a.Cache)
	employeesForm := forms.NewEmployees(a.Client, a.Cache)
	companiesForm := forms.NewCompanies(a.Client, a.Cache)
	pipeline := importer.NewPipeline(a.Client, a.Cache, m)

	router.Route("/api/v1", func(r chi.Router) {
		sessionHandler := sessionhandler.NewHandler(a.Sessions, a.Client, a.Cache)
		sessionHandler.LoginLimiter = middleware.RateLimit(10, time.Minute)
		sessionHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			companieshandler.NewHandler(a.Cache, companiesForm, a.Client).RegisterRoutes(r)
			directoryhandler.NewHandler(a.Cache, departmentsForm, shiftsForm).RegisterRoutes(r)
			employeeshandler.NewHandler(a.Cache, employeesForm, cfg.DefaultPageLimit, cfg.MaxPageLimit).RegisterRoutes(r)
			importshandler.NewHandler(pipeline, cfg.MaxUploadBytes).RegisterRoutes(r)
			reportshandler.NewHandler(a.Cache, a.Client).RegisterRoutes(r)
		})
	})

	return router
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	cryptoService, err := crypto.New(cfg.StatePassphrase)
	if err != nil {
		log.Fatalf("key derivation failed: %v", err)
	}
	store, err := storage.NewFileStore(cfg.StateDir, cryptoService)
	if err != nil {
		log.Fatalf("state dir unavailable: %v", err)
	}

	app, err := New(cfg, store, prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	log.Printf("HR console listening on %s (upstream %s)", cfg.Addr, cfg.UpstreamBaseURL)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
