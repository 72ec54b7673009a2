package ui

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"surveystat/adapters/excel"
	"surveystat/app"
	"surveystat/internal"
	"surveystat/ports"
)

// App is the HTTP API over the analysis engine.
type App struct {
	router   *chi.Mux
	config   Config
	store    ports.DatasetRepository
	reader   *excel.DataReader
	analysis *app.AnalysisService
	sweep    *app.SweepService
	logger   *internal.Logger
}

// Config holds UI application configuration
type Config struct {
	Port            string
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Deps are the collaborators the handlers call into.
type Deps struct {
	Store    ports.DatasetRepository
	Reader   *excel.DataReader
	Analysis *app.AnalysisService
	Sweep    *app.SweepService
	Logger   *internal.Logger
}

// NewApp creates a new UI application
func NewApp(config Config, deps Deps) *App {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = 32 << 20
	}
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:   chi.NewRouter(),
		config:   config,
		store:    deps.Store,
		reader:   deps.Reader,
		analysis: deps.Analysis,
		sweep:    deps.Sweep,
		logger:   logger.With("api"),
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// Router exposes the configured router, mainly for tests.
func (a *App) Router() *chi.Mux {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api/datasets", func(r chi.Router) {
		r.With(limitBody(a.config.MaxUploadBytes)).Post("/", a.handleDatasetUpload)
		r.Get("/", a.handleListDatasets)

		r.Route("/{id}", func(r chi.Router) {
			r.Use(a.loadDataset)
			r.Get("/", a.handleGetDataset)
			r.Delete("/", a.handleDeleteDataset)
			r.Get("/columns", a.handleListColumns)
			r.Get("/columns/{name}/describe", a.handleDescribeColumn)
			r.With(requireJSON).Post("/analyze", a.handleAnalyze)
			r.With(requireJSON).Post("/sweep", a.handleSweep)
		})
	})
}
