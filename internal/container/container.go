package container

import (
	"fmt"

	"surveystat/adapters/datareadiness/coercer"
	"surveystat/adapters/excel"
	"surveystat/adapters/stats/executors"
	"surveystat/app"
	"surveystat/internal"
	"surveystat/internal/config"
	"surveystat/internal/dataset"
	"surveystat/ports"
	"surveystat/ui"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Ingestion
	Reader *excel.DataReader
	Store  ports.DatasetRepository

	// Analysis
	PValues  ports.PValueSource
	Analysis *app.AnalysisService
	Sweep    *app.SweepService
}

// New wires every component from cfg.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	coercion := coercer.DefaultCoercionConfig()
	coercion.NumericThreshold = cfg.Ingest.NumericThreshold

	pvalues := executors.NewDistributions()
	analysis := app.NewAnalysisService(pvalues, cfg.DefaultOptions())

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Reader:   excel.NewDataReader(coercer.NewTypeCoercer(coercion)),
		Store:    dataset.NewMemoryStore(),
		PValues:  pvalues,
		Analysis: analysis,
		Sweep:    app.NewSweepService(analysis, cfg.Analysis.SweepConcurrency, logger),
	}, nil
}

// API builds the HTTP application on top of the container's services.
func (c *Container) API() *ui.App {
	return ui.NewApp(ui.Config{
		Port:            c.Config.Server.Port,
		MaxUploadBytes:  c.Config.MaxUploadBytes(),
		ReadTimeout:     c.Config.Server.ReadTimeout,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
	}, ui.Deps{
		Store:    c.Store,
		Reader:   c.Reader,
		Analysis: c.Analysis,
		Sweep:    c.Sweep,
		Logger:   c.Logger,
	})
}
