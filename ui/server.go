package ui

import (
	"context"
	"net/http"
	"time"
)

// Start serves the API until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	port := a.config.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.router,
		ReadTimeout:       a.config.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting surveystat API on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := a.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.logger.Info("shutting down API server")
	return srv.Shutdown(shutdownCtx)
}
