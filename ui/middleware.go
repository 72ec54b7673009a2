package ui

import (
	"context"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"surveystat/domain/core"
	"surveystat/domain/dataset"
	"surveystat/internal/errors"
)

type contextKey string

const datasetKey contextKey = "dataset"

// loadDataset resolves the {id} URL parameter into a dataset on the context.
func (a *App) loadDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
		if err != nil {
			a.writeError(w, r, errors.InvalidInput(err.Error()))
			return
		}
		ds, err := a.store.Get(r.Context(), id)
		if err != nil {
			a.writeError(w, r, errors.FromAnalysis(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), datasetKey, ds)))
	})
}

func datasetFrom(r *http.Request) *dataset.Dataset {
	ds, _ := r.Context().Value(datasetKey).(*dataset.Dataset)
	return ds
}

// limitBody caps the request body size.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}

// requireJSON rejects bodies that are not declared as JSON.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			writeJSON(w, http.StatusUnsupportedMediaType, errorBody(errors.InvalidInput("Content-Type must be application/json")))
			return
		}
		next.ServeHTTP(w, r)
	})
}
