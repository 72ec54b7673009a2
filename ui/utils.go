package ui

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"surveystat/internal/errors"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     errorPayload `json:"error"`
	RequestID string       `json:"request_id,omitempty"`
}

func errorBody(err *errors.AppError) errorResponse {
	return errorResponse{Error: errorPayload{Code: err.Code, Message: err.Error()}}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError maps err to its status code and logs server-side failures.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errors.FromAnalysis(err)
	status := errors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("%s %s: %s", r.Method, r.URL.Path, appErr.Code)
	}

	body := errorBody(appErr)
	body.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, status, body)
}

// renderNarrative converts a markdown narrative into an HTML fragment.
func renderNarrative(md string) string {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(bytes.TrimSpace(markdown.ToHTML([]byte(md), p, renderer)))
}
