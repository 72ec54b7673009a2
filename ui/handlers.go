package ui

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"surveystat/adapters/excel"
	"surveystat/adapters/stats/describe"
	"surveystat/app"
	"surveystat/domain/dataset"
	"surveystat/domain/verdict"
	"surveystat/internal/errors"
)

type datasetResponse struct {
	Dataset dataset.Summary     `json:"dataset"`
	Sheet   string              `json:"sheet,omitempty"`
	Fields  []dataset.FieldInfo `json:"fields"`
}

type analyzeRequest struct {
	VariableA string      `json:"variable_a"`
	VariableB string      `json:"variable_b"`
	Options   app.Options `json:"options"`
}

type analyzeResponse struct {
	Verdict       *verdict.Verdict `json:"verdict"`
	NarrativeHTML string           `json:"narrative_html"`
	Warning       *errorPayload    `json:"warning,omitempty"`
}

type sweepRequest struct {
	Columns []string    `json:"columns"`
	Options app.Options `json:"options"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDatasetUpload accepts a multipart upload in the "file" field.
func (a *App) handleDatasetUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, r, errors.InvalidInput("multipart field \"file\" is required: "+err.Error()))
		return
	}
	defer file.Close()

	format, err := excel.FormatOf(header.Filename)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}

	ds, err := a.reader.Read(name, format, file)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.store.Save(r.Context(), ds); err != nil {
		a.writeError(w, r, errors.Wrap(err, "failed to store dataset"))
		return
	}

	a.logger.Info("dataset %s loaded from %q (%d rows, %d columns)", ds.ID, header.Filename, ds.RowCount, len(ds.Columns))
	writeJSON(w, http.StatusCreated, datasetResponse{Dataset: ds.Summary(), Sheet: ds.Sheet, Fields: ds.Fields()})
}

func (a *App) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	list, err := a.store.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"datasets": list})
}

func (a *App) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	ds := datasetFrom(r)
	writeJSON(w, http.StatusOK, datasetResponse{Dataset: ds.Summary(), Sheet: ds.Sheet, Fields: ds.Fields()})
}

func (a *App) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Delete(r.Context(), datasetFrom(r).ID); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleListColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"columns": datasetFrom(r).Fields()})
}

func (a *App) handleDescribeColumn(w http.ResponseWriter, r *http.Request) {
	col, err := datasetFrom(r).Column(chi.URLParam(r, "name"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe.Describe(col))
}

// handleAnalyze runs the engine on one pair. A verdict without a p-value is
// returned with status 200 and a warning.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if req.VariableA == "" || req.VariableB == "" {
		a.writeError(w, r, errors.InvalidInput("variable_a and variable_b are required"))
		return
	}

	v, err := a.analysis.AnalyzeColumns(datasetFrom(r), req.VariableA, req.VariableB, req.Options)
	if v == nil {
		a.writeError(w, r, err)
		return
	}

	resp := analyzeResponse{Verdict: v, NarrativeHTML: renderNarrative(v.Interpretation.Narrative)}
	if err != nil {
		appErr := errors.FromAnalysis(err)
		resp.Warning = &errorPayload{Code: appErr.Code, Message: appErr.Error()}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := decodeJSON(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	report, err := a.sweep.Sweep(r.Context(), datasetFrom(r), req.Columns, req.Options)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.InvalidInput("malformed JSON body: " + err.Error())
	}
	return nil
}
